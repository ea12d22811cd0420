package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/visahelper/visa-helper/internal/apperr"
	"github.com/visahelper/visa-helper/internal/models"
)

// CreateMembership добавляет новый тариф и возвращает его ID.
func (s *Storage) CreateMembership(ctx context.Context, m models.Membership) (int, error) {
	const op = "storage.CreateMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO memberships (name, price, duration_days, features, is_active, display_order)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		m.Name, m.Price, m.DurationDays, m.Features, m.IsActive, m.DisplayOrder).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetMembership возвращает тариф по его ID.
func (s *Storage) GetMembership(ctx context.Context, id int) (*models.Membership, error) {
	const op = "storage.GetMembership"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, duration_days, features, is_active, display_order, created_at
			  FROM memberships
			  WHERE id = $1`
	var m models.Membership
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.Price,
		&m.DurationDays, &m.Features, &m.IsActive, &m.DisplayOrder, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &m, nil
}

// ListMemberships возвращает доступные для покупки тарифы в порядке отображения.
func (s *Storage) ListMemberships(ctx context.Context) ([]*models.Membership, error) {
	const op = "storage.ListMemberships"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, duration_days, features, is_active, display_order, created_at
			  FROM memberships
			  WHERE is_active = true
			  ORDER BY display_order, id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Membership
	for rows.Next() {
		var m models.Membership
		if err := rows.Scan(&m.ID, &m.Name, &m.Price, &m.DurationDays, &m.Features,
			&m.IsActive, &m.DisplayOrder, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateUserMembership создаёт запись подписки пользователя и возвращает её ID.
func (s *Storage) CreateUserMembership(ctx context.Context, um models.UserMembership) (int, error) {
	const op = "storage.CreateUserMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_memberships (user_uid, membership_id, start_date, end_date, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		um.UserUID, um.MembershipID, um.StartDate, um.EndDate, um.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserMembership возвращает запись подписки по её ID.
func (s *Storage) GetUserMembership(ctx context.Context, id int) (*models.UserMembership, error) {
	const op = "storage.GetUserMembership"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, membership_id, start_date, end_date, status, created_at
			  FROM user_memberships
			  WHERE id = $1`
	var um models.UserMembership
	err := s.DB.QueryRowContext(ctx, query, id).Scan(&um.ID, &um.UserUID, &um.MembershipID,
		&um.StartDate, &um.EndDate, &um.Status, &um.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &um, nil
}

// FindActiveUserMembership возвращает текущую подписку пользователя для квот:
// ACTIVE-запись с датой окончания в будущем и наибольшей датой окончания.
// При равных датах окончания берётся созданная позже. Возвращает nil без
// ошибки, если активной подписки нет.
func (s *Storage) FindActiveUserMembership(ctx context.Context, userUID string, now time.Time) (*models.UserMembership, error) {
	const op = "storage.FindActiveUserMembership"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, membership_id, start_date, end_date, status, created_at
			  FROM user_memberships
			  WHERE user_uid = $1 AND status = $2 AND end_date > $3
			  ORDER BY end_date DESC, created_at DESC
			  LIMIT 1`
	var um models.UserMembership
	err := s.DB.QueryRowContext(ctx, query, userUID, models.MembershipStatusActive, now).
		Scan(&um.ID, &um.UserUID, &um.MembershipID, &um.StartDate, &um.EndDate, &um.Status, &um.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &um, nil
}

// HasActiveUserMembership проверяет, держит ли пользователь активную
// неистёкшую подписку на указанный тариф.
func (s *Storage) HasActiveUserMembership(ctx context.Context, userUID string, membershipID int, now time.Time) (bool, error) {
	const op = "storage.HasActiveUserMembership"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
			      SELECT 1 FROM user_memberships
			      WHERE user_uid = $1 AND membership_id = $2 AND status = $3 AND end_date > $4
			  )`
	var exists bool
	err := s.DB.QueryRowContext(ctx, query, userUID, membershipID, models.MembershipStatusActive, now).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ExtendUserMembership сдвигает дату окончания подписки на days дней вперёд
// и принудительно возвращает статус ACTIVE.
func (s *Storage) ExtendUserMembership(ctx context.Context, id, days int) error {
	const op = "storage.ExtendUserMembership"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE user_memberships
			  SET end_date = end_date + ($1 || ' days')::interval,
			      status = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, days, models.MembershipStatusActive, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}

// CancelUserMembership переводит подписку в статус CANCELLED,
// не изменяя дату окончания.
func (s *Storage) CancelUserMembership(ctx context.Context, id int) error {
	const op = "storage.CancelUserMembership"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE user_memberships
			  SET status = $1
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, models.MembershipStatusCancelled, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}
