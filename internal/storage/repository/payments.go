package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/visahelper/visa-helper/internal/apperr"
	"github.com/visahelper/visa-helper/internal/models"
)

// CreatePayment сохраняет запись о попытке покупки и возвращает её ID.
func (s *Storage) CreatePayment(ctx context.Context, p models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (user_uid, membership_id, amount, method, status, transaction_id)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		p.UserUID, p.MembershipID, p.Amount, p.Method, p.Status, p.TransactionID).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPaymentByTransactionID возвращает платёж по идентификатору транзакции.
func (s *Storage) GetPaymentByTransactionID(ctx context.Context, transactionID string) (*models.Payment, error) {
	const op = "storage.GetPaymentByTransactionID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, membership_id, amount, method, status, transaction_id, created_at
			  FROM payments
			  WHERE transaction_id = $1`
	var p models.Payment
	err := s.DB.QueryRowContext(ctx, query, transactionID).Scan(&p.ID, &p.UserUID,
		&p.MembershipID, &p.Amount, &p.Method, &p.Status, &p.TransactionID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// UpdatePaymentStatus обновляет статус платежа.
func (s *Storage) UpdatePaymentStatus(ctx context.Context, id int, status string) error {
	const op = "storage.UpdatePaymentStatus"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE payments
			  SET status = $1
			  WHERE id = $2`
	result, err := s.DB.ExecContext(ctx, query, status, id)
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

// ListPaymentsByUser возвращает платежи пользователя с пагинацией.
func (s *Storage) ListPaymentsByUser(ctx context.Context, userUID string, limit, offset int) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_uid, membership_id, amount, method, status, transaction_id, created_at
			  FROM payments
			  WHERE user_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.UserUID, &p.MembershipID, &p.Amount, &p.Method,
			&p.Status, &p.TransactionID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
