// Package plantier сопоставляет свободнотекстовое название тарифа
// с уровнем квоты AI-подсказок.
//
// Названия тарифов вводятся администраторами вручную, поэтому сначала
// выполняется нестрогое сопоставление по ключевым словам (включая
// корейские эквиваленты), а затем — точный поиск по таблице известных
// канонических названий. Несопоставленное или пустое название даёт квоту 0.
package plantier

import "strings"

// Tier — уровень тарифа для расчёта квоты.
type Tier int

// Уровни тарифов в порядке возрастания квоты.
const (
	TierNone Tier = iota
	TierBasic
	TierPremium
	TierEnterprise
)

// Квоты AI-подсказок за период подписки по уровням.
const (
	QuotaBasic      = 20
	QuotaPremium    = 80
	QuotaEnterprise = 300
)

// Ключевые слова уровней. Сравнение без учёта регистра, по вхождению
// подстроки. Порядок проверки: enterprise, premium, basic — более
// "широкие" тарифы имеют приоритет при пересечении слов.
var (
	enterpriseKeywords = []string{"enterprise", "엔터프라이즈", "기업"}
	premiumKeywords    = []string{"premium", "프리미엄"}
	basicKeywords      = []string{"basic", "베이직", "기본"}
)

// exactNames — авторитетная таблица канонических названий тарифов.
// Используется, когда ключевые слова не дали результата.
var exactNames = map[string]Tier{
	"visa helper basic":      TierBasic,
	"visa helper standard":   TierBasic,
	"visa helper premium":    TierPremium,
	"visa helper pro":        TierPremium,
	"visa helper enterprise": TierEnterprise,
	"visa helper business":   TierEnterprise,
}

// Match определяет уровень тарифа по его названию.
func Match(name string) Tier {
	if name == "" {
		return TierNone
	}
	lower := strings.ToLower(name)

	for _, kw := range enterpriseKeywords {
		if strings.Contains(lower, kw) {
			return TierEnterprise
		}
	}
	for _, kw := range premiumKeywords {
		if strings.Contains(lower, kw) {
			return TierPremium
		}
	}
	for _, kw := range basicKeywords {
		if strings.Contains(lower, kw) {
			return TierBasic
		}
	}

	if tier, ok := exactNames[lower]; ok {
		return tier
	}
	return TierNone
}

// Quota возвращает квоту AI-подсказок для уровня тарифа.
func (t Tier) Quota() int {
	switch t {
	case TierBasic:
		return QuotaBasic
	case TierPremium:
		return QuotaPremium
	case TierEnterprise:
		return QuotaEnterprise
	default:
		return 0
	}
}

// QuotaForName определяет квоту напрямую по названию тарифа.
func QuotaForName(name string) int {
	return Match(name).Quota()
}

// QuotaForDuration возвращает резервную квоту по длительности тарифа в днях.
// Применяется, когда активная подписка есть, но название тарифа не
// сопоставилось ни с одним уровнем: полгода — 20, год — 80, дольше — 300.
func QuotaForDuration(durationDays int) int {
	switch {
	case durationDays <= 180:
		return QuotaBasic
	case durationDays <= 365:
		return QuotaPremium
	default:
		return QuotaEnterprise
	}
}
