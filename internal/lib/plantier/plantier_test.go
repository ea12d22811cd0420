package plantier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		name     string
		planName string
		expected Tier
	}{
		{name: "empty name", planName: "", expected: TierNone},
		{name: "unknown name", planName: "Gold Plan", expected: TierNone},
		{name: "basic keyword", planName: "Basic Plan", expected: TierBasic},
		{name: "basic keyword lowercase", planName: "my basic subscription", expected: TierBasic},
		{name: "korean basic", planName: "베이직 플랜", expected: TierBasic},
		{name: "korean basic alternative", planName: "기본 요금제", expected: TierBasic},
		{name: "premium keyword", planName: "Premium", expected: TierPremium},
		{name: "korean premium", planName: "프리미엄 요금제", expected: TierPremium},
		{name: "enterprise keyword", planName: "Enterprise Annual", expected: TierEnterprise},
		{name: "korean enterprise", planName: "엔터프라이즈", expected: TierEnterprise},
		{name: "korean enterprise alternative", planName: "기업 요금제", expected: TierEnterprise},
		{name: "enterprise wins over premium", planName: "Premium Enterprise", expected: TierEnterprise},
		{name: "premium wins over basic", planName: "Basic Premium", expected: TierPremium},
		{name: "exact name basic", planName: "Visa Helper Basic", expected: TierBasic},
		{name: "exact name premium", planName: "Visa Helper Premium", expected: TierPremium},
		{name: "exact name enterprise", planName: "Visa Helper Enterprise", expected: TierEnterprise},
		// Канонические названия без ключевых слов — только точная таблица.
		{name: "exact name standard without keyword", planName: "Visa Helper Standard", expected: TierBasic},
		{name: "exact name pro without keyword", planName: "Visa Helper Pro", expected: TierPremium},
		{name: "exact name business without keyword", planName: "Visa Helper Business", expected: TierEnterprise},
		{name: "standard alone is unknown", planName: "Standard", expected: TierNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.planName))
		})
	}
}

func TestQuota(t *testing.T) {
	assert.Equal(t, 0, TierNone.Quota())
	assert.Equal(t, 20, TierBasic.Quota())
	assert.Equal(t, 80, TierPremium.Quota())
	assert.Equal(t, 300, TierEnterprise.Quota())
}

func TestQuotaForName(t *testing.T) {
	assert.Equal(t, 80, QuotaForName("Premium"))
	assert.Equal(t, 0, QuotaForName("6-Month Special"))
}

func TestQuotaForDuration(t *testing.T) {
	tests := []struct {
		name     string
		days     int
		expected int
	}{
		{name: "short plan", days: 30, expected: 20},
		{name: "half year boundary", days: 180, expected: 20},
		{name: "above half year", days: 181, expected: 80},
		{name: "year boundary", days: 365, expected: 80},
		{name: "above a year", days: 366, expected: 300},
		{name: "multi year", days: 1000, expected: 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, QuotaForDuration(tt.days))
		})
	}
}
