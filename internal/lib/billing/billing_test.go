package billing

import (
	"testing"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/models"
)

func TestMonthlyEquivalent(t *testing.T) {
	tests := []struct {
		name        string
		amountCents int
		cycle       string
		want        float64
	}{
		{"monthly unchanged", 1200, models.CycleMonthly, 1200},
		{"yearly divided by 12", 12000, models.CycleYearly, 1000},
		{"weekly times 4.33", 100, models.CycleWeekly, 433},
		{"unknown cycle", 500, "daily", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthlyEquivalent(tt.amountCents, tt.cycle); got != tt.want {
				t.Errorf("MonthlyEquivalent(%d, %q) = %v, want %v",
					tt.amountCents, tt.cycle, got, tt.want)
			}
		})
	}
}

func TestYearlyEquivalent(t *testing.T) {
	tests := []struct {
		name        string
		amountCents int
		cycle       string
		want        float64
	}{
		{"monthly times 12", 1200, models.CycleMonthly, 14400},
		{"yearly unchanged", 12000, models.CycleYearly, 12000},
		{"weekly times 52", 100, models.CycleWeekly, 5200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := YearlyEquivalent(tt.amountCents, tt.cycle); got != tt.want {
				t.Errorf("YearlyEquivalent(%d, %q) = %v, want %v",
					tt.amountCents, tt.cycle, got, tt.want)
			}
		})
	}
}

func TestAnalytics_StreamingExample(t *testing.T) {
	subs := []*models.Subscription{
		{ServiceName: "Netflix", AmountCents: 1200, BillingCycle: models.CycleMonthly, Category: "Streaming"},
		{ServiceName: "Spotify", AmountCents: 12000, BillingCycle: models.CycleYearly, Category: "Streaming"},
	}

	got := Analytics(subs)

	if got.MonthlyTotal != 2200 {
		t.Errorf("MonthlyTotal = %v, want 2200", got.MonthlyTotal)
	}
	if got.YearlyTotal != 26400 {
		t.Errorf("YearlyTotal = %v, want 26400", got.YearlyTotal)
	}
	if got.ActiveCount != 2 {
		t.Errorf("ActiveCount = %d, want 2", got.ActiveCount)
	}
	if len(got.ByCategory) != 1 {
		t.Fatalf("ByCategory has %d entries, want 1", len(got.ByCategory))
	}
	if got.ByCategory[0].Category != "Streaming" || got.ByCategory[0].Amount != 2200 {
		t.Errorf("ByCategory[0] = %+v, want {Streaming 2200}", got.ByCategory[0])
	}
}

func TestAnalytics_CategoryOrderAndRounding(t *testing.T) {
	subs := []*models.Subscription{
		{AmountCents: 1000, BillingCycle: models.CycleYearly, Category: "Cloud"},      // 83.333...
		{AmountCents: 250, BillingCycle: models.CycleWeekly, Category: "Fitness"},     // 1082.5
		{AmountCents: 700, BillingCycle: models.CycleMonthly, Category: "Cloud"},      // 700
		{AmountCents: 700, BillingCycle: models.CycleMonthly, Category: "cloud"},      // регистр различается — отдельная группа
	}

	got := Analytics(subs)

	if len(got.ByCategory) != 3 {
		t.Fatalf("ByCategory has %d entries, want 3", len(got.ByCategory))
	}
	if got.ByCategory[0].Category != "Cloud" ||
		got.ByCategory[1].Category != "Fitness" ||
		got.ByCategory[2].Category != "cloud" {
		t.Errorf("category order = %v, want first-seen order [Cloud Fitness cloud]", got.ByCategory)
	}
	if got.ByCategory[0].Amount != 783.33 {
		t.Errorf("Cloud amount = %v, want 783.33", got.ByCategory[0].Amount)
	}
	if got.ByCategory[1].Amount != 1082.5 {
		t.Errorf("Fitness amount = %v, want 1082.5", got.ByCategory[1].Amount)
	}
}

func TestAnalytics_Empty(t *testing.T) {
	got := Analytics(nil)

	if got.MonthlyTotal != 0 || got.YearlyTotal != 0 || got.ActiveCount != 0 {
		t.Errorf("empty input should give zero totals, got %+v", got)
	}
	if len(got.ByCategory) != 0 {
		t.Errorf("empty input should give empty category list, got %v", got.ByCategory)
	}
}
