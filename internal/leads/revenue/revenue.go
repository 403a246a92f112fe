// Package revenue estimates monthly billing revenue for a practice from
// static industry benchmark tables. Pure lookups, no I/O.
package revenue

import (
	"fmt"

	"velden_leads_backend/internal/leads/domain"
)

// Billing fee model: a fixed percentage of the practice's monthly collections.
const percentageRate = 6.5

// Uncertainty band applied around the point estimate.
const bandWidth = 0.20

// Benchmark monthly collections by practice type and size, drawn from CMS fee
// schedules and published practice-management survey averages.
var monthlyCollections = map[domain.PracticeType]map[domain.SizeCategory]int{
	domain.PracticePsychiatry: {
		domain.SizeSoloOrSmall: 35000,
		domain.SizeSmallGroup:  87500,
		domain.SizeMedium:      175000,
		domain.SizeUnknown:     35000,
	},
	domain.PracticePsychology: {
		domain.SizeSoloOrSmall: 25000,
		domain.SizeSmallGroup:  62500,
		domain.SizeMedium:      125000,
		domain.SizeUnknown:     25000,
	},
	domain.PracticeCounseling: {
		domain.SizeSoloOrSmall: 18000,
		domain.SizeSmallGroup:  54000,
		domain.SizeMedium:      108000,
		domain.SizeUnknown:     18000,
	},
	domain.PracticeTherapy: {
		domain.SizeSoloOrSmall: 20000,
		domain.SizeSmallGroup:  60000,
		domain.SizeMedium:      120000,
		domain.SizeUnknown:     20000,
	},
	domain.PracticeMentalHealthClinic: {
		domain.SizeSoloOrSmall: 22000,
		domain.SizeSmallGroup:  66000,
		domain.SizeMedium:      132000,
		domain.SizeUnknown:     22000,
	},
	domain.PracticeSubstanceAbuse: {
		domain.SizeSoloOrSmall: 30000,
		domain.SizeSmallGroup:  90000,
		domain.SizeMedium:      180000,
		domain.SizeUnknown:     30000,
	},
}

// Benchmark claims per month for a solo practice of each type.
var monthlyClaims = map[domain.PracticeType]int{
	domain.PracticePsychiatry:         120,
	domain.PracticePsychology:         100,
	domain.PracticeCounseling:         140,
	domain.PracticeTherapy:            130,
	domain.PracticeMentalHealthClinic: 125,
	domain.PracticeSubstanceAbuse:     180,
}

// Approximate provider headcount per size category.
var claimSizeMultipliers = map[domain.SizeCategory]float64{
	domain.SizeSoloOrSmall: 1.0,
	domain.SizeSmallGroup:  3.0,
	domain.SizeMedium:      6.0,
	domain.SizeUnknown:     1.0,
}

// Fallbacks for practice types outside the benchmark tables (future-prospect
// specialties classify here too).
const (
	defaultCollections = 20000
	defaultClaims      = 100
)

// Calculate returns the revenue estimate for a practice type and size.
// Unknown combinations fall back to defaults rather than failing.
func Calculate(practice domain.PracticeType, size domain.SizeCategory) domain.RevenueEstimate {
	collections := defaultCollections
	if bySize, ok := monthlyCollections[practice]; ok {
		if c, ok := bySize[size]; ok {
			collections = c
		}
	}

	claims, ok := monthlyClaims[practice]
	if !ok {
		claims = defaultClaims
	}
	multiplier, ok := claimSizeMultipliers[size]
	if !ok {
		multiplier = 1.0
	}
	claims = int(float64(claims) * multiplier)

	estimate := round2(float64(collections) * percentageRate / 100)

	return domain.RevenueEstimate{
		MonthlyCollections: collections,
		MonthlyClaims:      claims,
		Estimate:           estimate,
		Low:                round2(estimate * (1 - bandWidth)),
		High:               round2(estimate * (1 + bandWidth)),
	}
}

// AnnualValue projects the monthly estimate across a year.
func AnnualValue(est domain.RevenueEstimate) float64 {
	return round2(est.Estimate * 12)
}

// FormatDisplay renders an estimate like "$5688/mo ($4550-$6825)".
func FormatDisplay(est domain.RevenueEstimate) string {
	return fmt.Sprintf("$%.0f/mo ($%.0f-$%.0f)", est.Estimate, est.Low, est.High)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
