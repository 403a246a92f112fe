package domain

import "strings"

// classificationRule pairs a keyword predicate with its outcome. Rules are
// evaluated top-down with early exit, so order is load-bearing: future
// prospect specialties are checked before current targets, and psychiatry
// keywords override the neurology exclusion.
type classificationRule struct {
	match    func(name, tax string) bool
	practice PracticeType
	priority TargetPriority
}

var classificationRules = []classificationRule{
	// Future prospects. Psychiatry/neurology overlap stays a current target.
	{
		match: func(name, tax string) bool {
			return (strings.Contains(tax, "neurology") || strings.Contains(name, "neurolog")) &&
				!strings.Contains(tax, "psychiatr")
		},
		practice: PracticeNeurology,
		priority: PriorityFuture,
	},
	{
		match: func(name, tax string) bool {
			return strings.Contains(tax, "orthopedic") || strings.Contains(tax, "orthopaedic") ||
				strings.Contains(name, "ortho")
		},
		practice: PracticeOrthopedics,
		priority: PriorityFuture,
	},
	{
		match: func(name, tax string) bool {
			return strings.Contains(tax, "pain management") || strings.Contains(name, "pain mgmt")
		},
		practice: PracticePainManagement,
		priority: PriorityFuture,
	},
	{
		match: func(name, tax string) bool {
			return strings.Contains(tax, "physical therapy") || strings.Contains(name, "physical therap")
		},
		practice: PracticePhysicalTherapy,
		priority: PriorityFuture,
	},

	// Current targets.
	{
		match: func(name, tax string) bool {
			return strings.Contains(tax, "psychiatr")
		},
		practice: PracticePsychiatry,
		priority: PriorityCurrent,
	},
	{
		match: func(name, tax string) bool {
			return strings.Contains(tax, "psycholog")
		},
		practice: PracticePsychology,
		priority: PriorityCurrent,
	},
	{
		match: func(name, tax string) bool {
			return strings.Contains(tax, "counselor") || strings.Contains(name, "counsel")
		},
		practice: PracticeCounseling,
		priority: PriorityCurrent,
	},
	{
		match: func(name, tax string) bool {
			return (strings.Contains(name, "therap") || strings.Contains(tax, "therapy")) &&
				!strings.Contains(name, "physical")
		},
		practice: PracticeTherapy,
		priority: PriorityCurrent,
	},
	{
		match: func(name, tax string) bool {
			return strings.Contains(tax, "substance") || strings.Contains(tax, "addiction")
		},
		practice: PracticeSubstanceAbuse,
		priority: PriorityCurrent,
	},
}

// Classify derives the practice type and target priority from the organization
// name and its taxonomy descriptions. First matching rule wins; anything that
// matches nothing is a generic mental health clinic.
func Classify(name string, taxonomyDescriptions []string) (PracticeType, TargetPriority) {
	nameLower := strings.ToLower(name)
	taxLower := strings.ToLower(strings.Join(taxonomyDescriptions, " "))

	for _, rule := range classificationRules {
		if rule.match(nameLower, taxLower) {
			return rule.practice, rule.priority
		}
	}
	return PracticeMentalHealthClinic, PriorityCurrent
}

var (
	groupKeywords = []string{"group", "associates", "partners", " & ", " and "}
	legalSuffixes = []string{" llc", " inc", " pllc", " pc"}
)

// Size derives a size category from the organization name. Keyword checks are
// ordered: multi-provider naming beats facility naming beats legal suffixes.
func Size(name string) SizeCategory {
	nameLower := strings.ToLower(name)

	for _, w := range groupKeywords {
		if strings.Contains(nameLower, w) {
			return SizeSmallGroup
		}
	}
	if strings.Contains(nameLower, "center") || strings.Contains(nameLower, "clinic") {
		return SizeSmallGroup
	}
	for _, suffix := range legalSuffixes {
		if strings.Contains(nameLower, suffix) {
			return SizeSoloOrSmall
		}
	}
	return SizeUnknown
}

// billingThresholds for converting additive points to a need level.
const (
	billingHighThreshold   = 4
	billingMediumThreshold = 2
)

// BillingScore predicts billing-service need as an additive point system over
// size, practice type, and naming signals. Deterministic: the same inputs
// always produce the same points and level.
func BillingScore(name string, practice PracticeType, size SizeCategory) (int, BillingNeed) {
	score := 0

	switch {
	case size == SizeSmallGroup:
		score += 3
	case strings.Contains(string(size), "Solo"):
		score += 2
	}

	practiceLower := strings.ToLower(string(practice))
	if strings.Contains(practiceLower, "psychiatr") {
		score += 2
	}
	if strings.Contains(practiceLower, "substance") || strings.Contains(practiceLower, "addiction") {
		score += 2
	}
	if strings.Contains(practiceLower, "counselor") || strings.Contains(practiceLower, "therapy") {
		score += 1
	}

	nameLower := strings.ToLower(name)
	if strings.Contains(nameLower, " llc") || strings.Contains(nameLower, " inc") ||
		strings.Contains(nameLower, " pllc") {
		score += 1
	}

	switch {
	case score >= billingHighThreshold:
		return score, BillingHigh
	case score >= billingMediumThreshold:
		return score, BillingMedium
	default:
		return score, BillingLow
	}
}
