// Package domain holds the lead model and the pure classification rules
// applied to raw registry records.
package domain

// PracticeType is the classified practice category of a lead.
type PracticeType string

const (
	PracticePsychiatry         PracticeType = "Psychiatry Practice"
	PracticePsychology         PracticeType = "Psychology Practice"
	PracticeCounseling         PracticeType = "Counseling Center"
	PracticeTherapy            PracticeType = "Therapy Center"
	PracticeMentalHealthClinic PracticeType = "Mental Health Clinic"
	PracticeSubstanceAbuse     PracticeType = "Substance Abuse Treatment"

	// Future-prospect categories, adjacent specialties deprioritized for now.
	PracticeNeurology       PracticeType = "Neurology Practice"
	PracticeOrthopedics     PracticeType = "Orthopedic Clinic"
	PracticePainManagement  PracticeType = "Pain Management"
	PracticePhysicalTherapy PracticeType = "Physical Therapy"
)

// TargetPriority separates in-scope practice types from future prospects.
type TargetPriority string

const (
	PriorityCurrent TargetPriority = "Current"
	PriorityFuture  TargetPriority = "Future"
)

// SizeCategory is the practice size derived from the organization name.
type SizeCategory string

const (
	SizeSoloOrSmall SizeCategory = "Solo or Small"
	SizeSmallGroup  SizeCategory = "Small Group"
	SizeMedium      SizeCategory = "Medium"
	SizeUnknown     SizeCategory = "Unknown"
)

// BillingNeed is the heuristic estimate of billing-service propensity.
type BillingNeed string

const (
	BillingHigh   BillingNeed = "High"
	BillingMedium BillingNeed = "Medium"
	BillingLow    BillingNeed = "Low"
)

// RevenueEstimate is the derived monthly revenue projection for a lead.
// All fields are pure functions of practice type and size, never hand-edited.
type RevenueEstimate struct {
	MonthlyCollections int     `json:"monthlyCollections"`
	MonthlyClaims      int     `json:"monthlyClaims"`
	Estimate           float64 `json:"estimate"`
	Low                float64 `json:"low"`
	High               float64 `json:"high"`
}

// Lead is a candidate organization or practitioner tracked for outreach.
// ProviderID is the NPI number and is globally unique across the lead set.
type Lead struct {
	ProviderID  string `json:"providerId"`
	DisplayName string `json:"displayName"`
	Credentials string `json:"credentials,omitempty"` // individual providers only
	Taxonomy    string `json:"taxonomy"`
	Address     string `json:"address"`
	City        string `json:"city"`
	RegionCode  string `json:"regionCode"`
	PostalCode  string `json:"postalCode"`
	Phone       string `json:"phone"`

	PracticeType   PracticeType   `json:"practiceType"`
	TargetPriority TargetPriority `json:"targetPriority"`
	SizeCategory   SizeCategory   `json:"sizeCategory"`
	BillingNeed    BillingNeed    `json:"billingNeed"`
	BillingPoints  int            `json:"billingPoints"`

	Revenue RevenueEstimate `json:"revenue"`

	// Enrichment output. Empty means unknown; contacts are never guessed
	// from the organization name.
	Website      string `json:"website"`
	Email        string `json:"email"`
	SearchStatus string `json:"searchStatus"`
}
