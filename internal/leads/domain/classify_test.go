package domain

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		orgName      string
		taxonomies   []string
		wantPractice PracticeType
		wantPriority TargetPriority
	}{
		{
			name:         "psychiatry taxonomy",
			orgName:      "Lakeview Behavioral Group",
			taxonomies:   []string{"Psychiatry & Neurology, Psychiatry"},
			wantPractice: PracticePsychiatry,
			wantPriority: PriorityCurrent,
		},
		{
			name:         "neurology without psychiatry is a future prospect",
			orgName:      "Chicago Neurology Associates",
			taxonomies:   []string{"Neurology"},
			wantPractice: PracticeNeurology,
			wantPriority: PriorityFuture,
		},
		{
			name:         "psychiatry keyword overrides neurology exclusion",
			orgName:      "North Shore Neurology",
			taxonomies:   []string{"Psychiatry & Neurology"},
			wantPractice: PracticePsychiatry,
			wantPriority: PriorityCurrent,
		},
		{
			name:         "orthopedic taxonomy",
			orgName:      "Summit Medical",
			taxonomies:   []string{"Orthopaedic Surgery"},
			wantPractice: PracticeOrthopedics,
			wantPriority: PriorityFuture,
		},
		{
			name:         "physical therapy is future",
			orgName:      "Motion Physical Therapy LLC",
			taxonomies:   []string{"Physical Therapist"},
			wantPractice: PracticePhysicalTherapy,
			wantPriority: PriorityFuture,
		},
		{
			name:         "psychologist taxonomy",
			orgName:      "Mindful Path",
			taxonomies:   []string{"Psychologist, Clinical"},
			wantPractice: PracticePsychology,
			wantPriority: PriorityCurrent,
		},
		{
			name:         "counselor taxonomy",
			orgName:      "Harbor Wellness",
			taxonomies:   []string{"Counselor, Mental Health"},
			wantPractice: PracticeCounseling,
			wantPriority: PriorityCurrent,
		},
		{
			name:         "counsel in name",
			orgName:      "New Leaf Counseling",
			taxonomies:   []string{"Clinic/Center"},
			wantPractice: PracticeCounseling,
			wantPriority: PriorityCurrent,
		},
		{
			name:         "therapy in name without physical",
			orgName:      "Riverside Therapy Group",
			taxonomies:   []string{"Social Worker"},
			wantPractice: PracticeTherapy,
			wantPriority: PriorityCurrent,
		},
		{
			name:         "substance abuse taxonomy",
			orgName:      "Fresh Start Recovery",
			taxonomies:   []string{"Substance Abuse Rehabilitation Facility"},
			wantPractice: PracticeSubstanceAbuse,
			wantPriority: PriorityCurrent,
		},
		{
			name:         "no match defaults to mental health clinic",
			orgName:      "Evergreen Health",
			taxonomies:   []string{"Clinic/Center"},
			wantPractice: PracticeMentalHealthClinic,
			wantPriority: PriorityCurrent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			practice, priority := Classify(tt.orgName, tt.taxonomies)
			if practice != tt.wantPractice {
				t.Errorf("Classify() practice = %q, want %q", practice, tt.wantPractice)
			}
			if priority != tt.wantPriority {
				t.Errorf("Classify() priority = %q, want %q", priority, tt.wantPriority)
			}
		})
	}
}

func TestSize(t *testing.T) {
	tests := []struct {
		orgName string
		want    SizeCategory
	}{
		{"Lakeview Psychiatric Associates", SizeSmallGroup},
		{"Smith & Jones Behavioral Health", SizeSmallGroup},
		{"Harbor Counseling Center", SizeSmallGroup},
		{"Mindful Path LLC", SizeSoloOrSmall},
		{"Jane Doe Psychiatry PLLC", SizeSoloOrSmall},
		{"Evergreen Behavioral", SizeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.orgName, func(t *testing.T) {
			if got := Size(tt.orgName); got != tt.want {
				t.Errorf("Size(%q) = %q, want %q", tt.orgName, got, tt.want)
			}
		})
	}
}

func TestBillingScore(t *testing.T) {
	tests := []struct {
		name       string
		orgName    string
		practice   PracticeType
		size       SizeCategory
		wantPoints int
		wantNeed   BillingNeed
	}{
		{
			name:       "small group psychiatry scores high",
			orgName:    "Lakeview Psychiatric Associates",
			practice:   PracticePsychiatry,
			size:       SizeSmallGroup,
			wantPoints: 5,
			wantNeed:   BillingHigh,
		},
		{
			// "Counseling Center" gives no practice point; only the
			// counselor and therapy keywords do.
			name:       "solo counseling with legal suffix is medium",
			orgName:    "New Leaf Counseling LLC",
			practice:   PracticeCounseling,
			size:       SizeSoloOrSmall,
			wantPoints: 3,
			wantNeed:   BillingMedium,
		},
		{
			name:       "counseling center without suffix stays low",
			orgName:    "New Leaf Counseling",
			practice:   PracticeCounseling,
			size:       SizeUnknown,
			wantPoints: 0,
			wantNeed:   BillingLow,
		},
		{
			name:       "unknown size generic clinic is low",
			orgName:    "Evergreen Behavioral",
			practice:   PracticeMentalHealthClinic,
			size:       SizeUnknown,
			wantPoints: 0,
			wantNeed:   BillingLow,
		},
		{
			name:       "substance abuse small group",
			orgName:    "Fresh Start Recovery Group",
			practice:   PracticeSubstanceAbuse,
			size:       SizeSmallGroup,
			wantPoints: 5,
			wantNeed:   BillingHigh,
		},
		{
			name:       "solo therapy is medium",
			orgName:    "Riverside Therapy",
			practice:   PracticeTherapy,
			size:       SizeSoloOrSmall,
			wantPoints: 3,
			wantNeed:   BillingMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points, need := BillingScore(tt.orgName, tt.practice, tt.size)
			if points != tt.wantPoints {
				t.Errorf("BillingScore() points = %d, want %d", points, tt.wantPoints)
			}
			if need != tt.wantNeed {
				t.Errorf("BillingScore() need = %q, want %q", need, tt.wantNeed)
			}
		})
	}
}

func TestBillingScoreDeterministic(t *testing.T) {
	p1, n1 := BillingScore("Lakeview Psychiatric Associates", PracticePsychiatry, SizeSmallGroup)
	p2, n2 := BillingScore("Lakeview Psychiatric Associates", PracticePsychiatry, SizeSmallGroup)
	if p1 != p2 || n1 != n2 {
		t.Errorf("BillingScore not deterministic: (%d,%q) vs (%d,%q)", p1, n1, p2, n2)
	}
}
