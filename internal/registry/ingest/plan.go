package ingest

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Plan describes one ingestion batch: which regions to pull and which search
// terms to page through for each.
type Plan struct {
	Regions         []string      `yaml:"regions"`
	SearchTerms     []string      `yaml:"search_terms"`
	IndividualTerms []string      `yaml:"individual_terms"`
	MaxPages        int           `yaml:"max_pages"`
	PageDelay       time.Duration `yaml:"page_delay"`
}

// DefaultPlan is the behavioral-health ingestion plan used when no plan file
// is configured.
func DefaultPlan() Plan {
	return Plan{
		Regions: []string{"IL"},
		SearchTerms: []string{
			// Core mental health
			"mental health clinic",
			"mental health center",
			"behavioral health",
			"behavioral health clinic",

			// Therapy focused
			"therapy center",
			"therapy clinic",
			"therapist",
			"psychotherapy",

			// Counseling focused
			"counseling center",
			"counseling services",
			"counselor",
			"family counseling",
			"marriage therapy",

			// Psychology/Psychiatry
			"psychology",
			"psychologist",
			"psychiatry",
			"psychiatric",

			// Specialized
			"trauma therapy",
			"child therapy",
			"adolescent mental health",
			"substance abuse counseling",
			"addiction counseling",
		},
		IndividualTerms: []string{
			"psychiatry",
			"psychologist",
			"counselor",
			"therapist",
		},
		MaxPages:  25,
		PageDelay: 200 * time.Millisecond,
	}
}

// LoadPlan reads a plan from a YAML file, filling unset fields from the
// default plan. A missing file is not an error; the default plan applies.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultPlan(), nil
		}
		return Plan{}, fmt.Errorf("read ingest plan: %w", err)
	}

	plan := Plan{}
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("parse ingest plan: %w", err)
	}

	defaults := DefaultPlan()
	if len(plan.Regions) == 0 {
		plan.Regions = defaults.Regions
	}
	if len(plan.SearchTerms) == 0 {
		plan.SearchTerms = defaults.SearchTerms
	}
	if len(plan.IndividualTerms) == 0 {
		plan.IndividualTerms = defaults.IndividualTerms
	}
	if plan.MaxPages <= 0 {
		plan.MaxPages = defaults.MaxPages
	}
	if plan.PageDelay <= 0 {
		plan.PageDelay = defaults.PageDelay
	}

	return plan, nil
}
