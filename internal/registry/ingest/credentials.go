package ingest

import "strings"

type credentialPattern struct {
	credential string
	markers    []string
}

// Ordered credential patterns matched against the upper-cased provider name.
// LPC is checked only when LCPC is absent because the shorter token is a
// substring of the longer one.
var credentialPatterns = []credentialPattern{
	{"MD", []string{"MD", "M.D."}},
	{"DO", []string{"DO", "D.O."}},
	{"PhD", []string{"PHD", "PH.D.", "PH D"}},
	{"PsyD", []string{"PSYD", "PSY.D."}},
	{"LCSW", []string{"LCSW"}},
	{"LCPC", []string{"LCPC"}},
	{"LMFT", []string{"LMFT"}},
}

// ExtractCredentials pulls professional credentials from a practitioner's
// name, supplemented by taxonomy-implied degrees. Returns a comma-joined list
// or a generic fallback when nothing matches.
func ExtractCredentials(name string, taxonomies []string) string {
	nameUpper := strings.ToUpper(name)

	var creds []string
	for _, p := range credentialPatterns {
		for _, marker := range p.markers {
			if strings.Contains(nameUpper, marker) {
				creds = append(creds, p.credential)
				break
			}
		}
	}
	if strings.Contains(nameUpper, "LPC") && !strings.Contains(nameUpper, "LCPC") {
		creds = append(creds, "LPC")
	}

	for _, tax := range taxonomies {
		desc := strings.ToLower(tax)
		if strings.Contains(desc, "psychiatr") && !containsAny(creds, "MD", "DO") {
			creds = append(creds, "MD")
		}
		if strings.Contains(desc, "psychologist") && !containsAny(creds, "PhD", "PsyD") {
			creds = append(creds, "PhD")
		}
	}

	if len(creds) == 0 {
		return "Licensed Professional"
	}
	return strings.Join(creds, ", ")
}

func containsAny(values []string, targets ...string) bool {
	for _, v := range values {
		for _, t := range targets {
			if v == t {
				return true
			}
		}
	}
	return false
}
