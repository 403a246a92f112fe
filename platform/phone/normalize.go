// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// NormalizeUS formats a US phone number to the canonical "(NNN) NNN-NNNN"
// form. The input must contain exactly 10 digits after stripping everything
// else; anything else returns false.
func NormalizeUS(input string) (string, bool) {
	digits := Digits(input)
	if len(digits) != 10 {
		return "", false
	}

	number, err := phonenumbers.Parse(digits, defaultRegion)
	if err == nil && phonenumbers.IsPossibleNumber(number) {
		national := number.GetNationalNumber()
		formatted := fmt.Sprintf("%010d", national)
		return "(" + formatted[:3] + ") " + formatted[3:6] + "-" + formatted[6:], true
	}

	// Parser rejections still carry ten digits worth of signal; keep them in
	// the canonical form rather than dropping a lead's only phone.
	return "(" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:], true
}

// Digits strips everything except ASCII digits from the input.
func Digits(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
