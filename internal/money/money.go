// Package money normalizes free-form currency text into decimal values and
// back into canonical display strings.
//
// All record-store money fields travel as display strings ("Php 1,000.00",
// "500", "pd cash", ""); parsing strips everything except digits and the
// decimal point and fails softly. Callers choose the fallback policy:
// summation is permissive (ParseOrZero), display is strict (FormatDisplay
// renders a placeholder, never "0.00", for a missing amount).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse extracts a decimal amount from free-form currency text.
// Every character that is not a digit or a decimal point is stripped before
// parsing. Returns false when the cleaned text is empty or not a valid
// number; it never returns an error and never panics.
func Parse(text string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}

	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, false
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseOrZero parses like Parse but treats unparsable text as zero.
// This is the summation policy: a blank or garbled price contributes
// nothing to a total instead of poisoning it.
func ParseOrZero(text string) decimal.Decimal {
	d, ok := Parse(text)
	if !ok {
		return decimal.Zero
	}
	return d
}

// Format renders an amount with two decimals and comma thousands grouping,
// without a currency prefix. Callers that need a prefix prepend it
// themselves so the output is reusable in both screen labels and document
// text.
func Format(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	// s is now "<integer>.<2 digits>"
	intPart := s[:len(s)-3]
	fracPart := s[len(s)-2:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 && !(neg && b.Len() == 1) {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// FormatDisplay is the strict display policy: parse the text and format it,
// or return the placeholder when there is no amount. A missing amount is
// distinct from zero and must never render as "0.00".
func FormatDisplay(text, placeholder string) string {
	d, ok := Parse(text)
	if !ok {
		return placeholder
	}
	return Format(d)
}
