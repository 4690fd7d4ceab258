package policy

import "regexp"

// Redactor masks sensitive spans in free text before it is queued, processed,
// or persisted. The worker runs it a second time on every message, so the
// masking must be idempotent: already-masked text passes through unchanged.
type Redactor interface {
	Redact(text string) string
}

var (
	emailPattern = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`(?:\+?\d[\d()\-\s.]{7,}\d)`)
	cardPattern  = regexp.MustCompile(`\b(?:\d[ -]*?){13,16}\b`)
	ipPattern    = regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`)
	ibanPattern  = regexp.MustCompile(`\b[A-Z]{2}\d{2}[A-Z0-9]{11,30}\b`)
	// National identity number: 11 digits, first digit non-zero.
	nationalIDPattern = regexp.MustCompile(`\b[1-9][0-9]{10}\b`)
)

// RegexRedactor tags detected spans with the entity placeholders downstream
// consumers already expect (<EMAIL_ADDRESS>, <PHONE_NUMBER>, ...).
type RegexRedactor struct{}

func NewRegexRedactor() RegexRedactor {
	return RegexRedactor{}
}

func (RegexRedactor) Redact(text string) string {
	if text == "" {
		return text
	}
	masked := emailPattern.ReplaceAllString(text, "<EMAIL_ADDRESS>")
	masked = ibanPattern.ReplaceAllString(masked, "<IBAN_CODE>")
	masked = cardPattern.ReplaceAllString(masked, "<CREDIT_CARD>")
	masked = nationalIDPattern.ReplaceAllString(masked, "<NATIONAL_ID>")
	// IP before phone: the looser phone pattern would otherwise swallow
	// dotted quads.
	masked = ipPattern.ReplaceAllString(masked, "<IP_ADDRESS>")
	masked = phonePattern.ReplaceAllString(masked, "<PHONE_NUMBER>")
	return masked
}
