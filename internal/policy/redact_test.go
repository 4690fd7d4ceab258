package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactMasksCommonEntities(t *testing.T) {
	redactor := NewRegexRedactor()

	masked := redactor.Redact("reach me at user@example.com or +44 20 7946 0958")
	assert.NotContains(t, masked, "user@example.com")
	assert.NotContains(t, masked, "7946")
	assert.Contains(t, masked, "<EMAIL_ADDRESS>")
	assert.Contains(t, masked, "<PHONE_NUMBER>")

	masked = redactor.Redact("my card 4111 1111 1111 1111 was declined")
	assert.NotContains(t, masked, "4111")
	assert.Contains(t, masked, "<CREDIT_CARD>")

	masked = redactor.Redact("login from 192.168.1.100 looks odd")
	assert.Equal(t, "login from <IP_ADDRESS> looks odd", masked)

	masked = redactor.Redact("kimlik 12345678901 ile dogrulama")
	assert.Equal(t, "kimlik <NATIONAL_ID> ile dogrulama", masked)
}

func TestRedactIsIdempotent(t *testing.T) {
	redactor := NewRegexRedactor()

	once := redactor.Redact("card 4111 1111 1111 1111, mail user@example.com")
	twice := redactor.Redact(once)
	assert.Equal(t, once, twice)
}

func TestRedactLeavesPlainTextAlone(t *testing.T) {
	redactor := NewRegexRedactor()

	text := "I lost my card yesterday"
	assert.Equal(t, text, redactor.Redact(text))
	assert.Equal(t, "", redactor.Redact(""))
}
