package nlp

import (
	"context"
	"strings"
	"unicode"
)

// Turkish-specific letters plus high-frequency function words. Enough signal
// for routing between the two supported response languages; anything else is
// reported as the base "en".
var turkishRunes = map[rune]bool{
	'ç': true, 'ğ': true, 'ı': true, 'ş': true, 'ö': true, 'ü': true,
	'Ç': true, 'Ğ': true, 'İ': true, 'Ş': true, 'Ö': true, 'Ü': true,
}

var turkishWords = map[string]bool{
	"ve": true, "bir": true, "için": true, "ile": true, "bu": true,
	"kartım": true, "hesabım": true, "param": true, "yardım": true,
	"lütfen": true, "kayboldu": true, "çalındı": true, "değil": true,
}

// HeuristicDetector is the embedded language detector used when no remote
// detector endpoint is configured.
type HeuristicDetector struct{}

func NewHeuristicDetector() HeuristicDetector {
	return HeuristicDetector{}
}

func (HeuristicDetector) Detect(_ context.Context, text string) (string, error) {
	letters := 0
	turkish := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
		}
		if turkishRunes[r] {
			turkish++
		}
	}
	if letters == 0 {
		return "", ErrUndetermined
	}
	if turkish > 0 {
		return "tr", nil
	}

	for _, word := range strings.Fields(strings.ToLower(text)) {
		if turkishWords[strings.Trim(word, ".,!?")] {
			return "tr", nil
		}
	}
	return "en", nil
}

// NoopTranslator stands in when no translator endpoint is configured. The
// pipeline treats its error as a degraded-mode signal and continues with the
// untranslated text.
type NoopTranslator struct{}

func NewNoopTranslator() NoopTranslator {
	return NoopTranslator{}
}

func (NoopTranslator) Translate(context.Context, string, string) (string, error) {
	return "", ErrUnavailable
}
