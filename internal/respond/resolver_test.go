package respond

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveExactMatch(t *testing.T) {
	resolver := NewResolver()

	text := resolver.Resolve("lost_or_stolen_card", "en")
	assert.Contains(t, text, "lost/stolen card report")

	text = resolver.Resolve("lost_or_stolen_card", "tr")
	assert.Contains(t, text, "Kart kayıp")
}

func TestResolveNormalizesLabel(t *testing.T) {
	resolver := NewResolver()

	expected := resolver.Resolve("change_pin", "en")
	assert.Equal(t, expected, resolver.Resolve("  Change PIN ", "en"))
	assert.Equal(t, expected, resolver.Resolve("CHANGE_PIN", "en"))
}

func TestResolveContainmentMatch(t *testing.T) {
	resolver := NewResolver()

	// "card swallowed by atm" strips to a superstring of "cardswallowed".
	text := resolver.Resolve("card_swallowed_by_atm", "en")
	assert.Contains(t, text, "retained by the ATM")

	// Hyphenated form of a known key reaches the same entry.
	assert.Equal(t,
		resolver.Resolve("top_up_failed", "en"),
		resolver.Resolve("top-up-failed", "en"),
	)
}

func TestResolveIsDeterministicForKnownLabels(t *testing.T) {
	resolver := NewResolver()

	first := resolver.Resolve("request_refund", "tr")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, resolver.Resolve("request_refund", "tr"))
	}
}

func TestResolveUnknownLanguageFallsBackToBase(t *testing.T) {
	resolver := NewResolver()

	assert.Equal(t,
		resolver.Resolve("balance", "en"),
		resolver.Resolve("balance", "de"),
	)
}

func TestResolveUnknownLabelUsesGenericPool(t *testing.T) {
	resolver := NewResolver()
	resolver.pickN = func(n int) int { return 0 }

	text := resolver.Resolve("xyz_never_seen", "en")
	assert.Contains(t, genericResponses["en"], text)

	text = resolver.Resolve("xyz_never_seen", "tr")
	assert.Contains(t, genericResponses["tr"], text)

	// Unknown label and unknown language: base-language pool.
	text = resolver.Resolve("xyz_never_seen", "xx")
	assert.Contains(t, genericResponses["en"], text)
}

func TestResolveUnknownLabelCoversWholePool(t *testing.T) {
	resolver := NewResolver()

	seen := make(map[string]bool)
	for i := range genericResponses["en"] {
		index := i
		resolver.pickN = func(n int) int { return index % n }
		seen[resolver.Resolve("xyz_never_seen", "en")] = true
	}
	assert.Len(t, seen, len(genericResponses["en"]))
}
