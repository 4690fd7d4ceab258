// Package respond maps predicted intent labels to human-facing reply text.
package respond

import (
	"math/rand/v2"
	"strings"
)

const baseLanguage = "en"

// Resolver turns a (label, language) pair into reply text. Matching runs in
// four tiers: exact normalized key, key variants, separator-stripped
// containment, then a random generic fallback. Tiers 1-3 are deterministic;
// only tier 4 varies run to run. Resolve never fails.
type Resolver struct {
	entries []entry
	index   map[string]int
	pickN   func(n int) int
}

func NewResolver() *Resolver {
	index := make(map[string]int, len(responseTable))
	for i, e := range responseTable {
		index[e.key] = i
	}
	return &Resolver{
		entries: responseTable,
		index:   index,
		pickN:   rand.IntN,
	}
}

// Resolve returns the reply text for label in the requested language. When
// the matched entry has no text authored for that language it falls back to
// the entry's base-language text.
func (r *Resolver) Resolve(label, language string) string {
	normalized := normalizeLabel(label)

	// Tier 1: exact normalized key.
	if i, ok := r.index[normalized]; ok {
		return r.entryText(i, language)
	}

	// Tier 2: separator variants of the label.
	variants := []string{
		strings.ReplaceAll(normalized, "_", " "),
		strings.ReplaceAll(normalized, "_", "-"),
		strings.ToLower(strings.TrimSpace(label)),
	}
	for _, variant := range variants {
		if i, ok := r.index[variant]; ok {
			return r.entryText(i, language)
		}
	}

	// Tier 3: separator-stripped containment, first hit in table order wins.
	stripped := stripSeparators(normalized)
	if stripped != "" {
		for i, e := range r.entries {
			keyStripped := stripSeparators(e.key)
			if strings.Contains(keyStripped, stripped) || strings.Contains(stripped, keyStripped) {
				return r.entryText(i, language)
			}
		}
	}

	// Tier 4: random generic acknowledgement.
	pool, ok := genericResponses[language]
	if !ok || len(pool) == 0 {
		pool = genericResponses[baseLanguage]
	}
	return pool[r.pickN(len(pool))]
}

func (r *Resolver) entryText(i int, language string) string {
	texts := r.entries[i].texts
	if text, ok := texts[language]; ok && text != "" {
		return text
	}
	return texts[baseLanguage]
}

func normalizeLabel(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	return strings.ReplaceAll(normalized, " ", "_")
}

func stripSeparators(value string) string {
	replacer := strings.NewReplacer("_", "", "-", "", " ", "")
	return replacer.Replace(value)
}
