package nlp

import (
	"context"
	"sort"
	"strings"

	"github.com/smartsupport/triage-backend/internal/domain"
)

// keywordWeights maps each label of the embedded model to the terms that
// indicate it. Scores are term-hit counts smoothed into probabilities over
// the whole label space, so results are deterministic for a given text.
var keywordWeights = map[string][]string{
	"lost_or_stolen_card":       {"lost", "stolen", "missing", "card"},
	"change_pin":                {"change", "pin", "password", "passcode"},
	"card_arrival":              {"card", "arrive", "arrival", "delivery", "when"},
	"card_swallowed":            {"swallowed", "retained", "atm", "stuck"},
	"declined_card_payment":     {"declined", "rejected", "payment", "card"},
	"balance":                   {"balance", "account", "how", "much"},
	"transfer_timing":           {"transfer", "long", "timing", "take"},
	"pending_transfer":          {"pending", "transfer", "waiting"},
	"exchange_rate":             {"exchange", "rate", "currency", "fx"},
	"top_up_failed":             {"top", "up", "topup", "failed", "load"},
	"request_refund":            {"refund", "money", "back", "return"},
	"compromised_card":          {"compromised", "fraud", "hacked", "suspicious"},
	"pin_blocked":               {"pin", "blocked", "locked"},
	"terminate_account":         {"close", "terminate", "delete", "account"},
	"verify_my_identity":        {"verify", "identity", "verification", "id"},
	"contactless_not_working":   {"contactless", "tap", "working"},
	"edit_personal_details":     {"update", "edit", "address", "details", "personal"},
	"direct_debit_inquiry":      {"direct", "debit", "standing", "order"},
	"apple_pay_or_google_pay":   {"apple", "google", "pay", "wallet"},
	"card_about_to_expire":      {"expire", "expiring", "renewal", "card"},
	"unable_to_verify_identity": {"unable", "cannot", "verify", "identity"},
	"complaint":                 {"complaint", "unhappy", "terrible", "disappointed"},
}

const keywordSmoothing = 0.01

// KeywordClassifier is the embedded deterministic model used when no remote
// classifier endpoint is configured.
type KeywordClassifier struct {
	labels []string
}

func NewKeywordClassifier() *KeywordClassifier {
	labels := make([]string, 0, len(keywordWeights))
	for label := range keywordWeights {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return &KeywordClassifier{labels: labels}
}

func (c *KeywordClassifier) Classify(_ context.Context, text string, topK int) ([]domain.Prediction, error) {
	if topK <= 0 {
		topK = 1
	}

	tokens := tokenize(text)
	scores := make([]domain.Prediction, 0, len(c.labels))
	total := 0.0
	for _, label := range c.labels {
		raw := keywordSmoothing
		for _, term := range keywordWeights[label] {
			if tokens[term] {
				raw++
			}
		}
		total += raw
		scores = append(scores, domain.Prediction{Label: label, Score: raw})
	}

	for i := range scores {
		scores[i].Score /= total
	}

	// Stable label order breaks score ties deterministically.
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if topK > len(scores) {
		topK = len(scores)
	}
	return scores[:topK], nil
}

func tokenize(text string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	tokens := make(map[string]bool, len(fields))
	for _, field := range fields {
		tokens[field] = true
	}
	return tokens
}
