// Package nlp wraps the external language capabilities the pipeline depends
// on: intent classification, language detection, and translation. Each is a
// black box behind an interface; deterministic embedded implementations keep
// the system runnable without remote services.
package nlp

import (
	"context"
	"errors"

	"github.com/smartsupport/triage-backend/internal/domain"
)

// ErrUndetermined is returned by detectors that cannot decide on a language.
// Callers fall back to the pipeline's base language instead of failing.
var ErrUndetermined = errors.New("language could not be determined")

// ErrUnavailable is returned by capabilities that are not configured in this
// deployment (for example translation without a translator endpoint).
var ErrUnavailable = errors.New("capability not available")

// Classifier scores text against a fixed label space and returns the top-k
// predictions sorted by score descending.
type Classifier interface {
	Classify(ctx context.Context, text string, topK int) ([]domain.Prediction, error)
}

// Detector identifies the language of a text.
type Detector interface {
	Detect(ctx context.Context, text string) (string, error)
}

// Translator translates text into the target language.
type Translator interface {
	Translate(ctx context.Context, text, target string) (string, error)
}
