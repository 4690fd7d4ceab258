package nlp

import (
	"context"
	"sync"
	"time"

	"github.com/smartsupport/triage-backend/internal/domain"
)

// ManagerConfig selects the capability implementations. An empty URL picks
// the embedded implementation for that capability.
type ManagerConfig struct {
	ClassifierURL string
	TranslatorURL string
	DetectorURL   string
	Timeout       time.Duration
	MaxRetries    int
}

// Manager is the shared handle for the expensive capabilities. Construction
// is cheap; the actual implementations are built lazily on first use and
// exactly once per process, so workers spawned without a warm-up phase
// initialize on their first job. All methods are safe for concurrent use.
type Manager struct {
	cfg ManagerConfig

	once       sync.Once
	classifier Classifier
	detector   Detector
	translator Translator
}

func NewManager(cfg ManagerConfig) *Manager {
	return &Manager{cfg: cfg}
}

func (m *Manager) load() {
	m.once.Do(func() {
		remote := RemoteConfig{
			Timeout:    m.cfg.Timeout,
			MaxRetries: m.cfg.MaxRetries,
		}

		if m.cfg.ClassifierURL != "" {
			remote.BaseURL = m.cfg.ClassifierURL
			m.classifier = NewRemoteClassifier(remote)
		} else {
			m.classifier = NewKeywordClassifier()
		}

		if m.cfg.DetectorURL != "" {
			remote.BaseURL = m.cfg.DetectorURL
			m.detector = NewRemoteDetector(remote)
		} else {
			m.detector = NewHeuristicDetector()
		}

		if m.cfg.TranslatorURL != "" {
			remote.BaseURL = m.cfg.TranslatorURL
			m.translator = NewRemoteTranslator(remote)
		} else {
			m.translator = NewNoopTranslator()
		}
	})
}

// Warm forces initialization, for processes that want load cost at startup
// rather than on the first job.
func (m *Manager) Warm() {
	m.load()
}

func (m *Manager) Classify(ctx context.Context, text string, topK int) ([]domain.Prediction, error) {
	m.load()
	return m.classifier.Classify(ctx, text, topK)
}

func (m *Manager) Detect(ctx context.Context, text string) (string, error) {
	m.load()
	return m.detector.Detect(ctx, text)
}

func (m *Manager) Translate(ctx context.Context, text, target string) (string, error) {
	m.load()
	return m.translator.Translate(ctx, text, target)
}
