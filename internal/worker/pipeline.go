package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/smartsupport/triage-backend/internal/domain"
	"github.com/smartsupport/triage-backend/internal/nlp"
	"github.com/smartsupport/triage-backend/internal/policy"
	"github.com/smartsupport/triage-backend/internal/repository"
	"github.com/smartsupport/triage-backend/internal/respond"
)

// PipelineConfig carries the tunables of one classification run.
type PipelineConfig struct {
	BaseLanguage string
	TopK         int
}

func (c PipelineConfig) normalized() PipelineConfig {
	if c.BaseLanguage == "" {
		c.BaseLanguage = "en"
	}
	if c.TopK <= 0 {
		c.TopK = 3
	}
	return c
}

// Pipeline runs the classification stages for one ticket. Detection and
// translation degrade to fallbacks; only classification failures are fatal
// and drive the retry policy.
type Pipeline struct {
	cfg        PipelineConfig
	redactor   policy.Redactor
	classifier nlp.Classifier
	detector   nlp.Detector
	translator nlp.Translator
	resolver   *respond.Resolver
	tickets    repository.TicketsRepository
	logger     zerolog.Logger
	now        func() time.Time
}

func NewPipeline(
	cfg PipelineConfig,
	redactor policy.Redactor,
	classifier nlp.Classifier,
	detector nlp.Detector,
	translator nlp.Translator,
	resolver *respond.Resolver,
	tickets repository.TicketsRepository,
	logger zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg.normalized(),
		redactor:   redactor,
		classifier: classifier,
		detector:   detector,
		translator: translator,
		resolver:   resolver,
		tickets:    tickets,
		logger:     logger,
		now:        time.Now,
	}
}

// Run executes the full pipeline for one job. The gateway already redacted
// the text once; redacting again here covers messages enqueued through any
// other path.
func (p *Pipeline) Run(ctx context.Context, jobID, text string) (domain.ClassificationResult, error) {
	redacted := p.redactor.Redact(text)

	language := p.detectLanguage(ctx, jobID, redacted)

	classifyText := redacted
	translated := ""
	if language != p.cfg.BaseLanguage {
		translated = p.translate(ctx, jobID, redacted)
		if translated != "" {
			classifyText = translated
		}
	}

	predictions, err := p.classifier.Classify(ctx, classifyText, p.cfg.TopK)
	if err != nil {
		return domain.ClassificationResult{}, fmt.Errorf("classify: %w", err)
	}
	if len(predictions) == 0 {
		return domain.ClassificationResult{}, errors.New("classify: empty prediction set")
	}

	top := predictions[0]
	result := domain.ClassificationResult{
		Language:       language,
		Intent:         top.Label,
		Confidence:     top.Score,
		Predictions:    predictions,
		RedactedText:   redacted,
		ResponseText:   p.resolver.Resolve(top.Label, language),
		TranslatedText: translated,
	}

	p.persist(ctx, jobID, result)
	return result, nil
}

func (p *Pipeline) detectLanguage(ctx context.Context, jobID, text string) string {
	language, err := p.detector.Detect(ctx, text)
	if err != nil {
		if !errors.Is(err, nlp.ErrUndetermined) {
			p.logger.Warn().Err(err).Str("job_id", jobID).Msg("language detection failed, using base language")
		}
		return p.cfg.BaseLanguage
	}
	return language
}

func (p *Pipeline) translate(ctx context.Context, jobID, text string) string {
	translated, err := p.translator.Translate(ctx, text, p.cfg.BaseLanguage)
	if err != nil {
		if !errors.Is(err, nlp.ErrUnavailable) {
			p.logger.Warn().Err(err).Str("job_id", jobID).Msg("translation failed, classifying original text")
		}
		return ""
	}
	return translated
}

func (p *Pipeline) persist(ctx context.Context, jobID string, result domain.ClassificationResult) {
	record := domain.TicketRecord{
		ID:             jobID,
		Text:           result.RedactedText,
		Intent:         result.Intent,
		Confidence:     result.Confidence,
		Language:       result.Language,
		ResponseText:   result.ResponseText,
		TranslatedText: result.TranslatedText,
		Predictions:    domain.EncodePredictions(result.Predictions),
		CreatedAt:      p.now(),
	}
	if err := p.tickets.Insert(ctx, record); err != nil {
		// The caller already has the result; a lost history row is not
		// worth failing the job over.
		p.logger.Error().Err(err).Str("job_id", jobID).Msg("persisting ticket record failed")
	}
}
