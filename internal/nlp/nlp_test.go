package nlp

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordClassifierRanksCardLoss(t *testing.T) {
	classifier := NewKeywordClassifier()

	predictions, err := classifier.Classify(context.Background(), "I lost my card", 3)
	require.NoError(t, err)
	require.Len(t, predictions, 3)

	assert.Equal(t, "lost_or_stolen_card", predictions[0].Label)
	assert.Greater(t, predictions[0].Score, predictions[1].Score)
}

func TestKeywordClassifierScoresAreProbabilities(t *testing.T) {
	classifier := NewKeywordClassifier()

	predictions, err := classifier.Classify(context.Background(), "refund my money back", 100)
	require.NoError(t, err)
	require.Len(t, predictions, len(keywordWeights))

	sum := 0.0
	for i, p := range predictions {
		assert.Greater(t, p.Score, 0.0)
		if i > 0 {
			assert.LessOrEqual(t, p.Score, predictions[i-1].Score)
		}
		sum += p.Score
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestKeywordClassifierIsDeterministic(t *testing.T) {
	classifier := NewKeywordClassifier()

	first, err := classifier.Classify(context.Background(), "card declined at the store", 3)
	require.NoError(t, err)
	second, err := classifier.Classify(context.Background(), "card declined at the store", 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHeuristicDetector(t *testing.T) {
	detector := NewHeuristicDetector()

	lang, err := detector.Detect(context.Background(), "I lost my card")
	require.NoError(t, err)
	assert.Equal(t, "en", lang)

	lang, err = detector.Detect(context.Background(), "kartım kayboldu lütfen yardım edin")
	require.NoError(t, err)
	assert.Equal(t, "tr", lang)

	_, err = detector.Detect(context.Background(), "1234 5678")
	assert.ErrorIs(t, err, ErrUndetermined)
}

func TestNoopTranslatorSignalsUnavailable(t *testing.T) {
	_, err := NewNoopTranslator().Translate(context.Background(), "hello", "en")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestManagerInitializesOnce(t *testing.T) {
	manager := NewManager(ManagerConfig{})

	var wg sync.WaitGroup
	results := make([][]string, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(slot int) {
			defer wg.Done()
			predictions, err := manager.Classify(context.Background(), "change my pin", 2)
			assert.NoError(t, err)
			labels := make([]string, len(predictions))
			for j, p := range predictions {
				labels[j] = p.Label
			}
			results[slot] = labels
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		assert.Equal(t, results[0], results[i])
	}

	// The classifier handle must be the same instance after concurrent use.
	first := manager.classifier
	manager.Warm()
	assert.Same(t, first.(*KeywordClassifier), manager.classifier.(*KeywordClassifier))
}
