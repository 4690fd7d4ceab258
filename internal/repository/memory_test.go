package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartsupport/triage-backend/internal/domain"
)

func TestMemoryRepositoryHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTicketsRepository()

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Insert(ctx, domain.TicketRecord{
			ID:        fmt.Sprintf("t-%d", i),
			Intent:    "card_arrival",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	records, err := repo.History(ctx, 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "t-4", records[0].ID)
	assert.Equal(t, "t-3", records[1].ID)
	assert.Equal(t, "t-2", records[2].ID)
}

func TestMemoryRepositoryHistoryLimitBeyondSize(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTicketsRepository()
	require.NoError(t, repo.Insert(ctx, domain.TicketRecord{ID: "only"}))

	records, err := repo.History(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestMemoryRepositoryStats(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTicketsRepository()

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTickets)
	assert.Zero(t, stats.SuccessRate)

	// 0.5 sits exactly on the threshold and must not count as a success.
	confidences := []float64{0.9, 0.51, 0.5, 0.1}
	for i, c := range confidences {
		require.NoError(t, repo.Insert(ctx, domain.TicketRecord{
			ID:         fmt.Sprintf("t-%d", i),
			Confidence: c,
		}))
	}

	stats, err = repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.TotalTickets)
	assert.InDelta(t, 0.5, stats.SuccessRate, 1e-9)
}
