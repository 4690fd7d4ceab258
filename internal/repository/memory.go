package repository

import (
	"context"
	"sync"

	"github.com/smartsupport/triage-backend/internal/domain"
)

// MemoryTicketsRepository keeps records in insertion order. It backs tests
// and deployments without a database.
type MemoryTicketsRepository struct {
	mu      sync.RWMutex
	records []domain.TicketRecord
}

func NewMemoryTicketsRepository() *MemoryTicketsRepository {
	return &MemoryTicketsRepository{}
}

func (r *MemoryTicketsRepository) Insert(_ context.Context, record domain.TicketRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *MemoryTicketsRepository) History(_ context.Context, limit int) ([]domain.TicketRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.records) {
		limit = len(r.records)
	}
	// Newest first.
	out := make([]domain.TicketRecord, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

func (r *MemoryTicketsRepository) Stats(_ context.Context) (domain.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := domain.Stats{TotalTickets: int64(len(r.records))}
	if stats.TotalTickets == 0 {
		return stats, nil
	}
	var confident int64
	for _, record := range r.records {
		if record.Confidence > successThreshold {
			confident++
		}
	}
	stats.SuccessRate = float64(confident) / float64(stats.TotalTickets)
	return stats, nil
}
