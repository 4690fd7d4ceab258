package repository

import (
	"context"

	"github.com/smartsupport/triage-backend/internal/domain"
)

// successThreshold is the confidence a stored ticket must exceed to count
// toward the success rate. Exactly at the threshold does not count.
const successThreshold = 0.5

// TicketsRepository is the append-only store of completed classifications.
// Inserts never update or delete existing rows.
type TicketsRepository interface {
	Insert(ctx context.Context, record domain.TicketRecord) error
	History(ctx context.Context, limit int) ([]domain.TicketRecord, error)
	Stats(ctx context.Context) (domain.Stats, error)
}
