package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smartsupport/triage-backend/internal/domain"
)

const ticketsSchema = `
CREATE TABLE IF NOT EXISTS tickets (
	id              TEXT PRIMARY KEY,
	text            TEXT NOT NULL,
	intent          TEXT NOT NULL,
	confidence      DOUBLE PRECISION NOT NULL,
	language        TEXT NOT NULL,
	response_text   TEXT NOT NULL,
	translated_text TEXT NOT NULL DEFAULT '',
	predictions     TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS tickets_created_at_idx ON tickets (created_at DESC);
`

// PostgresTicketsRepository persists completed classifications. Text stored
// here is already redacted upstream.
type PostgresTicketsRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresTicketsRepository(ctx context.Context, databaseURL string) (*PostgresTicketsRepository, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := pool.Exec(ctx, ticketsSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure tickets schema: %w", err)
	}
	return &PostgresTicketsRepository{pool: pool}, nil
}

func (r *PostgresTicketsRepository) Close() {
	r.pool.Close()
}

func (r *PostgresTicketsRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresTicketsRepository) Insert(ctx context.Context, record domain.TicketRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO tickets (id, text, intent, confidence, language, response_text, translated_text, predictions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID,
		record.Text,
		record.Intent,
		record.Confidence,
		record.Language,
		record.ResponseText,
		record.TranslatedText,
		record.Predictions,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (r *PostgresTicketsRepository) History(ctx context.Context, limit int) ([]domain.TicketRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, text, intent, confidence, language, response_text, translated_text, predictions, created_at
		FROM tickets
		ORDER BY created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	records := make([]domain.TicketRecord, 0, limit)
	for rows.Next() {
		var record domain.TicketRecord
		if err := rows.Scan(
			&record.ID,
			&record.Text,
			&record.Intent,
			&record.Confidence,
			&record.Language,
			&record.ResponseText,
			&record.TranslatedText,
			&record.Predictions,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ticket: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	return records, nil
}

func (r *PostgresTicketsRepository) Stats(ctx context.Context) (domain.Stats, error) {
	var stats domain.Stats
	var confident int64
	err := r.pool.QueryRow(ctx, `
		SELECT count(*), count(*) FILTER (WHERE confidence > $1)
		FROM tickets`, successThreshold).Scan(&stats.TotalTickets, &confident)
	if err != nil {
		return domain.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	if stats.TotalTickets > 0 {
		stats.SuccessRate = float64(confident) / float64(stats.TotalTickets)
	}
	return stats, nil
}
