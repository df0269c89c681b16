// Package postgres provides PostgreSQL implementations of the domain
// repositories. It handles all database operations for the work-order tracker,
// including the JSON encoding of the photo and parts sub-lists.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/busshop-tracker/internal/domain/entry"
	"github.com/busshop-tracker/internal/platform/persistence"
	"github.com/jackc/pgx/v5"
)

// EntryRepository implements the entry.Repository interface for PostgreSQL
type EntryRepository struct {
	querier persistence.Querier // Can be *pgxpool.Pool or pgx.Tx
	logger  *slog.Logger
}

// NewEntryRepository creates a new PostgreSQL entry repository.
// It expects db.Pool() to satisfy persistence.Querier.
func NewEntryRepository(logger *slog.Logger, db *persistence.PostgresDB) entry.Repository {
	return &EntryRepository{
		querier: db.Pool(),
		logger:  logger,
	}
}

// Upsert writes the full record as a single atomic replace-if-exists
// statement keyed on id. The photo and parts sub-lists are serialized to
// JSON text for storage.
func (r *EntryRepository) Upsert(ctx context.Context, e *entry.Entry) error {
	query := `
		INSERT INTO entries (id, date, mechanic, bus, service_type, odometer, labor_hours, notes, photos, parts, start_time, end_time, duration_hours)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			mechanic = EXCLUDED.mechanic,
			bus = EXCLUDED.bus,
			service_type = EXCLUDED.service_type,
			odometer = EXCLUDED.odometer,
			labor_hours = EXCLUDED.labor_hours,
			notes = EXCLUDED.notes,
			photos = EXCLUDED.photos,
			parts = EXCLUDED.parts,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			duration_hours = EXCLUDED.duration_hours
	`

	photos, err := encodePhotos(e.Photos)
	if err != nil {
		return fmt.Errorf("failed to encode photos: %w", err)
	}
	parts, err := encodeParts(e.Parts)
	if err != nil {
		return fmt.Errorf("failed to encode parts: %w", err)
	}

	_, err = r.querier.Exec(ctx, query,
		e.ID,
		e.Date,
		e.Mechanic,
		e.Bus,
		e.ServiceType,
		e.Odometer,
		e.LaborHours,
		e.Notes,
		photos,
		parts,
		e.StartTime,
		e.EndTime,
		e.DurationHours,
	)
	if err != nil {
		r.logger.Error("Failed to upsert entry", "id", e.ID, "error", err)
		return fmt.Errorf("failed to upsert entry: %w", err)
	}

	return nil
}

// Delete removes the record if present. A missing id is not an error.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM entries WHERE id = $1`

	_, err := r.querier.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error("Failed to delete entry", "id", id, "error", err)
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	return nil
}

// ListAll returns every entry ordered by date descending
func (r *EntryRepository) ListAll(ctx context.Context) ([]*entry.Entry, error) {
	query := `
		SELECT id, date, mechanic, bus, service_type, odometer, labor_hours, notes, photos, parts, start_time, end_time, duration_hours
		FROM entries
		ORDER BY date DESC
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list entries", "error", err)
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// ListByDateRange returns entries whose date falls within [from, to] inclusive,
// ordered by date descending
func (r *EntryRepository) ListByDateRange(ctx context.Context, from, to string) ([]*entry.Entry, error) {
	query := `
		SELECT id, date, mechanic, bus, service_type, odometer, labor_hours, notes, photos, parts, start_time, end_time, duration_hours
		FROM entries
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC
	`

	rows, err := r.querier.Query(ctx, query, from, to)
	if err != nil {
		r.logger.Error("Failed to list entries by date range", "from", from, "to", to, "error", err)
		return nil, fmt.Errorf("failed to list entries by date range: %w", err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

func (r *EntryRepository) scanEntries(rows pgx.Rows) ([]*entry.Entry, error) {
	entries := make([]*entry.Entry, 0)
	for rows.Next() {
		var e entry.Entry
		var photos, parts string
		err := rows.Scan(
			&e.ID,
			&e.Date,
			&e.Mechanic,
			&e.Bus,
			&e.ServiceType,
			&e.Odometer,
			&e.LaborHours,
			&e.Notes,
			&photos,
			&parts,
			&e.StartTime,
			&e.EndTime,
			&e.DurationHours,
		)
		if err != nil {
			r.logger.Error("Failed to scan entry row", "error", err)
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}

		e.Photos = r.decodePhotos(e.ID, photos)
		e.Parts = r.decodeParts(e.ID, parts)
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entry rows: %w", err)
	}

	return entries, nil
}

// encodePhotos serializes the photo list, mapping a nil slice to an empty
// JSON array so the stored form always decodes to a sequence.
func encodePhotos(photos []string) (string, error) {
	if photos == nil {
		photos = []string{}
	}
	raw, err := json.Marshal(photos)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func encodeParts(parts []entry.Part) (string, error) {
	if parts == nil {
		parts = []entry.Part{}
	}
	raw, err := json.Marshal(parts)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// decodePhotos deserializes the stored photo list. Malformed data decodes to
// an empty sequence rather than failing the whole read.
func (r *EntryRepository) decodePhotos(id, raw string) []string {
	if raw == "" {
		return []string{}
	}
	var photos []string
	if err := json.Unmarshal([]byte(raw), &photos); err != nil {
		r.logger.Warn("Malformed photos data, decoding as empty", "id", id, "error", err)
		return []string{}
	}
	if photos == nil {
		photos = []string{}
	}
	return photos
}

func (r *EntryRepository) decodeParts(id, raw string) []entry.Part {
	if raw == "" {
		return []entry.Part{}
	}
	var parts []entry.Part
	if err := json.Unmarshal([]byte(raw), &parts); err != nil {
		r.logger.Warn("Malformed parts data, decoding as empty", "id", id, "error", err)
		return []entry.Part{}
	}
	if parts == nil {
		parts = []entry.Part{}
	}
	return parts
}
