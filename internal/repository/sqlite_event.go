package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/cmsdash/internal/db"
	"github.com/alexanderramin/cmsdash/internal/domain"
)

const eventColumns = `id, uid, title, description, location, starts_at, ends_at,
		all_day, created_at, updated_at`

// SQLiteEventRepo implements EventRepo using a SQLite database. Rows always
// hold a concrete end, so range queries need no default-duration logic.
type SQLiteEventRepo struct {
	db db.DBTX
}

func NewSQLiteEventRepo(conn db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: conn}
}

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.CalendarEvent) error {
	query := `INSERT INTO calendar_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UID, e.Title, e.Description, e.Location,
		formatTime(e.Start), formatTime(e.EffectiveEnd()), boolToInt(e.AllDay),
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM calendar_events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListBetween returns events overlapping [from, to), earliest first.
func (r *SQLiteEventRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.CalendarEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM calendar_events
		WHERE starts_at < ? AND ends_at > ?
		ORDER BY starts_at, title`,
		formatTime(to), formatTime(from))
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()

	events := []domain.CalendarEvent{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func (r *SQLiteEventRepo) Update(ctx context.Context, e *domain.CalendarEvent) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE calendar_events SET title = ?, description = ?, location = ?,
		starts_at = ?, ends_at = ?, all_day = ?, updated_at = ?
		WHERE id = ?`,
		e.Title, e.Description, e.Location,
		formatTime(e.Start), formatTime(e.EffectiveEnd()), boolToInt(e.AllDay),
		formatTime(e.UpdatedAt), e.ID)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return requireAffected(res, "event")
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return requireAffected(res, "event")
}

func scanEvent(s scanner) (domain.CalendarEvent, error) {
	var e domain.CalendarEvent
	var allDay int
	var startsAt, endsAt, createdAt, updatedAt string
	err := s.Scan(&e.ID, &e.UID, &e.Title, &e.Description, &e.Location,
		&startsAt, &endsAt, &allDay, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return e, fmt.Errorf("event: %w", ErrNotFound)
		}
		return e, fmt.Errorf("scanning event: %w", err)
	}
	e.AllDay = intToBool(allDay)
	e.Source = domain.SourceStore
	if e.Start, err = parseTime(startsAt, "starts_at"); err != nil {
		return e, err
	}
	if e.End, err = parseTime(endsAt, "ends_at"); err != nil {
		return e, err
	}
	if e.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return e, err
	}
	if e.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return e, err
	}
	return e, nil
}
