package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cmsdash/internal/db"
	"github.com/alexanderramin/cmsdash/internal/domain"
)

const slideColumns = `id, title, image_url, link_url, order_index, active, created_at, updated_at`

// SQLiteSlideRepo implements SlideRepo using a SQLite database.
type SQLiteSlideRepo struct {
	db db.DBTX
}

func NewSQLiteSlideRepo(conn db.DBTX) *SQLiteSlideRepo {
	return &SQLiteSlideRepo{db: conn}
}

func (r *SQLiteSlideRepo) Create(ctx context.Context, s *domain.Slide) error {
	query := `INSERT INTO slides (` + slideColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.Title, s.ImageURL, s.LinkURL, s.Order, boolToInt(s.Active),
		formatTime(s.CreatedAt), formatTime(s.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting slide: %w", err)
	}
	return nil
}

func (r *SQLiteSlideRepo) GetByID(ctx context.Context, id string) (*domain.Slide, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+slideColumns+` FROM slides WHERE id = ?`, id)
	s, err := scanSlide(row)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SQLiteSlideRepo) List(ctx context.Context) ([]domain.Slide, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+slideColumns+` FROM slides ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing slides: %w", err)
	}
	defer rows.Close()

	slides := []domain.Slide{}
	for rows.Next() {
		s, err := scanSlide(rows)
		if err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slides: %w", err)
	}
	return slides, nil
}

func (r *SQLiteSlideRepo) Update(ctx context.Context, s *domain.Slide) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE slides SET title = ?, image_url = ?, link_url = ?, order_index = ?,
		active = ?, updated_at = ? WHERE id = ?`,
		s.Title, s.ImageURL, s.LinkURL, s.Order, boolToInt(s.Active), formatTime(s.UpdatedAt), s.ID)
	if err != nil {
		return fmt.Errorf("updating slide: %w", err)
	}
	return requireAffected(res, "slide")
}

func (r *SQLiteSlideRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM slides WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting slide: %w", err)
	}
	return requireAffected(res, "slide")
}

func scanSlide(s scanner) (domain.Slide, error) {
	var sl domain.Slide
	var active int
	var createdAt, updatedAt string
	err := s.Scan(&sl.ID, &sl.Title, &sl.ImageURL, &sl.LinkURL, &sl.Order, &active, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sl, fmt.Errorf("slide: %w", ErrNotFound)
		}
		return sl, fmt.Errorf("scanning slide: %w", err)
	}
	sl.Active = intToBool(active)
	if sl.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return sl, err
	}
	if sl.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return sl, err
	}
	return sl, nil
}
