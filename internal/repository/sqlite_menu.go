package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cmsdash/internal/db"
	"github.com/alexanderramin/cmsdash/internal/domain"
)

const menuColumns = `id, name, slug, created_at, updated_at`

// SQLiteMenuRepo implements MenuRepo using a SQLite database.
type SQLiteMenuRepo struct {
	db db.DBTX
}

func NewSQLiteMenuRepo(conn db.DBTX) *SQLiteMenuRepo {
	return &SQLiteMenuRepo{db: conn}
}

func (r *SQLiteMenuRepo) Create(ctx context.Context, m *domain.Menu) error {
	query := `INSERT INTO menus (` + menuColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Slug, formatTime(m.CreatedAt), formatTime(m.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting menu: %w", err)
	}
	return nil
}

func (r *SQLiteMenuRepo) GetByID(ctx context.Context, id string) (*domain.Menu, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = ?`, id)
	return scanMenu(row)
}

func (r *SQLiteMenuRepo) GetBySlug(ctx context.Context, slug string) (*domain.Menu, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menus WHERE slug = ?`, slug)
	return scanMenu(row)
}

func (r *SQLiteMenuRepo) List(ctx context.Context) ([]*domain.Menu, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+menuColumns+` FROM menus ORDER BY name, slug`)
	if err != nil {
		return nil, fmt.Errorf("listing menus: %w", err)
	}
	defer rows.Close()

	var menus []*domain.Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menus: %w", err)
	}
	return menus, nil
}

func (r *SQLiteMenuRepo) Update(ctx context.Context, m *domain.Menu) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE menus SET name = ?, slug = ?, updated_at = ? WHERE id = ?`,
		m.Name, m.Slug, formatTime(m.UpdatedAt), m.ID)
	if err != nil {
		return fmt.Errorf("updating menu: %w", err)
	}
	return requireAffected(res, "menu")
}

func (r *SQLiteMenuRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menus WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting menu: %w", err)
	}
	return requireAffected(res, "menu")
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMenu(s scanner) (*domain.Menu, error) {
	var m domain.Menu
	var createdAt, updatedAt string
	if err := s.Scan(&m.ID, &m.Name, &m.Slug, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("menu: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning menu: %w", err)
	}
	var err error
	if m.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if m.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return nil, err
	}
	return &m, nil
}

// requireAffected turns a write that matched no row into ErrNotFound.
func requireAffected(res sql.Result, entity string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", entity, ErrNotFound)
	}
	return nil
}
