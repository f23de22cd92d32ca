package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/cmsdash/internal/db"
	"github.com/alexanderramin/cmsdash/internal/domain"
)

// menuItemColumns is the canonical SELECT column list for menu_items.
const menuItemColumns = `id, menu_id, parent_id, title, url, target, order_index,
		translations, created_at, updated_at`

// SQLiteMenuItemRepo implements MenuItemRepo using a SQLite database.
type SQLiteMenuItemRepo struct {
	db db.DBTX
}

func NewSQLiteMenuItemRepo(conn db.DBTX) *SQLiteMenuItemRepo {
	return &SQLiteMenuItemRepo{db: conn}
}

func (r *SQLiteMenuItemRepo) Create(ctx context.Context, item *domain.MenuItem) error {
	translations, err := encodeTranslations(item.Translations)
	if err != nil {
		return err
	}
	query := `INSERT INTO menu_items (` + menuItemColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		item.ID,
		item.MenuID,
		nullableString(item.ParentID),
		item.Title,
		item.URL,
		string(targetOrDefault(item.Target)),
		item.Order,
		translations,
		formatTime(item.CreatedAt),
		formatTime(item.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting menu item: %w", err)
	}
	return nil
}

func (r *SQLiteMenuItemRepo) GetByID(ctx context.Context, id string) (*domain.MenuItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+menuItemColumns+` FROM menu_items WHERE id = ?`, id)
	item, err := scanMenuItem(row)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByMenu returns every item of the menu in storage order. The order is
// not meaningful; the tree builder sorts siblings.
func (r *SQLiteMenuItemRepo) ListByMenu(ctx context.Context, menuID string) ([]domain.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+menuItemColumns+` FROM menu_items WHERE menu_id = ? ORDER BY rowid`, menuID)
	if err != nil {
		return nil, fmt.Errorf("listing menu items: %w", err)
	}
	defer rows.Close()

	items := []domain.MenuItem{}
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating menu items: %w", err)
	}
	return items, nil
}

func (r *SQLiteMenuItemRepo) Update(ctx context.Context, item *domain.MenuItem) error {
	translations, err := encodeTranslations(item.Translations)
	if err != nil {
		return err
	}
	query := `UPDATE menu_items SET parent_id = ?, title = ?, url = ?, target = ?,
		order_index = ?, translations = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableString(item.ParentID),
		item.Title,
		item.URL,
		string(targetOrDefault(item.Target)),
		item.Order,
		translations,
		formatTime(item.UpdatedAt),
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating menu item: %w", err)
	}
	return requireAffected(res, "menu item")
}

func (r *SQLiteMenuItemRepo) UpdateOrder(ctx context.Context, id string, order int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE menu_items SET order_index = ?, updated_at = ? WHERE id = ?`,
		order, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating menu item order: %w", err)
	}
	return requireAffected(res, "menu item")
}

func (r *SQLiteMenuItemRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting menu item: %w", err)
	}
	return requireAffected(res, "menu item")
}

// DeleteMany removes the given ids and reports how many rows went away.
func (r *SQLiteMenuItemRepo) DeleteMany(ctx context.Context, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM menu_items WHERE id IN (`+placeholders(len(ids))+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("deleting menu items: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows: %w", err)
	}
	return int(n), nil
}

func scanMenuItem(s scanner) (domain.MenuItem, error) {
	var item domain.MenuItem
	var parentID sql.NullString
	var target, translations, createdAt, updatedAt string

	err := s.Scan(
		&item.ID, &item.MenuID, &parentID, &item.Title, &item.URL, &target,
		&item.Order, &translations, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return item, fmt.Errorf("menu item: %w", ErrNotFound)
		}
		return item, fmt.Errorf("scanning menu item: %w", err)
	}

	item.ParentID = stringPtr(parentID)
	item.Target = domain.LinkTarget(target)
	if item.Translations, err = decodeTranslations(translations); err != nil {
		return item, err
	}
	if item.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return item, err
	}
	if item.UpdatedAt, err = parseTime(updatedAt, "updated_at"); err != nil {
		return item, err
	}
	return item, nil
}

func targetOrDefault(t domain.LinkTarget) domain.LinkTarget {
	if t == "" {
		return domain.TargetSelf
	}
	return t
}
