package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexanderramin/cmsdash/internal/db"
	"github.com/alexanderramin/cmsdash/internal/importer"
	"github.com/alexanderramin/cmsdash/internal/repository"
	"github.com/alexanderramin/cmsdash/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const importYAML = `menu:
  name: Main
  slug: main
items:
  - title: Home
    url: https://example.com/
  - title: About
    children:
      - title: Team
        target: _blank
      - title: History
`

func setupTransfer(t *testing.T, uow db.UnitOfWork) (MenuTransferService, MenuService, *repository.SQLiteMenuRepo) {
	t.Helper()
	database := testutil.NewTestDB(t)
	if uow == nil {
		uow = testutil.NewTestUoW(database)
	} else if f, ok := uow.(*testutil.FailOnNthExecUoW); ok {
		f.DB = database
	}
	menus := repository.NewSQLiteMenuRepo(database)
	menuSvc := NewMenuService(menus, repository.NewSQLiteMenuItemRepo(database), uow, nil)
	return NewMenuTransferService(menuSvc, uow), menuSvc, menus
}

func TestMenuTransfer_ImportThenExport(t *testing.T) {
	transfer, menuSvc, _ := setupTransfer(t, nil)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte(importYAML), 0o644))

	result, err := transfer.Import(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 4, result.ItemCount)
	assert.Equal(t, "main", result.Menu.Slug)

	entries, err := menuSvc.Flat(ctx, result.Menu.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Home", "About", "Team", "History"}, flatTitles(entries))

	var buf bytes.Buffer
	require.NoError(t, transfer.Export(ctx, "main", &buf))
	assert.Equal(t, importYAML, buf.String())
}

func TestMenuTransfer_ImportRejectsInvalidAndDuplicate(t *testing.T) {
	transfer, _, _ := setupTransfer(t, nil)
	ctx := context.Background()

	doc, err := importer.ParseMenuDocument([]byte(importYAML))
	require.NoError(t, err)
	_, err = transfer.ImportDocument(ctx, doc)
	require.NoError(t, err)

	_, err = transfer.ImportDocument(ctx, doc)
	assert.ErrorIs(t, err, ErrSlugTaken)

	bad := &importer.MenuDocument{
		Menu:  importer.MenuHeader{Name: "", Slug: "bad"},
		Items: []importer.ItemDocument{{Title: ""}},
	}
	_, err = transfer.ImportDocument(ctx, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")
	assert.Contains(t, err.Error(), "items[0].title")

	_, err = transfer.Import(ctx, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMenuTransfer_ImportEnforcesLengthLimits(t *testing.T) {
	transfer, menuSvc, menus := setupTransfer(t, nil)
	ctx := context.Background()

	doc := &importer.MenuDocument{
		Menu: importer.MenuHeader{Name: "Main", Slug: "main"},
		Items: []importer.ItemDocument{
			{Title: "Home"},
			{Title: "About", Children: []importer.ItemDocument{{Title: strings.Repeat("x", 121)}}},
		},
	}
	_, err := transfer.ImportDocument(ctx, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[1].children[0].title")

	all, err := menus.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	// At the limit the import succeeds and the item still passes update rules.
	doc.Items[1].Children[0].Title = strings.Repeat("x", 120)
	result, err := transfer.ImportDocument(ctx, doc)
	require.NoError(t, err)

	entries, err := menuSvc.Flat(ctx, result.Menu.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	long := entries[2].Item
	assert.NoError(t, menuSvc.UpdateItem(ctx, &long))
}

func TestMenuTransfer_ImportRollsBack(t *testing.T) {
	// Exec #1 creates the menu, #2 Home, #3 About: fail on About.
	failUoW := &testutil.FailOnNthExecUoW{FailOn: 3, Err: assert.AnError}
	transfer, _, menus := setupTransfer(t, failUoW)
	ctx := context.Background()

	doc, err := importer.ParseMenuDocument([]byte(importYAML))
	require.NoError(t, err)

	_, err = transfer.ImportDocument(ctx, doc)
	require.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), `creating menu item "About"`)

	all, err := menus.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMenuTransfer_ExportUnknownMenu(t *testing.T) {
	transfer, _, _ := setupTransfer(t, nil)
	var buf bytes.Buffer
	err := transfer.Export(context.Background(), "nope", &buf)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
