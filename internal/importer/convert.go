package importer

import (
	"maps"
	"strings"
	"time"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/tree"
	"github.com/google/uuid"
)

// ConvertedMenu holds the records produced from a MenuDocument, ready for
// persistence. Items are listed parents first.
type ConvertedMenu struct {
	Menu  *domain.Menu
	Items []*domain.MenuItem
}

// Convert transforms a validated MenuDocument into domain objects.
// Call ValidateMenuDocument first; Convert assumes the document is valid.
func Convert(doc *MenuDocument) *ConvertedMenu {
	now := time.Now().UTC()
	menu := &domain.Menu{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(doc.Menu.Name),
		Slug:      doc.Menu.Slug,
		CreatedAt: now,
		UpdatedAt: now,
	}

	out := &ConvertedMenu{Menu: menu}
	convertItems(out, doc.Items, nil, now)
	return out
}

func convertItems(out *ConvertedMenu, docs []ItemDocument, parentID *string, now time.Time) {
	for i, d := range docs {
		target := domain.LinkTarget(d.Target)
		if target == "" {
			target = domain.TargetSelf
		}
		item := &domain.MenuItem{
			ID:           uuid.New().String(),
			MenuID:       out.Menu.ID,
			ParentID:     parentID,
			Title:        strings.TrimSpace(d.Title),
			URL:          d.URL,
			Target:       target,
			Order:        i,
			Translations: maps.Clone(d.Translations),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		out.Items = append(out.Items, item)

		id := item.ID
		convertItems(out, d.Children, &id, now)
	}
}

// FromTree nests a built menu forest into a document. Order values are not
// written; the position of each item carries it.
func FromTree(menu *domain.Menu, forest []*tree.Node[domain.MenuItem]) *MenuDocument {
	return &MenuDocument{
		Menu:  MenuHeader{Name: menu.Name, Slug: menu.Slug},
		Items: fromNodes(forest),
	}
}

func fromNodes(nodes []*tree.Node[domain.MenuItem]) []ItemDocument {
	if len(nodes) == 0 {
		return nil
	}
	docs := make([]ItemDocument, 0, len(nodes))
	for _, n := range nodes {
		d := ItemDocument{
			Title:        n.Item.Title,
			URL:          n.Item.URL,
			Translations: maps.Clone(n.Item.Translations),
			Children:     fromNodes(n.Children),
		}
		if n.Item.Target != domain.TargetSelf {
			d.Target = string(n.Item.Target)
		}
		docs = append(docs, d)
	}
	return docs
}
