package importer

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/validation"
)

// Length limits match the validate tags on domain.Menu and domain.MenuItem.
const (
	maxMenuNameLen  = 80
	maxItemTitleLen = 120
)

// ValidateMenuDocument checks the document before conversion.
// Returns a slice of all validation errors found, each prefixed with the
// path of the offending field.
func ValidateMenuDocument(doc *MenuDocument) []error {
	var errs []error

	if err := validation.Required(doc.Menu.Name); err != nil {
		errs = append(errs, fmt.Errorf("menu.name: %w", err))
	} else if err := validation.MaxLen(strings.TrimSpace(doc.Menu.Name), maxMenuNameLen); err != nil {
		errs = append(errs, fmt.Errorf("menu.name: %w", err))
	}
	if err := validation.Slug(doc.Menu.Slug); err != nil {
		errs = append(errs, fmt.Errorf("menu.slug: %w", err))
	}

	errs = append(errs, validateItems("items", doc.Items)...)
	return errs
}

func validateItems(prefix string, items []ItemDocument) []error {
	var errs []error
	for i, it := range items {
		path := fmt.Sprintf("%s[%d]", prefix, i)

		if err := validation.Required(it.Title); err != nil {
			errs = append(errs, fmt.Errorf("%s.title: %w", path, err))
		} else if err := validation.MaxLen(strings.TrimSpace(it.Title), maxItemTitleLen); err != nil {
			errs = append(errs, fmt.Errorf("%s.title: %w", path, err))
		}
		if err := validation.OptionalURL(it.URL); err != nil {
			errs = append(errs, fmt.Errorf("%s.url: %w", path, err))
		}
		if it.Target != "" && !domain.ValidLinkTargets[it.Target] {
			errs = append(errs, fmt.Errorf("%s.target: invalid value %q", path, it.Target))
		}
		for locale, title := range it.Translations {
			if locale == "" || title == "" {
				errs = append(errs, fmt.Errorf("%s.translations: locale and title must be non-empty", path))
				break
			}
		}

		errs = append(errs, validateItems(path+".children", it.Children)...)
	}
	return errs
}
