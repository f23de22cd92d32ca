package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/cmsdash/internal/cli/formatter"
	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/alexanderramin/cmsdash/internal/repository"
	"github.com/spf13/cobra"
)

// topLevel is accepted by --parent to address the top of a menu.
const topLevel = "root"

func newMenuItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage the items of a menu",
	}

	cmd.AddCommand(
		newMenuItemAddCmd(app),
		newMenuItemShowCmd(app),
		newMenuItemUpdateCmd(app),
		newMenuItemMoveCmd(app),
		newMenuItemRemoveCmd(app),
		newMenuItemReorderCmd(app),
	)

	return cmd
}

func newMenuItemAddCmd(app *App) *cobra.Command {
	var title, url, target, parent string
	var order int
	var translations []string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add MENU",
		Short: "Add an item to a menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := app.Menus.GetMenu(ctx, args[0])
			if err != nil {
				return err
			}

			if interactive {
				if !app.interactive() {
					return errNotInteractive
				}
				input := itemFormInput{Title: title, URL: url, NewTab: target == string(domain.TargetBlank)}
				if err := menuItemForm(&input).Run(); err != nil {
					return err
				}
				title, url = input.Title, input.URL
				target = string(domain.TargetSelf)
				if input.NewTab {
					target = string(domain.TargetBlank)
				}
			} else if title == "" {
				return fmt.Errorf("--title is required unless --interactive is set")
			}

			item := &domain.MenuItem{
				MenuID: m.ID,
				Title:  title,
				URL:    url,
				Target: domain.LinkTarget(target),
			}
			if item.Translations, err = parseTranslations(translations); err != nil {
				return err
			}
			if cmd.Flags().Changed("parent") {
				if item.ParentID, err = resolveParent(cmd, app, m.ID, parent); err != nil {
					return err
				}
			}
			var orderPtr *int
			if cmd.Flags().Changed("order") {
				orderPtr = &order
			}

			if err := app.Menus.AddItem(ctx, item, orderPtr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %s (%s)\n", item.Title, item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&url, "url", "", "Link URL")
	cmd.Flags().StringVar(&target, "target", "", "Link target (_self|_blank)")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent item ID or prefix")
	cmd.Flags().IntVar(&order, "order", 0, "Position among siblings (default: last)")
	cmd.Flags().StringArrayVar(&translations, "translation", nil, "Translated title as locale=title (repeatable)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the item with a form")

	return cmd
}

func newMenuItemShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show MENU ITEM",
		Short: "Show an item with its position in the menu",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := app.Menus.GetMenu(ctx, args[0])
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, m.ID, args[1])
			if err != nil {
				return err
			}
			item, err := app.Menus.GetItem(ctx, itemID)
			if err != nil {
				return err
			}
			path, err := app.Menus.Breadcrumbs(ctx, m.ID, itemID)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatItemDetail(item, path, app.now()))
			return nil
		},
	}
}

func newMenuItemUpdateCmd(app *App) *cobra.Command {
	var title, url, target string
	var translations []string

	cmd := &cobra.Command{
		Use:   "update MENU ITEM",
		Short: "Change an item's title, link or translations",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := app.Menus.GetMenu(ctx, args[0])
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, m.ID, args[1])
			if err != nil {
				return err
			}
			item, err := app.Menus.GetItem(ctx, itemID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("title") {
				item.Title = title
			}
			if cmd.Flags().Changed("url") {
				item.URL = url
			}
			if cmd.Flags().Changed("target") {
				item.Target = domain.LinkTarget(target)
			}
			if cmd.Flags().Changed("translation") {
				parsed, err := parseTranslations(translations)
				if err != nil {
					return err
				}
				if item.Translations == nil {
					item.Translations = map[string]string{}
				}
				for locale, t := range parsed {
					item.Translations[locale] = t
				}
			}

			if err := app.Menus.UpdateItem(ctx, item); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated item %s\n", item.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Item title")
	cmd.Flags().StringVar(&url, "url", "", "Link URL")
	cmd.Flags().StringVar(&target, "target", "", "Link target (_self|_blank)")
	cmd.Flags().StringArrayVar(&translations, "translation", nil, "Translated title as locale=title (repeatable)")

	return cmd
}

func newMenuItemMoveCmd(app *App) *cobra.Command {
	var parent string
	var order int

	cmd := &cobra.Command{
		Use:   "move MENU ITEM",
		Short: "Move an item under another parent or to another position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := app.Menus.GetMenu(ctx, args[0])
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, m.ID, args[1])
			if err != nil {
				return err
			}
			item, err := app.Menus.GetItem(ctx, itemID)
			if err != nil {
				return err
			}

			newParent := item.ParentID
			if cmd.Flags().Changed("parent") {
				if newParent, err = resolveParent(cmd, app, m.ID, parent); err != nil {
					return err
				}
			}
			var orderPtr *int
			if cmd.Flags().Changed("order") {
				orderPtr = &order
			}
			if !cmd.Flags().Changed("parent") && orderPtr == nil {
				return fmt.Errorf("nothing to do: pass --parent and/or --order")
			}

			if err := app.Menus.MoveItem(ctx, itemID, newParent, orderPtr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved item %s\n", item.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "New parent item ID or prefix, or \"root\" for the top level")
	cmd.Flags().IntVar(&order, "order", 0, "New position among siblings (default: last)")

	return cmd
}

func newMenuItemRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove MENU ITEM",
		Short: "Delete an item together with everything nested under it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := app.Menus.GetMenu(ctx, args[0])
			if err != nil {
				return err
			}
			itemID, err := resolveItemID(ctx, app, m.ID, args[1])
			if err != nil {
				return err
			}
			removed, err := app.Menus.RemoveItem(ctx, itemID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d item(s)\n", removed)
			return nil
		},
	}
}

func newMenuItemReorderCmd(app *App) *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "reorder MENU",
		Short: "Renumber sibling orders to 0..n-1, keeping their sequence",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := app.Menus.GetMenu(ctx, args[0])
			if err != nil {
				return err
			}
			var parentID *string
			if cmd.Flags().Changed("parent") {
				if parentID, err = resolveParent(cmd, app, m.ID, parent); err != nil {
					return err
				}
			}
			if err := app.Menus.Reorder(ctx, m.ID, parentID); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Reordered")
			return nil
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Renumber the children of this item instead of the top level")

	return cmd
}

// resolveParent maps a --parent value to a parent pointer; "root" and the
// empty string select the top level.
func resolveParent(cmd *cobra.Command, app *App, menuID, input string) (*string, error) {
	input = strings.TrimSpace(input)
	if input == "" || input == topLevel {
		return nil, nil
	}
	id, err := resolveItemID(cmd.Context(), app, menuID, input)
	if err != nil {
		return nil, fmt.Errorf("parent: %w", err)
	}
	return &id, nil
}

// parseTranslations reads locale=title pairs.
func parseTranslations(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		locale, title, ok := strings.Cut(p, "=")
		locale, title = strings.TrimSpace(locale), strings.TrimSpace(title)
		if !ok || locale == "" || title == "" {
			return nil, fmt.Errorf("translation %q: want locale=title", p)
		}
		out[locale] = title
	}
	return out, nil
}
