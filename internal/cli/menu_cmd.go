package cli

import (
	"fmt"
	"os"

	"github.com/alexanderramin/cmsdash/internal/cli/formatter"
	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/spf13/cobra"
)

func newMenuCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Manage navigation menus",
	}

	cmd.AddCommand(
		newMenuCreateCmd(app),
		newMenuListCmd(app),
		newMenuRemoveCmd(app),
		newMenuShowCmd(app),
		newMenuDepthCmd(app),
		newMenuExportCmd(app),
		newMenuImportCmd(app),
		newMenuBrowseCmd(app),
		newMenuFindCmd(app),
		newMenuItemCmd(app),
	)

	return cmd
}

func newMenuCreateCmd(app *App) *cobra.Command {
	var slug string

	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new menu",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := &domain.Menu{Name: args[0], Slug: slug}
			if err := app.Menus.CreateMenu(cmd.Context(), m); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created menu %s (%s)\n", m.Name, m.Slug)
			return nil
		},
	}

	cmd.Flags().StringVar(&slug, "slug", "", "URL-safe menu key, e.g. main-nav")
	_ = cmd.MarkFlagRequired("slug")

	return cmd
}

func newMenuListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List menus",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			menus, err := app.Menus.ListMenus(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatMenuList(menus))
			return nil
		},
	}
}

func newMenuRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove MENU",
		Short: "Delete a menu and all of its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Menus.RemoveMenu(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed menu %s\n", args[0])
			return nil
		},
	}
}

func newMenuShowCmd(app *App) *cobra.Command {
	var flat bool
	var locale string

	cmd := &cobra.Command{
		Use:   "show MENU",
		Short: "Show a menu as a tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := app.Menus.GetMenu(ctx, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flat {
				entries, err := app.Menus.Flat(ctx, m.ID)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatMenuFlat(entries, locale))
				return nil
			}

			forest, err := app.Menus.Tree(ctx, m.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatMenuTree(m, forest, locale))
			return nil
		},
	}

	cmd.Flags().BoolVar(&flat, "flat", false, "Print the pre-order listing with depths")
	cmd.Flags().StringVar(&locale, "locale", "", "Show translated titles for this locale")

	return cmd
}

func newMenuDepthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "depth MENU ITEM",
		Short: "Print the nesting depth of an item (0 for top level)",
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
			depth, ok, err := app.Menus.Depth(ctx, m.ID, itemID)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("item %s is not reachable from the top of menu %s", args[1], m.Slug)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", depth)
			return nil
		},
	}
}

func newMenuExportCmd(app *App) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export MENU",
		Short: "Write a menu as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return app.Transfer.Export(cmd.Context(), args[0], cmd.OutOrStdout())
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			if err := app.Transfer.Export(cmd.Context(), args[0], f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported menu %s to %s\n", args[0], outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")

	return cmd
}

func newMenuImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Create a menu from a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Transfer.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported menu %s (%s) with %d items\n",
				result.Menu.Name, result.Menu.Slug, result.ItemCount)
			return nil
		},
	}
}

func newMenuFindCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find MENU QUERY",
		Short: "Fuzzy-search item titles",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := app.Menus.GetMenu(ctx, args[0])
			if err != nil {
				return err
			}
			results, err := app.Menus.Search(ctx, m.ID, args[1])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, formatter.Dim("No matches."))
				return nil
			}
			if limit > 0 && len(results) > limit {
				results = results[:limit]
			}
			for _, r := range results {
				crumbs := formatter.FormatBreadcrumbs(r.Path[:len(r.Path)-1], "")
				title := formatter.Highlight(r.Item.Title, r.MatchedIndexes)
				if crumbs != "" {
					title = crumbs + formatter.Dim(" › ") + title
				}
				fmt.Fprintf(out, "%s  %s\n", formatter.TruncID(r.Item.ID), title)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of matches (0 for all)")

	return cmd
}

func newMenuBrowseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse MENU",
		Short: "Explore a menu interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errNotInteractive
			}
			m, err := app.Menus.GetMenu(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return runMenuBrowser(cmd.Context(), app, m)
		},
	}
}
