package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/cmsdash/internal/cli/formatter"
	"github.com/alexanderramin/cmsdash/internal/domain"
	"github.com/spf13/cobra"
)

func newSlideCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slide",
		Short: "Manage home page slides",
	}

	cmd.AddCommand(
		newSlideAddCmd(app),
		newSlideListCmd(app),
		newSlideMoveCmd(app),
		newSlideRemoveCmd(app),
		newSlideVisibilityCmd(app, "show", true),
		newSlideVisibilityCmd(app, "hide", false),
	)

	return cmd
}

func newSlideAddCmd(app *App) *cobra.Command {
	var title, image, link string
	var order int
	var inactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a slide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := &domain.Slide{
				Title:    title,
				ImageURL: image,
				LinkURL:  link,
				Active:   !inactive,
			}
			var orderPtr *int
			if cmd.Flags().Changed("order") {
				orderPtr = &order
			}
			if err := app.Slides.Add(cmd.Context(), s, orderPtr); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added slide %s (%s)\n", s.Title, s.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Slide title")
	cmd.Flags().StringVar(&image, "image", "", "Image URL")
	cmd.Flags().StringVar(&link, "link", "", "Click-through URL")
	cmd.Flags().IntVar(&order, "order", 0, "Position (default: last)")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Add the slide hidden")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("image")

	return cmd
}

func newSlideListCmd(app *App) *cobra.Command {
	var activeOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List slides in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			slides, err := app.Slides.List(cmd.Context(), activeOnly)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSlideList(slides))
			return nil
		},
	}

	cmd.Flags().BoolVar(&activeOnly, "active", false, "Only list visible slides")

	return cmd
}

func newSlideMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID ORDER",
		Short: "Change a slide's order value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSlideID(ctx, app, args[0])
			if err != nil {
				return err
			}
			order, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("order must be an integer, got %q", args[1])
			}
			if err := app.Slides.Move(ctx, id, order); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved slide %s to %d\n", formatter.ShortID(id), order)
			return nil
		},
	}
}

func newSlideRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a slide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSlideID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Slides.Remove(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed slide %s\n", formatter.ShortID(id))
			return nil
		},
	}
}

func newSlideVisibilityCmd(app *App, use string, active bool) *cobra.Command {
	short := "Hide a slide from the carousel"
	if active {
		short = "Show a slide in the carousel"
	}
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveSlideID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Slides.SetActive(ctx, id, active); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Slide %s %s\n", formatter.ShortID(id), formatter.ActivePill(active))
			return nil
		},
	}
}
