package cli

import (
	"fmt"

	"github.com/alexanderramin/menus/internal/cli/formatter"
	"github.com/alexanderramin/menus/internal/contract"
	"github.com/spf13/cobra"
)

func newCreateCmd(app *App, output func() string) *cobra.Command {
	var name, url, icon, parent string
	var position int
	var inactive bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a menu item (appended to its scope unless --position is set)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.CreateMenuRequest{Name: name}
			flags := cmd.Flags()
			if flags.Changed("url") {
				req.URL = &url
			}
			if flags.Changed("icon") {
				req.Icon = &icon
			}
			if flags.Changed("parent") {
				req.ParentID = &parent
			}
			if flags.Changed("position") {
				req.SortOrder = &position
			}
			if inactive {
				active := false
				req.IsActive = &active
			}

			item, err := app.Menus.Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output(), contract.NewMenuView(item), func() string {
				return formatter.FormatMenuItem("Created", item)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&url, "url", "", "Link target")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon identifier")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent menu ID (omit for a root item)")
	cmd.Flags().IntVar(&position, "position", 0, "Sibling position; later siblings shift down")
	cmd.Flags().BoolVar(&inactive, "inactive", false, "Create the item hidden")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTreeCmd(app *App, output func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Show every menu item as a nested tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, err := app.Menus.Tree(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output(), contract.NewTreeViews(roots), func() string {
				return formatter.FormatMenuTree(roots)
			})
		},
	}
}

func newGetCmd(app *App, output func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a menu item with its parent and children",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Menus.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output(), contract.NewDetailView(d.Item, d.Parent, d.Children), func() string {
				return formatter.FormatMenuDetail(d.Item, d.Parent, d.Children)
			})
		},
	}
}

func newUpdateCmd(app *App, output func() string) *cobra.Command {
	var name, url, icon string
	var active bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a menu item's display fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req contract.UpdateMenuRequest
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = &name
			}
			if flags.Changed("url") {
				req.URL = &url
			}
			if flags.Changed("icon") {
				req.Icon = &icon
			}
			if flags.Changed("active") {
				req.IsActive = &active
			}

			item, err := app.Menus.Update(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output(), contract.NewMenuView(item), func() string {
				return formatter.FormatMenuItem("Updated", item)
			})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New display name")
	cmd.Flags().StringVar(&url, "url", "", "New link target")
	cmd.Flags().StringVar(&icon, "icon", "", "New icon identifier")
	cmd.Flags().BoolVar(&active, "active", true, "Show (true) or hide (false) the item")

	return cmd
}

func newDeleteCmd(app *App, output func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a menu item and everything below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Menus.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			view := contract.DeleteView{ID: result.ID, DeletedIDs: result.DeletedIDs}
			return render(cmd.OutOrStdout(), output(), view, func() string {
				return formatter.FormatDeleted(result.DeletedIDs)
			})
		},
	}
}

func newMoveCmd(app *App, output func() string) *cobra.Command {
	var parent string
	var position int

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a menu item under another parent (or to the root)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req contract.MoveMenuRequest
			if parent != "" {
				req.ParentID = &parent
			}
			if cmd.Flags().Changed("position") {
				req.SortOrder = &position
			}

			item, err := app.Menus.Move(cmd.Context(), args[0], req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output(), contract.NewMenuView(item), func() string {
				return formatter.FormatMenuItem("Moved", item)
			})
		},
	}

	cmd.Flags().StringVar(&parent, "parent", "", "Destination parent ID (empty for the root)")
	cmd.Flags().IntVar(&position, "position", 0, "Position in the destination (default: append)")

	return cmd
}

func newReorderCmd(app *App, output func() string) *cobra.Command {
	var parent string
	var position int

	cmd := &cobra.Command{
		Use:   "reorder ID",
		Short: "Change a menu item's position among its siblings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			req := contract.ReorderMenuRequest{SortOrder: &position}

			if cmd.Flags().Changed("parent") {
				if parent != "" {
					req.ParentID = &parent
				}
			} else {
				// Default to the item's current scope.
				d, err := app.Menus.Get(ctx, args[0])
				if err != nil {
					return err
				}
				req.ParentID = d.Item.ParentID
			}

			item, err := app.Menus.Reorder(ctx, args[0], req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), output(), contract.NewMenuView(item), func() string {
				return formatter.FormatMenuItem("Reordered", item)
			})
		},
	}

	cmd.Flags().IntVar(&position, "position", 0, "New sibling position")
	cmd.Flags().StringVar(&parent, "parent", "", "Expected current parent ID (empty for the root)")
	_ = cmd.MarkFlagRequired("position")

	return cmd
}

func newCheckCmd(app *App, output func() string) *cobra.Command {
	var repair bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify every sibling group is ordered 0..n-1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			violations, err := app.Menus.Check(ctx)
			if err != nil {
				return err
			}

			views := make([]contract.ViolationView, len(violations))
			rows := make([]formatter.ScopeRow, len(violations))
			for i, v := range violations {
				views[i] = contract.NewViolationView(v.ParentID, v.Size, v.Violation)
				rows[i] = formatter.ScopeRow{ParentID: v.ParentID, Size: v.Size, Violation: v.Violation}
			}
			if err := render(cmd.OutOrStdout(), output(), views, func() string {
				return formatter.FormatViolations(rows)
			}); err != nil {
				return err
			}

			if !repair || len(violations) == 0 {
				return nil
			}
			repaired, err := app.Menus.Repair(ctx)
			if err != nil {
				return err
			}
			if output() == outputText {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Repaired %d scope(s)", repaired)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&repair, "repair", false, "Re-index scopes that are out of order")
	return cmd
}
