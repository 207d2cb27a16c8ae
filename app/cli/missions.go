package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"icando-go/app/models"
	"icando-go/app/services"
)

func newShowCmd(a *app) *cobra.Command {
	var opts printOptions

	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Print the mission tree",
		Aliases: []string{"ls"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printTree(cmd.OutOrStdout(), a.svc.Root(), opts)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&opts.showCompleted, "completed", "c", false, "Show completed missions")
	cmd.Flags().BoolVar(&opts.showIDs, "ids", false, "Show mission ids")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var parentID, description string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a mission",
		Long: `Add a mission below the root, or below --parent.

Examples:
  icando add "buy milk"
  icando add --parent 1b9d6bcd "check the fridge"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.svc.AddMission(cmd.Context(), parentID, args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), m.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&parentID, "parent", "p", "", "Parent mission id")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Mission description")
	return cmd
}

func newEditCmd(a *app) *cobra.Command {
	var (
		title, description string
		done, expand       bool
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit, complete or expand a mission",
		Long: `Edit the fields of a mission. Only the given flags change.

Examples:
  icando edit 1b9d6bcd --done
  icando edit 1b9d6bcd --done=false --title "buy oat milk"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd services.MissionUpdate
			flags := cmd.Flags()
			if flags.Changed("title") {
				upd.Title = &title
			}
			if flags.Changed("description") {
				upd.Description = &description
			}
			if flags.Changed("done") {
				upd.Completed = &done
			}
			if flags.Changed("expand") {
				upd.Expanded = &expand
			}
			_, err := a.svc.UpdateMission(cmd.Context(), args[0], upd)
			return err
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().BoolVar(&done, "done", false, "Mark as completed (--done=false to reopen)")
	cmd.Flags().BoolVar(&expand, "expand", false, "Mark as expanded (--expand=false to collapse)")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Short:   "Delete a mission and its sub-missions",
		Aliases: []string{"delete"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.svc.DeleteMission(cmd.Context(), args[0])
		},
	}
}

func newMoveCmd(a *app) *cobra.Command {
	var position string

	cmd := &cobra.Command{
		Use:   "mv <id> <target-id>",
		Short: "Move a mission before, into or after another one",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := models.ParsePosition(position)
			if err != nil {
				return err
			}
			return a.svc.MoveMission(cmd.Context(), args[0], args[1], pos)
		},
	}
	cmd.Flags().StringVar(&position, "position", "into", "Drop position: before, into or after")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write the mission tree as JSON to a file or stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.svc.Export()
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			return nil
		},
	}
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the mission tree with a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			return a.svc.Import(cmd.Context(), data)
		},
	}
}
