package main

import (
	"github.com/spf13/cobra"

	"github.com/fastygo/tidydo/domain"
)

var simpleCmd = &cobra.Command{
	Use:   "simple",
	Short: "Manage simple-todo boards",
}

var simpleAddCmd = &cobra.Command{
	Use:   "add <category-id> <title>",
	Short: "Add a card and print its id",
	Args:  cobra.ExactArgs(2),
	RunE:  runSimpleAdd,
}

var simpleAddStatus string

var simpleBoardCmd = &cobra.Command{
	Use:   "board <category-id>",
	Short: "Print a board column by column",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimpleBoard,
}

var simpleMoveCmd = &cobra.Command{
	Use:   "move <id> <status>",
	Short: "Move a card to another column",
	Args:  cobra.ExactArgs(2),
	RunE:  runSimpleMove,
}

var simpleDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a card",
	Args:    cobra.ExactArgs(1),
	RunE:    runSimpleDelete,
}

func init() {
	rootCmd.AddCommand(simpleCmd)
	simpleCmd.AddCommand(simpleAddCmd, simpleBoardCmd, simpleMoveCmd, simpleDeleteCmd)

	simpleAddCmd.Flags().StringVarP(&simpleAddStatus, "status", "s", "", "todo, doing, done or paused")
}

func runSimpleAdd(cmd *cobra.Command, args []string) error {
	created, err := svc.SimpleItems.Create(cmd.Context(), args[0], args[1], domain.SimpleStatus(simpleAddStatus))
	if err != nil {
		return err
	}
	out(cmd, "%s\n", created.ID)
	return nil
}

func runSimpleBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	items, err := svc.SimpleItems.ListByCategory(ctx, args[0])
	if err != nil {
		return err
	}
	counts, err := svc.SimpleItems.CountsByStatus(ctx, args[0])
	if err != nil {
		return err
	}
	for _, status := range domain.SimpleStatuses {
		out(cmd, "%s (%d)\n", status, counts[status])
		for _, it := range items {
			if it.Status == status {
				out(cmd, "  %s\t%s\n", it.ID, it.Title)
			}
		}
	}
	return nil
}

func runSimpleMove(cmd *cobra.Command, args []string) error {
	_, err := svc.SimpleItems.UpdateStatus(cmd.Context(), args[0], domain.SimpleStatus(args[1]))
	return err
}

func runSimpleDelete(cmd *cobra.Command, args []string) error {
	return svc.SimpleItems.Delete(cmd.Context(), args[0])
}

