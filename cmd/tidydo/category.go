package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fastygo/tidydo/domain"
	categoryUC "github.com/fastygo/tidydo/usecase/category"
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "Manage categories",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories in display order",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a category and print its id",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var (
	categoryAddIcon   string
	categoryAddSimple bool
	categoryAddFilter []string
)

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryRename,
}

var categoryMoveCmd = &cobra.Command{
	Use:       "move <id> up|down",
	Short:     "Move a category one position",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{string(categoryUC.Up), string(categoryUC.Down)},
	RunE:      runCategoryMove,
}

var categoryReorderCmd = &cobra.Command{
	Use:   "reorder <id> <index>",
	Short: "Move a category to a zero-based position",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryReorder,
}

var categoryDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a category together with its items",
	Args:    cobra.ExactArgs(1),
	RunE:    runCategoryDelete,
}

func init() {
	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryRenameCmd, categoryMoveCmd, categoryReorderCmd, categoryDeleteCmd)

	categoryAddCmd.Flags().StringVar(&categoryAddIcon, "icon", "", "category icon")
	categoryAddCmd.Flags().BoolVar(&categoryAddSimple, "simple", false, "create a simple-todo category")
	categoryAddCmd.Flags().StringSliceVar(&categoryAddFilter, "filter-status", nil, "create a filter category matching these statuses")
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	state := svc.State.State()
	counts := make(map[string]int)
	for _, it := range state.Items {
		counts[it.CategoryID]++
	}
	for _, it := range state.SimpleItems {
		counts[it.CategoryID]++
	}
	for _, c := range state.Categories {
		kind := "todo"
		switch {
		case c.IsFilterCategory:
			kind = "filter"
		case c.IsSimpleTodo:
			kind = "simple"
		}
		out(cmd, "%s\t%s\t%s\t%d\n", c.ID, c.Name, kind, counts[c.ID])
	}
	return nil
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	in := categoryUC.CreateInput{
		Name:         args[0],
		Icon:         categoryAddIcon,
		IsSimpleTodo: categoryAddSimple,
	}
	if len(categoryAddFilter) > 0 {
		in.IsFilterCategory = true
		conditions := &domain.FilterConditions{}
		for _, s := range categoryAddFilter {
			conditions.Statuses = append(conditions.Statuses, domain.NormalizeStatus(s))
		}
		in.FilterConditions = conditions
	}
	created, err := svc.Categories.Create(cmd.Context(), in)
	if err != nil {
		return err
	}
	out(cmd, "%s\n", created.ID)
	return nil
}

func runCategoryRename(cmd *cobra.Command, args []string) error {
	name := args[1]
	_, err := svc.Categories.Update(cmd.Context(), args[0], categoryUC.Patch{Name: &name})
	return err
}

func runCategoryMove(cmd *cobra.Command, args []string) error {
	moved, err := svc.Categories.Move(cmd.Context(), args[0], categoryUC.Direction(args[1]))
	if err != nil {
		return err
	}
	reportMoved(cmd, moved)
	return nil
}

func runCategoryReorder(cmd *cobra.Command, args []string) error {
	index, err := strconv.Atoi(args[1])
	if err != nil {
		return domain.WrapError(domain.ErrCodeValidation, "index must be a number", err)
	}
	moved, err := svc.Categories.ReorderByDrag(cmd.Context(), args[0], index)
	if err != nil {
		return err
	}
	reportMoved(cmd, moved)
	return nil
}

func runCategoryDelete(cmd *cobra.Command, args []string) error {
	return svc.Categories.Delete(cmd.Context(), args[0])
}

func reportMoved(cmd *cobra.Command, moved bool) {
	if !moved {
		out(cmd, "unchanged\n")
		return
	}
	out(cmd, "moved\n")
}
