package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fastygo/tidydo/domain"
	itemUC "github.com/fastygo/tidydo/usecase/item"
	"github.com/fastygo/tidydo/usecase/view"
)

var itemCmd = &cobra.Command{
	Use:     "item",
	Aliases: []string{"todo"},
	Short:   "Manage todo items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <category-id> <title>",
	Short: "Create an item and print its id",
	Args:  cobra.ExactArgs(2),
	RunE:  runItemAdd,
}

var (
	itemAddPriority    string
	itemAddStatus      string
	itemAddDue         string
	itemAddNumber      string
	itemAddDescription string
	itemAddTags        []string
)

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List visible items",
	Long: `List items the way the board shows them.

With --category only that category is listed; filter categories apply their
conditions. Archived items are hidden unless --archived is given.`,
	Args: cobra.NoArgs,
	RunE: runItemList,
}

var (
	itemListCategory string
	itemListArchived bool
	itemListSearch   string
	itemListSort     string
	itemListDesc     bool
)

var itemShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one item in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemShow,
}

var itemEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an item",
	Args:  cobra.ExactArgs(1),
	RunE:  runItemEdit,
}

var (
	itemEditTitle    string
	itemEditPriority string
	itemEditDue      string
	itemEditCategory string
)

var itemStatusCmd = &cobra.Command{
	Use:   "status <status> <id>...",
	Short: "Set the status of one or more items",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runItemStatus,
}

var itemArchiveCmd = &cobra.Command{
	Use:   "archive <id>...",
	Short: "Archive one or more items",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runItemArchive,
}

var itemArchiveRestore bool

var itemDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an item",
	Args:    cobra.ExactArgs(1),
	RunE:    runItemDelete,
}

var itemStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print item statistics",
	Args:  cobra.NoArgs,
	RunE:  runItemStats,
}

var itemExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export items as json, csv or yaml",
	Args:  cobra.NoArgs,
	RunE:  runItemExport,
}

var (
	itemExportCategory string
	itemExportFormat   string
	itemExportOutput   string
)

func init() {
	rootCmd.AddCommand(itemCmd)
	itemCmd.AddCommand(itemAddCmd, itemListCmd, itemShowCmd, itemEditCmd, itemStatusCmd,
		itemArchiveCmd, itemDeleteCmd, itemStatsCmd, itemExportCmd)

	itemAddCmd.Flags().StringVarP(&itemAddPriority, "priority", "p", "", "low, medium or high")
	itemAddCmd.Flags().StringVarP(&itemAddStatus, "status", "s", "", "initial status")
	itemAddCmd.Flags().StringVar(&itemAddDue, "due", "", "end date (YYYY-MM-DD)")
	itemAddCmd.Flags().StringVar(&itemAddNumber, "number", "", "custom number")
	itemAddCmd.Flags().StringVarP(&itemAddDescription, "description", "d", "", "description")
	itemAddCmd.Flags().StringSliceVar(&itemAddTags, "tag", nil, "tag (repeatable)")

	itemListCmd.Flags().StringVarP(&itemListCategory, "category", "c", "", "category id")
	itemListCmd.Flags().BoolVar(&itemListArchived, "archived", false, "include archived items")
	itemListCmd.Flags().StringVarP(&itemListSearch, "search", "q", "", "search text")
	itemListCmd.Flags().StringVar(&itemListSort, "sort", string(view.SortEndDate), "sort field")
	itemListCmd.Flags().BoolVar(&itemListDesc, "desc", false, "sort descending")

	itemEditCmd.Flags().StringVar(&itemEditTitle, "title", "", "new title")
	itemEditCmd.Flags().StringVarP(&itemEditPriority, "priority", "p", "", "new priority")
	itemEditCmd.Flags().StringVar(&itemEditDue, "due", "", "new end date (YYYY-MM-DD, \"none\" clears it)")
	itemEditCmd.Flags().StringVarP(&itemEditCategory, "category", "c", "", "move to category")

	itemArchiveCmd.Flags().BoolVar(&itemArchiveRestore, "restore", false, "unarchive instead")

	itemExportCmd.Flags().StringVarP(&itemExportCategory, "category", "c", "", "only this category")
	itemExportCmd.Flags().StringVarP(&itemExportFormat, "format", "f", "json", "json, csv or yaml")
	itemExportCmd.Flags().StringVarP(&itemExportOutput, "output", "o", "", "write to file instead of stdout")
}

func runItemAdd(cmd *cobra.Command, args []string) error {
	in := itemUC.CreateInput{
		CategoryID:   args[0],
		Title:        args[1],
		CustomNumber: itemAddNumber,
		Description:  itemAddDescription,
		Priority:     domain.Priority(itemAddPriority),
		Status:       domain.NormalizeStatus(itemAddStatus),
		Tags:         itemAddTags,
	}
	if itemAddDue != "" {
		due, err := domain.ParseDate(itemAddDue)
		if err != nil {
			return domain.WrapError(domain.ErrCodeValidation, "invalid --due date", err)
		}
		in.EndDate = due
	}
	created, err := svc.Items.Create(cmd.Context(), in)
	if err != nil {
		return err
	}
	out(cmd, "%s\n", created.ID)
	return nil
}

func runItemList(cmd *cobra.Command, args []string) error {
	field := view.SortField(itemListSort)
	if !field.Valid() {
		return domain.NewError(domain.ErrCodeValidation, "unknown sort field "+itemListSort)
	}
	sel := view.Default()
	sel.SortField = field
	if itemListDesc {
		sel.SortOrder = view.Desc
	}
	sel.ShowArchived = itemListArchived
	sel.SearchQuery = itemListSearch
	if itemListCategory != "" {
		sel.SelectCategory(itemListCategory)
	} else {
		sel.EnterViewAll()
	}

	state := svc.State.State()
	for _, it := range view.Derive(sel, state.Categories, state.Items) {
		flags := ""
		if it.Archived {
			flags = " [archived]"
		}
		out(cmd, "%s\t%s\t%s\t%s\t%s%s\n",
			itemUC.DisplayNumber(it), it.Status, it.Priority, it.EndDate, it.Title, flags)
	}
	return nil
}

func runItemShow(cmd *cobra.Command, args []string) error {
	d, err := svc.Items.Display(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	out(cmd, "%s\n", itemUC.FullInfo(d))
	return nil
}

func runItemEdit(cmd *cobra.Command, args []string) error {
	var patch itemUC.Patch
	flags := cmd.Flags()
	if flags.Changed("title") {
		patch.Title = &itemEditTitle
	}
	if flags.Changed("priority") {
		p := domain.Priority(itemEditPriority)
		patch.Priority = &p
	}
	if flags.Changed("category") {
		patch.CategoryID = &itemEditCategory
	}
	if flags.Changed("due") {
		var due domain.Date
		if itemEditDue != "none" {
			parsed, err := domain.ParseDate(itemEditDue)
			if err != nil {
				return domain.WrapError(domain.ErrCodeValidation, "invalid --due date", err)
			}
			due = parsed
		}
		patch.EndDate = itemUC.Value(due)
	}
	_, err := svc.Items.Update(cmd.Context(), args[0], patch)
	return err
}

func runItemStatus(cmd *cobra.Command, args []string) error {
	status := domain.NormalizeStatus(args[0])
	return printResults(cmd, svc.Items.BatchUpdateStatus(cmd.Context(), args[1:], status))
}

func runItemArchive(cmd *cobra.Command, args []string) error {
	return printResults(cmd, svc.Items.BatchArchive(cmd.Context(), args, !itemArchiveRestore))
}

func runItemDelete(cmd *cobra.Command, args []string) error {
	return svc.Items.Delete(cmd.Context(), args[0])
}

func runItemStats(cmd *cobra.Command, args []string) error {
	stats, err := svc.Items.Statistics(cmd.Context())
	if err != nil {
		return err
	}
	out(cmd, "total %d\ncompleted %d\npending %d\ninProgress %d\noverdue %d\narchived %d\ncompletionRate %d%%\n",
		stats.Total, stats.Completed, stats.Pending, stats.InProgress, stats.Overdue, stats.Archived, stats.CompletionRate)
	return nil
}

func runItemExport(cmd *cobra.Command, args []string) error {
	payload, err := svc.Items.Export(cmd.Context(), itemExportCategory, strings.ToLower(itemExportFormat))
	if err != nil {
		return err
	}
	if itemExportOutput == "" {
		_, err = cmd.OutOrStdout().Write(payload)
		return err
	}
	return os.WriteFile(itemExportOutput, payload, 0o644)
}

// printResults reports each batch entry and fails when any entry failed.
func printResults(cmd *cobra.Command, results []itemUC.Result) error {
	failed := 0
	for _, r := range results {
		if r.Success {
			out(cmd, "%s\tok\n", r.ID)
			continue
		}
		failed++
		out(cmd, "%s\t%s\n", r.ID, r.Error)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d items failed", failed, len(results))
	}
	return nil
}
