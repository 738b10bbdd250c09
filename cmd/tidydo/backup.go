package main

import (
	"encoding/json"
	"maps"
	"os"
	"slices"
	"time"

	"github.com/spf13/cobra"

	backupUC "github.com/fastygo/tidydo/usecase/backup"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export, import and schedule backups",
}

var backupExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a full backup document",
	Args:  cobra.NoArgs,
	RunE:  runBackupExport,
}

var backupExportOutput string

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a backup document",
	Long: `Import a backup document.

By default record collections are merged by id and existing data is kept.
Use --replace to overwrite stored values and --clear to wipe the store first.`,
	Args: cobra.ExactArgs(1),
	RunE: runBackupImport,
}

var (
	backupImportClear   bool
	backupImportReplace bool
)

var backupRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backup now",
	Args:  cobra.NoArgs,
	RunE:  runBackupRun,
}

var backupAutoCmd = &cobra.Command{
	Use:   "auto",
	Short: "Run the daily auto-backup check",
	Args:  cobra.NoArgs,
	RunE:  runBackupAuto,
}

var backupStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the auto-backup status",
	Args:  cobra.NoArgs,
	RunE:  runBackupStatus,
}

var backupStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show what the store holds",
	Args:  cobra.NoArgs,
	RunE:  runBackupStats,
}

var backupDirCmd = &cobra.Command{
	Use:   "dir <path>",
	Short: "Set the auto-backup directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupDir,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupExportCmd, backupImportCmd, backupRunCmd, backupAutoCmd,
		backupStatusCmd, backupStatsCmd, backupDirCmd)

	backupExportCmd.Flags().StringVarP(&backupExportOutput, "output", "o", "", "write to file instead of stdout")
	backupImportCmd.Flags().BoolVar(&backupImportClear, "clear", false, "clear the store before importing")
	backupImportCmd.Flags().BoolVar(&backupImportReplace, "replace", false, "replace values instead of merging records")
}

func runBackupExport(cmd *cobra.Command, args []string) error {
	doc, err := svc.Backups.Export(cmd.Context())
	if err != nil {
		return err
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if backupExportOutput == "" {
		out(cmd, "%s\n", payload)
		return nil
	}
	return os.WriteFile(backupExportOutput, payload, 0o644)
}

func runBackupImport(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	doc, err := backupUC.Decode(raw)
	if err != nil {
		return err
	}
	merge := !backupImportReplace
	res, err := svc.Backups.Import(cmd.Context(), doc, backupUC.ImportOptions{
		ClearExisting: backupImportClear,
		MergeData:     &merge,
	})
	if err != nil {
		return err
	}
	for _, key := range res.ImportedKeys {
		out(cmd, "imported %s\n", key)
	}
	return nil
}

func runBackupRun(cmd *cobra.Command, args []string) error {
	outcome, err := svc.Backups.ManualBackup(cmd.Context(), time.Now())
	if err != nil {
		return err
	}
	if backupUC.IsDownload(outcome) {
		_, err = cmd.OutOrStdout().Write(outcome.Data)
		return err
	}
	out(cmd, "%s\t%s\t%s\n", outcome.Method, outcome.Location, outcome.Size)
	return nil
}

func runBackupAuto(cmd *cobra.Command, args []string) error {
	res, err := svc.Backups.AutoBackup(cmd.Context(), time.Now())
	if err != nil {
		return err
	}
	if !res.Performed {
		out(cmd, "skipped: %s\n", res.Reason)
		return nil
	}
	out(cmd, "%s\t%s\t%s\n", res.Outcome.Method, res.Outcome.Location, res.Outcome.Size)
	return nil
}

func runBackupStatus(cmd *cobra.Command, args []string) error {
	status, err := svc.Backups.Status(cmd.Context(), time.Now())
	if err != nil {
		return err
	}
	return encode(cmd.OutOrStdout(), "yaml", status)
}

func runBackupStats(cmd *cobra.Command, args []string) error {
	stats, err := svc.Backups.Stats(cmd.Context())
	if err != nil {
		return err
	}
	out(cmd, "keys %d\nsize %s\n", stats.TotalKeys, stats.TotalSize)
	for _, key := range slices.Sorted(maps.Keys(stats.Details)) {
		d := stats.Details[key]
		out(cmd, "%s\t%s\t%d\t%s\n", key, d.Type, d.Count, d.Size)
	}
	return nil
}

func runBackupDir(cmd *cobra.Command, args []string) error {
	target, err := svc.Backups.SetBackupDirectory(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	out(cmd, "%s\n", target.Path)
	return nil
}
