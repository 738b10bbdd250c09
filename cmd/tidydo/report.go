package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/tidydo/domain"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the comprehensive report",
	Args:  cobra.NoArgs,
	RunE:  runReport,
}

var (
	reportDays   int
	reportFormat string
)

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().IntVar(&reportDays, "days", 30, "length of the completion trend")
	reportCmd.Flags().StringVarP(&reportFormat, "format", "f", "yaml", "yaml or json")
}

func runReport(cmd *cobra.Command, args []string) error {
	report, err := svc.Reports.Report(cmd.Context(), reportDays)
	if err != nil {
		return err
	}
	return encode(cmd.OutOrStdout(), reportFormat, report)
}

// encode writes v as indented json or yaml.
func encode(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		// Round-trip through json so yaml keys follow the json tags.
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	}
	return domain.NewError(domain.ErrCodeValidation, "unknown format "+format)
}
