package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fastygo/tidydo/domain"
)

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Show and change the app configuration",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get [section]",
	Short: "Print the configuration or one section",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <section> <key=value>...",
	Short: "Change fields of one section",
	Long: `Change fields of one section.

Values are parsed as booleans or numbers when they look like one, otherwise kept as text.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default configuration",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd, settingsResetCmd)
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	doc, err := svc.Settings.Load(cmd.Context())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return encode(cmd.OutOrStdout(), "yaml", doc)
	}
	section, ok := doc[args[0]]
	if !ok {
		return domain.NewError(domain.ErrCodeNotFound, "unknown configuration section "+args[0])
	}
	return encode(cmd.OutOrStdout(), "yaml", section)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	patch := make(map[string]any, len(args)-1)
	for _, pair := range args[1:] {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return domain.NewError(domain.ErrCodeValidation, "expected key=value, got "+pair)
		}
		patch[key] = parseValue(value)
	}
	_, err := svc.Settings.Update(cmd.Context(), args[0], patch)
	return err
}

func runSettingsReset(cmd *cobra.Command, args []string) error {
	_, err := svc.Settings.Reset(cmd.Context())
	return err
}

func parseValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	return raw
}
