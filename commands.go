package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jadenpxrk/tally/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats [PATH]",
	Short: "Quick statistics overview",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, cleanup, err := resolveTarget(cmd.Context(), args)
		defer cleanup()
		if err != nil {
			return err
		}
		res, err := analyze(cmd.Context(), target)
		if err != nil {
			return err
		}
		report.Stats(cmd.OutOrStdout(), res)
		return nil
	},
}

var structureCmd = &cobra.Command{
	Use:   "structure [PATH]",
	Short: "Show the project structure as a tree",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		depth, err := cmd.Flags().GetInt("max-depth")
		if err != nil {
			return err
		}
		target, cleanup, err := resolveTarget(cmd.Context(), args)
		defer cleanup()
		if err != nil {
			return err
		}
		res, err := analyze(cmd.Context(), target)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), report.Tree(res, depth))
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [PATH]",
	Short: "Analyze and export the results without printing a report",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		output, _ := cmd.Flags().GetString("output")

		target, cleanup, err := resolveTarget(cmd.Context(), args)
		defer cleanup()
		if err != nil {
			return err
		}
		res, err := analyze(cmd.Context(), target)
		if err != nil {
			return err
		}
		return exportResult(res, format, output)
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [FILE]",
	Short: "Write the effective configuration to a file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		path := filepath.Join(configDir(), "config.toml")
		if len(args) > 0 {
			path = args[0]
		}
		if err := writeConfig(viper.GetViper(), path, force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(out, "# %s\n", used)
		}
		settings := viper.AllSettings()
		keys := make([]string, 0, len(settings))
		for k := range settings {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "%-18s = %v\n", k, settings[k])
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tally %s (commit: %s, go: %s)\n", version, commit, runtime.Version())
	},
}

func init() {
	structureCmd.Flags().Int("max-depth", 3, "Maximum depth to show")

	exportCmd.Flags().String("format", "json", "Export format: json, csv, txt or pdf")
	exportCmd.Flags().StringP("output", "o", "", "Output file path")

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd)
}

// writeConfig saves every setting known to v as TOML at path.
func writeConfig(v *viper.Viper, path string, force bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return serr.Wrap(err, "failed to create config directory")
	}
	if force {
		if err := v.WriteConfigAs(path); err != nil {
			return serr.Wrap(err, "failed to write config")
		}
		return nil
	}
	if err := v.SafeWriteConfigAs(path); err != nil {
		var exists viper.ConfigFileAlreadyExistsError
		if errors.As(err, &exists) {
			return serr.New("config file " + path + " already exists, use --force to overwrite")
		}
		return serr.Wrap(err, "failed to write config")
	}
	logger.Debug("Config written", "file", path)
	return nil
}
