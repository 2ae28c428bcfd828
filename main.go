package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jadenpxrk/tally/internal/analyzer"
	"github.com/jadenpxrk/tally/internal/export"
	"github.com/jadenpxrk/tally/internal/report"
	"github.com/jadenpxrk/tally/internal/tokens"
)

// Build information, set via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "tally [PATH]",
	Short: "Tally measures a codebase by file type, size and lines.",
	Long: `Tally walks a directory, a single file, or a cloned Git repository and
reports file counts, sizes, and code/comment/blank line totals per file type.
Results can be exported as JSON, CSV, plain text or PDF.`,
	Version:       version,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runAnalyze,
}

func init() {
	cobra.OnInitialize(initConfig)
	setDefaults(viper.GetViper())

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tally/config.toml)")
	pf.BoolP("verbose", "v", false, "Log skipped entries and progress")
	pf.Bool("progress", false, "Report progress while analyzing")

	// Walk
	pf.StringSlice("ignore", nil, "Additional ignore patterns (repeatable or comma-separated)")
	pf.StringSlice("include", nil, "Only analyze files matching these globs, e.g. '**/*.go'")
	pf.Int("max-depth", analyzer.Unlimited, "Maximum directory depth to analyze (-1 for no limit)")
	pf.Int64("max-file-size", analyzer.DefaultMaxFileSize/bytesPerMB, "Maximum file size in MB")
	pf.BoolP("hidden", "H", false, "Include hidden files and directories")
	pf.Bool("follow-symlinks", false, "Follow symbolic links")
	pf.Bool("no-ignore", false, "Don't respect the root .gitignore")
	pf.Int("top", analyzer.DefaultTopN, "Number of largest files to track")
	pf.String("languages", "", "languages.yml with extra file type definitions")

	// Token counting
	pf.Bool("tokens", false, "Count LLM tokens per file")
	pf.String("tokenizer", tokens.Tiktoken, "Tokenizer to use: tiktoken or huggingface")
	pf.String("model", "", "Model name for the tokenizer (e.g. gpt-4o, gpt2)")
	pf.String("tokenizer-file", "", "Path to a local tokenizer.json")

	bindFlags(pf, "verbose", "ignore", "include", "max-depth", "max-file-size", "hidden",
		"follow-symlinks", "no-ignore", "top", "languages", "tokens", "tokenizer", "model", "tokenizer-file")
	_ = viper.BindPFlag("show_progress", pf.Lookup("progress"))

	f := rootCmd.Flags()
	f.Bool("detailed", false, "Include largest files and per-type line metrics")
	f.String("export", "", "Export results: json, csv, txt or pdf")
	f.StringP("output", "o", "", "Export file path (default is tally_<project>_<timestamp>.<ext>)")
	f.StringP("file", "f", "", "Save the report to a file instead of printing it")
	f.BoolP("clipboard", "c", false, "Copy the report to the clipboard")
	f.Bool("interactive", false, "Pick the directory to analyze with a fuzzy finder")
	bindFlags(f, "detailed", "export", "output", "file", "clipboard", "interactive")

	rootCmd.AddCommand(statsCmd, structureCmd, exportCmd, configCmd, versionCmd)
}

// bindFlags binds each flag to the viper key with dashes replaced by underscores.
func bindFlags(fs *pflag.FlagSet, names ...string) {
	for _, name := range names {
		_ = viper.BindPFlag(strings.ReplaceAll(name, "-", "_"), fs.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if dir := configDir(); dir != "" {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("TALLY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			logger.LogErr(err, "error reading config file")
		}
		return
	}
	if verbose() {
		logger.Info("Using config file", "file", viper.ConfigFileUsed())
	}
}

func verbose() bool {
	return viper.GetBool("verbose")
}

func logSkip(path string, err error) {
	if verbose() {
		logger.Debug("Skipped entry", "path", path, "error", err.Error())
	}
}

// progressInterval is how many files pass between progress log lines.
const progressInterval = 100

// logProgress logs every progressInterval files, and every file in verbose mode.
func logProgress(p analyzer.Progress) {
	if verbose() {
		logger.Debug("Analyzed file", "path", p.Current, "processed", p.Processed)
	}
	if p.Processed%progressInterval == 0 {
		logger.Info("Analyzing", "files", p.Processed, "elapsed", p.Elapsed.Round(time.Millisecond).String())
	}
}

// resolveTarget maps the PATH argument to a local directory or file. Git URLs
// are cloned; cleanup removes the clone. An empty path means the user aborted
// the interactive picker.
func resolveTarget(ctx context.Context, args []string) (path string, cleanup func(), err error) {
	cleanup = func() {}
	path = "."
	if len(args) > 0 {
		path = args[0]
	}

	if isGitURL(path) {
		var progress io.Writer
		if verbose() {
			progress = os.Stderr
		}
		dir, err := cloneGitRepo(ctx, path, progress)
		if err != nil {
			return "", cleanup, err
		}
		cleanup = func() { _ = os.RemoveAll(dir) }
		path = dir
	}

	if viper.GetBool("interactive") {
		cfg, err := analysisConfig(viper.GetViper())
		if err != nil {
			return "", cleanup, err
		}
		picked, err := pickDirectory(path, cfg)
		if err != nil {
			return "", cleanup, err
		}
		if picked == "" {
			logger.Info("Interactive selection aborted")
		}
		path = picked
	}
	return path, cleanup, nil
}

// analyze runs one analysis of root with the effective configuration.
func analyze(ctx context.Context, root string) (*analyzer.Result, error) {
	cfg, err := analysisConfig(viper.GetViper())
	if err != nil {
		return nil, err
	}
	registry, err := newRegistry(viper.GetString("languages"))
	if err != nil {
		return nil, err
	}

	opts := []analyzer.Option{analyzer.WithSkipHandler(logSkip)}
	if viper.GetBool("show_progress") {
		opts = append(opts, analyzer.WithProgress(logProgress))
	}
	if viper.GetBool("tokens") {
		counter, err := tokens.Load(tokens.Options{
			Kind:  viper.GetString("tokenizer"),
			Model: viper.GetString("model"),
			File:  viper.GetString("tokenizer_file"),
		})
		if err != nil {
			logger.LogErr(err, "token counting disabled")
		} else {
			opts = append(opts, analyzer.WithTokenCounter(counter))
		}
	}

	a, err := analyzer.New(cfg, registry, opts...)
	if err != nil {
		return nil, err
	}
	if verbose() {
		logger.Info("Starting analysis", "path", root)
	}
	res, err := a.Analyze(ctx, root)
	if err != nil {
		return nil, serr.Wrap(err, "analysis failed")
	}
	if verbose() {
		logger.Info("Analysis complete", "files", res.Stats.TotalFiles, "duration", res.Duration.String())
	}
	return res, nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	target, cleanup, err := resolveTarget(ctx, args)
	defer cleanup()
	if err != nil || target == "" {
		return err
	}

	res, err := analyze(ctx, target)
	if err != nil {
		return err
	}

	detailed := viper.GetBool("detailed")
	dest := destination{File: viper.GetString("file"), Clipboard: viper.GetBool("clipboard")}

	var text string
	if dest.File != "" || dest.Clipboard {
		text = report.Text(res, detailed)
	} else {
		var buf bytes.Buffer
		renderConsole(&buf, res, detailed)
		text = buf.String()
	}
	if err := deliver(cmd.OutOrStdout(), text, dest); err != nil {
		return err
	}

	if format := viper.GetString("export"); format != "" {
		return exportResult(res, format, viper.GetString("output"))
	}
	return nil
}

// renderConsole writes the tabular report shown on a terminal.
func renderConsole(w io.Writer, res *analyzer.Result, detailed bool) {
	fmt.Fprintf(w, "\n=== Codebase Analysis (%s) ===\n", res.ProjectPath)
	report.Summary(w, res)

	fmt.Fprintln(w, "\n=== File Types ===")
	report.Breakdown(w, res)

	fmt.Fprintln(w, "\n=== Project Structure ===")
	fmt.Fprint(w, report.Tree(res, 3))

	if detailed {
		fmt.Fprintln(w, "\n=== Largest Files ===")
		report.Largest(w, res, 10)

		fmt.Fprintln(w, "\n=== Detailed Metrics ===")
		report.Detailed(w, res)
	}
}

// exportResult writes res in format to path, or to a generated name in the
// working directory when path is empty.
func exportResult(res *analyzer.Result, format, path string) error {
	exporter, err := export.Default().Lookup(format)
	if err != nil {
		return err
	}
	if path == "" {
		path = export.DefaultFilename(res, exporter.Extension(), time.Now())
	}
	if err := exporter.Export(res, path); err != nil {
		return serr.Wrap(err, "export failed")
	}
	logger.Info("Results exported", "format", exporter.Extension(), "path", path)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.LogErr(err, "tally failed")
		stop()
		os.Exit(1)
	}
}
