package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rohanthewiz/serr"
	"github.com/spf13/viper"

	"github.com/jadenpxrk/tally/internal/analyzer"
)

const bytesPerMB = 1024 * 1024

// configDir is where config.toml and languages.yml are looked up first.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "tally")
}

// setDefaults registers the defaults every viper key falls back to.
func setDefaults(v *viper.Viper) {
	v.SetDefault("ignore_patterns", analyzer.DefaultIgnorePatterns)
	v.SetDefault("max_depth", analyzer.Unlimited)
	v.SetDefault("max_file_size", analyzer.DefaultMaxFileSize/bytesPerMB)
	v.SetDefault("top", analyzer.DefaultTopN)
	v.SetDefault("hidden", false)
	v.SetDefault("follow_symlinks", false)
	v.SetDefault("no_ignore", false)
	v.SetDefault("tokens", false)
	v.SetDefault("tokenizer", "tiktoken")
	v.SetDefault("model", "")
	v.SetDefault("export", "")
	v.SetDefault("detailed", false)
	v.SetDefault("show_progress", false)
}

// analysisConfig resolves the analyzer configuration from v. Patterns given
// with --ignore are added to ignore_patterns, not substituted for them.
func analysisConfig(v *viper.Viper) (analyzer.Config, error) {
	cfg := analyzer.DefaultConfig()

	if v.IsSet("ignore_patterns") {
		cfg.IgnorePatterns = v.GetStringSlice("ignore_patterns")
	}
	cfg.IgnorePatterns = append(cfg.IgnorePatterns, splitPatterns(v.GetStringSlice("ignore"))...)
	cfg.IncludePatterns = splitPatterns(v.GetStringSlice("include"))
	cfg.RespectGitignore = !v.GetBool("no_ignore")

	cfg.MaxDepth = v.GetInt("max_depth")
	cfg.IncludeHidden = v.GetBool("hidden")
	cfg.FollowSymlinks = v.GetBool("follow_symlinks")
	cfg.MaxFileSize = v.GetInt64("max_file_size") * bytesPerMB
	cfg.TopN = v.GetInt("top")

	if v.IsSet("comment_patterns") {
		var overrides map[string]analyzer.CommentPattern
		if err := v.UnmarshalKey("comment_patterns", &overrides); err != nil {
			return cfg, serr.Wrap(err, "invalid comment_patterns")
		}
		mergePatterns(cfg.CommentPatterns, overrides)
	}
	if v.IsSet("text_extensions") {
		cfg.TextExtensions = v.GetStringSlice("text_extensions")
	}
	if v.IsSet("binary_extensions") {
		cfg.BinaryExtensions = v.GetStringSlice("binary_extensions")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, serr.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// mergePatterns applies overrides to base. Viper lowercases map keys, so an
// override replaces the built-in category whose name matches ignoring case.
func mergePatterns(base, overrides map[string]analyzer.CommentPattern) {
	for name, pattern := range overrides {
		target := name
		for existing := range base {
			if strings.EqualFold(existing, name) {
				target = existing
				break
			}
		}
		base[target] = pattern
	}
}

// splitPatterns flattens comma-separated flag values and drops empties.
func splitPatterns(values []string) []string {
	var out []string
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
