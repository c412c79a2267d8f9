package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	OriginalPath string
	ModifiedPath string

	Nvim    bool
	Summary bool
	Detect  bool

	Language   string
	ConfigPath string
	LogFile    string
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	pflag.BoolVarP(&cfg.Nvim, "nvim", "n", false, "Open the compare panes in Neovim instead of the built-in TUI.")
	pflag.BoolVarP(&cfg.Summary, "summary", "s", false, "Print the change summary and exit without opening a view.")
	pflag.BoolVarP(&cfg.Detect, "detect", "d", false, "Print the detected language of the input and exit.")
	pflag.StringVarP(&cfg.Language, "lang", "l", "", "Force a language tag for both panes, skipping detection.")
	pflag.StringVar(&cfg.ConfigPath, "config", "", "Path to a config file (default: ~/.config/dpane/config.yaml).")
	pflag.StringVar(&cfg.LogFile, "log-file", "", "Append debug logs of the diff/merge cycle to this file.")

	pflag.Usage = func() {
		fmt.Println("Usage: dpane [flags] [original] [modified]")
		fmt.Println("\nCompare two files side by side and merge changes between them.")
		fmt.Println("Without file arguments, the pair is read from stdin (pipe) or the")
		fmt.Println("clipboard as a markdown document holding two fenced code blocks.")
		fmt.Println("\nExample: dpane old/main.go new/main.go")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if cfg.Nvim && cfg.Summary {
		return nil, fmt.Errorf("error: --nvim and --summary are mutually exclusive")
	}

	args := pflag.Args()
	switch len(args) {
	case 0:
	case 2:
		cfg.OriginalPath = args[0]
		cfg.ModifiedPath = args[1]
	case 1:
		if !cfg.Detect {
			return nil, fmt.Errorf("error: expected two file arguments, got one")
		}
		cfg.OriginalPath = args[0]
	default:
		return nil, fmt.Errorf("error: expected at most two file arguments, got %d", len(args))
	}

	return cfg, nil
}
