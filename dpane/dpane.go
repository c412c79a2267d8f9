// Package dpane wires the compare engine together for the command and for
// library use: it loads the pair of texts, resolves their language tags,
// and builds the session the hosts drive.
package dpane

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/sokinpui/dpane/cli"
	"github.com/sokinpui/dpane/internal/config"
	"github.com/sokinpui/dpane/internal/decor"
	"github.com/sokinpui/dpane/internal/document"
	"github.com/sokinpui/dpane/internal/logger"
	"github.com/sokinpui/dpane/internal/nvim"
	"github.com/sokinpui/dpane/internal/parser"
	"github.com/sokinpui/dpane/internal/session"
	"github.com/sokinpui/dpane/internal/sniff"
	"github.com/sokinpui/dpane/internal/source"
	"github.com/sokinpui/dpane/model"
)

// App orchestrates the entire application logic.
type App struct {
	cfg     *cli.Config
	fileCfg config.Config
	log     *logger.Logger
	source  *source.Provider
}

// Compare is one loaded comparison: the live session plus the language tag
// resolved for each pane.
type Compare struct {
	Session      *session.Session
	OriginalLang string
	ModifiedLang string
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	fileCfg, err := loadConfig(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.Disabled()
	if cfg.LogFile != "" {
		log, err = logger.NewFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
	}

	return &App{
		cfg:     cfg,
		fileCfg: fileCfg,
		log:     log,
		source:  source.New(),
	}, nil
}

func loadConfig(cfg *cli.Config) (config.Config, error) {
	if cfg.ConfigPath != "" {
		return config.LoadFile(cfg.ConfigPath)
	}
	return config.Load()
}

// Close releases the app's resources.
func (a *App) Close() {
	a.log.Close()
}

// Theme returns the effective display theme.
func (a *App) Theme() config.Theme {
	return a.fileCfg.Theme
}

// Detect sniffs the language of a single input: the given file, or raw
// stdin/clipboard content.
func (a *App) Detect() (string, error) {
	if a.cfg.Language != "" {
		return a.cfg.Language, nil
	}

	var content string
	var err error
	if a.cfg.OriginalPath != "" {
		content, _, err = a.source.ReadFiles(a.cfg.OriginalPath, a.cfg.OriginalPath)
	} else {
		content, err = a.source.GetContent()
	}
	if err != nil {
		return "", err
	}
	return sniff.Detect(content), nil
}

// Load builds the comparison from the configured input. sink receives
// decoration updates; nil is valid for hosts that render markers directly
// from the session.
func (a *App) Load(sink decor.Sink) (c *Compare, err error) {
	// Centralized panic recovery to provide stack traces for unexpected
	// errors.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	originalText, modifiedText, origHint, modHint, err := a.loadPair()
	if err != nil {
		return nil, err
	}

	original := document.NewBuffer(originalText)
	modified := document.NewBuffer(modifiedText)

	c = &Compare{
		Session:      session.New(original, modified, sink, a.log),
		OriginalLang: a.resolveLang(origHint, originalText),
		ModifiedLang: a.resolveLang(modHint, modifiedText),
	}
	return c, nil
}

// loadPair reads the two texts plus any per-pane language hints from file
// arguments or from a markdown document on stdin/clipboard.
func (a *App) loadPair() (originalText, modifiedText, origHint, modHint string, err error) {
	if a.cfg.OriginalPath != "" && a.cfg.ModifiedPath != "" {
		originalText, modifiedText, err = a.source.ReadFiles(a.cfg.OriginalPath, a.cfg.ModifiedPath)
		return originalText, modifiedText, "", "", err
	}

	content, err := a.source.GetContent()
	if err != nil {
		return "", "", "", "", err
	}
	if strings.TrimSpace(content) == "" {
		return "", "", "", "", fmt.Errorf("source is empty, nothing to compare")
	}

	origBlock, modBlock, err := parser.ExtractPair(content)
	if err != nil {
		return "", "", "", "", err
	}
	return origBlock.Content, modBlock.Content, origBlock.Lang, modBlock.Lang, nil
}

// resolveLang picks a pane's language tag: explicit flag, then fence hint,
// then configured default, then content sniffing.
func (a *App) resolveLang(hint, content string) string {
	if a.cfg.Language != "" {
		return a.cfg.Language
	}
	if hint != "" {
		return hint
	}
	if a.fileCfg.DefaultLanguage != "" {
		return a.fileCfg.DefaultLanguage
	}
	return sniff.Detect(content)
}

// Summary condenses a comparison for the headless modes.
func (a *App) Summary(c *Compare) model.Summary {
	return model.Summary{
		Hunks:         len(c.Session.Changes()),
		MergesApplied: c.Session.Merges(),
		OriginalLang:  c.OriginalLang,
		ModifiedLang:  c.ModifiedLang,
	}
}

// RunNvim loads the comparison into Neovim panes and blocks until the user
// closes them.
func (a *App) RunNvim() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()

	manager, err := nvim.New(a.fileCfg.NvimAddress, a.fileCfg.Theme)
	if err != nil {
		return err
	}
	defer manager.Close()

	c, err := a.Load(manager)
	if err != nil {
		return err
	}
	defer c.Session.Close()

	if err := manager.OpenPanes(c.Session, c.OriginalLang, c.ModifiedLang); err != nil {
		return err
	}
	return manager.Run()
}
