package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sokinpui/dpane/cli"
	"github.com/sokinpui/dpane/dpane"
	"github.com/sokinpui/dpane/internal/tui"
	"github.com/sokinpui/dpane/internal/ui"
)

func main() {
	cfg, err := cli.ParseFlags()
	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}

	app, err := dpane.New(cfg)
	if err != nil {
		ui.Error("%v", err)
		os.Exit(1)
	}
	defer app.Close()

	if err := run(app, cfg); err != nil {
		var detailed *dpane.DetailedError
		if errors.As(err, &detailed) {
			ui.Error("%v", detailed)
			fmt.Fprintf(os.Stderr, "%s\n", detailed.Stack)
		} else {
			ui.Error("%v", err)
		}
		os.Exit(1)
	}
}

func run(app *dpane.App, cfg *cli.Config) error {
	switch {
	case cfg.Detect:
		tag, err := app.Detect()
		if err != nil {
			return err
		}
		fmt.Println(tag)
		return nil

	case cfg.Summary:
		c, err := app.Load(nil)
		if err != nil {
			return err
		}
		defer c.Session.Close()
		ui.PrintSummary(app.Summary(c))
		ui.PrintChanges(c.Session.Changes())
		return nil

	case cfg.Nvim:
		return app.RunNvim()

	default:
		c, err := app.Load(nil)
		if err != nil {
			return err
		}
		defer c.Session.Close()
		p := tea.NewProgram(tui.New(c.Session, app.Theme()), tea.WithAltScreen())
		_, err = p.Run()
		return err
	}
}
