package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/sokinpui/dpane/model"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

// PrintSummary reports a session's results for the headless modes.
func PrintSummary(s model.Summary) {
	Header("--- Compare Summary ---")

	if s.Message != "" {
		Info("%s", s.Message)
	}
	Info("Languages: original=%s modified=%s", s.OriginalLang, s.ModifiedLang)

	if s.Hunks == 0 {
		Success("Documents are identical.")
		return
	}
	fmt.Printf("  %d change(s)\n", s.Hunks)
	if s.MergesApplied > 0 {
		Success("Applied %d merge(s).", s.MergesApplied)
	}
}

// PrintChanges lists the hunks for --summary mode.
func PrintChanges(changes []model.ChangeRecord) {
	for i, c := range changes {
		fmt.Printf("  #%d original %s, modified %s\n", i+1, formatRange(c.Original), formatRange(c.Modified))
	}
}

func formatRange(r model.LineRange) string {
	if !r.Present() {
		return "-"
	}
	start, end := r.Effective()
	if start == end {
		return fmt.Sprintf("line %d", start)
	}
	return fmt.Sprintf("lines %d-%d", start, end)
}
