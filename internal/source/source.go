package source

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"
)

// Provider determines and retrieves the texts to compare.
type Provider struct{}

// New creates a new Provider.
func New() *Provider {
	return &Provider{}
}

// ReadFiles loads the two documents to compare from disk.
func (p *Provider) ReadFiles(originalPath, modifiedPath string) (string, string, error) {
	original, err := os.ReadFile(originalPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", originalPath, err)
	}
	modified, err := os.ReadFile(modifiedPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", modifiedPath, err)
	}
	return string(original), string(modified), nil
}

// GetContent retrieves raw content from stdin (if piped) or the clipboard.
// The caller extracts the compare pair from it.
func (p *Provider) GetContent() (string, error) {
	stat, _ := os.Stdin.Stat()
	isPiped := (stat.Mode() & os.ModeCharDevice) == 0

	if isPiped {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read from stdin: %w", err)
		}
		return string(content), nil
	}

	content, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read from clipboard: %w", err)
	}
	if strings.TrimSpace(content) == "" {
		return "", nil
	}
	return content, nil
}
