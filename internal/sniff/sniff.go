// Package sniff guesses a syntax-highlighting language tag from raw text.
//
// The checks run as an ordered priority cascade and the first match wins.
// The order is deliberate: the categories overlap (code containing both
// braces and colons could look like CSS, JSON or an object literal), so
// reordering the rules changes results. Misclassifications are acceptable;
// hosts let the user override the tag.
package sniff

import "strings"

// Tags returned by Detect.
const (
	TagPlaintext  = "plaintext"
	TagJavaScript = "javascript"
	TagTypeScript = "typescript"
	TagPHP        = "php"
	TagHTML       = "html"
	TagJSON       = "json"
	TagCSS        = "css"
	TagSQL        = "sql"
	TagPython     = "python"
)

// Detect returns the best-guess language tag for content. It is total:
// empty or unrecognized input yields TagPlaintext.
func Detect(content string) string {
	text := strings.TrimSpace(content)
	if text == "" {
		return TagPlaintext
	}

	switch {
	case looksLikeScript(text):
		return TagJavaScript
	case looksLikeTypedScript(text):
		return TagTypeScript
	case looksLikeServerTemplate(text):
		return TagPHP
	case looksLikeMarkup(text):
		return TagHTML
	case looksLikeStructuredData(text):
		return TagJSON
	case looksLikeStylesheet(text):
		return TagCSS
	case looksLikeQuery(text):
		return TagSQL
	case looksLikeIndentedScript(text):
		return TagPython
	default:
		return TagPlaintext
	}
}

func looksLikeScript(text string) bool {
	return strings.Contains(text, "import ") && strings.Contains(text, " from ") ||
		strings.Contains(text, "export ") ||
		strings.Contains(text, "require(") ||
		strings.Contains(text, "=>") ||
		strings.Contains(text, "useState(") ||
		strings.Contains(text, "useEffect(") ||
		strings.Contains(text, ":class=")
}

func looksLikeTypedScript(text string) bool {
	return strings.Contains(text, ": string") ||
		strings.Contains(text, ": number") ||
		strings.Contains(text, ": boolean") ||
		strings.Contains(text, "interface ") ||
		strings.Contains(text, "<T>")
}

func looksLikeServerTemplate(text string) bool {
	return strings.Contains(text, "<?php") ||
		strings.Contains(text, "<?=") ||
		strings.Contains(text, "namespace App\\") ||
		strings.Contains(text, "use App\\") ||
		strings.Contains(text, "@extends(") ||
		strings.Contains(text, "@section(") ||
		strings.Contains(text, "->") ||
		strings.Contains(text, "{{") && strings.Contains(text, "}}")
}

func looksLikeMarkup(text string) bool {
	if strings.Contains(text, "<!DOCTYPE") || strings.Contains(text, "<!doctype") {
		return true
	}
	return strings.HasPrefix(text, "<") &&
		strings.Contains(text, "</") &&
		!strings.Contains(text, "=>")
}

func looksLikeStructuredData(text string) bool {
	return strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") ||
		strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]")
}

// looksLikeStylesheet wants a colon and a semicolon inside the first brace
// block, the shape of a CSS declaration list.
func looksLikeStylesheet(text string) bool {
	open := strings.Index(text, "{")
	if open == -1 {
		return false
	}
	closing := strings.Index(text[open:], "}")
	if closing == -1 {
		return false
	}
	block := text[open : open+closing]
	return strings.Contains(block, ":") && strings.Contains(block, ";")
}

func looksLikeQuery(text string) bool {
	upper := strings.ToUpper(text)
	return strings.HasPrefix(upper, "SELECT") ||
		strings.HasPrefix(upper, "INSERT") ||
		strings.HasPrefix(upper, "UPDATE") ||
		strings.HasPrefix(upper, "DELETE") ||
		strings.Contains(upper, "CREATE TABLE")
}

func looksLikeIndentedScript(text string) bool {
	if hasDefWithColon(text) {
		return true
	}
	if hasBareImport(text) {
		return true
	}
	return hasClassWithColon(text)
}

func hasDefWithColon(text string) bool {
	idx := strings.Index(text, "def ")
	if idx == -1 {
		return false
	}
	rest := text[idx:]
	if nl := strings.Index(rest, "\n"); nl != -1 {
		rest = rest[:nl]
	}
	return strings.HasSuffix(strings.TrimSpace(rest), ":")
}

// hasBareImport accepts "import os" style statements but rejects the
// script-family "import x from 'mod'" form, which quotes the module path.
func hasBareImport(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, "import ") {
			continue
		}
		if strings.Contains(line, "'") || strings.Contains(line, "\"") {
			continue
		}
		return true
	}
	return false
}

func hasClassWithColon(text string) bool {
	idx := strings.Index(text, "class ")
	if idx == -1 {
		return false
	}
	rest := text[idx:]
	if nl := strings.Index(rest, "\n"); nl != -1 {
		rest = rest[:nl]
	}
	return strings.HasSuffix(strings.TrimSpace(rest), ":")
}
