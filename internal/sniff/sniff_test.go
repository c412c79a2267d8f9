package sniff

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", TagPlaintext},
		{"whitespace only", "  \n\t\n", TagPlaintext},
		{"prose", "just some ordinary sentences.\nnothing special here.", TagPlaintext},

		{"es import", "import React from 'react'\n\nconsole.log(React)", TagJavaScript},
		{"arrow function", "const add = (a, b) => a + b", TagJavaScript},
		{"commonjs require", "const fs = require('fs')", TagJavaScript},
		{"react hook", "const [n, setN] = useState(0)", TagJavaScript},

		{"typed parameter", "function greet(name: string) {\n  return name\n}", TagTypeScript},
		{"interface", "interface Point {\n  x: number\n}", TagTypeScript},

		{"php open tag", "<?php echo $x; ?>", TagPHP},
		{"arrow operator", "$user->save();", TagPHP},
		{"blade template", "@extends('layout')\n@section('content')", TagPHP},

		{"doctype", "<!DOCTYPE html>\n<html></html>", TagHTML},
		{"plain markup", "<div>\n  <p>hi</p>\n</div>", TagHTML},

		{"object", "{\"a\": 1, \"b\": [2, 3]}", TagJSON},
		{"array", "[1, 2, 3]", TagJSON},

		{"declaration block", "body {\n  color: red;\n  margin: 0;\n}", TagCSS},

		{"select", "SELECT id FROM users WHERE id = 1", TagSQL},
		{"lowercase insert", "insert into t values (1)", TagSQL},
		{"ddl", "-- schema\nCREATE TABLE t (id INT)", TagSQL},

		{"def", "def main():\n    pass", TagPython},
		{"bare import", "import os\n\nprint(os.getcwd())", TagPython},
		{"class", "class Foo:\n    pass", TagPython},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.content); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}

// The cascade is ordered; inputs matching several rules take the first one.
func TestDetectPriority(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		// Arrow function beats the markup rule even with tags around.
		{"jsx", "export const C = () => <div>hi</div>", TagJavaScript},
		// Typed code with an arrow is still the script family's first rule.
		{"typed arrow", "const f = (s: string) => s", TagJavaScript},
		// Mustache braces classify as a server template before markup.
		{"template markup", "<p>{{ title }}</p>", TagPHP},
		// A brace-wrapped declaration list is structured data first.
		{"braced css", "{ color: red; }", TagJSON},
		// Python-style import quoted from a module path stays script.
		{"quoted import", "import x from 'mod'\nexport default x", TagJavaScript},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.content); got != tt.want {
				t.Errorf("Detect(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
