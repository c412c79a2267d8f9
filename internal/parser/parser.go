package parser

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// CodeBlock is one fenced code block taken from markdown input.
type CodeBlock struct {
	// Lang is the fence info string (e.g. "go", "js"). When present it
	// overrides content-based language sniffing for that pane.
	Lang string
	// Content is the raw text inside the block.
	Content string
}

// ExtractPair pulls the compare pair out of a markdown document: the first
// fenced code block is the original, the second the modified. Anything else
// in the document is ignored.
func ExtractPair(content string) (CodeBlock, CodeBlock, error) {
	blocks, err := ExtractCodeBlocks([]byte(content))
	if err != nil {
		return CodeBlock{}, CodeBlock{}, err
	}
	if len(blocks) < 2 {
		return CodeBlock{}, CodeBlock{}, fmt.Errorf("expected two fenced code blocks, found %d", len(blocks))
	}
	return blocks[0], blocks[1], nil
}

// ExtractCodeBlocks walks the markdown AST and collects all fenced code
// blocks in document order.
func ExtractCodeBlocks(source []byte) ([]CodeBlock, error) {
	var blocks []CodeBlock
	parser := goldmark.DefaultParser()
	root := parser.Parse(text.NewReader(source))

	walker := func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var block CodeBlock
		if fenced.Info != nil {
			block.Lang = string(fenced.Info.Text(source))
		}

		var content bytes.Buffer
		lines := fenced.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			content.Write(line.Value(source))
		}
		block.Content = content.String()

		blocks = append(blocks, block)
		return ast.WalkSkipChildren, nil
	}

	if err := ast.Walk(root, walker); err != nil {
		return nil, err
	}

	return blocks, nil
}
