package parser

import "testing"

const pairDoc = "Here is the change:\n\n" +
	"```go\nfunc a() {}\n```\n\n" +
	"becomes\n\n" +
	"```go\nfunc a() int { return 0 }\n```\n"

func TestExtractPair(t *testing.T) {
	orig, mod, err := ExtractPair(pairDoc)
	if err != nil {
		t.Fatal(err)
	}
	if orig.Lang != "go" || orig.Content != "func a() {}\n" {
		t.Errorf("original = %+v", orig)
	}
	if mod.Lang != "go" || mod.Content != "func a() int { return 0 }\n" {
		t.Errorf("modified = %+v", mod)
	}
}

func TestExtractPairIgnoresExtraBlocks(t *testing.T) {
	doc := pairDoc + "\nand also\n\n```\nleftover\n```\n"
	orig, mod, err := ExtractPair(doc)
	if err != nil {
		t.Fatal(err)
	}
	if orig.Content != "func a() {}\n" || mod.Content != "func a() int { return 0 }\n" {
		t.Errorf("orig = %+v, mod = %+v", orig, mod)
	}
}

func TestExtractPairTooFewBlocks(t *testing.T) {
	if _, _, err := ExtractPair("```go\nonly one\n```\n"); err == nil {
		t.Error("one block should be an error")
	}
	if _, _, err := ExtractPair("no code here"); err == nil {
		t.Error("zero blocks should be an error")
	}
}

func TestExtractCodeBlocks(t *testing.T) {
	blocks, err := ExtractCodeBlocks([]byte("```python\nx = 1\ny = 2\n```\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks", len(blocks))
	}
	if blocks[0].Lang != "python" {
		t.Errorf("lang = %q", blocks[0].Lang)
	}
	if blocks[0].Content != "x = 1\ny = 2\n" {
		t.Errorf("content = %q", blocks[0].Content)
	}
}

func TestExtractCodeBlocksNoFence(t *testing.T) {
	blocks, err := ExtractCodeBlocks([]byte("plain prose\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(blocks) != 0 {
		t.Errorf("got %d blocks, want 0", len(blocks))
	}
}
