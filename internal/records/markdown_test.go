package records

import (
	"strings"
	"testing"
)

func TestMarkdownLoader_NestedLists(t *testing.T) {
	input := `# Heading is ignored

Intro text is ignored.

- A
  - A1
  - A2
    - A2a
- B
`
	got, err := (&MarkdownLoader{}).Load(strings.NewReader(input), "tree.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkRecords(t, got, []want{
		{1, 0, "A"},
		{2, 1, "A1"},
		{3, 1, "A2"},
		{4, 3, "A2a"},
		{5, 0, "B"},
	})
}

func TestMarkdownLoader_InlineMarkup(t *testing.T) {
	input := "- **Bold** item with `code`\n- [link](http://example.com)\n"
	got, err := (&MarkdownLoader{}).Load(strings.NewReader(input), "tree.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkRecords(t, got, []want{
		{1, 0, "Bold item with code"},
		{2, 0, "link"},
	})
}

func TestMarkdownLoader_MultipleLists(t *testing.T) {
	input := "1. First\n2. Second\n\nText between.\n\n* Third\n"
	got, err := (&MarkdownLoader{}).Load(strings.NewReader(input), "tree.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	checkRecords(t, got, []want{
		{1, 0, "First"},
		{2, 0, "Second"},
		{3, 0, "Third"},
	})
}

func TestMarkdownLoader_EmptyInput(t *testing.T) {
	got, err := (&MarkdownLoader{}).Load(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected 0 records for empty input, got %d", len(got))
	}
}
