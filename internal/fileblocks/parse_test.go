package fileblocks

import (
	"testing"
)

func TestParse_SingleBlock(t *testing.T) {
	input := "```yaml\n- name: test\n  file_indices: []\n```\n"
	blocks := Parse(input)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Lang != "yaml" {
		t.Fatalf("expected lang yaml, got %q", blocks[0].Lang)
	}
	if blocks[0].Content != "- name: test\n  file_indices: []" {
		t.Fatalf("unexpected content: %q", blocks[0].Content)
	}
}

func TestParse_MultipleBlocks(t *testing.T) {
	input := `Here is my reasoning

` + "```text" + `
scratch
` + "```" + `

And the answer

` + "```JSON" + `
{"summary": "x"}
` + "```" + `
`
	blocks := Parse(input)
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if blocks[0].Lang != "text" {
		t.Fatalf("block 0: expected lang text, got %q", blocks[0].Lang)
	}
	if blocks[1].Lang != "json" {
		t.Fatalf("block 1: expected lang json, got %q", blocks[1].Lang)
	}
}

func TestParse_NoLanguageTag(t *testing.T) {
	input := "```\n[1, 2]\n```\n"
	blocks := Parse(input)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Lang != "" {
		t.Fatalf("expected empty lang, got %q", blocks[0].Lang)
	}
}

func TestParse_EmptyContent(t *testing.T) {
	input := "```yaml\n```\n"
	blocks := Parse(input)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].Content != "" {
		t.Fatalf("expected empty content, got %q", blocks[0].Content)
	}
}

func TestParse_UnclosedBlock_Dropped(t *testing.T) {
	input := "```yaml\nname: test\n"
	blocks := Parse(input)
	if len(blocks) != 0 {
		t.Fatalf("expected 0 blocks for unclosed fence, got %d", len(blocks))
	}
}

func TestPayload_PrefersJSON(t *testing.T) {
	input := "```yaml\n- a\n```\n\n```json\n[\"b\"]\n```\n"
	if got := Payload(input); got != `["b"]` {
		t.Fatalf("got %q", got)
	}
}

func TestPayload_FallsBackToFirstBlock(t *testing.T) {
	input := "intro\n```yaml\n- 2 # Foo\n- 0 # Bar\n```\n```\nlater\n```\n"
	if got := Payload(input); got != "- 2 # Foo\n- 0 # Bar" {
		t.Fatalf("got %q", got)
	}
}

func TestPayload_RawText(t *testing.T) {
	if got := Payload("  {\"summary\": \"s\"}\n"); got != `{"summary": "s"}` {
		t.Fatalf("got %q", got)
	}
}
