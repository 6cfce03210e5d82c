package tutorial

import (
	"errors"
	"strings"
	"testing"
)

func TestSafeName(t *testing.T) {
	for in, want := range map[string]string{
		"Demo":  "Demo",
		"../x":  "___x",
		"a/b c": "a_b_c",
		"":      "",
	} {
		if got := SafeName(in); got != want {
			t.Errorf("SafeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestChapterFilename(t *testing.T) {
	tests := []struct {
		n    int
		name string
		want string
	}{
		{1, "query processing", "01_query_processing.md"},
		{12, "Flow-Engine (core)", "12_flow_engine__core_.md"},
		{3, "LLMCaller", "03_llmcaller.md"},
		{4, "café", "04_caf_.md"},
	}
	for _, tt := range tests {
		if got := ChapterFilename(tt.n, tt.name); got != tt.want {
			t.Errorf("ChapterFilename(%d, %q) = %q, want %q", tt.n, tt.name, got, tt.want)
		}
	}
}

func TestCapitalize(t *testing.T) {
	if got := Capitalize("node"); got != "Node" {
		t.Fatalf("got %q", got)
	}
	if got := Capitalize(""); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := Capitalize("émile"); got != "Émile" {
		t.Fatalf("got %q", got)
	}
}

func TestContentFor_SkipsOutOfRange(t *testing.T) {
	c := New(Settings{})
	c.Files = []FileEntry{{Path: "a.go", Content: "A"}, {Path: "b.go", Content: "B"}}

	got := c.ContentFor([]int{1, 5, -1, 0})
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
	if got[0].Label != "1 # b.go" || got[0].Content != "B" {
		t.Fatalf("first = %+v", got[0])
	}
	if got[1].Label != "0 # a.go" {
		t.Fatalf("second = %+v", got[1])
	}
}

func TestContractf(t *testing.T) {
	err := Contractf("summary is not a string")
	if !errors.Is(err, ErrContract) {
		t.Fatal("expected ErrContract")
	}
	if !strings.Contains(err.Error(), "summary is not a string") {
		t.Fatalf("got %v", err)
	}
}
