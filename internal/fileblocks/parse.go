package fileblocks

import (
	"regexp"
	"strings"
)

// Block is one fenced code block found in model output.
type Block struct {
	Lang    string // info string, lower-cased; "" for a bare fence
	Content string // content between the fences
}

var fenceOpenRe = regexp.MustCompile("^```\\s*([A-Za-z0-9_+-]*)")

// Parse extracts fenced code blocks from text. It recognizes opening fences
// like:
//
//	```json
//	```yaml
//	```
//
// Returns closed blocks in order of appearance; an unterminated block is dropped.
func Parse(text string) []Block {
	lines := strings.Split(text, "\n")
	var blocks []Block
	var current *Block
	var buf strings.Builder

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if current != nil {
			// Inside a block: look for the closing fence
			if trimmed == "```" {
				current.Content = buf.String()
				blocks = append(blocks, *current)
				current = nil
				buf.Reset()
				continue
			}
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(line)
			continue
		}

		m := fenceOpenRe.FindStringSubmatch(trimmed)
		if m != nil {
			current = &Block{Lang: strings.ToLower(m[1])}
			buf.Reset()
		}
	}

	return blocks
}

// Payload picks the part of a model answer that should hold structured data:
// the first block tagged json, else the first fenced block of any kind, else
// the whole text. The result is trimmed.
func Payload(text string) string {
	blocks := Parse(text)
	for _, b := range blocks {
		if b.Lang == "json" {
			return strings.TrimSpace(b.Content)
		}
	}
	if len(blocks) > 0 {
		return strings.TrimSpace(blocks[0].Content)
	}
	return strings.TrimSpace(text)
}
