// Package indices holds the index parsing, range, duplicate and coverage
// checks shared by the stages that cross-reference files and abstractions.
package indices

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

// Parse reads an index from a decoded model value. Numbers are taken as-is;
// strings may carry a trailing comment ("3 # path/to/file.go"). Like the
// prompts' examples, only the leading integer of the string is significant.
func Parse(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		if x < math.MinInt || x > math.MaxInt {
			return 0, fmt.Errorf("index out of range: %d", x)
		}
		return int(x), nil
	case uint64:
		if x > math.MaxInt {
			return 0, fmt.Errorf("index out of range: %d", x)
		}
		return int(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("could not parse index from %v", v)
		}
		if x < math.MinInt || x >= math.MaxInt {
			return 0, fmt.Errorf("index out of range: %v", x)
		}
		return int(x), nil
	case string:
		return parseString(x)
	default:
		return parseString(fmt.Sprint(v))
	}
}

// leadingInt matches the optional sign and digits an index string starts with.
var leadingInt = regexp.MustCompile(`^[+-]?[0-9]+`)

func parseString(s string) (int, error) {
	head := s
	if i := strings.Index(s, "#"); i >= 0 {
		head = s[:i]
	}
	m := leadingInt.FindString(strings.TrimSpace(head))
	if m == "" {
		return 0, fmt.Errorf("could not parse index from string: %s", s)
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("could not parse index from string: %s: %w", s, err)
	}
	return n, nil
}

// CheckRange fails when idx is outside [0, n).
func CheckRange(idx, n int, where string) error {
	if idx < 0 || idx >= n {
		return tutorial.Contractf("Invalid index %d in %s. Max index is %d.", idx, where, n-1)
	}
	return nil
}

// CheckDuplicates fails on the first repeated entry.
func CheckDuplicates(items []int, where string) error {
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		if seen[it] {
			return tutorial.Contractf("Duplicate item %d found in %s.", it, where)
		}
		seen[it] = true
	}
	return nil
}

// Dedupe drops repeated entries, keeping first-seen order.
func Dedupe(items []int) []int {
	seen := make(map[int]bool, len(items))
	out := make([]int, 0, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}

// Backfill appends every index of [0, n) missing from order, ascending, and
// reports which ones were added.
func Backfill(order []int, n int) (full, missing []int) {
	present := make(map[int]bool, len(order))
	for _, idx := range order {
		present[idx] = true
	}
	full = append(full, order...)
	for i := 0; i < n; i++ {
		if !present[i] {
			missing = append(missing, i)
		}
	}
	full = append(full, missing...)
	return full, missing
}

// Uncovered returns the indices in [0, n) that appear in no edge.
func Uncovered(edges []tutorial.Relationship, n int) []int {
	seen := make(map[int]bool, n)
	for _, e := range edges {
		seen[e.From] = true
		seen[e.To] = true
	}
	var out []int
	for i := 0; i < n; i++ {
		if !seen[i] {
			out = append(out, i)
		}
	}
	return out
}
