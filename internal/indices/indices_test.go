package indices

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{3, 3},
		{int64(7), 7},
		{float64(2), 2},
		{"4", 4},
		{"  5 # path/to/file.go", 5},
		{"0 # FoundationalConcept", 0},
		{"12abc", 12},
		{"-1", -1},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%v): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []any{"abc", "# 3", "", 2.5, nil} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%v): expected error", in)
		}
	}
}

func TestParse_Overflow(t *testing.T) {
	for _, in := range []any{
		"18446744073709551617 # Huge",
		"-99999999999999999999",
		uint64(math.MaxUint64),
		float64(1e300),
	} {
		if got, err := Parse(in); err == nil {
			t.Errorf("Parse(%v) = %d, expected error", in, got)
		}
	}
	_, err := Parse("18446744073709551617 # x")
	if !errors.Is(err, strconv.ErrRange) {
		t.Errorf("Parse error = %v, want strconv.ErrRange", err)
	}
}

func TestCheckRange(t *testing.T) {
	if err := CheckRange(2, 3, "x"); err != nil {
		t.Fatal(err)
	}
	err := CheckRange(5, 3, "relationship to index")
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, tutorial.ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
	if !strings.Contains(err.Error(), "Invalid index 5 in relationship to index. Max index is 2.") {
		t.Fatalf("got %v", err)
	}
	if err := CheckRange(-1, 3, "x"); err == nil {
		t.Fatal("expected error for negative index")
	}
}

func TestCheckDuplicates(t *testing.T) {
	if err := CheckDuplicates([]int{0, 1, 2}, "ordered list"); err != nil {
		t.Fatal(err)
	}
	err := CheckDuplicates([]int{0, 1, 2, 0}, "ordered list")
	if err == nil || !strings.Contains(err.Error(), "Duplicate item 0 found in ordered list.") {
		t.Fatalf("got %v", err)
	}
}

func TestDedupe(t *testing.T) {
	got := Dedupe([]int{3, 1, 3, 2, 1})
	if !reflect.DeepEqual(got, []int{3, 1, 2}) {
		t.Fatalf("got %v", got)
	}
}

func TestBackfill(t *testing.T) {
	full, missing := Backfill([]int{3, 0}, 5)
	if !reflect.DeepEqual(full, []int{3, 0, 1, 2, 4}) {
		t.Fatalf("full = %v", full)
	}
	if !reflect.DeepEqual(missing, []int{1, 2, 4}) {
		t.Fatalf("missing = %v", missing)
	}

	full, missing = Backfill([]int{1, 0}, 2)
	if !reflect.DeepEqual(full, []int{1, 0}) || len(missing) != 0 {
		t.Fatalf("full = %v, missing = %v", full, missing)
	}
}

func TestUncovered(t *testing.T) {
	edges := []tutorial.Relationship{{From: 0, To: 1}, {From: 1, To: 3}}
	got := Uncovered(edges, 5)
	if !reflect.DeepEqual(got, []int{2, 4}) {
		t.Fatalf("got %v", got)
	}
}
