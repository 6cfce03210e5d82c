package ux

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jorge-barreto/code2tutorial/internal/state"
)

func TestRenderStatus_Failed(t *testing.T) {
	var buf bytes.Buffer
	old := Out
	Out = &buf
	defer func() { Out = old }()

	st := state.NewRun("Demo")
	st.Enter(1, "identify")
	st.Fail(errors.New("rate limited"))
	tm := state.NewTiming(st.RunID)
	tm.AddStart("fetch")
	tm.AddEnd("fetch")

	RenderStatus(st, tm, []string{"fetch", "identify", "analyze"})
	out := buf.String()
	for _, want := range []string{st.RunID, "Demo", "rate limited", "fetch", "(0m 00s)", "pending"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRenderStatus_NoRuns(t *testing.T) {
	var buf bytes.Buffer
	old := Out
	Out = &buf
	defer func() { Out = old }()

	RenderStatus(&state.State{}, nil, nil)
	if !strings.Contains(buf.String(), "No runs recorded yet.") {
		t.Fatalf("got %q", buf.String())
	}
}
