package runner

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jorge-barreto/code2tutorial/internal/state"
	"github.com/jorge-barreto/code2tutorial/internal/tutorial"
	"github.com/jorge-barreto/code2tutorial/internal/ux"
)

// mockStage records its lifecycle calls and appends its name to Order on
// commit so tests can see what ran.
type mockStage struct {
	name       string
	calls      *[]string
	prepareErr error
	execErr    error
	onExecute  func()
}

func (m mockStage) Name() string { return m.name }

func (m mockStage) Prepare(tc *tutorial.Context) (int, error) {
	*m.calls = append(*m.calls, m.name+".prepare")
	return len(tc.Order), m.prepareErr
}

func (m mockStage) Execute(ctx context.Context, in int) (string, error) {
	*m.calls = append(*m.calls, m.name+".execute")
	if m.onExecute != nil {
		m.onExecute()
	}
	return m.name, m.execErr
}

func (m mockStage) Commit(tc *tutorial.Context, in int, out string) {
	*m.calls = append(*m.calls, m.name+".commit")
	tc.Order = append(tc.Order, in)
}

func quiet(t *testing.T) {
	t.Helper()
	old := ux.Out
	ux.Out = &bytes.Buffer{}
	t.Cleanup(func() { ux.Out = old })
}

func newTestRunner(t *testing.T, steps ...Step) *Runner {
	t.Helper()
	quiet(t)
	return &Runner{
		Steps: steps,
		State: state.NewRun("Demo"),
		Dir:   filepath.Join(t.TempDir(), state.DirName),
	}
}

func TestRun_AllStagesSucceed(t *testing.T) {
	var calls []string
	r := newTestRunner(t,
		Bind[int, string](mockStage{name: "a", calls: &calls}),
		Bind[int, string](mockStage{name: "b", calls: &calls}),
		Bind[int, string](mockStage{name: "c", calls: &calls}),
	)
	tc := tutorial.New(tutorial.Settings{ProjectName: "Demo"})

	if err := r.Run(context.Background(), tc); err != nil {
		t.Fatal(err)
	}
	want := "a.prepare a.execute a.commit b.prepare b.execute b.commit c.prepare c.execute c.commit"
	if got := strings.Join(calls, " "); got != want {
		t.Fatalf("calls = %s", got)
	}
	// Each Prepare saw the previous commits.
	if len(tc.Order) != 3 || tc.Order[2] != 2 {
		t.Fatalf("order = %v", tc.Order)
	}
	if r.State.Status != state.StatusCompleted || r.State.StageIndex != 3 {
		t.Fatalf("state = %+v", r.State)
	}

	loaded, err := state.Load(r.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Status != state.StatusCompleted || loaded.RunID != r.State.RunID {
		t.Fatalf("saved state = %+v", loaded)
	}
	if _, err := os.Stat(filepath.Join(r.Dir, "timing.json")); err != nil {
		t.Fatalf("timing not flushed: %v", err)
	}
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	var calls []string
	boom := errors.New("boom")
	r := newTestRunner(t,
		Bind[int, string](mockStage{name: "a", calls: &calls}),
		Bind[int, string](mockStage{name: "b", calls: &calls, execErr: boom}),
		Bind[int, string](mockStage{name: "c", calls: &calls}),
	)
	tc := tutorial.New(tutorial.Settings{})

	err := r.Run(context.Background(), tc)
	var se *StageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StageError, got %v", err)
	}
	if se.Stage != "b" || se.Index != 1 || !errors.Is(err, boom) {
		t.Fatalf("stage error = %+v", se)
	}
	for _, c := range calls {
		if strings.HasPrefix(c, "c.") || c == "b.commit" {
			t.Fatalf("unexpected call %s in %v", c, calls)
		}
	}
	if len(tc.Order) != 1 {
		t.Fatalf("failed stage must not commit: %v", tc.Order)
	}

	loaded, _ := state.Load(r.Dir)
	if loaded.Status != state.StatusFailed || loaded.Stage != "b" || loaded.Error == "" {
		t.Fatalf("saved state = %+v", loaded)
	}
}

func TestRun_PrepareErrorSkipsExecute(t *testing.T) {
	var calls []string
	r := newTestRunner(t,
		Bind[int, string](mockStage{name: "a", calls: &calls, prepareErr: tutorial.ErrContract}),
	)
	err := r.Run(context.Background(), tutorial.New(tutorial.Settings{}))
	if !errors.Is(err, tutorial.ErrContract) {
		t.Fatalf("got %v", err)
	}
	if len(calls) != 1 || calls[0] != "a.prepare" {
		t.Fatalf("calls = %v", calls)
	}
}

func TestRun_CancelledBetweenStages(t *testing.T) {
	var calls []string
	ctx, cancel := context.WithCancel(context.Background())
	r := newTestRunner(t,
		Bind[int, string](mockStage{name: "a", calls: &calls, onExecute: cancel}),
		Bind[int, string](mockStage{name: "b", calls: &calls}),
	)
	err := r.Run(ctx, tutorial.New(tutorial.Settings{}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v", err)
	}
	if r.State.Status != state.StatusInterrupted {
		t.Fatalf("status = %q", r.State.Status)
	}
	for _, c := range calls {
		if strings.HasPrefix(c, "b.") {
			t.Fatalf("stage b should not run: %v", calls)
		}
	}
}

type describedStage struct{ mockStage }

func (describedStage) Description() string { return "Crawl source files" }

func TestDryRunPrint(t *testing.T) {
	var calls []string
	r := newTestRunner(t, Bind[int, string](describedStage{mockStage{name: "fetch", calls: &calls}}))
	var buf bytes.Buffer
	ux.Out = &buf

	r.DryRunPrint(tutorial.Settings{ProjectName: "Demo", Provider: "gemini", OutputFormat: "html"})
	out := buf.String()
	if !strings.Contains(out, "fetch") || !strings.Contains(out, "Crawl source files") || !strings.Contains(out, "gemini") {
		t.Fatalf("output = %q", out)
	}
	if len(calls) != 0 {
		t.Fatalf("dry run must not call stages: %v", calls)
	}
}
