package ux

import (
	"fmt"

	"github.com/jorge-barreto/code2tutorial/internal/state"
)

// RenderStatus prints the last run's record against the ordered stage names.
func RenderStatus(st *state.State, timing *state.Timing, stages []string) {
	if st.RunID == "" {
		fmt.Fprintf(Out, "No runs recorded yet.\n")
		return
	}
	fmt.Fprintf(Out, "%sRun:%s     %s\n", Bold, Reset, st.RunID)
	fmt.Fprintf(Out, "%sProject:%s %s\n", Bold, Reset, st.Project)
	fmt.Fprintf(Out, "%sStarted:%s %s\n", Bold, Reset, st.StartedAt.Format("2006-01-02 15:04:05"))

	color := Yellow
	switch st.Status {
	case state.StatusCompleted:
		color = Green
	case state.StatusFailed:
		color = Red
	}
	fmt.Fprintf(Out, "%sStatus:%s  %s%s%s%s\n", Bold, Reset, color, Bold, st.Status, Reset)
	if st.Error != "" {
		fmt.Fprintf(Out, "%sError:%s   %s\n", Bold, Reset, st.Error)
	}

	fmt.Fprintf(Out, "\n%sStages:%s\n", Bold, Reset)
	for i, name := range stages {
		dur := ""
		if timing != nil {
			if d := timing.Lookup(name); d != "" {
				dur = fmt.Sprintf("(%s)", d)
			}
		}
		switch {
		case st.Status == state.StatusCompleted || i < st.StageIndex:
			fmt.Fprintf(Out, "  %s%d%s  %-10s %sdone%s  %s\n", Dim, i+1, Reset, name, Green, Reset, dur)
		case i == st.StageIndex:
			fmt.Fprintf(Out, "  %s→%s %s%d%s %-10s %s%s%s\n", Yellow, Reset, Dim, i+1, Reset, name, color, st.Status, Reset)
		default:
			fmt.Fprintf(Out, "  %s%d%s  %-10s %spending%s\n", Dim, i+1, Reset, name, Dim, Reset)
		}
	}
	fmt.Fprintln(Out)
}
