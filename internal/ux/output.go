package ux

import (
	"fmt"
	"io"
	"os"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Out receives all console output.
var Out io.Writer = os.Stdout

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// StageHeader prints a timestamped stage header.
func StageHeader(index, total int, name, description string) {
	fmt.Fprintf(Out, "\n%s[%s]%s %s══════════════════════════════════════%s\n",
		Dim, timestamp(), Reset, Cyan, Reset)
	desc := ""
	if description != "" {
		desc = fmt.Sprintf(" — %s", description)
	}
	fmt.Fprintf(Out, "%s[%s]%s  %sStage %d/%d: %s%s%s\n",
		Dim, timestamp(), Reset, Bold, index+1, total, name, desc, Reset)
	fmt.Fprintf(Out, "%s[%s]%s %s══════════════════════════════════════%s\n",
		Dim, timestamp(), Reset, Cyan, Reset)
}

// StageComplete prints a stage completion message.
func StageComplete(index int, duration time.Duration) {
	m := int(duration.Minutes())
	s := int(duration.Seconds()) % 60
	fmt.Fprintf(Out, "%s[%s]%s  %s✓ Stage %d complete (%dm %02ds)%s\n",
		Dim, timestamp(), Reset, Green, index+1, m, s, Reset)
}

// StageFail prints a stage failure message.
func StageFail(index int, name, errMsg string) {
	fmt.Fprintf(Out, "%s[%s]%s  %s✗ Stage %d (%s) failed: %s%s\n",
		Dim, timestamp(), Reset, Red, index+1, name, errMsg, Reset)
}

// Warn prints a highlighted warning line.
func Warn(format string, args ...any) {
	fmt.Fprintf(Out, "  %s⚠ %s%s\n", Yellow, fmt.Sprintf(format, args...), Reset)
}

// Info prints an indented informational line.
func Info(format string, args ...any) {
	fmt.Fprintf(Out, "  %s\n", fmt.Sprintf(format, args...))
}

// RerunHint tells the user that a rerun reuses cached responses.
func RerunHint(cacheEnabled bool) {
	if cacheEnabled {
		fmt.Fprintf(Out, "\n%sRerun:%s completed model calls are cached and will not be repeated\n", Yellow, Reset)
		return
	}
	fmt.Fprintf(Out, "\n%sRerun:%s enable the cache (useCache: true) to avoid repeating model calls\n", Yellow, Reset)
}

// Success prints a final success message.
func Success(total int, outputDir string) {
	fmt.Fprintf(Out, "\n%s[%s]%s  %s%s══ All %d stages complete ══%s\n",
		Dim, timestamp(), Reset, Bold, Green, total, Reset)
	if outputDir != "" {
		fmt.Fprintf(Out, "  Tutorial written to %s\n\n", outputDir)
	}
}
