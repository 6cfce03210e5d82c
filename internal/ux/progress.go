package ux

import (
	"fmt"
	"time"
)

// Progress reports completion of a fixed number of items with an ETA
// based on the average time per finished item.
type Progress struct {
	Label string
	Total int
	start time.Time
	done  int
	now   func() time.Time
}

func NewProgress(label string, total int) *Progress {
	return &Progress{Label: label, Total: total, start: time.Now(), now: time.Now}
}

// Step marks one more item done and prints the progress line.
func (p *Progress) Step() {
	p.done++
	fmt.Fprintf(Out, "  %s%s%s\n", Dim, p.Line(), Reset)
}

// Line renders "Label: k/N (p%) - ETA: Ns".
func (p *Progress) Line() string {
	pct := 0
	if p.Total > 0 {
		pct = p.done * 100 / p.Total
	}
	eta := 0
	if p.done > 0 {
		per := p.now().Sub(p.start) / time.Duration(p.done)
		eta = int((per * time.Duration(p.Total-p.done)).Round(time.Second).Seconds())
	}
	return fmt.Sprintf("%s: %d/%d (%d%%) - ETA: %ds", p.Label, p.done, p.Total, pct, eta)
}
