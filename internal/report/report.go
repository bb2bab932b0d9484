// Package report accumulates probe findings and derives the run
// verdict.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/webvet/webvet/internal/probe"
)

// Report holds the findings of one run in execution order. A single
// Fail finding makes the whole run a failure.
type Report struct {
	RunID     string
	Target    string
	StartTime time.Time
	EndTime   time.Time

	findings []probe.Finding
}

func New(target string) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		Target:    target,
		StartTime: time.Now(),
	}
}

// Append takes ownership of a finding. Insertion order is preserved;
// it equals execution order and matters for human review.
func (r *Report) Append(f probe.Finding) {
	r.findings = append(r.findings, f)
}

// Finalize stamps the end of the run.
func (r *Report) Finalize() {
	r.EndTime = time.Now()
}

func (r *Report) Findings() []probe.Finding {
	return append([]probe.Finding{}, r.findings...)
}

func (r *Report) count(v probe.Verdict) int {
	n := 0
	for _, f := range r.findings {
		if f.Verdict == v {
			n++
		}
	}
	return n
}

func (r *Report) PassCount() int { return r.count(probe.VerdictPass) }
func (r *Report) FailCount() int { return r.count(probe.VerdictFail) }
func (r *Report) WarnCount() int { return r.count(probe.VerdictWarn) }

// Success reports the overall verdict: true exactly when no finding
// indicates a vulnerability.
func (r *Report) Success() bool {
	return r.FailCount() == 0
}

// Failures returns the findings treated as confirmed vulnerabilities,
// in execution order.
func (r *Report) Failures() []probe.Finding {
	var out []probe.Finding
	for _, f := range r.findings {
		if f.Verdict == probe.VerdictFail {
			out = append(out, f)
		}
	}
	return out
}

// Summary renders a deterministic text summary: identical findings
// always produce identical output.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d findings: %d pass, %d fail, %d warn\n",
		len(r.findings), r.PassCount(), r.FailCount(), r.WarnCount())
	if r.Success() {
		sb.WriteString("verdict: success")
	} else {
		sb.WriteString("verdict: failure")
		for _, f := range r.Failures() {
			fmt.Fprintf(&sb, "\n  - [%s] %s", f.Category, f.Message)
		}
	}
	return sb.String()
}
