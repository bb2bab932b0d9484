// Package runner drives the ordered probe pipeline against one target.
package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/webvet/webvet/internal/probe"
	"github.com/webvet/webvet/internal/report"
	"github.com/webvet/webvet/internal/transport"
)

// Config wires a Runner explicitly; there are no process-wide
// singletons to fall back on.
type Config struct {
	// Session is the shared stateful client for the ordered pipeline.
	Session *transport.Session

	// Probes run in slice order. Order matters: they share Session.
	Probes []probe.Probe

	// Parallel moves session-free probes onto their own sessions, run
	// concurrently with the pipeline. Requires SessionFactory.
	Parallel bool

	// SessionFactory builds an independent session for each parallel
	// probe.
	SessionFactory func() (*transport.Session, error)

	// OnFinding, when set, observes every finding as it is appended to
	// the report.
	OnFinding func(probe.Finding)

	Logger *logrus.Logger
}

type Runner struct {
	cfg Config
}

func New(cfg Config) *Runner {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	if cfg.SessionFactory == nil {
		cfg.Parallel = false
	}
	return &Runner{cfg: cfg}
}

// Run executes every probe and always returns a complete report: one
// finding per payload, even under total target unreachability or a
// misbehaving probe. Nothing here is fatal.
func (r *Runner) Run(ctx context.Context) *report.Report {
	rep := report.New(r.cfg.Session.BaseURL())

	sequential, independent := r.partition()

	// Session-free probes start first on their own sessions; their
	// findings merge in after the ordered pipeline, grouped by probe,
	// never interleaved.
	groups := make([][]probe.Finding, len(independent))
	var wg sync.WaitGroup
	for idx, p := range independent {
		wg.Add(1)
		go func(idx int, p probe.Probe) {
			defer wg.Done()
			sess, err := r.cfg.SessionFactory()
			if err != nil {
				for _, payload := range p.Payloads() {
					groups[idx] = append(groups[idx], probe.Inconclusive(p.Category(), payload, err))
				}
				return
			}
			groups[idx] = r.runProbe(ctx, sess, p, nil)
		}(idx, p)
	}

	for _, p := range sequential {
		r.cfg.Logger.WithField("category", p.Category()).Debug("running probe")
		for _, f := range r.runProbe(ctx, r.cfg.Session, p, r.cfg.OnFinding) {
			rep.Append(f)
		}
	}

	wg.Wait()
	for _, findings := range groups {
		for _, f := range findings {
			rep.Append(f)
			if r.cfg.OnFinding != nil {
				r.cfg.OnFinding(f)
			}
		}
	}

	rep.Finalize()
	return rep
}

func (r *Runner) partition() (sequential, independent []probe.Probe) {
	if !r.cfg.Parallel {
		return r.cfg.Probes, nil
	}
	for _, p := range r.cfg.Probes {
		if probe.SessionFree(p.Category()) {
			independent = append(independent, p)
		} else {
			sequential = append(sequential, p)
		}
	}
	return sequential, independent
}

func (r *Runner) runProbe(ctx context.Context, sess *transport.Session, p probe.Probe, emit func(probe.Finding)) []probe.Finding {
	payloads := p.Payloads()
	findings := make([]probe.Finding, 0, len(payloads))
	for _, payload := range payloads {
		f := r.runPayload(ctx, sess, p, payload)
		findings = append(findings, f)
		if emit != nil {
			emit(f)
		}
	}
	return findings
}

// runPayload isolates a single probe invocation: transport errors and
// panics degrade to a Warn finding so the run always proceeds.
func (r *Runner) runPayload(ctx context.Context, sess *transport.Session, p probe.Probe, payload probe.Payload) (f probe.Finding) {
	defer func() {
		if v := recover(); v != nil {
			r.cfg.Logger.WithField("category", p.Category()).Errorf("probe panicked: %v", v)
			f = probe.Inconclusive(p.Category(), payload, fmt.Errorf("probe panicked: %v", v))
		}
	}()

	resp, err := p.Execute(ctx, sess, payload)
	if err != nil {
		r.cfg.Logger.WithFields(logrus.Fields{
			"category": p.Category(),
			"error":    err,
		}).Debug("probe transport failure")
		return probe.Inconclusive(p.Category(), payload, err)
	}
	return p.Classify(resp, payload)
}
