// Package probe implements the vulnerability probes and their
// classification rules. A probe owns a fixed payload set and a pure
// classifier from response content to a verdict. Classification is
// heuristic string matching: a Fail verdict is a signal worth manual
// review, never proof of exploitability.
package probe

import (
	"context"
	"fmt"

	"github.com/webvet/webvet/internal/transport"
)

// Category identifies one vulnerability class under test.
type Category string

const (
	CategorySQLInjection    Category = "sql-injection"
	CategoryMarkupInjection Category = "markup-injection"
	CategoryRequestForgery  Category = "request-forgery"
	CategorySessionCookie   Category = "session-cookie"
	CategoryHeaders         Category = "security-headers"
	CategoryAuthBypass      Category = "auth-bypass"
	CategoryInfoDisclosure  Category = "info-disclosure"
)

// Verdict classifies a single finding. Pass means the protection was
// observed, Fail means the vulnerability is indicated, Warn means the
// evidence was inconclusive.
type Verdict string

const (
	VerdictPass Verdict = "pass"
	VerdictFail Verdict = "fail"
	VerdictWarn Verdict = "warn"
)

// Payload is one adversarial input a probe sends. Observational probes
// (session cookie, headers, disclosure) use the inspected header or
// marker name as their payload so every check still maps to exactly one
// finding.
type Payload string

// Finding is the classified result of one payload execution. Immutable
// once created.
type Finding struct {
	Category Category `json:"category"`
	Verdict  Verdict  `json:"verdict"`
	Message  string   `json:"message"`
	Detail   string   `json:"detail,omitempty"`
}

// Probe is one self-contained test unit. Execute issues exactly one
// request per payload; Classify inspects nothing but the response and
// the payload that produced it.
type Probe interface {
	Category() Category
	Payloads() []Payload
	Execute(ctx context.Context, sess *transport.Session, payload Payload) (*transport.Response, error)
	Classify(resp *transport.Response, payload Payload) Finding
}

// TruncatePayload shortens a payload for display in finding details.
func TruncatePayload(p Payload) string {
	const max = 30
	if len(p) <= max {
		return string(p)
	}
	return string(p[:max]) + "..."
}

// Inconclusive is the Warn finding a payload run degrades to when the
// transport fails. Absence of evidence proves neither a vulnerability
// nor a protection.
func Inconclusive(cat Category, payload Payload, err error) Finding {
	return Finding{
		Category: cat,
		Verdict:  VerdictWarn,
		Message:  fmt.Sprintf("probe error: %v", err),
		Detail:   TruncatePayload(payload),
	}
}
