package probe

import (
	"context"
	"net/http"
	"strings"

	"github.com/webvet/webvet/internal/transport"
)

// disclosurePatterns are body substrings that leak implementation
// detail to an attacker. Matched case-sensitively, as the engines emit
// them.
var disclosurePatterns = []struct {
	Marker      string
	Description string
}{
	{"PHP_VERSION", "runtime version disclosure"},
	{"mysql", "database engine disclosure"},
	{"Warning:", "engine warnings displayed"},
	{"Fatal error:", "engine errors displayed"},
	{"Stack trace", "stack traces displayed"},
}

// InfoDisclosure scans a public page for leak markers, one payload per
// marker. Purely observational: a hit is a Warn, never a Fail.
type InfoDisclosure struct {
	profile Profile
}

func NewInfoDisclosure(profile Profile) *InfoDisclosure {
	return &InfoDisclosure{profile: profile}
}

func (i *InfoDisclosure) Category() Category {
	return CategoryInfoDisclosure
}

func (i *InfoDisclosure) Payloads() []Payload {
	payloads := make([]Payload, 0, len(disclosurePatterns))
	for _, dp := range disclosurePatterns {
		payloads = append(payloads, Payload(dp.Marker))
	}
	return payloads
}

func (i *InfoDisclosure) Execute(ctx context.Context, sess *transport.Session, payload Payload) (*transport.Response, error) {
	return sess.Send(ctx, http.MethodGet, i.profile.LoginPath, nil, transport.SendOptions{FollowRedirects: true})
}

func (i *InfoDisclosure) Classify(resp *transport.Response, payload Payload) Finding {
	marker := string(payload)
	if strings.Contains(resp.Body, marker) {
		return Finding{
			Category: CategoryInfoDisclosure,
			Verdict:  VerdictWarn,
			Message:  "information disclosure: " + markerDescription(marker),
			Detail:   marker,
		}
	}
	return Finding{
		Category: CategoryInfoDisclosure,
		Verdict:  VerdictPass,
		Message:  "no " + markerDescription(marker),
		Detail:   marker,
	}
}

func markerDescription(marker string) string {
	for _, dp := range disclosurePatterns {
		if dp.Marker == marker {
			return dp.Description
		}
	}
	return "disclosure marker"
}
