package probe

import (
	"context"
	"net/http"

	"github.com/webvet/webvet/internal/transport"
)

// AuthBypass requests the protected endpoint with redirects disabled
// and no prior authentication. A redirect away is the expected
// protection; protected content in the body is not.
type AuthBypass struct {
	profile Profile
}

func NewAuthBypass(profile Profile) *AuthBypass {
	return &AuthBypass{profile: profile}
}

func (a *AuthBypass) Category() Category {
	return CategoryAuthBypass
}

func (a *AuthBypass) Payloads() []Payload {
	return []Payload{Payload(a.profile.ProtectedPath)}
}

func (a *AuthBypass) Execute(ctx context.Context, sess *transport.Session, payload Payload) (*transport.Response, error) {
	return sess.Send(ctx, http.MethodGet, string(payload), nil, transport.SendOptions{FollowRedirects: false})
}

func (a *AuthBypass) Classify(resp *transport.Response, payload Payload) Finding {
	if (resp.StatusCode >= 300 && resp.StatusCode < 400) || resp.Header.Get("Location") != "" {
		return Finding{
			Category: CategoryAuthBypass,
			Verdict:  VerdictPass,
			Message:  "unauthenticated access redirected",
			Detail:   TruncatePayload(payload),
		}
	}
	if a.profile.successIndicated(resp.Body) {
		return Finding{
			Category: CategoryAuthBypass,
			Verdict:  VerdictFail,
			Message:  "protected page served without authentication",
			Detail:   TruncatePayload(payload),
		}
	}
	return Finding{
		Category: CategoryAuthBypass,
		Verdict:  VerdictPass,
		Message:  "authentication enforced",
		Detail:   TruncatePayload(payload),
	}
}
