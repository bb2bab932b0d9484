package probe

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Profile describes the target application surface: the endpoints the
// probes hit, the form fields they send, and the response markers the
// classifiers match on. Defaults fit a classic PHP login/register app;
// anything else can override them from a YAML file.
type Profile struct {
	LoginPath     string `yaml:"login_path"`
	RegisterPath  string `yaml:"register_path"`
	ProtectedPath string `yaml:"protected_path"`

	UsernameField string `yaml:"username_field"`
	PasswordField string `yaml:"password_field"`
	TokenField    string `yaml:"token_field"`

	// SuccessMarker is the authenticated-area text, matched
	// case-sensitively. AuthAreaMarker is a looser second marker,
	// matched case-insensitively.
	SuccessMarker  string `yaml:"success_marker"`
	AuthAreaMarker string `yaml:"auth_area_marker"`

	// ForgeryMarker is the error text that proves the token check
	// fired. A literal substring match; a heuristic proxy, nothing
	// stronger.
	ForgeryMarker string `yaml:"forgery_marker"`

	// SessionCookie is a cookie name substring, matched
	// case-insensitively. PHPSESSID is always recognized.
	SessionCookie string `yaml:"session_cookie"`
}

func DefaultProfile() Profile {
	return Profile{
		LoginPath:      "login.php",
		RegisterPath:   "register.php",
		ProtectedPath:  "dashboard.php",
		UsernameField:  "username",
		PasswordField:  "password",
		TokenField:     "csrf_token",
		SuccessMarker:  "Welcome",
		AuthAreaMarker: "dashboard",
		ForgeryMarker:  "CSRF",
		SessionCookie:  "session",
	}
}

// LoadProfile reads a YAML profile over the defaults, so a file only
// needs the keys it wants to change.
func LoadProfile(path string) (Profile, error) {
	p := DefaultProfile()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	return p, p.validate()
}

func (p Profile) validate() error {
	if p.LoginPath == "" || p.RegisterPath == "" || p.ProtectedPath == "" {
		return fmt.Errorf("profile endpoints must not be empty")
	}
	if p.UsernameField == "" || p.PasswordField == "" || p.TokenField == "" {
		return fmt.Errorf("profile form fields must not be empty")
	}
	if p.SuccessMarker == "" {
		return fmt.Errorf("profile success_marker must not be empty")
	}
	return nil
}

// successIndicated reports whether a response body looks like the
// authenticated area of the application.
func (p Profile) successIndicated(body string) bool {
	if strings.Contains(body, p.SuccessMarker) {
		return true
	}
	return p.AuthAreaMarker != "" &&
		strings.Contains(strings.ToLower(body), strings.ToLower(p.AuthAreaMarker))
}
