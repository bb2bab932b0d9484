package probe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultProfile(t *testing.T) {
	p := DefaultProfile()
	if p.LoginPath != "login.php" || p.ProtectedPath != "dashboard.php" {
		t.Errorf("unexpected default endpoints: %+v", p)
	}
	if err := p.validate(); err != nil {
		t.Errorf("default profile must validate: %v", err)
	}
}

func TestLoadProfile_PartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	content := "login_path: session/new\nsuccess_marker: Signed in\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProfile(path)
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	if p.LoginPath != "session/new" {
		t.Errorf("override not applied: %q", p.LoginPath)
	}
	if p.SuccessMarker != "Signed in" {
		t.Errorf("override not applied: %q", p.SuccessMarker)
	}
	if p.RegisterPath != "register.php" {
		t.Errorf("omitted keys must keep defaults, got %q", p.RegisterPath)
	}
}

func TestLoadProfile_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		os.WriteFile(path, []byte("login_path: [unclosed"), 0644)
		if _, err := LoadProfile(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("blanked endpoint rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		os.WriteFile(path, []byte(`login_path: ""`), 0644)
		if _, err := LoadProfile(path); err == nil {
			t.Error("expected validation error")
		}
	})
}

func TestSuccessIndicated(t *testing.T) {
	p := DefaultProfile()

	tests := []struct {
		name     string
		body     string
		expected bool
	}{
		{"success marker", "Welcome back", true},
		{"success marker is case-sensitive", "welcome back", false},
		{"auth area marker any case", "YOUR DASHBOARD", true},
		{"neither", "Invalid credentials", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.successIndicated(tt.body); got != tt.expected {
				t.Errorf("successIndicated(%q) = %v, expected %v", tt.body, got, tt.expected)
			}
		})
	}
}
