package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/webvet/webvet/internal/probe"
)

func populatedReport() *Report {
	r := New("http://localhost:8080/")
	r.Append(probe.Finding{
		Category: probe.CategoryMarkupInjection,
		Verdict:  probe.VerdictFail,
		Message:  "payload reflected without escaping",
		Detail:   "<script>alert('XSS')</script>",
	})
	r.Append(probe.Finding{
		Category: probe.CategoryHeaders,
		Verdict:  probe.VerdictPass,
		Message:  "X-Frame-Options: DENY",
	})
	r.Finalize()
	return r
}

func TestSaveJSON(t *testing.T) {
	r := populatedReport()
	path := filepath.Join(t.TempDir(), "report.json")

	if err := SaveJSON(r, path); err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var out jsonReport
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("invalid JSON written: %v", err)
	}

	if out.SchemaVersion != "1.0" {
		t.Errorf("schema_version = %q, want 1.0", out.SchemaVersion)
	}
	if out.RunID != r.RunID {
		t.Errorf("run_id = %q, want %q", out.RunID, r.RunID)
	}
	if out.Metadata.Target != "http://localhost:8080/" {
		t.Errorf("target = %q", out.Metadata.Target)
	}
	if out.Metadata.PassCount != 1 || out.Metadata.FailCount != 1 || out.Metadata.WarnCount != 0 {
		t.Errorf("counts = %d/%d/%d, want 1/1/0",
			out.Metadata.PassCount, out.Metadata.FailCount, out.Metadata.WarnCount)
	}
	if out.Metadata.Success {
		t.Error("success = true with a failing finding")
	}

	if len(out.Findings) != 2 {
		t.Fatalf("got %d findings, want 2", len(out.Findings))
	}
	if out.Findings[0].Category != probe.CategoryMarkupInjection {
		t.Errorf("execution order not preserved: first finding is %s", out.Findings[0].Category)
	}
	if out.Findings[0].Detail != "<script>alert('XSS')</script>" {
		t.Errorf("detail mangled: %q", out.Findings[0].Detail)
	}
}

func TestSaveJSON_BadPath(t *testing.T) {
	if err := SaveJSON(populatedReport(), filepath.Join(t.TempDir(), "missing", "report.json")); err == nil {
		t.Error("expected error for unwritable path")
	}
}

func TestFormatJSON(t *testing.T) {
	out, err := FormatJSON(populatedReport())
	if err != nil {
		t.Fatal(err)
	}
	var parsed map[string]any
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v", err)
	}
	if _, ok := parsed["findings"]; !ok {
		t.Error("findings key missing")
	}
}

func TestGenerateHTML(t *testing.T) {
	r := populatedReport()
	path := filepath.Join(t.TempDir(), "report.html")

	if err := GenerateHTML(r, path); err != nil {
		t.Fatalf("GenerateHTML: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	html := string(data)

	if !strings.Contains(html, r.RunID) {
		t.Error("run id missing from HTML report")
	}
	if !strings.Contains(html, "payload reflected without escaping") {
		t.Error("finding message missing from HTML report")
	}
	// Payload text must land escaped, never as live markup.
	if strings.Contains(html, "<script>alert('XSS')</script>") {
		t.Error("raw payload markup leaked into HTML report")
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Error("escaped payload missing from HTML report")
	}
}
