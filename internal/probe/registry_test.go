package probe

import (
	"testing"
)

func TestRegistry_Order(t *testing.T) {
	expected := []Category{
		CategorySQLInjection,
		CategoryMarkupInjection,
		CategoryRequestForgery,
		CategorySessionCookie,
		CategoryHeaders,
		CategoryAuthBypass,
		CategoryInfoDisclosure,
	}

	probes := Registry(DefaultProfile())
	if len(probes) != len(expected) {
		t.Fatalf("expected %d probes, got %d", len(expected), len(probes))
	}
	for i, p := range probes {
		if p.Category() != expected[i] {
			t.Errorf("position %d: expected %s, got %s", i, expected[i], p.Category())
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"sql-injection", false},
		{"SQL-Injection", false},
		{"security-headers", false},
		{"sqli", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := ParseCategory(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q): err = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestSessionFree(t *testing.T) {
	free := map[Category]bool{
		CategoryHeaders:        true,
		CategoryInfoDisclosure: true,
	}
	for _, c := range Categories() {
		if SessionFree(c) != free[c] {
			t.Errorf("SessionFree(%s) = %v", c, SessionFree(c))
		}
	}
}

func TestFilter(t *testing.T) {
	probes := Registry(DefaultProfile())

	t.Run("only keeps listed categories in order", func(t *testing.T) {
		out, err := Filter(probes, []string{"security-headers", "sql-injection"}, nil)
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != 2 {
			t.Fatalf("expected 2 probes, got %d", len(out))
		}
		if out[0].Category() != CategorySQLInjection || out[1].Category() != CategoryHeaders {
			t.Errorf("registry order not preserved: %s, %s", out[0].Category(), out[1].Category())
		}
	})

	t.Run("skip drops categories", func(t *testing.T) {
		out, err := Filter(probes, nil, []string{"markup-injection"})
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != len(probes)-1 {
			t.Errorf("expected %d probes, got %d", len(probes)-1, len(out))
		}
		for _, p := range out {
			if p.Category() == CategoryMarkupInjection {
				t.Error("skipped category still present")
			}
		}
	})

	t.Run("unknown name rejected", func(t *testing.T) {
		if _, err := Filter(probes, []string{"bogus"}, nil); err == nil {
			t.Error("expected error for unknown category")
		}
	})

	t.Run("empty result rejected", func(t *testing.T) {
		all := make([]string, 0, len(probes))
		for _, p := range probes {
			all = append(all, string(p.Category()))
		}
		if _, err := Filter(probes, nil, all); err == nil {
			t.Error("expected error when every probe is skipped")
		}
	})
}
