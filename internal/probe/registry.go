package probe

import (
	"fmt"
	"strings"
)

// Registry returns the default ordered probe set. The order is part of
// the contract: probes share one transport session, and the
// unauthenticated-access check must not run after anything that could
// establish a real login.
func Registry(profile Profile) []Probe {
	return []Probe{
		NewSQLInjection(profile),
		NewMarkupInjection(profile),
		NewRequestForgery(profile),
		NewSessionCookie(profile),
		NewSecurityHeaders(profile),
		NewAuthBypass(profile),
		NewInfoDisclosure(profile),
	}
}

// Categories lists every known category in registry order.
func Categories() []Category {
	return []Category{
		CategorySQLInjection,
		CategoryMarkupInjection,
		CategoryRequestForgery,
		CategorySessionCookie,
		CategoryHeaders,
		CategoryAuthBypass,
		CategoryInfoDisclosure,
	}
}

// ParseCategory resolves a user-supplied category name.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(name, string(c)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown probe category %q", name)
}

// SessionFree reports whether a category depends only on fresh,
// unauthenticated requests. Session-free probes may run on independent
// transport sessions in parallel with the ordered pipeline.
func SessionFree(c Category) bool {
	return c == CategoryHeaders || c == CategoryInfoDisclosure
}

// Filter applies only/skip category lists to a probe set, preserving
// order. An empty only list keeps everything not skipped.
func Filter(probes []Probe, only, skip []string) ([]Probe, error) {
	keep := make(map[Category]bool)
	for _, name := range only {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		keep[c] = true
	}

	drop := make(map[Category]bool)
	for _, name := range skip {
		c, err := ParseCategory(name)
		if err != nil {
			return nil, err
		}
		drop[c] = true
	}

	var out []Probe
	for _, p := range probes {
		if len(keep) > 0 && !keep[p.Category()] {
			continue
		}
		if drop[p.Category()] {
			continue
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("probe filter removed every probe")
	}
	return out, nil
}
