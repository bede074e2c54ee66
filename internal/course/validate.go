package course

import (
	"fmt"
	"strings"
)

// validateModules returns a combined error describing all problems found,
// or nil if the modules are well formed.
func validateModules(modules []Module) error {
	var errs []string

	keys := make(map[string]bool, len(modules))
	ids := make(map[string]bool)
	for _, m := range modules {
		if m.Key == "" {
			errs = append(errs, "module with empty key")
		}
		if keys[m.Key] {
			errs = append(errs, fmt.Sprintf("duplicate module key: %q", m.Key))
		}
		keys[m.Key] = true

		if len(m.Chapters) == 0 {
			errs = append(errs, fmt.Sprintf("module %q has no chapters", m.Key))
		}
		for _, ch := range m.Chapters {
			if ch.ID == "" {
				errs = append(errs, fmt.Sprintf("module %q has a chapter without id", m.Key))
				continue
			}
			if ids[ch.ID] {
				errs = append(errs, fmt.Sprintf("duplicate chapter ID: %q", ch.ID))
			}
			ids[ch.ID] = true
			if strings.TrimSpace(ch.Title) == "" {
				errs = append(errs, fmt.Sprintf("chapter %q has no title", ch.ID))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("course catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
