package registry

import (
	"fmt"
	"strings"
)

// Dependency is a single registered dependency. Name is the unique key;
// URL is where its history is fetched from.
type Dependency struct {
	Name string
	URL  string
}

// ValidateEntry checks that a name/URL pair can be represented in the
// manifest's one-line-per-dependency format and that the name is usable
// as a ref namespace segment.
func ValidateEntry(name, url string) error {
	if name == "" {
		return fmt.Errorf("dependency name must not be empty")
	}
	if strings.ContainsAny(name, " \t\n") {
		return fmt.Errorf("dependency name %q must not contain whitespace", name)
	}
	if strings.Contains(name, "/") {
		return fmt.Errorf("dependency name %q must not contain '/'", name)
	}
	if url == "" {
		return fmt.Errorf("dependency URL must not be empty")
	}
	if strings.ContainsAny(url, " \t\n") {
		return fmt.Errorf("dependency URL %q must not contain whitespace", url)
	}
	return nil
}
