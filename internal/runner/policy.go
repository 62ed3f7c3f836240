package runner

import (
	"fmt"
	"strings"
)

// ValidateSnippet checks if a snippet matches any blocked patterns.
func ValidateSnippet(code string, blockedPatterns []string) error {
	for _, pattern := range blockedPatterns {
		if pattern != "" && strings.Contains(code, pattern) {
			return fmt.Errorf("snippet blocked by security policy: contains %q; if this is intentional, remove it from runner.blocked_patterns in issuebench.yaml", pattern)
		}
	}
	return nil
}
