package utils

import (
	"strings"
)

// NormalizeCategory normalizes technology category values so the public
// site can group entries reliably regardless of how they were typed in the
// admin dashboard. Input is trimmed and lowercased before mapping.
func NormalizeCategory(category string) string {
	categoryLower := strings.ToLower(strings.TrimSpace(category))

	categoryMap := map[string]string{
		"front-end":      "frontend",
		"front end":      "frontend",
		"back-end":       "backend",
		"back end":       "backend",
		"data base":      "database",
		"db":             "database",
		"dev ops":        "devops",
		"dev-ops":        "devops",
		"infra":          "devops",
		"infrastructure": "devops",
		"language":       "languages",
		"tool":           "tools",
		"tooling":        "tools",
	}

	if normalized, exists := categoryMap[categoryLower]; exists {
		return normalized
	}

	// Already-canonical values pass through unchanged
	return categoryLower
}
