package utils

import "testing"

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]string{
		"Front-End":      "frontend",
		" back end ":     "backend",
		"DB":             "database",
		"Infrastructure": "devops",
		"frontend":       "frontend",
		"Languages":      "languages",
		"something-else": "something-else",
	}

	for input, want := range cases {
		if got := NormalizeCategory(input); got != want {
			t.Errorf("NormalizeCategory(%q): want %q, got %q", input, want, got)
		}
	}
}
