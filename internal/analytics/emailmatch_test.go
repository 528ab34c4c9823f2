package analytics

import "testing"

func TestMatchEmailPattern(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		pattern  string
		expected bool
	}{
		{"empty pattern matches all", "a@b.com", "", true},
		{"empty email never matches", "", "@b.com", false},
		{"exact match", "a@b.com", "a@b.com", true},
		{"exact match case-insensitive", "A@B.com", "a@b.com", true},
		{"exact match trimmed", " a@b.com ", "a@b.com", true},

		{"domain suffix match", "a@b.com", "@b.com", true},
		{"domain suffix miss", "a@c.com", "@b.com", false},
		{"domain suffix on subdomain", "a@mail.b.com", "@b.com", true},

		{"prefix wildcard match", "x@b.com", "x@*", true},
		{"prefix wildcard miss", "a@b.com", "x@*", false},
		{"prefix wildcard needs full local part", "xy@b.com", "x@*", false},

		{"wildcard domain match", "a@gmail.com", "*@gmail.com", true},
		{"wildcard domain miss", "a@yahoo.com", "*@gmail.com", false},

		{"general glob match", "support@hermine.app", "sup*app", true},
		{"general glob anchored", "support@hermine.app", "port*app", false},
		{"general glob dots literal", "axb@c.com", "a.b*", false},
		{"inner glob", "team-legal@numbr.fr", "team*@numbr.fr", true},

		{"substring match", "jean@hermine.app", "hermine", true},
		{"substring miss", "jean@numbr.fr", "hermine", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchEmailPattern(tt.email, tt.pattern); got != tt.expected {
				t.Errorf("MatchEmailPattern(%q, %q) = %v, expected %v", tt.email, tt.pattern, got, tt.expected)
			}
		})
	}
}
