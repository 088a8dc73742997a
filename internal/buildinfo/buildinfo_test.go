package buildinfo

import "testing"

func TestString(t *testing.T) {
	defer func(version, commit, date string) {
		Version, Commit, Date = version, commit, date
	}(Version, Commit, Date)

	tests := []struct {
		name     string
		commit   string
		date     string
		expected string
	}{
		{name: "bare", expected: "kdset v1.2.3"},
		{name: "commit", commit: "abc123", expected: "kdset v1.2.3 (commit abc123)"},
		{name: "full", commit: "abc123", date: "2020-08-01", expected: "kdset v1.2.3 (commit abc123, built 2020-08-01)"},
	}
	for _, test := range tests {
		Version, Commit, Date = "v1.2.3", test.commit, test.date
		if got := String(); got != test.expected {
			t.Errorf("%s: build string, got: %q, expected: %q", test.name, got, test.expected)
		}
	}
	if got := UserAgent(); got != "kdset/v1.2.3" {
		t.Errorf("user agent, got: %q, expected: %q", got, "kdset/v1.2.3")
	}
}
