package version

import "testing"

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		build    string
		expected string
	}{
		{"", "4.1.0"},
		{"rc1", "4.1.0-rc1"},
		{"bad build", "4.1.0"},
	}
	for _, test := range tests {
		if got := formatVersion(test.build); got != test.expected {
			t.Errorf("TestFormatVersion: build %q: expected %s, got %s", test.build, test.expected, got)
		}
	}
}
