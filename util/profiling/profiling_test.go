package profiling

import "testing"

func TestValidatePort(t *testing.T) {
	tests := []struct {
		port    string
		isValid bool
	}{
		{"6060", true},
		{"1024", true},
		{"65535", true},
		{"80", false},
		{"70000", false},
		{"not-a-port", false},
	}
	for _, test := range tests {
		err := ValidatePort(test.port)
		if (err == nil) != test.isValid {
			t.Errorf("TestValidatePort: port %q: expected valid=%t, got error %v", test.port, test.isValid, err)
		}
	}
}
