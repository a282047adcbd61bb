package config

import (
	"testing"

	"github.com/minepkg/modkit/internals/merrors"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		expected interface{}
		err      bool
	}{
		{"verbose", "yes", true, false},
		{"noninteractive", "0", false, false},
		{"nocolor", "maybe", nil, true},
		{"locale", "de_de", "de_de", false},
		{"locale", "klingon", nil, true},
		{"template.ref", "1.20", "1.20", false},
		{"does.not.exist", "x", nil, true},
	}

	for _, test := range tests {
		t.Run(test.key+"="+test.value, func(t *testing.T) {
			got, err := parseValue(test.key, test.value)
			if test.err {
				if err == nil {
					t.Fatalf("expected an error, got %v", got)
				}
				if merrors.KindOf(err) != merrors.KindUsage {
					t.Errorf("expected a usage error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != test.expected {
				t.Errorf("expected %v, got %v", test.expected, got)
			}
		})
	}
}
