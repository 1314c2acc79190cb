package core

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePackName(t *testing.T) {
	for _, name := range []string{"Survival", "my pack 1.20", "a_b-c.d", "tmp", "P_tmpx"} {
		if err := ValidatePackName(name); err != nil {
			t.Errorf("ValidatePackName(%q) failed: %v", name, err)
		}
	}
	for _, name := range []string{"", "P_tmp", "../up", "a/b", ".hidden", " leading", strings.Repeat("a", 65)} {
		if err := ValidatePackName(name); !errors.Is(err, ErrInvalidPackName) {
			t.Errorf("ValidatePackName(%q): expected ErrInvalidPackName, got %v", name, err)
		}
	}
}

func TestPrettyName(t *testing.T) {
	if got := PrettyName("fabric-api"); !strings.EqualFold(got, "fabric api") {
		t.Errorf("PrettyName(fabric-api) = %q", got)
	}
	if got := PrettyName("sodiumExtra"); !strings.EqualFold(got, "sodium extra") {
		t.Errorf("PrettyName(sodiumExtra) = %q", got)
	}
}
