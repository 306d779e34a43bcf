package cryptids

import (
	"strings"
	"testing"
)

func TestGenerateIDValidation(t *testing.T) {
	if _, err := generateID("a", 4); err == nil {
		t.Error("expected error for single character alphabet")
	}
	if _, err := generateID("ab", 0); err == nil {
		t.Error("expected error for zero size")
	}

	id, err := generateID("01", 32)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if strings.Trim(id, "01") != "" {
		t.Errorf("binary id %q has foreign characters", id)
	}
}
