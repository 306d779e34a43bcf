package validation_test

import (
	"testing"

	"github.com/jrazmi/taskboard/sdk/validation"
)

func TestValueOr(t *testing.T) {
	if got := validation.ValueOr[string](nil, "x"); got != "x" {
		t.Errorf("nil pointer = %q, want x", got)
	}
	if got := validation.ValueOr(validation.Ptr("y"), "x"); got != "y" {
		t.Errorf("set pointer = %q, want y", got)
	}
}

func TestAnyBlank(t *testing.T) {
	if !validation.AnyBlank("a", "  ", "b") {
		t.Error("whitespace value not reported blank")
	}
	if validation.AnyBlank("a", "b") {
		t.Error("non blank values reported blank")
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := validation.NormalizeEmail("  Demo@Example.COM "); got != "demo@example.com" {
		t.Errorf("normalized = %q", got)
	}
}
