package cryptids_test

import (
	"strings"
	"testing"

	"github.com/jrazmi/taskboard/sdk/cryptids"
)

func TestGenerateIDUsesAlphabet(t *testing.T) {
	for range 50 {
		id, err := cryptids.GenerateID()
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if len(id) != cryptids.IDLength {
			t.Fatalf("len(%q) = %d", id, len(id))
		}
		for _, r := range id {
			if !strings.ContainsRune(cryptids.IDAlphabet, r) {
				t.Fatalf("id %q contains %q outside alphabet", id, r)
			}
		}
	}
}
