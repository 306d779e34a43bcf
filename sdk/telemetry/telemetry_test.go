package telemetry_test

import (
	"context"
	"testing"

	"github.com/jrazmi/taskboard/sdk/cryptids"
	"github.com/jrazmi/taskboard/sdk/telemetry"
)

func TestTraceIDRoundTrip(t *testing.T) {
	tel := telemetry.NewTelemetry()

	if got := tel.GetTraceID(context.Background()); got != telemetry.NoTrace {
		t.Fatalf("empty context trace = %q, want NoTrace", got)
	}

	ctx := tel.SetTraceID(context.Background())
	tid := tel.GetTraceID(ctx)
	if len(tid) != cryptids.IDLength {
		t.Fatalf("trace id %q has length %d, want %d", tid, len(tid), cryptids.IDLength)
	}

	other := tel.GetTraceID(tel.SetTraceID(context.Background()))
	if other == tid {
		t.Fatalf("two requests share trace id %q", tid)
	}
}
