package cod

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/kalakriti-next/internal/payment"
)

func TestCollectSucceedsAfterDelay(t *testing.T) {
	g := New(10 * time.Millisecond)
	refCh := make(chan string, 1)
	g.Collect(context.Background(), payment.Request{OrderRef: "checkout-1"}, payment.Callbacks{
		OnSuccess: func(ref string) { refCh <- ref },
		OnFailure: func(reason string) { t.Errorf("unexpected failure: %s", reason) },
	})
	select {
	case ref := <-refCh:
		if !strings.HasPrefix(ref, "COD-") {
			t.Fatalf("unexpected payment ref: %q", ref)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("success callback never fired")
	}
}

func TestCollectCancelled(t *testing.T) {
	g := New(5 * time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	reasonCh := make(chan string, 1)
	g.Collect(ctx, payment.Request{OrderRef: "checkout-2"}, payment.Callbacks{
		OnSuccess: func(ref string) { t.Errorf("unexpected success: %s", ref) },
		OnFailure: func(reason string) { reasonCh <- reason },
	})
	cancel()
	select {
	case reason := <-reasonCh:
		if reason != ReasonCancelled {
			t.Fatalf("unexpected failure reason: %q", reason)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("failure callback never fired")
	}
}
