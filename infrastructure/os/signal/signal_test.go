package signal

import (
	"testing"
	"time"
)

func TestRequestShutdown(t *testing.T) {
	interrupted := InterruptListener()
	if ShutdownRequested(interrupted) {
		t.Fatalf("TestRequestShutdown: shutdown reported before it was requested")
	}

	RequestShutdown()
	select {
	case <-interrupted:
	case <-time.After(5 * time.Second):
		t.Fatalf("TestRequestShutdown: the interrupt channel was not closed")
	}
	if !ShutdownRequested(interrupted) {
		t.Fatalf("TestRequestShutdown: shutdown was not reported after it was requested")
	}
}
