package httptransport

import (
	"testing"
	"time"
)

// Every retry loop must get its own policy instance, with its
// interval state starting from scratch.
func TestNewRetryPolicy_Independent(t *testing.T) {
	p1 := NewRetryPolicy()
	for i := 0; i < 5; i++ {
		if d := p1.NextBackOff(); d < 0 {
			t.Fatalf("policy stopped after %d steps", i)
		}
	}

	// With InitialInterval=200ms and RandomizationFactor=0.2, the
	// first interval of a fresh policy stays within [160ms, 240ms].
	// p1 has advanced well past that by now.
	p2 := NewRetryPolicy()
	if p2 == p1 {
		t.Fatal("NewRetryPolicy returned a shared instance")
	}
	d := p2.NextBackOff()
	if d < 160*time.Millisecond || d > 240*time.Millisecond {
		t.Errorf("fresh policy first interval = %v, want ~200ms", d)
	}
}
