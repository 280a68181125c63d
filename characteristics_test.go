package bitkit

import "testing"

func TestCharacteristics_Has(t *testing.T) {
	c := FixedSize | ThreadSafe | Atomic

	if !c.Has(FixedSize) || !c.Has(ThreadSafe|Atomic) {
		t.Errorf("expected flags present")
	}
	if c.Has(RLECompressed) || c.Has(ThreadSafe|LongValued) {
		t.Errorf("expected flags absent")
	}
}

func TestCharacteristics_String(t *testing.T) {
	tests := []struct {
		c    Characteristics
		want string
	}{
		{0, "None"},
		{FixedSize, "FixedSize"},
		{ThreadSafe | Atomic, "ThreadSafe|Atomic"},
		{LongValued | RLECompressed | NegativeValues, "LongValued|RLECompressed|NegativeValues"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
