package implementation

import (
	"testing"

	"github.com/google/uuid"
)

func TestCanonicalPair(t *testing.T) {
	low := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	high := uuid.MustParse("ffffffff-ffff-ffff-ffff-ffffffffffff")

	a, b := canonicalPair(low, high)
	if a != low || b != high {
		t.Errorf("canonicalPair(low, high) = (%v, %v), want (low, high)", a, b)
	}

	a, b = canonicalPair(high, low)
	if a != low || b != high {
		t.Errorf("canonicalPair(high, low) = (%v, %v), want (low, high)", a, b)
	}

	same := uuid.New()
	a, b = canonicalPair(same, same)
	if a != same || b != same {
		t.Errorf("canonicalPair(same, same) = (%v, %v), want identity", a, b)
	}
}
