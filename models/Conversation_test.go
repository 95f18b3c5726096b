package models

import "testing"

func TestConversationParticipants(t *testing.T) {
	c := Conversation{PropertyID: 1, User1ID: 10, User2ID: 20}

	if !c.HasParticipant(10) || !c.HasParticipant(20) {
		t.Fatal("both members must be recognized as participants")
	}
	if c.HasParticipant(30) {
		t.Fatal("a third user is not a participant")
	}

	if got := c.OtherParticipant(10); got != 20 {
		t.Fatalf("OtherParticipant(10) = %d, want 20", got)
	}
	if got := c.OtherParticipant(20); got != 10 {
		t.Fatalf("OtherParticipant(20) = %d, want 10", got)
	}
}

func TestNormalizePairIsOrderIndependent(t *testing.T) {
	a1, b1 := NormalizePair(10, 20)
	a2, b2 := NormalizePair(20, 10)

	if a1 != a2 || b1 != b2 {
		t.Fatalf("pair (10,20) normalized to (%d,%d) but (20,10) to (%d,%d)", a1, b1, a2, b2)
	}
	if a1 != 10 || b1 != 20 {
		t.Fatalf("expected canonical order (10,20), got (%d,%d)", a1, b1)
	}

	if a, b := NormalizePair(5, 5); a != 5 || b != 5 {
		t.Fatalf("equal ids must normalize to themselves, got (%d,%d)", a, b)
	}
}
