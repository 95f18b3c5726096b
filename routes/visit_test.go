package routes

import (
	"testing"

	"rental-marketplace-server/models"
)

func TestVisitTransitionRequiresOwner(t *testing.T) {
	property := &models.Property{OwnerID: 7}
	visit := &models.Visit{PropertyID: 1, UserID: 3, Status: models.VisitStatusPending}

	if err := CheckVisitTransition(visit, property, 3); err != ErrVisitNotOwner {
		t.Fatalf("expected ErrVisitNotOwner for the requesting tenant, got %v", err)
	}
	if err := CheckVisitTransition(visit, property, 99); err != ErrVisitNotOwner {
		t.Fatalf("expected ErrVisitNotOwner for an unrelated user, got %v", err)
	}
	if err := CheckVisitTransition(visit, property, 7); err != nil {
		t.Fatalf("expected owner transition from pending to be allowed, got %v", err)
	}
}

func TestVisitTransitionIsTerminal(t *testing.T) {
	property := &models.Property{OwnerID: 7}

	for _, status := range []string{models.VisitStatusAccepted, models.VisitStatusRejected} {
		visit := &models.Visit{PropertyID: 1, UserID: 3, Status: status}
		if err := CheckVisitTransition(visit, property, 7); err != ErrVisitAlreadyDecided {
			t.Fatalf("status %q: expected ErrVisitAlreadyDecided, got %v", status, err)
		}
	}
}

func TestVisitIsTerminal(t *testing.T) {
	cases := map[string]bool{
		models.VisitStatusPending:  false,
		models.VisitStatusAccepted: true,
		models.VisitStatusRejected: true,
	}
	for status, want := range cases {
		v := models.Visit{Status: status}
		if v.IsTerminal() != want {
			t.Fatalf("IsTerminal(%q) = %v, want %v", status, v.IsTerminal(), want)
		}
	}
}
