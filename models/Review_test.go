package models

import "testing"

func TestAverageStars(t *testing.T) {
	reviews := []Review{{Stars: 5}, {Stars: 3}, {Stars: 4}}
	if avg := AverageStars(reviews); avg != 4.0 {
		t.Fatalf("expected average 4.0, got %v", avg)
	}
}

func TestAverageStarsEmpty(t *testing.T) {
	if avg := AverageStars(nil); avg != 0 {
		t.Fatalf("expected 0 for no reviews, got %v", avg)
	}
}
