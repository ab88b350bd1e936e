package domain

import (
	"errors"
	"testing"
	"time"
)

func validBook() Book {
	return Book{
		ISBN13:          9780439023480,
		Authors:         "Suzanne Collins",
		PublicationYear: 2008,
		OriginalTitle:   "The Hunger Games",
		Title:           "The Hunger Games (The Hunger Games, #1)",
		Ratings: Ratings{
			OneStar:   66715,
			TwoStar:   127936,
			ThreeStar: 560092,
			FourStar:  1481305,
			FiveStar:  2706317,
		},
		ImageURL:      "https://images.example.com/large.jpg",
		ImageSmallURL: "https://images.example.com/small.jpg",
	}
}

func TestRatingsRecompute(t *testing.T) {
	r := Ratings{OneStar: 1, TwoStar: 0, ThreeStar: 0, FourStar: 0, FiveStar: 2}
	r.Recompute()

	if r.Count != 3 {
		t.Errorf("Expected count 3, got %d", r.Count)
	}
	if r.Average != 3.67 {
		t.Errorf("Expected average 3.67, got %v", r.Average)
	}

	empty := Ratings{Average: 4.5, Count: 10}
	empty.Recompute()
	if empty.Count != 0 || empty.Average != 0 {
		t.Errorf("Expected zeroed aggregates, got count=%d avg=%v", empty.Count, empty.Average)
	}
}

func TestRatingsApply(t *testing.T) {
	r := Ratings{FiveStar: 1}
	r.Recompute()

	updated := r.Apply(RatingIncrement{OneStar: 1})

	if updated.Count != 2 {
		t.Errorf("Expected count 2, got %d", updated.Count)
	}
	if updated.Average != 3 {
		t.Errorf("Expected average 3, got %v", updated.Average)
	}
	if r.Count != 1 {
		t.Error("Expected Apply to leave the receiver untouched")
	}
}

func TestRatingIncrementValidate(t *testing.T) {
	if err := (RatingIncrement{ThreeStar: 2}).Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := (RatingIncrement{TwoStar: -1}).Validate(); !errors.Is(err, ErrInvalidRating) {
		t.Errorf("Expected %v, got %v", ErrInvalidRating, err)
	}
	if !(RatingIncrement{}).IsZero() {
		t.Error("Expected empty increment to be zero")
	}
}

func TestNewBook(t *testing.T) {
	in := validBook()
	in.Title = "  " + in.Title + "  "

	book, err := NewBook(in)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if book.Title != "The Hunger Games (The Hunger Games, #1)" {
		t.Errorf("Expected trimmed title, got %q", book.Title)
	}
	if book.Count != 4942365 {
		t.Errorf("Expected derived count 4942365, got %d", book.Count)
	}
	if book.Average != 4.34 {
		t.Errorf("Expected derived average 4.34, got %v", book.Average)
	}
}

func TestBookValidate(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		mutate func(b *Book)
		target error
	}{
		{"short isbn", func(b *Book) { b.ISBN13 = 978043902348 }, ErrInvalidISBN},
		{"missing authors", func(b *Book) { b.Authors = "" }, ErrEmptyContent},
		{"missing title", func(b *Book) { b.Title = " " }, ErrEmptyContent},
		{"zero year", func(b *Book) { b.PublicationYear = 0 }, ErrInvalidYear},
		{"future year", func(b *Book) { b.PublicationYear = 2025 }, ErrInvalidYear},
		{"negative bucket", func(b *Book) { b.FourStar = -3 }, ErrInvalidRating},
	}

	b := validBook()
	if err := b.Validate(now); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBook()
			tt.mutate(&b)
			if err := b.Validate(now); !errors.Is(err, tt.target) {
				t.Errorf("Expected %v, got %v", tt.target, err)
			}
		})
	}
}
