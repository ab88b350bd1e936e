package domain

import (
	"math"
	"strings"
	"time"
)

// Ratings holds the star buckets of a book together with the aggregates
// derived from them. Count is always the sum of the buckets and Average
// their weighted mean rounded to two decimals; use Recompute after touching
// a bucket.
type Ratings struct {
	Average   float64 `db:"rating_avg"`
	Count     int64   `db:"rating_count"`
	OneStar   int64   `db:"rating_1_star"`
	TwoStar   int64   `db:"rating_2_star"`
	ThreeStar int64   `db:"rating_3_star"`
	FourStar  int64   `db:"rating_4_star"`
	FiveStar  int64   `db:"rating_5_star"`
}

// Recompute derives Count and Average from the buckets.
func (r *Ratings) Recompute() {
	r.Count = r.OneStar + r.TwoStar + r.ThreeStar + r.FourStar + r.FiveStar
	if r.Count == 0 {
		r.Average = 0
		return
	}
	weighted := r.OneStar + 2*r.TwoStar + 3*r.ThreeStar + 4*r.FourStar + 5*r.FiveStar
	r.Average = RoundRating(float64(weighted) / float64(r.Count))
}

// Apply adds inc to the buckets and recomputes the aggregates.
func (r Ratings) Apply(inc RatingIncrement) Ratings {
	r.OneStar += inc.OneStar
	r.TwoStar += inc.TwoStar
	r.ThreeStar += inc.ThreeStar
	r.FourStar += inc.FourStar
	r.FiveStar += inc.FiveStar
	r.Recompute()
	return r
}

// Validate rejects negative buckets.
func (r Ratings) Validate() error {
	for _, n := range []int64{r.OneStar, r.TwoStar, r.ThreeStar, r.FourStar, r.FiveStar} {
		if n < 0 {
			return NewValidationError("ratings", "star counts cannot be negative", ErrInvalidRating)
		}
	}
	return nil
}

// RoundRating rounds an average to two decimals.
func RoundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}

// RatingIncrement is the number of new ratings per star bucket.
type RatingIncrement struct {
	OneStar   int64
	TwoStar   int64
	ThreeStar int64
	FourStar  int64
	FiveStar  int64
}

// Validate rejects negative increments.
func (i RatingIncrement) Validate() error {
	return Ratings{
		OneStar:   i.OneStar,
		TwoStar:   i.TwoStar,
		ThreeStar: i.ThreeStar,
		FourStar:  i.FourStar,
		FiveStar:  i.FiveStar,
	}.Validate()
}

// IsZero reports whether the increment adds nothing.
func (i RatingIncrement) IsZero() bool {
	return i == RatingIncrement{}
}

// Book is a catalog entry.
type Book struct {
	ID              int64  `db:"id"`
	ISBN13          int64  `db:"isbn13"`
	Authors         string `db:"authors"`
	PublicationYear int    `db:"publication_year"`
	OriginalTitle   string `db:"original_title"`
	Title           string `db:"title"`
	Ratings
	ImageURL      string `db:"image_url"`
	ImageSmallURL string `db:"image_small_url"`
}

// NewBook trims the text fields, derives the rating aggregates and validates
// the result against the current year.
func NewBook(b Book) (*Book, error) {
	b.Authors = strings.TrimSpace(b.Authors)
	b.Title = strings.TrimSpace(b.Title)
	b.OriginalTitle = strings.TrimSpace(b.OriginalTitle)
	b.ImageURL = strings.TrimSpace(b.ImageURL)
	b.ImageSmallURL = strings.TrimSpace(b.ImageSmallURL)
	b.Ratings.Recompute()

	if err := b.Validate(time.Now()); err != nil {
		return nil, err
	}
	return &b, nil
}

// Validate checks the book fields. now bounds the publication year.
func (b *Book) Validate(now time.Time) error {
	switch {
	case !IsValidISBN13(b.ISBN13):
		return NewValidationError("isbn13", "must be a 13-digit number", ErrInvalidISBN)
	case !IsStringProvided(b.Authors):
		return NewValidationError("authors", "is required", ErrEmptyContent)
	case !IsStringProvided(b.Title):
		return NewValidationError("title", "is required", ErrEmptyContent)
	case b.PublicationYear < 1 || b.PublicationYear > now.Year():
		return NewValidationError("publication_year", "must be between 1 and the current year", ErrInvalidYear)
	}
	return b.Ratings.Validate()
}
