package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/phrazzld/booklist-api/internal/domain"
)

// Column names of the books CSV.
const (
	ColISBN13        = "isbn13"
	ColAuthors       = "authors"
	ColYear          = "original_publication_year"
	ColOriginalTitle = "original_title"
	ColTitle         = "title"
	ColRating1       = "ratings_1"
	ColRating2       = "ratings_2"
	ColRating3       = "ratings_3"
	ColRating4       = "ratings_4"
	ColRating5       = "ratings_5"
	ColImageURL      = "image_url"
	ColSmallImageURL = "small_image_url"
)

var requiredHeaders = []string{
	ColISBN13, ColAuthors, ColYear, ColTitle,
	ColRating1, ColRating2, ColRating3, ColRating4, ColRating5,
}

// Repairs lists the CSV line numbers that were altered.
type Repairs struct {
	DuplicateISBNs        []int
	NegativeYears         []int
	MissingOriginalTitles []int
}

// ParseResult is the outcome of Parse.
type ParseResult struct {
	Books    []domain.Book
	Repairs  Repairs
	Warnings []string
}

// Parse reads the CSV from r and returns the repaired, validated books.
// now bounds publication years. Only an unreadable header is fatal; bad
// rows become warnings.
func Parse(r io.Reader, now time.Time) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	headerIndex := make(map[string]int, len(header))
	for i, h := range header {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range requiredHeaders {
		if _, ok := headerIndex[h]; !ok {
			return nil, fmt.Errorf("missing required header: %s", h)
		}
	}

	result := &ParseResult{}
	seen := make(map[int64]bool)
	lineNum := 1

	for {
		lineNum++
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: %v", lineNum, err))
			continue
		}

		get := func(col string) string { return getCSVValue(record, headerIndex, col) }

		book, err := parseRow(get)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: skipped - %v", lineNum, err))
			continue
		}

		if book.PublicationYear < 0 {
			book.PublicationYear = -book.PublicationYear
			result.Repairs.NegativeYears = append(result.Repairs.NegativeYears, lineNum)
		}
		if book.OriginalTitle == "" {
			book.OriginalTitle = book.Title
			result.Repairs.MissingOriginalTitles = append(result.Repairs.MissingOriginalTitles, lineNum)
		}
		book.Ratings.Recompute()

		if err := book.Validate(now); err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Line %d: skipped - %v", lineNum, err))
			continue
		}

		if seen[book.ISBN13] {
			for seen[book.ISBN13] {
				book.ISBN13++
			}
			if !domain.IsValidISBN13(book.ISBN13) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("Line %d: skipped - duplicate ISBN has no free successor", lineNum))
				continue
			}
			result.Repairs.DuplicateISBNs = append(result.Repairs.DuplicateISBNs, lineNum)
		}
		seen[book.ISBN13] = true

		result.Books = append(result.Books, book)
	}

	return result, nil
}

func parseRow(get func(string) string) (domain.Book, error) {
	isbn, err := parseISBN(get(ColISBN13))
	if err != nil {
		return domain.Book{}, err
	}

	year, err := parseWhole(get(ColYear))
	if err != nil {
		return domain.Book{}, fmt.Errorf("invalid %s: %w", ColYear, err)
	}

	b := domain.Book{
		ISBN13:          isbn,
		Authors:         get(ColAuthors),
		PublicationYear: int(year),
		OriginalTitle:   get(ColOriginalTitle),
		Title:           get(ColTitle),
		ImageURL:        get(ColImageURL),
		ImageSmallURL:   get(ColSmallImageURL),
	}

	buckets := []*int64{&b.OneStar, &b.TwoStar, &b.ThreeStar, &b.FourStar, &b.FiveStar}
	for i, col := range []string{ColRating1, ColRating2, ColRating3, ColRating4, ColRating5} {
		raw := get(col)
		if raw == "" {
			continue
		}
		n, err := parseWhole(raw)
		if err != nil {
			return domain.Book{}, fmt.Errorf("invalid %s: %w", col, err)
		}
		*buckets[i] = n
	}
	return b, nil
}

// parseISBN accepts plain digits and the scientific notation spreadsheets
// produce ("9.78043902348e+12").
func parseISBN(raw string) (int64, error) {
	if raw == "" {
		return 0, fmt.Errorf("missing %s", ColISBN13)
	}
	isbn, err := parseWhole(raw)
	if err != nil || !domain.IsValidISBN13(isbn) {
		return 0, fmt.Errorf("invalid %s %q", ColISBN13, raw)
	}
	return isbn, nil
}

// parseWhole parses an integer that may be written as a float ("2008.0").
func parseWhole(raw string) (int64, error) {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%q is not a whole number", raw)
	}
	return int64(f), nil
}

func getCSVValue(record []string, headerIndex map[string]int, col string) string {
	i, ok := headerIndex[col]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
