package postgres

import (
	"fmt"
	"strings"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // registers the postgres dialect
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/store"
)

const (
	dialectPostgres = "postgres"

	tableBooks = "books"

	colID              = "id"
	colISBN13          = "isbn13"
	colAuthors         = "authors"
	colPublicationYear = "publication_year"
	colOriginalTitle   = "original_title"
	colTitle           = "title"
	colRatingAvg       = "rating_avg"
	colRatingCount     = "rating_count"
	colRating1         = "rating_1_star"
	colRating2         = "rating_2_star"
	colRating3         = "rating_3_star"
	colRating4         = "rating_4_star"
	colRating5         = "rating_5_star"
	colImageURL        = "image_url"
	colImageSmallURL   = "image_small_url"

	// insertBatchSize keeps multi-row inserts well below PostgreSQL's
	// 65535 bind parameter limit.
	insertBatchSize = 500
)

var bookColumns = []any{
	colID, colISBN13, colAuthors, colPublicationYear, colOriginalTitle, colTitle,
	colRatingAvg, colRatingCount, colRating1, colRating2, colRating3, colRating4, colRating5,
	colImageURL, colImageSmallURL,
}

var builder = goqu.Dialect(dialectPostgres)

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

// seriesPattern matches Goodreads style annotations such as
// "The Hunger Games (The Hunger Games, #1)".
func seriesPattern(series string) string {
	return "%(" + likeEscaper.Replace(series) + ", #%"
}

func filterConditions(filter store.BookFilter) []exp.Expression {
	conditions := make([]exp.Expression, 0, 4)

	if filter.Author != "" {
		conditions = append(conditions, goqu.C(colAuthors).ILike(containsPattern(filter.Author)))
	}
	if filter.Title != "" {
		pattern := containsPattern(filter.Title)
		conditions = append(conditions, goqu.Or(
			goqu.C(colTitle).ILike(pattern),
			goqu.C(colOriginalTitle).ILike(pattern),
		))
	}
	if filter.Year != 0 {
		conditions = append(conditions, goqu.C(colPublicationYear).Eq(filter.Year))
	}
	if filter.MinRating > 0 {
		conditions = append(conditions, goqu.C(colRatingAvg).Gte(filter.MinRating))
	}

	return conditions
}

func filteredBooks(filter store.BookFilter) *goqu.SelectDataset {
	ds := builder.From(tableBooks).Prepared(true)
	if conditions := filterConditions(filter); len(conditions) > 0 {
		ds = ds.Where(conditions...)
	}
	return ds
}

func buildCountQuery(filter store.BookFilter) (string, []any, error) {
	return filteredBooks(filter).
		Select(goqu.COUNT(goqu.Star())).
		ToSQL()
}

func buildListQuery(filter store.BookFilter, page domain.Page) (string, []any, error) {
	order := []exp.OrderedExpression{goqu.C(colID).Asc()}
	if filter.MinRating > 0 {
		order = []exp.OrderedExpression{goqu.C(colRatingAvg).Desc(), goqu.C(colID).Asc()}
	}

	return filteredBooks(filter).
		Select(bookColumns...).
		Order(order...).
		Limit(uint(page.Limit)).
		Offset(uint(page.Offset)).
		ToSQL()
}

func buildGetByISBNQuery(isbn int64) (string, []any, error) {
	return builder.From(tableBooks).
		Prepared(true).
		Select(bookColumns...).
		Where(goqu.C(colISBN13).Eq(isbn)).
		ToSQL()
}

func buildGetByIDQuery(id int64) (string, []any, error) {
	return builder.From(tableBooks).
		Prepared(true).
		Select(bookColumns...).
		Where(goqu.C(colID).Eq(id)).
		ToSQL()
}

func bookRecord(b *domain.Book) goqu.Record {
	return goqu.Record{
		colISBN13:          b.ISBN13,
		colAuthors:         b.Authors,
		colPublicationYear: b.PublicationYear,
		colOriginalTitle:   b.OriginalTitle,
		colTitle:           b.Title,
		colRatingAvg:       b.Average,
		colRatingCount:     b.Count,
		colRating1:         b.OneStar,
		colRating2:         b.TwoStar,
		colRating3:         b.ThreeStar,
		colRating4:         b.FourStar,
		colRating5:         b.FiveStar,
		colImageURL:        b.ImageURL,
		colImageSmallURL:   b.ImageSmallURL,
	}
}

func buildInsertQuery(books ...domain.Book) (string, []any, error) {
	rows := make([]any, 0, len(books))
	for i := range books {
		rows = append(rows, bookRecord(&books[i]))
	}
	return builder.Insert(tableBooks).
		Prepared(true).
		Rows(rows...).
		Returning(colID).
		ToSQL()
}

// buildRateQuery adds inc to every star bucket and recomputes count and
// average from the new bucket values in the same UPDATE.
func buildRateQuery(id int64, inc domain.RatingIncrement) (string, []any, error) {
	buckets := []struct {
		col    string
		inc    int64
		weight int
	}{
		{colRating1, inc.OneStar, 1},
		{colRating2, inc.TwoStar, 2},
		{colRating3, inc.ThreeStar, 3},
		{colRating4, inc.FourStar, 4},
		{colRating5, inc.FiveStar, 5},
	}

	record := goqu.Record{}
	countParts := make([]string, 0, len(buckets))
	countArgs := make([]any, 0, 2*len(buckets))
	weightedParts := make([]string, 0, len(buckets))
	weightedArgs := make([]any, 0, 2*len(buckets))

	for _, b := range buckets {
		record[b.col] = goqu.L("? + ?", goqu.C(b.col), b.inc)
		countParts = append(countParts, "(? + ?)")
		countArgs = append(countArgs, goqu.C(b.col), b.inc)
		weightedParts = append(weightedParts, fmt.Sprintf("%d * (? + ?)", b.weight))
		weightedArgs = append(weightedArgs, goqu.C(b.col), b.inc)
	}

	newCount := goqu.L(strings.Join(countParts, " + "), countArgs...)
	weighted := goqu.L(strings.Join(weightedParts, " + "), weightedArgs...)

	record[colRatingCount] = newCount
	record[colRatingAvg] = goqu.L(
		"CASE WHEN ? = 0 THEN 0 ELSE ROUND((?)::numeric / (?), 2)::double precision END",
		newCount, weighted, newCount,
	)

	return builder.Update(tableBooks).
		Prepared(true).
		Set(record).
		Where(goqu.C(colID).Eq(id)).
		Returning(bookColumns...).
		ToSQL()
}

func buildDeleteByISBNQuery(isbn int64) (string, []any, error) {
	return builder.Delete(tableBooks).
		Prepared(true).
		Where(goqu.C(colISBN13).Eq(isbn)).
		Returning(bookColumns...).
		ToSQL()
}

func buildDeleteBySeriesQuery(series string) (string, []any, error) {
	return builder.Delete(tableBooks).
		Prepared(true).
		Where(goqu.C(colTitle).ILike(seriesPattern(series))).
		Returning(bookColumns...).
		ToSQL()
}

func buildExistingISBNsQuery(isbns []int64) (string, []any, error) {
	return builder.From(tableBooks).
		Prepared(true).
		Select(colISBN13).
		Where(goqu.C(colISBN13).In(isbns)).
		ToSQL()
}
