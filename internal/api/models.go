package api

import (
	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/service"
)

// RegisterRequest defines the payload for the registration endpoint.
// Role may be omitted, in which case the account becomes a reader.
type RegisterRequest struct {
	FirstName string `json:"firstname" validate:"required,max=255"`
	LastName  string `json:"lastname"  validate:"required,max=255"`
	Email     string `json:"email"     validate:"required,email,max=255"`
	Password  string `json:"password"  validate:"required,password"`
	Username  string `json:"username"  validate:"required,min=3,max=32"`
	Role      int    `json:"role"      validate:"omitempty,min=1,max=5"`
	Phone     string `json:"phone"     validate:"required,phone"`
}

func (r RegisterRequest) toInput() service.RegisterInput {
	return service.RegisterInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Username:  r.Username,
		Email:     r.Email,
		Phone:     r.Phone,
		Password:  r.Password,
		Role:      r.Role,
	}
}

// RegisterResponse is returned with 201 after registration.
type RegisterResponse struct {
	AccessToken string `json:"accessToken"`
	ID          int64  `json:"id"`
}

// LoginRequest defines the payload for the login endpoint.
// The email format is not checked here: a malformed address simply fails
// the lookup and yields "Invalid Credentials".
type LoginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginUser is the account summary returned on login.
type LoginUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  int    `json:"role"`
	ID    int64  `json:"id"`
}

// LoginResponse is returned with 200 after a successful login.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	User        LoginUser `json:"user"`
}

// ChangePasswordRequest defines the payload for the password change endpoint.
// The account is taken from the token.
type ChangePasswordRequest struct {
	OldPassword        string `json:"oldPassword"        validate:"required"`
	NewPassword        string `json:"newPassword"        validate:"required"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required"`
}

// ForgotPasswordRequest defines the payload for the password reset endpoint.
type ForgotPasswordRequest struct {
	Username           string `json:"username"           validate:"required"`
	Email              string `json:"email"              validate:"required,email"`
	Phone              string `json:"phone"              validate:"required,phone"`
	NewPassword        string `json:"newPassword"        validate:"required"`
	ConfirmNewPassword string `json:"confirmNewPassword" validate:"required"`
}

// RatingsRequest carries star counts, used both for initial ratings and
// for rating increments.
type RatingsRequest struct {
	OneStar   int64 `json:"rating_1" validate:"gte=0"`
	TwoStar   int64 `json:"rating_2" validate:"gte=0"`
	ThreeStar int64 `json:"rating_3" validate:"gte=0"`
	FourStar  int64 `json:"rating_4" validate:"gte=0"`
	FiveStar  int64 `json:"rating_5" validate:"gte=0"`
}

func (r RatingsRequest) toIncrement() domain.RatingIncrement {
	return domain.RatingIncrement{
		OneStar:   r.OneStar,
		TwoStar:   r.TwoStar,
		ThreeStar: r.ThreeStar,
		FourStar:  r.FourStar,
		FiveStar:  r.FiveStar,
	}
}

// CreateBookRequest defines the payload for adding a book.
type CreateBookRequest struct {
	ISBN13          int64           `json:"isbn13"           validate:"required"`
	Authors         string          `json:"authors"          validate:"required"`
	Title           string          `json:"title"            validate:"required"`
	OriginalTitle   string          `json:"original_title"`
	PublicationYear int             `json:"publication_year" validate:"required"`
	ImageURL        string          `json:"image_url"        validate:"omitempty,url"`
	ImageSmallURL   string          `json:"image_small_url"  validate:"omitempty,url"`
	Ratings         *RatingsRequest `json:"ratings"          validate:"omitempty"`
}

func (r CreateBookRequest) toBook() domain.Book {
	b := domain.Book{
		ISBN13:          r.ISBN13,
		Authors:         r.Authors,
		Title:           r.Title,
		OriginalTitle:   r.OriginalTitle,
		PublicationYear: r.PublicationYear,
		ImageURL:        r.ImageURL,
		ImageSmallURL:   r.ImageSmallURL,
	}
	if r.Ratings != nil {
		b.Ratings = domain.Ratings{
			OneStar:   r.Ratings.OneStar,
			TwoStar:   r.Ratings.TwoStar,
			ThreeStar: r.Ratings.ThreeStar,
			FourStar:  r.Ratings.FourStar,
			FiveStar:  r.Ratings.FiveStar,
		}
	}
	return b
}

// RatingsResponse is the IRatings object of a book.
type RatingsResponse struct {
	Average   float64 `json:"average"`
	Count     int64   `json:"count"`
	OneStar   int64   `json:"rating_1"`
	TwoStar   int64   `json:"rating_2"`
	ThreeStar int64   `json:"rating_3"`
	FourStar  int64   `json:"rating_4"`
	FiveStar  int64   `json:"rating_5"`
}

// URLIconResponse is the IUrlIcon object of a book.
type URLIconResponse struct {
	Large string `json:"large"`
	Small string `json:"small"`
}

// BookDetails is the IBook object of a book.
type BookDetails struct {
	ISBN13        int64           `json:"isbn13"`
	Authors       string          `json:"authors"`
	Publication   int             `json:"publication"`
	OriginalTitle string          `json:"original_title"`
	Title         string          `json:"title"`
	Ratings       RatingsResponse `json:"IRatings"`
	Icons         URLIconResponse `json:"IUrlIcon"`
}

// BookResponse is the wire shape of a catalog entry.
type BookResponse struct {
	ID   int64       `json:"id"`
	Book BookDetails `json:"IBook"`
}

// PaginationResponse describes the page returned by a listing.
type PaginationResponse struct {
	TotalRecords int64 `json:"totalRecords"`
	Limit        int   `json:"limit"`
	Offset       int   `json:"offset"`
	NextPage     int   `json:"nextPage"`
}

// BookListResponse is returned by the listing and search endpoints.
type BookListResponse struct {
	Entries    []BookResponse     `json:"entries"`
	Pagination PaginationResponse `json:"pagination"`
}

// BookEntryResponse wraps a single book.
type BookEntryResponse struct {
	Entry   BookResponse `json:"entry"`
	Message string       `json:"message,omitempty"`
}

// BookEntriesResponse wraps the books removed by a series delete.
type BookEntriesResponse struct {
	Entries []BookResponse `json:"entries"`
}

func bookToResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID: b.ID,
		Book: BookDetails{
			ISBN13:        b.ISBN13,
			Authors:       b.Authors,
			Publication:   b.PublicationYear,
			OriginalTitle: b.OriginalTitle,
			Title:         b.Title,
			Ratings: RatingsResponse{
				Average:   b.Average,
				Count:     b.Count,
				OneStar:   b.OneStar,
				TwoStar:   b.TwoStar,
				ThreeStar: b.ThreeStar,
				FourStar:  b.FourStar,
				FiveStar:  b.FiveStar,
			},
			Icons: URLIconResponse{Large: b.ImageURL, Small: b.ImageSmallURL},
		},
	}
}

func booksToResponse(books []domain.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i := range books {
		out[i] = bookToResponse(&books[i])
	}
	return out
}

func pageToResponse(result *domain.PageResult) BookListResponse {
	return BookListResponse{
		Entries: booksToResponse(result.Books),
		Pagination: PaginationResponse{
			TotalRecords: result.Total,
			Limit:        result.Page.Limit,
			Offset:       result.Page.Offset,
			NextPage:     result.Page.NextOffset(),
		},
	}
}
