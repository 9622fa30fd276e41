package model

// Author represents a book author. Both fields are nullable in the schema;
// authors are deduplicated by the exact (full_name, email) pair at write time.
type Author struct {
	ID       int64   `json:"id"`
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

// Genre represents a book genre, deduplicated by name at write time.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"genre"`
}

// Book represents a book row with its author and genre set resolved.
type Book struct {
	ID              int64
	UserID          int64
	Title           string
	PublicationYear int
	Author          Author
	Genres          []Genre
}

// AuthorRequest is the nested author payload of a book create/update request.
type AuthorRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
}

// GenreRequest is one element of the nested genre payload.
type GenreRequest struct {
	Name string `json:"genre" validate:"required"`
}

// BookRequest is the create/update payload for a book. The full genre set is
// supplied on every write; an update replaces the previous set outright.
type BookRequest struct {
	Title           string         `json:"title" validate:"required"`
	Author          AuthorRequest  `json:"author"`
	Genre           []GenreRequest `json:"genre" validate:"dive"`
	PublicationYear int            `json:"publication_year" validate:"required,gt=0"`
}

// BookResponse is the catalog-facing book shape: the genre set is keyed
// "genre" and the owning user id is included.
type BookResponse struct {
	ID              int64   `json:"id"`
	User            int64   `json:"user"`
	Title           string  `json:"title"`
	Author          Author  `json:"author"`
	Genre           []Genre `json:"genre"`
	PublicationYear int     `json:"publication_year"`
}

// SearchBookResponse is the search-facing book shape: genres are keyed
// "genres" and the owner is omitted. Both shapes are preserved as-is from
// the original API.
type SearchBookResponse struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Author          Author  `json:"author"`
	Genres          []Genre `json:"genres"`
	PublicationYear int     `json:"publication_year"`
}

// Response converts a resolved book to its catalog response shape.
func (b *Book) Response() BookResponse {
	return BookResponse{
		ID:              b.ID,
		User:            b.UserID,
		Title:           b.Title,
		Author:          b.Author,
		Genre:           b.Genres,
		PublicationYear: b.PublicationYear,
	}
}

// SearchResponse converts a resolved book to its search response shape.
func (b *Book) SearchResponse() SearchBookResponse {
	return SearchBookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		Genres:          b.Genres,
		PublicationYear: b.PublicationYear,
	}
}
