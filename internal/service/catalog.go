package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/inkshelf/inkshelf-go/internal/model"
	"github.com/inkshelf/inkshelf-go/internal/repository"
	"github.com/inkshelf/inkshelf-go/internal/validate"
)

var (
	ErrBookNotFound = errors.New("book not found")
	ErrNoBooks      = errors.New("no books owned by user")
)

// CatalogService handles book CRUD with ownership enforcement.
type CatalogService struct {
	repo *repository.BookRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(repo *repository.BookRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

// Create validates the payload and creates a book owned by the caller. The
// author and each genre are resolved by get-or-create on their natural keys,
// so repeated payloads reuse the same sub-entity rows.
func (s *CatalogService) Create(ctx context.Context, userID int64, req model.BookRequest) (*model.Book, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	authorID, err := s.repo.GetOrCreateAuthorTx(ctx, tx, req.Author.FullName, req.Author.Email)
	if err != nil {
		return nil, err
	}

	bookID, err := s.repo.InsertBookTx(ctx, tx, userID, authorID, req.Title, req.PublicationYear)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, tx, bookID, req.Genre)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.Book{
		ID:              bookID,
		UserID:          userID,
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		Author: model.Author{
			ID:       authorID,
			FullName: req.Author.FullName,
			Email:    req.Author.Email,
		},
		Genres: genres,
	}, nil
}

// List returns all books owned by the caller. An empty shelf is reported as
// ErrNoBooks, preserving the API's 404-on-empty behavior.
func (s *CatalogService) List(ctx context.Context, userID int64) ([]model.Book, error) {
	books, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoBooks
	}
	return books, nil
}

// Get returns a book owned by the caller.
func (s *CatalogService) Get(ctx context.Context, userID, bookID int64) (*model.Book, error) {
	return s.ownedBook(ctx, userID, bookID)
}

// Update validates the payload and replaces the book's title, publication
// year, author reference and full genre set. The previous genre set is not
// merged with the new one.
func (s *CatalogService) Update(ctx context.Context, userID, bookID int64, req model.BookRequest) (*model.Book, error) {
	// The ownership guard runs before payload validation: a caller who does
	// not own the book gets 403/404 even for an invalid payload.
	book, err := s.ownedBook(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(req); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	authorID, err := s.repo.GetOrCreateAuthorTx(ctx, tx, req.Author.FullName, req.Author.Email)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateBookTx(ctx, tx, book.ID, authorID, req.Title, req.PublicationYear); err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, tx, book.ID, req.Genre)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.Book{
		ID:              book.ID,
		UserID:          book.UserID,
		Title:           req.Title,
		PublicationYear: req.PublicationYear,
		Author: model.Author{
			ID:       authorID,
			FullName: req.Author.FullName,
			Email:    req.Author.Email,
		},
		Genres: genres,
	}, nil
}

// Delete removes a book owned by the caller. Genre associations cascade;
// author and genre rows persist.
func (s *CatalogService) Delete(ctx context.Context, userID, bookID int64) error {
	book, err := s.ownedBook(ctx, userID, bookID)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, book.ID)
}

// ownedBook is the ownership guard in front of get/update/delete: absent
// books surface as ErrBookNotFound, foreign books as ErrNotOwner.
func (s *CatalogService) ownedBook(ctx context.Context, userID, bookID int64) (*model.Book, error) {
	return requireOwner(ctx,
		func(ctx context.Context) (*model.Book, error) {
			book, err := s.repo.GetByID(ctx, bookID)
			if errors.Is(err, repository.ErrBookNotFound) {
				return nil, ErrBookNotFound
			}
			return book, err
		},
		func(b *model.Book) int64 { return b.UserID },
		userID,
	)
}

// resolveGenres get-or-creates each requested genre and replaces the book's
// association set within the transaction.
func (s *CatalogService) resolveGenres(ctx context.Context, tx *sql.Tx, bookID int64, reqs []model.GenreRequest) ([]model.Genre, error) {
	genres := make([]model.Genre, 0, len(reqs))
	genreIDs := make([]int64, 0, len(reqs))
	for _, g := range reqs {
		id, err := s.repo.GetOrCreateGenreTx(ctx, tx, g.Name)
		if err != nil {
			return nil, err
		}
		genres = append(genres, model.Genre{ID: id, Name: g.Name})
		genreIDs = append(genreIDs, id)
	}

	if err := s.repo.ReplaceGenresTx(ctx, tx, bookID, genreIDs); err != nil {
		return nil, err
	}
	return genres, nil
}
