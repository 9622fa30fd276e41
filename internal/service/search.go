package service

import (
	"context"
	"errors"

	"github.com/inkshelf/inkshelf-go/internal/model"
	"github.com/inkshelf/inkshelf-go/internal/repository"
)

var (
	ErrQueryRequired = errors.New("search query is required")
	ErrNoMatches     = errors.New("no books matched the search")
)

// SearchService handles keyword search over the whole catalog. Unlike the
// catalog component, search is not scoped to the caller's books; that
// asymmetry is preserved from the original API.
type SearchService struct {
	repo *repository.BookRepository
}

// NewSearchService creates a new SearchService.
func NewSearchService(repo *repository.BookRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Search returns all books whose title, author name or any genre name
// contains the query as a case-insensitive substring, de-duplicated by book
// id. An empty result is reported as ErrNoMatches.
func (s *SearchService) Search(ctx context.Context, query string) ([]model.Book, error) {
	if query == "" {
		return nil, ErrQueryRequired
	}

	books, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, ErrNoMatches
	}
	return books, nil
}
