package service

import (
	"context"
	"errors"
	"testing"

	"github.com/inkshelf/inkshelf-go/internal/model"
)

func bookLoader(book *model.Book, err error) func(context.Context) (*model.Book, error) {
	return func(context.Context) (*model.Book, error) {
		return book, err
	}
}

func ownerOfBook(b *model.Book) int64 { return b.UserID }

func TestRequireOwner_Owned(t *testing.T) {
	book := &model.Book{ID: 7, UserID: 1, Title: "Dune"}

	got, err := requireOwner(context.Background(), bookLoader(book, nil), ownerOfBook, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != book {
		t.Error("expected the loaded book back")
	}
}

func TestRequireOwner_WrongOwner(t *testing.T) {
	book := &model.Book{ID: 7, UserID: 1, Title: "Dune"}

	got, err := requireOwner(context.Background(), bookLoader(book, nil), ownerOfBook, 2)
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if got != nil {
		t.Error("expected nil book on ownership failure")
	}
}

func TestRequireOwner_NotFound(t *testing.T) {
	got, err := requireOwner(context.Background(), bookLoader(nil, ErrBookNotFound), ownerOfBook, 1)
	if !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
	if got != nil {
		t.Error("expected nil book when load fails")
	}
}

func TestRequireOwner_LoadError(t *testing.T) {
	loadErr := errors.New("connection lost")

	_, err := requireOwner(context.Background(), bookLoader(nil, loadErr), ownerOfBook, 1)
	if !errors.Is(err, loadErr) {
		t.Fatalf("expected load error to pass through, got %v", err)
	}
}
