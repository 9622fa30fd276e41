package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/inkshelf/inkshelf-go/internal/model"
)

var ErrBookNotFound = errors.New("book not found")

// BookRepository handles persistence for books and their author/genre
// sub-entities. Authors and genres are deduplicated at write time by an
// atomic insert-or-fetch on their natural keys, so concurrent creates of the
// same author or genre resolve to a single row.
type BookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new BookRepository.
func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

// BeginTx starts a new database transaction.
func (r *BookRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.db.BeginTx(ctx, nil)
}

// getOrCreateQuery uses LAST_INSERT_ID(id) so that LastInsertId reports the
// surviving row's id whether the insert succeeded or hit the unique key.
const (
	getOrCreateAuthorQuery = `INSERT INTO authors (full_name, email) VALUES (?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`
	getOrCreateGenreQuery = `INSERT INTO genres (genre) VALUES (?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`
)

// GetOrCreateAuthorTx resolves an author row by the exact (full_name, email)
// pair, inserting one if absent, and returns its id.
func (r *BookRepository) GetOrCreateAuthorTx(ctx context.Context, tx *sql.Tx, fullName, email *string) (int64, error) {
	result, err := tx.ExecContext(ctx, getOrCreateAuthorQuery, fullName, email)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// GetOrCreateGenreTx resolves a genre row by name, inserting one if absent,
// and returns its id.
func (r *BookRepository) GetOrCreateGenreTx(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	result, err := tx.ExecContext(ctx, getOrCreateGenreQuery, name)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// InsertBookTx inserts a new book row and returns its id.
func (r *BookRepository) InsertBookTx(ctx context.Context, tx *sql.Tx, userID, authorID int64, title string, publicationYear int) (int64, error) {
	query := `INSERT INTO books (user_id, author_id, title, publication_year) VALUES (?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, query, userID, authorID, title, publicationYear)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

// UpdateBookTx replaces a book's title, publication year and author reference.
func (r *BookRepository) UpdateBookTx(ctx context.Context, tx *sql.Tx, bookID, authorID int64, title string, publicationYear int) error {
	query := `UPDATE books SET title = ?, publication_year = ?, author_id = ? WHERE id = ?`

	_, err := tx.ExecContext(ctx, query, title, publicationYear, authorID, bookID)
	return err
}

// ReplaceGenresTx replaces a book's genre association set with the given
// genre ids. The previous set is discarded, not merged.
func (r *BookRepository) ReplaceGenresTx(ctx context.Context, tx *sql.Tx, bookID int64, genreIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM book_genres WHERE book_id = ?`, bookID); err != nil {
		return err
	}

	for _, genreID := range genreIDs {
		query := `INSERT INTO book_genres (book_id, genre_id) VALUES (?, ?)
			ON DUPLICATE KEY UPDATE genre_id = genre_id`
		if _, err := tx.ExecContext(ctx, query, bookID, genreID); err != nil {
			return err
		}
	}
	return nil
}

// GetByID retrieves a book with its author and genre set.
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `SELECT b.id, b.user_id, b.title, b.publication_year, a.id, a.full_name, a.email
		FROM books b JOIN authors a ON a.id = b.author_id
		WHERE b.id = ?`

	book, err := scanBook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if book.Genres, err = r.listGenres(ctx, book.ID); err != nil {
		return nil, err
	}
	return book, nil
}

// ListByUser retrieves all books owned by a user, with authors and genres
// resolved, ordered by id.
func (r *BookRepository) ListByUser(ctx context.Context, userID int64) ([]model.Book, error) {
	query := `SELECT b.id, b.user_id, b.title, b.publication_year, a.id, a.full_name, a.email
		FROM books b JOIN authors a ON a.id = b.author_id
		WHERE b.user_id = ?
		ORDER BY b.id`

	return r.queryBooks(ctx, query, userID)
}

// Search retrieves all books, regardless of owner, whose title, author name
// or any genre name contains the query as a case-insensitive substring.
// Results are de-duplicated by book id.
func (r *BookRepository) Search(ctx context.Context, query string) ([]model.Book, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	stmt := `SELECT DISTINCT b.id, b.user_id, b.title, b.publication_year, a.id, a.full_name, a.email
		FROM books b
		JOIN authors a ON a.id = b.author_id
		LEFT JOIN book_genres bg ON bg.book_id = b.id
		LEFT JOIN genres g ON g.id = bg.genre_id
		WHERE LOWER(b.title) LIKE ? OR LOWER(a.full_name) LIKE ? OR LOWER(g.genre) LIKE ?
		ORDER BY b.id`

	return r.queryBooks(ctx, stmt, pattern, pattern, pattern)
}

// Delete hard-deletes a book. Genre associations are removed by the
// book_genres cascade; author and genre rows persist.
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrBookNotFound
	}
	return nil
}

func (r *BookRepository) queryBooks(ctx context.Context, query string, args ...any) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []model.Book
	for rows.Next() {
		var b model.Book
		var fullName, email sql.NullString
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.Title, &b.PublicationYear,
			&b.Author.ID, &fullName, &email,
		); err != nil {
			return nil, err
		}
		b.Author.FullName = nullableString(fullName)
		b.Author.Email = nullableString(email)
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range books {
		if books[i].Genres, err = r.listGenres(ctx, books[i].ID); err != nil {
			return nil, err
		}
	}
	return books, nil
}

func (r *BookRepository) listGenres(ctx context.Context, bookID int64) ([]model.Genre, error) {
	query := `SELECT g.id, g.genre
		FROM genres g JOIN book_genres bg ON bg.genre_id = g.id
		WHERE bg.book_id = ?
		ORDER BY g.id`

	rows, err := r.db.QueryContext(ctx, query, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	genres := make([]model.Genre, 0)
	for rows.Next() {
		var g model.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

func scanBook(row *sql.Row) (*model.Book, error) {
	book := &model.Book{}
	var fullName, email sql.NullString
	err := row.Scan(
		&book.ID, &book.UserID, &book.Title, &book.PublicationYear,
		&book.Author.ID, &fullName, &email,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	book.Author.FullName = nullableString(fullName)
	book.Author.Email = nullableString(email)
	return book, nil
}

func nullableString(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// escapeLike escapes LIKE metacharacters so the user's query matches
// literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
