package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/inkshelf/inkshelf-go/internal/middleware"
	"github.com/inkshelf/inkshelf-go/internal/model"
	"github.com/inkshelf/inkshelf-go/internal/service"
	"github.com/inkshelf/inkshelf-go/internal/validate"
)

// BookHandler handles HTTP requests for book catalog operations.
type BookHandler struct {
	service *service.CatalogService
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(svc *service.CatalogService) *BookHandler {
	return &BookHandler{service: svc}
}

// HandleCreate handles POST /api/books/create requests.
func (h *BookHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageBody("Invalid token"))
		return
	}

	req, ok := decodeBookRequest(w, r)
	if !ok {
		return
	}

	book, err := h.service.Create(r.Context(), user.ID, req)
	if err != nil {
		var fe validate.FieldErrors
		if errors.As(err, &fe) {
			writeJSON(w, http.StatusBadRequest, validationBody("Error when creating the book", fe))
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Successfully created book",
		"Book":    book.Response(),
	})
}

// HandleList handles GET /api/books/all requests.
func (h *BookHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageBody("Invalid token"))
		return
	}

	books, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNoBooks) {
			writeJSON(w, http.StatusNotFound, messageBody("Books not found for the current user"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		return
	}

	responses := make([]model.BookResponse, len(books))
	for i := range books {
		responses[i] = books[i].Response()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Correctly obtained books for the current user",
		"Books":   responses,
	})
}

// HandleGet handles GET /api/books/{id} requests.
func (h *BookHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageBody("Invalid token"))
		return
	}

	bookID, ok := bookIDParam(w, r)
	if !ok {
		return
	}

	book, err := h.service.Get(r.Context(), user.ID, bookID)
	if err != nil {
		writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Correctly obtained book",
		"Book":    book.Response(),
	})
}

// HandleUpdate handles PUT /api/books/update/{id} requests.
func (h *BookHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageBody("Invalid token"))
		return
	}

	bookID, ok := bookIDParam(w, r)
	if !ok {
		return
	}

	req, ok := decodeBookRequest(w, r)
	if !ok {
		return
	}

	book, err := h.service.Update(r.Context(), user.ID, bookID, req)
	if err != nil {
		var fe validate.FieldErrors
		if errors.As(err, &fe) {
			writeJSON(w, http.StatusBadRequest, validationBody("Error updating book", fe))
			return
		}
		writeCatalogError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Book updated successfully",
		"Book":    book.Response(),
	})
}

// HandleDelete handles DELETE /api/books/delete/{id} requests.
func (h *BookHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageBody("Invalid token"))
		return
	}

	bookID, ok := bookIDParam(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), user.ID, bookID); err != nil {
		writeCatalogError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// bookIDParam parses the {id} path parameter. A non-numeric id is reported
// as not found, matching the original route behavior.
func bookIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeJSON(w, http.StatusNotFound, messageBody("Book not found"))
		return 0, false
	}
	return id, true
}

func decodeBookRequest(w http.ResponseWriter, r *http.Request) (model.BookRequest, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeJSON(w, http.StatusRequestEntityTooLarge, messageBody("Request body too large"))
			return req, false
		}
		writeJSON(w, http.StatusBadRequest, messageBody("Invalid request body"))
		return req, false
	}
	return req, true
}

// writeCatalogError maps ownership-guard failures to their status codes.
func writeCatalogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBookNotFound):
		writeJSON(w, http.StatusNotFound, messageBody("Book not found"))
	case errors.Is(err, service.ErrNotOwner):
		writeJSON(w, http.StatusForbidden, messageBody("You are not allowed to access this book"))
	default:
		writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
	}
}
