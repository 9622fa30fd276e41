package handler

import (
	"errors"
	"net/http"

	"github.com/inkshelf/inkshelf-go/internal/model"
	"github.com/inkshelf/inkshelf-go/internal/service"
)

// SearchHandler handles HTTP requests for book search.
type SearchHandler struct {
	service *service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(svc *service.SearchService) *SearchHandler {
	return &SearchHandler{service: svc}
}

// HandleSearch handles GET /api/books/searchs?query=Q requests.
func (h *SearchHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	books, err := h.service.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQueryRequired):
			writeJSON(w, http.StatusBadRequest, messageBody("incorrect search parameters"))
		case errors.Is(err, service.ErrNoMatches):
			writeJSON(w, http.StatusNotFound, messageBody("No books found matching your search"))
		default:
			writeJSON(w, http.StatusInternalServerError, messageBody("Internal server error"))
		}
		return
	}

	responses := make([]model.SearchBookResponse, len(books))
	for i := range books {
		responses[i] = books[i].SearchResponse()
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Correctly obtained books",
		"Books":   responses,
	})
}
