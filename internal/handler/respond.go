package handler

import (
	"encoding/json"
	"net/http"

	"github.com/inkshelf/inkshelf-go/internal/validate"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func messageBody(msg string) map[string]string {
	return map[string]string{"message": msg}
}

func validationBody(msg string, fe validate.FieldErrors) map[string]any {
	return map[string]any{"message": msg, "errors": fe}
}
