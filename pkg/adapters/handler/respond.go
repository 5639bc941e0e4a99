package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/warakornp/go-shortlink/pkg/core/domain"
)

// response is the envelope every endpoint answers with.
type response struct {
	Success bool   `json:"success"`
	Result  any    `json:"result,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeResult(w http.ResponseWriter, status int, result any) {
	writeJSON(w, status, response{Success: true, Result: result})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response{Success: false, Message: message})
}

// writeError maps intentional domain errors straight through with their
// code, message and details. Anything else is logged and replaced by a
// fixed per-operation 500 message; the underlying error never reaches
// the client.
func writeError(w http.ResponseWriter, err error, op string) {
	var derr *domain.Error
	if errors.As(err, &derr) {
		writeJSON(w, derr.Code, response{Success: false, Message: derr.Message, Details: derr.Details})
		return
	}

	logrus.WithError(err).Errorf("unexpected error when %s", op)
	writeMessage(w, http.StatusInternalServerError, "Internal Server Error when "+op)
}
