package handler

import (
	"encoding/json"
	"net/http"

	"github.com/warakornp/go-shortlink/pkg/core/domain"
	"github.com/warakornp/go-shortlink/pkg/ports"
)

type AuthHandler struct {
	service ports.AccountService
}

func NewAuthHandler(service ports.AccountService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResult struct {
	Token   string               `json:"token"`
	Account domain.PublicAccount `json:"account"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, token, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, err, "logging in")
		return
	}

	writeResult(w, http.StatusOK, sessionResult{Token: token, Account: account.Public()})
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	account, err := h.service.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeError(w, err, "registering")
		return
	}

	writeResult(w, http.StatusOK, account.Public())
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeResult(w, http.StatusOK, account.Public())
}

func (h *AuthHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		NewEmail string `json:"newEmail"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateEmail(r.Context(), account, req.NewEmail, req.Password)
	if err != nil {
		writeError(w, err, "updating email")
		return
	}

	writeResult(w, http.StatusOK, updated.Public())
}

func (h *AuthHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Password    string `json:"password"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdatePassword(r.Context(), account, req.Password, req.NewPassword)
	if err != nil {
		writeError(w, err, "updating password")
		return
	}

	writeResult(w, http.StatusOK, updated.Public())
}

func (h *AuthHandler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		NewUsername string `json:"newUsername"`
		Password    string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.UpdateUsername(r.Context(), account, req.NewUsername, req.Password)
	if err != nil {
		writeError(w, err, "updating username")
		return
	}

	writeResult(w, http.StatusOK, updated.Public())
}

func (h *AuthHandler) NewSecret(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	secret, err := h.service.IssueSecret(r.Context(), account)
	if err != nil {
		writeError(w, err, "issuing secret")
		return
	}

	writeResult(w, http.StatusOK, map[string]string{"secret": secret})
}
