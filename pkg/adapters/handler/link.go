package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/warakornp/go-shortlink/pkg/ports"
)

// maxPagesize caps list queries before they reach the store.
const maxPagesize = 100

type LinkHandler struct {
	service ports.LinkService
}

func NewLinkHandler(service ports.LinkService) *LinkHandler {
	return &LinkHandler{service: service}
}

func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	pagesize, _ := strconv.Atoi(r.URL.Query().Get("pagesize"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	sort := r.URL.Query().Get("sort")

	if pagesize > maxPagesize {
		writeMessage(w, http.StatusBadRequest, "Pagesize limit is 100 items")
		return
	}

	result, err := h.service.List(r.Context(), page, pagesize, sort)
	if err != nil {
		writeError(w, err, "listing links")
		return
	}

	writeResult(w, http.StatusOK, result)
}

// Get is the public redirect-resolution endpoint; it returns only the
// destination.
func (h *LinkHandler) Get(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")

	link, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err, "getting link")
		return
	}
	if link == nil {
		writeMessage(w, http.StatusNotFound, "invalid link")
		return
	}

	writeResult(w, http.StatusOK, map[string]string{"destination": link.Destination})
}

// Redirect serves short URLs directly, sharing the slug lookup with Get.
func (h *LinkHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	link, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		writeError(w, err, "getting link")
		return
	}
	if link == nil {
		writeMessage(w, http.StatusNotFound, "invalid link")
		return
	}

	http.Redirect(w, r, link.Destination, http.StatusFound)
}

func (h *LinkHandler) Create(w http.ResponseWriter, r *http.Request) {
	account, ok := AccountFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Slug        string `json:"slug"`
		Destination string `json:"destination"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.service.Create(r.Context(), account.ID, req.Slug, req.Destination)
	if err != nil {
		writeError(w, err, "creating link")
		return
	}

	writeResult(w, http.StatusOK, link.Public())
}

func (h *LinkHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          int64  `json:"id"`
		Slug        string `json:"slug"`
		Destination string `json:"destination"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	link, err := h.service.Update(r.Context(), req.ID, req.Slug, req.Destination)
	if err != nil {
		writeError(w, err, "updating link")
		return
	}

	writeResult(w, http.StatusOK, link.Public())
}

func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Remove(r.Context(), req.ID); err != nil {
		writeError(w, err, "deleting link")
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true})
}
