// internal/lending/handler.go
package lending

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/spoorthi225f2/Library/internal/accounts"
	"github.com/spoorthi225f2/Library/internal/catalog"
	"github.com/spoorthi225f2/Library/internal/platform/auth"
)

type Handler struct {
	service Service
	books   catalog.Service
	logger  *slog.Logger
}

func NewHandler(service Service, books catalog.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, books: books, logger: logger}
}

// HandleBorrow checks a book out to the authenticated member.
func (h *Handler) HandleBorrow(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	bookID, err := uuid.Parse(chi.URLParam(r, "bookID"))
	if err != nil {
		http.Error(w, "invalid book ID", http.StatusBadRequest)
		return
	}

	record, err := h.service.Borrow(r.Context(), ident.UserID, bookID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, record)
}

// HandleReturn returns a book previously borrowed by the caller.
func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	bookID, err := uuid.Parse(chi.URLParam(r, "bookID"))
	if err != nil {
		http.Error(w, "invalid book ID", http.StatusBadRequest)
		return
	}

	if err := h.service.Return(r.Context(), ident.UserID, bookID); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDashboard reports the member's open loan count and how many
// books are currently available to borrow.
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	active, err := h.service.ActiveFor(r.Context(), ident.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	available, err := h.books.ListAvailable(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"borrowed_books_count":  len(active),
		"available_books_count": len(available),
	})
}

// HandleBooks lists the available catalog along with the caller's open
// loans, so the client can offer borrow or return per book.
func (h *Handler) HandleBooks(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	available, err := h.books.ListAvailable(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	active, err := h.service.ActiveFor(r.Context(), ident.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"available": available,
		"borrowed":  active,
	})
}

// HandleHistory lists the caller's full borrow history.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ident, ok := h.requireMember(w, r)
	if !ok {
		return
	}

	history, err := h.service.HistoryFor(r.Context(), ident.UserID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// requireMember performs the capability check and hands back the
// authenticated identity, which is passed explicitly into the service.
func (h *Handler) requireMember(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	ident, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return auth.Identity{}, false
	}
	if ident.Role != accounts.RoleMember {
		http.Error(w, "member role required", http.StatusForbidden)
		return auth.Identity{}, false
	}
	return ident, true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrBookNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrBookUnavailable), errors.Is(err, ErrNoActiveBorrow):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("lending request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
