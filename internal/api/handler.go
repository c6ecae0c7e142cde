package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/alexanderramin/menus/internal/contract"
	"github.com/alexanderramin/menus/internal/domain"
	"github.com/alexanderramin/menus/internal/service"
	"github.com/gorilla/mux"
)

const maxBodyBytes = 1 << 20

// MenuHandler serves the menu HTTP API on top of a MenuService.
type MenuHandler struct {
	Service service.MenuService
	logger  *slog.Logger
}

// NewMenuHandler creates a MenuHandler. A nil logger uses slog.Default().
func NewMenuHandler(svc service.MenuService, logger *slog.Logger) *MenuHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &MenuHandler{Service: svc, logger: logger}
}

// ListTree handles GET /api/menus.
func (h *MenuHandler) ListTree(w http.ResponseWriter, r *http.Request) {
	roots, err := h.Service.Tree(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewTreeViews(roots))
}

// Create handles POST /api/menus.
func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateMenuRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.Service.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/menus/"+item.ID)
	writeJSON(w, http.StatusCreated, contract.NewMenuView(item))
}

// Get handles GET /api/menus/{id}.
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewDetailView(detail.Item, detail.Parent, detail.Children))
}

// Update handles PUT /api/menus/{id}.
func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateMenuRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.Service.Update(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewMenuView(item))
}

// Delete handles DELETE /api/menus/{id}.
func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.DeleteView{ID: result.ID, DeletedIDs: result.DeletedIDs})
}

// Move handles PATCH /api/menus/{id}/move.
func (h *MenuHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req contract.MoveMenuRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.Service.Move(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewMenuView(item))
}

// Reorder handles PATCH /api/menus/{id}/reorder.
func (h *MenuHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req contract.ReorderMenuRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	item, err := h.Service.Reorder(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contract.NewMenuView(item))
}

// Check handles GET /api/menus/check.
func (h *MenuHandler) Check(w http.ResponseWriter, r *http.Request) {
	violations, err := h.Service.Check(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	views := make([]contract.ViolationView, len(violations))
	for i, v := range violations {
		views[i] = contract.NewViolationView(v.ParentID, v.Size, v.Violation)
	}
	writeJSON(w, http.StatusOK, views)
}

// decodeBody reads a single JSON object. Malformed bodies and unknown
// fields are validation errors.
func decodeBody(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError("body", "is required")
		}
		return fmt.Errorf("decoding request body: %s: %w", err.Error(), domain.ErrValidation)
	}
	if dec.More() {
		return domain.NewValidationError("body", "must contain a single JSON object")
	}
	return nil
}
