package menu

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/usrinivasan240-cpu/shareplate-api/internal/cache"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/common"
	"github.com/usrinivasan240-cpu/shareplate-api/internal/obs"
)

// Repo is the persistence collaborator consumed by the handlers.
type Repo interface {
	List(ctx context.Context, canteenID string) ([]Item, error)
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, id primitive.ObjectID, item *Item) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// Handler exposes menu browsing and administration endpoints. Mutations are
// gated by the auth middleware at the router; handlers assume an authorized
// caller.
type Handler struct {
	Repo     Repo
	Cache    *cache.Cache
	Validate *validator.Validate
	Logger   zerolog.Logger
}

type itemPayload struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Category    string   `json:"category" validate:"required"`
	CanteenID   string   `json:"canteenId" validate:"required"`
	Available   *bool    `json:"available"`
	ImageURL    string   `json:"imageUrl"`
}

// List returns menu items, cached per canteen filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "menu repo not configured", nil)
		return
	}
	canteenID := strings.TrimSpace(r.URL.Query().Get("canteenId"))
	key := cacheKey(canteenID)

	var cached []Item
	if found, err := h.Cache.GetJSON(r.Context(), key, &cached); err == nil && found {
		common.JSON(w, http.StatusOK, map[string]any{"data": cached})
		return
	}

	items, err := h.Repo.List(r.Context(), canteenID)
	if err != nil {
		h.Logger.Error().Err(err).Msg("list menu items")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unable to load menu", nil)
		return
	}
	if items == nil {
		items = []Item{}
	}
	if err := h.Cache.SetJSON(r.Context(), key, items); err != nil {
		h.Logger.Warn().Err(err).Msg("cache menu items")
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": items})
}

// Create inserts a new menu item and echoes the created record.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "menu repo not configured", nil)
		return
	}
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}
	item := payload.toItem()
	if err := h.Repo.Create(r.Context(), &item); err != nil {
		countWrite("create", "error")
		h.Logger.Error().Err(err).Msg("create menu item")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to create menu item", nil)
		return
	}
	countWrite("create", "ok")
	h.invalidate(r.Context(), item.CanteenID)
	common.JSON(w, http.StatusCreated, map[string]any{"data": item})
}

// Update replaces an existing item's fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "menu repo not configured", nil)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}
	item := payload.toItem()
	if err := h.Repo.Update(r.Context(), id, &item); err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "menu item not found", nil)
			return
		}
		countWrite("update", "error")
		h.Logger.Error().Err(err).Msg("update menu item")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to update menu item", nil)
		return
	}
	countWrite("update", "ok")
	h.invalidate(r.Context(), item.CanteenID)
	common.JSON(w, http.StatusOK, map[string]any{"data": item})
}

// Delete removes an item.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.Repo == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "menu repo not configured", nil)
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	if err := h.Repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "menu item not found", nil)
			return
		}
		countWrite("delete", "error")
		h.Logger.Error().Err(err).Msg("delete menu item")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete menu item", nil)
		return
	}
	countWrite("delete", "ok")
	h.invalidate(r.Context(), "")
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"deleted": true}})
}

func (h *Handler) decodePayload(w http.ResponseWriter, r *http.Request) (itemPayload, bool) {
	var payload itemPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return itemPayload{}, false
	}
	if err := h.validate().Struct(payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "name, price, category and canteenId are required", nil)
		return itemPayload{}, false
	}
	return payload, true
}

func (p itemPayload) toItem() Item {
	available := true
	if p.Available != nil {
		available = *p.Available
	}
	var price float64
	if p.Price != nil {
		price = *p.Price
	}
	return Item{
		Name:        strings.TrimSpace(p.Name),
		Description: strings.TrimSpace(p.Description),
		Price:       price,
		Category:    strings.TrimSpace(p.Category),
		CanteenID:   strings.TrimSpace(p.CanteenID),
		Available:   available,
		ImageURL:    strings.TrimSpace(p.ImageURL),
	}
}

func (h *Handler) validate() *validator.Validate {
	if h.Validate != nil {
		return h.Validate
	}
	return validator.New()
}

func (h *Handler) invalidate(ctx context.Context, canteenID string) {
	keys := []string{cacheKey("")}
	if canteenID != "" {
		keys = append(keys, cacheKey(canteenID))
	}
	if err := h.Cache.Invalidate(ctx, keys...); err != nil {
		h.Logger.Warn().Err(err).Msg("invalidate menu cache")
	}
}

func cacheKey(canteenID string) string {
	if canteenID == "" {
		return "menu:all"
	}
	return "menu:canteen:" + canteenID
}

func countWrite(action, result string) {
	if obs.MenuWritesTotal != nil {
		obs.MenuWritesTotal.WithLabelValues(action, result).Inc()
	}
}
