package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"SadaaFM/cache"
	"SadaaFM/config"
	"SadaaFM/logger"
	"SadaaFM/model"
	"SadaaFM/repository"

	"github.com/gorilla/mux"
)

// APIHandler handles all API requests.
type APIHandler struct {
	repo  repository.InstrumentalRepository
	plays repository.PlayEventRepository
	cfg   *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(
	repo repository.InstrumentalRepository,
	plays repository.PlayEventRepository,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		repo:  repo,
		plays: plays,
		cfg:   cfg,
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", logger.ErrorField(err))
	}
}

// RootHandler reports the service banner.
func (h *APIHandler) RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "Sadaa Instrumentals API"})
}

// GetInstrumentalsHandler lists the catalog, optionally filtered by the
// is_premium query parameter. The ringtone field passes through verbatim.
func (h *APIHandler) GetInstrumentalsHandler(w http.ResponseWriter, r *http.Request) {
	var isPremium *bool
	if raw := r.URL.Query().Get("is_premium"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			http.Error(w, "Invalid is_premium value", http.StatusBadRequest)
			return
		}
		isPremium = &v
	}

	cacheKey := cache.CatalogKeyAll(isPremium)
	if items, ok := cache.GetCatalog(r.Context(), cacheKey); ok {
		writeJSON(w, http.StatusOK, items)
		return
	}

	items, err := h.repo.GetAll(r.Context(), isPremium)
	if err != nil {
		logger.Error("failed to list instrumentals", logger.ErrorField(err))
		http.Error(w, "Failed to list instrumentals", http.StatusInternalServerError)
		return
	}

	cache.SetCatalog(r.Context(), cacheKey, items)
	writeJSON(w, http.StatusOK, items)
}

// GetFeaturedHandler lists the curated featured subset.
func (h *APIHandler) GetFeaturedHandler(w http.ResponseWriter, r *http.Request) {
	if items, ok := cache.GetCatalog(r.Context(), cache.CatalogKeyFeatured); ok {
		writeJSON(w, http.StatusOK, items)
		return
	}

	items, err := h.repo.GetFeatured(r.Context())
	if err != nil {
		logger.Error("failed to list featured instrumentals", logger.ErrorField(err))
		http.Error(w, "Failed to list featured instrumentals", http.StatusInternalServerError)
		return
	}

	cache.SetCatalog(r.Context(), cache.CatalogKeyFeatured, items)
	writeJSON(w, http.StatusOK, items)
}

// GetInstrumentalHandler fetches one instrumental by id.
func (h *APIHandler) GetInstrumentalHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ins, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		logger.Error("failed to get instrumental", logger.String("id", id), logger.ErrorField(err))
		http.Error(w, "Failed to get instrumental", http.StatusInternalServerError)
		return
	}
	if ins == nil {
		http.Error(w, "Instrumental not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, ins)
}

// CreateInstrumentalHandler creates a record, assigning id and created_at.
func (h *APIHandler) CreateInstrumentalHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateInstrumentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		http.Error(w, "Title is required", http.StatusBadRequest)
		return
	}

	ins, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		logger.Error("failed to create instrumental", logger.ErrorField(err))
		http.Error(w, "Failed to create instrumental", http.StatusInternalServerError)
		return
	}

	cache.InvalidateCatalog(r.Context())
	logger.Info("instrumental created",
		logger.String("id", ins.ID),
		logger.String("title", ins.Title),
		logger.Bool("hasRingtone", ins.HasRingtone()),
	)
	writeJSON(w, http.StatusOK, ins)
}

// UpdateInstrumentalHandler applies a partial update, including setting or
// clearing the ringtone URL. Unknown ids return 404 and leave the store
// unchanged.
func (h *APIHandler) UpdateInstrumentalHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req model.UpdateInstrumentalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ins, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		logger.Error("failed to update instrumental", logger.String("id", id), logger.ErrorField(err))
		http.Error(w, "Failed to update instrumental", http.StatusInternalServerError)
		return
	}
	if ins == nil {
		http.Error(w, "Instrumental not found", http.StatusNotFound)
		return
	}

	cache.InvalidateCatalog(r.Context())
	writeJSON(w, http.StatusOK, ins)
}

// PlayHandler increments an instrumental's play count and appends a play
// event. Event logging is best effort; the count is the source of truth.
func (h *APIHandler) PlayHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ins, err := h.repo.IncrementPlayCount(r.Context(), id)
	if err != nil {
		logger.Error("failed to increment play count", logger.String("id", id), logger.ErrorField(err))
		http.Error(w, "Failed to record play", http.StatusInternalServerError)
		return
	}
	if ins == nil {
		http.Error(w, "Instrumental not found", http.StatusNotFound)
		return
	}

	if h.plays != nil {
		if err := h.plays.Record(r.Context(), id); err != nil {
			logger.Warn("failed to record play event", logger.String("id", id), logger.ErrorField(err))
		}
	}

	cache.InvalidateCatalog(r.Context())
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":         ins.ID,
		"play_count": ins.PlayCount,
	})
}
