package banshandlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	bansservice "github.com/ss13hub/banwatch/app/modules/bans/application"
	"github.com/ss13hub/banwatch/app/modules/bans/domain"
	"github.com/ss13hub/banwatch/app/modules/bans/infrastructure/cache"
)

// CacheRefresher is the manual-reload entry point the handlers expose.
type CacheRefresher interface {
	Refresh(ctx context.Context) (cache.Sizes, error)
}

// Handlers serves the ban lookup API.
type Handlers struct {
	service   bansservice.Lookup
	refresher CacheRefresher
	logger    *slog.Logger
}

func NewHandlers(service bansservice.Lookup, refresher CacheRefresher, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		service:   service,
		refresher: refresher,
		logger:    logger,
	}
}

type banResponse struct {
	Kind            string     `json:"kind"`
	PlayerID        string     `json:"player_id"`
	AdminID         string     `json:"admin_id"`
	Reason          string     `json:"reason"`
	IssuedBy        string     `json:"issued_by"`
	IssuedAt        time.Time  `json:"issued_at"`
	Job             string     `json:"job,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleGetPlayerBans serves GET /api/players/{ckey}/bans.
func (h *Handlers) HandleGetPlayerBans(w http.ResponseWriter, r *http.Request) {
	ckey := chi.URLParam(r, "ckey")

	jobBansOnly, order, ok := h.parseFilters(w, r)
	if !ok {
		return
	}

	bans, err := h.service.GetBans(r.Context(), ckey, r.URL.Query().Get("admin"), jobBansOnly, order)
	if err != nil {
		if errors.Is(err, bansservice.ErrUnknownPlayer) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown player ckey"})
			return
		}
		h.logger.ErrorContext(r.Context(), "Player ban lookup failed", "ckey", ckey, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, toResponses(bans))
}

// HandleGetAdminBans serves GET /api/admins/{ackey}/bans.
func (h *Handlers) HandleGetAdminBans(w http.ResponseWriter, r *http.Request) {
	ackey := chi.URLParam(r, "ackey")

	jobBansOnly, order, ok := h.parseFilters(w, r)
	if !ok {
		return
	}

	bans, err := h.service.GetAdminBans(r.Context(), ackey, jobBansOnly, order)
	if err != nil {
		if errors.Is(err, bansservice.ErrUnknownAdmin) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown admin ckey"})
			return
		}
		h.logger.ErrorContext(r.Context(), "Admin ban lookup failed", "a_ckey", ackey, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, toResponses(bans))
}

// HandleRefreshCache serves POST /api/cache/refresh. The reload is synchronous;
// the response carries the post-refresh set sizes.
func (h *Handlers) HandleRefreshCache(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.refresher.Refresh(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Manual cache refresh failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "cache refresh failed"})
		return
	}

	writeJSON(w, http.StatusOK, sizes)
}

func (h *Handlers) parseFilters(w http.ResponseWriter, r *http.Request) (jobBansOnly bool, order domain.Order, ok bool) {
	if raw := r.URL.Query().Get("job"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "job must be a boolean"})
			return false, domain.NoOrder, false
		}
		jobBansOnly = parsed
	}

	order, err := domain.ParseOrder(r.URL.Query().Get("order"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return false, domain.NoOrder, false
	}

	return jobBansOnly, order, true
}

func toResponses(bans []domain.Ban) []banResponse {
	out := make([]banResponse, 0, len(bans))
	for _, ban := range bans {
		out = append(out, toResponse(ban))
	}
	return out
}

func toResponse(ban domain.Ban) banResponse {
	base := ban.Base()
	resp := banResponse{
		Kind:     string(ban.Kind()),
		PlayerID: base.PlayerID,
		AdminID:  base.AdminID,
		Reason:   base.Reason,
		IssuedBy: base.IssuedBy,
		IssuedAt: base.IssuedAt,
	}

	switch b := ban.(type) {
	case domain.TempBan:
		resp.DurationMinutes = &b.DurationMinutes
		expires := b.ExpiresAt
		resp.ExpiresAt = &expires
	case domain.JobPermaBan:
		resp.Job = b.Job
	case domain.JobTempBan:
		resp.Job = b.Job
		resp.DurationMinutes = &b.DurationMinutes
		expires := b.ExpiresAt
		resp.ExpiresAt = &expires
	}

	return resp
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
