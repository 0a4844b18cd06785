package achievementshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"workpulse/internal/domain/achievements"
	"workpulse/internal/domain/audit"
	"workpulse/internal/domain/auth"
	"workpulse/internal/domain/core"
	"workpulse/internal/transport/http/api"
	"workpulse/internal/transport/http/middleware"
	"workpulse/internal/transport/http/shared"
)

type Handler struct {
	Achievements *achievements.Service
	Core         *core.Service
	Audit        *audit.Service
}

func NewHandler(ach *achievements.Service, coreSvc *core.Service, auditSvc *audit.Service) *Handler {
	return &Handler{Achievements: ach, Core: coreSvc, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router, perms middleware.PermissionStore) {
	r.Route("/achievements", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAchievementsRead, perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermAchievementsRead, perms)).Get("/progress", h.handleProgress)
		r.With(middleware.RequirePermission(auth.PermAchievementsManage, perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermAchievementsManage, perms)).Put("/{achievementID}", h.handleUpdate)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	activeOnly := r.URL.Query().Get("all") == ""
	defs, err := h.Achievements.ListDefinitions(r.Context(), user.TenantID, activeOnly)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "achievement_list_failed", "failed to list achievements", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, defs, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleProgress(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := r.URL.Query().Get("employeeId")
	if employeeID == "" {
		employeeID, _ = h.Core.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
	}
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_employee", "employee could not be resolved", middleware.GetRequestID(r.Context()))
		return
	}

	defs, err := h.Achievements.ListDefinitions(r.Context(), user.TenantID, true)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "achievement_list_failed", "failed to list achievements", middleware.GetRequestID(r.Context()))
		return
	}
	progress, err := h.Achievements.EmployeeProgress(r.Context(), user.TenantID, employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "progress_failed", "failed to load progress", middleware.GetRequestID(r.Context()))
		return
	}

	type row struct {
		Definition achievements.Definition `json:"definition"`
		Progress   int                     `json:"progress"`
		Completed  bool                    `json:"completed"`
		UnlockedAt any                     `json:"unlockedAt,omitempty"`
	}
	out := make([]row, 0, len(defs))
	for _, def := range defs {
		entry := row{Definition: def}
		if p, ok := progress[def.ID]; ok {
			entry.Progress = p.Progress
			entry.Completed = p.IsCompleted
			if p.UnlockedAt != nil {
				entry.UnlockedAt = p.UnlockedAt
			}
		}
		out = append(out, entry)
	}
	api.Success(w, out, middleware.GetRequestID(r.Context()))
}

type definitionRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	PointValue   int             `json:"pointValue"`
	Requirements json.RawMessage `json:"requirements"`
	IsActive     *bool           `json:"isActive"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload definitionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("code", payload.Code, "code is required")
	v.Required("name", payload.Name, "name is required")
	if payload.PointValue < 0 {
		v.Add("pointValue", "must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	def := achievements.Definition{
		Code:         payload.Code,
		Name:         payload.Name,
		Description:  payload.Description,
		Category:     payload.Category,
		PointValue:   payload.PointValue,
		Requirements: payload.Requirements,
		IsActive:     true,
	}
	if payload.IsActive != nil {
		def.IsActive = *payload.IsActive
	}

	id, err := h.Achievements.CreateDefinition(r.Context(), user.TenantID, def)
	if errors.Is(err, achievements.ErrDuplicateCode) {
		api.Fail(w, http.StatusConflict, "duplicate_code", "achievement code already exists", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "achievement_create_failed", "failed to create achievement", middleware.GetRequestID(r.Context()))
		return
	}
	def.ID = id

	if h.Audit != nil {
		if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "achievements.create", "achievement_definition", id, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, def); err != nil {
			slog.Warn("achievement create audit failed", "err", err)
		}
	}
	api.Created(w, def, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload definitionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	achievementID := chi.URLParam(r, "achievementID")
	def := achievements.Definition{
		Name:         payload.Name,
		Description:  payload.Description,
		Category:     payload.Category,
		PointValue:   payload.PointValue,
		Requirements: payload.Requirements,
		IsActive:     true,
	}
	if payload.IsActive != nil {
		def.IsActive = *payload.IsActive
	}

	err := h.Achievements.UpdateDefinition(r.Context(), user.TenantID, achievementID, def)
	if errors.Is(err, achievements.ErrDefinitionNotFound) {
		api.Fail(w, http.StatusNotFound, "achievement_not_found", "achievement not found", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "achievement_update_failed", "failed to update achievement", middleware.GetRequestID(r.Context()))
		return
	}

	if h.Audit != nil {
		if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "achievements.update", "achievement_definition", achievementID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, def); err != nil {
			slog.Warn("achievement update audit failed", "err", err)
		}
	}
	api.Success(w, map[string]string{"status": "updated"}, middleware.GetRequestID(r.Context()))
}
