package worklogshandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workpulse/internal/domain/achievements"
	"workpulse/internal/domain/auth"
	"workpulse/internal/domain/core"
	"workpulse/internal/domain/notifications"
	"workpulse/internal/domain/rewards"
	"workpulse/internal/domain/worklogs"
	"workpulse/internal/platform/metrics"
	"workpulse/internal/transport/http/api"
	"workpulse/internal/transport/http/middleware"
	"workpulse/internal/transport/http/shared"
)

type Handler struct {
	Worklogs      *worklogs.Service
	Rewards       *rewards.Service
	Achievements  *achievements.Service
	Core          *core.Service
	Notifications *notifications.Service
	Metrics       *metrics.Collector
}

func NewHandler(wl *worklogs.Service, rw *rewards.Service, ach *achievements.Service, coreSvc *core.Service, notif *notifications.Service, collector *metrics.Collector) *Handler {
	return &Handler{Worklogs: wl, Rewards: rw, Achievements: ach, Core: coreSvc, Notifications: notif, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router, perms middleware.PermissionStore) {
	r.Route("/worklogs", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermWorklogsWrite, perms)).Post("/", h.handleSubmit)
		r.With(middleware.RequirePermission(auth.PermWorklogsRead, perms)).Get("/", h.handleList)
	})
}

type submitEntry struct {
	Tag         string `json:"tag"`
	Description string `json:"description"`
	Minutes     int    `json:"minutes"`
	LogDate     string `json:"logDate"`
}

type submitRequest struct {
	EmployeeID string        `json:"employeeId"`
	Entries    []submitEntry `json:"entries"`
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload submitRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := payload.EmployeeID
	if employeeID == "" {
		employeeID, _ = h.Core.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
	}

	v := shared.NewValidator()
	v.Required("employeeId", employeeID, "employee could not be resolved")
	if len(payload.Entries) == 0 {
		v.Add("entries", "at least one entry is required")
	}
	entries := make([]worklogs.Entry, 0, len(payload.Entries))
	for i, in := range payload.Entries {
		if in.Minutes <= 0 {
			v.Add(fmt.Sprintf("entries[%d].minutes", i), "must be positive")
			continue
		}
		entry := worklogs.Entry{
			Tag:         in.Tag,
			Description: in.Description,
			Minutes:     in.Minutes,
		}
		if in.LogDate != "" {
			parsed, err := shared.ParseDate(in.LogDate)
			if err != nil {
				v.Add(fmt.Sprintf("entries[%d].logDate", i), "must be a valid date")
				continue
			}
			entry.LogDate = parsed
		}
		entries = append(entries, entry)
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	submittedAt := time.Now()
	stored, submissionID, err := h.Worklogs.Submit(r.Context(), user.TenantID, employeeID, entries, submittedAt)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "worklog_failed", "failed to store worklogs", middleware.GetRequestID(r.Context()))
		return
	}

	awarded := h.awardAndEvaluate(r, user.TenantID, employeeID, submissionID, stored, submittedAt)

	api.Created(w, map[string]any{
		"submissionId": submissionID,
		"entries":      stored,
		"awarded":      awarded,
	}, middleware.GetRequestID(r.Context()))
}

// awardAndEvaluate awards worklog points for the submission and runs the
// achievement pass. Failures are logged and never fail the submission.
func (h *Handler) awardAndEvaluate(r *http.Request, tenantID, employeeID, submissionID string, stored []worklogs.Entry, submittedAt time.Time) []rewards.PointTransaction {
	logs := make([]rewards.WorkLogEntry, 0, len(stored))
	for _, e := range stored {
		logs = append(logs, rewards.WorkLogEntry{TotalMinutes: e.Minutes})
	}

	entries, err := h.Rewards.AwardWorkLogPoints(r.Context(), tenantID, employeeID, submissionID, logs, submittedAt)
	if err != nil {
		slog.Warn("worklog point award failed", "employeeId", employeeID, "err", err)
		return nil
	}
	if h.Metrics != nil && len(entries) > 0 {
		total := 0
		for _, e := range entries {
			total += e.Points
		}
		h.Metrics.RecordAwards(total, len(entries))
	}

	unlocked, err := h.Achievements.Evaluate(r.Context(), tenantID, employeeID, time.Now())
	if err != nil {
		slog.Warn("achievement evaluation failed", "employeeId", employeeID, "err", err)
		return entries
	}
	if h.Metrics != nil && len(unlocked) > 0 {
		h.Metrics.RecordUnlocks(len(unlocked))
	}
	h.notifyUnlocks(r, tenantID, employeeID, unlocked)
	return entries
}

func (h *Handler) notifyUnlocks(r *http.Request, tenantID, employeeID string, unlocked []achievements.Definition) {
	if h.Notifications == nil || len(unlocked) == 0 {
		return
	}
	emp, err := h.Core.GetEmployee(r.Context(), tenantID, employeeID)
	if err != nil || emp.UserID == "" {
		return
	}
	for _, def := range unlocked {
		body := fmt.Sprintf("You earned %q (+%d points).", def.Name, def.PointValue)
		if err := h.Notifications.Create(r.Context(), tenantID, emp.UserID, notifications.TypeAchievementUnlocked, "Achievement unlocked", body); err != nil {
			slog.Warn("unlock notification failed", "err", err)
		}
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
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

	page := shared.ParsePagination(r, 50, 200)
	entries, err := h.Worklogs.List(r.Context(), user.TenantID, employeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "worklog_list_failed", "failed to list worklogs", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}
