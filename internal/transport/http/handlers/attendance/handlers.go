package attendancehandler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workpulse/internal/domain/achievements"
	"workpulse/internal/domain/attendance"
	"workpulse/internal/domain/auth"
	"workpulse/internal/domain/core"
	"workpulse/internal/domain/notifications"
	"workpulse/internal/domain/rewards"
	"workpulse/internal/platform/metrics"
	"workpulse/internal/transport/http/api"
	"workpulse/internal/transport/http/middleware"
	"workpulse/internal/transport/http/shared"
)

type Handler struct {
	Attendance    *attendance.Service
	Rewards       *rewards.Service
	Achievements  *achievements.Service
	Core          *core.Service
	Notifications *notifications.Service
	Metrics       *metrics.Collector
}

func NewHandler(att *attendance.Service, rw *rewards.Service, ach *achievements.Service, coreSvc *core.Service, notif *notifications.Service, collector *metrics.Collector) *Handler {
	return &Handler{Attendance: att, Rewards: rw, Achievements: ach, Core: coreSvc, Notifications: notif, Metrics: collector}
}

func (h *Handler) RegisterRoutes(r chi.Router, perms middleware.PermissionStore) {
	r.Route("/attendance", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermAttendanceWrite, perms)).Post("/", h.handleRecord)
		r.With(middleware.RequirePermission(auth.PermAttendanceRead, perms)).Get("/", h.handleList)
	})
}

type recordRequest struct {
	EmployeeID    string  `json:"employeeId"`
	WorkDate      string  `json:"workDate"`
	Status        string  `json:"status"`
	CheckInAt     string  `json:"checkInAt"`
	CheckOutAt    string  `json:"checkOutAt"`
	OvertimeHours float64 `json:"overtimeHours"`
	Notes         string  `json:"notes"`
}

func (h *Handler) handleRecord(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload recordRequest
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
	v.Required("status", payload.Status, "status is required")
	workDate, _ := v.Date("workDate", payload.WorkDate)
	if payload.OvertimeHours < 0 {
		v.Add("overtimeHours", "must not be negative")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	rec := attendance.Record{
		TenantID:      user.TenantID,
		EmployeeID:    employeeID,
		WorkDate:      workDate,
		Status:        payload.Status,
		OvertimeHours: payload.OvertimeHours,
		Notes:         payload.Notes,
	}
	if payload.CheckInAt != "" {
		parsed, err := shared.ParseDate(payload.CheckInAt)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "checkInAt must be RFC3339", middleware.GetRequestID(r.Context()))
			return
		}
		rec.CheckInAt = &parsed
	}
	if payload.CheckOutAt != "" {
		parsed, err := shared.ParseDate(payload.CheckOutAt)
		if err != nil {
			api.Fail(w, http.StatusBadRequest, "invalid_payload", "checkOutAt must be RFC3339", middleware.GetRequestID(r.Context()))
			return
		}
		rec.CheckOutAt = &parsed
	}

	stored, err := h.Attendance.RecordDay(r.Context(), rec)
	if err == attendance.ErrInvalidStatus {
		api.Fail(w, http.StatusBadRequest, "invalid_status", "unknown attendance status", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_failed", "failed to store attendance", middleware.GetRequestID(r.Context()))
		return
	}

	awarded := h.awardAndEvaluate(r, user, stored)

	api.Created(w, map[string]any{
		"record":  stored,
		"awarded": awarded,
	}, middleware.GetRequestID(r.Context()))
}

// awardAndEvaluate runs the downstream point award and achievement pass.
// Both are best effort: the attendance record is already stored and a
// re-upload will award the missing points idempotently.
func (h *Handler) awardAndEvaluate(r *http.Request, user auth.UserContext, rec attendance.Record) []rewards.PointTransaction {
	entries, err := h.Rewards.AwardAttendancePoints(r.Context(), user.TenantID, rec.EmployeeID, rewards.AttendanceEvent{
		RecordID:      rec.ID,
		Status:        rec.Status,
		CheckInAt:     rec.CheckInAt,
		OvertimeHours: rec.OvertimeHours,
	})
	if err != nil {
		slog.Warn("attendance point award failed", "employeeId", rec.EmployeeID, "err", err)
		return nil
	}
	if h.Metrics != nil && len(entries) > 0 {
		total := 0
		for _, e := range entries {
			total += e.Points
		}
		h.Metrics.RecordAwards(total, len(entries))
	}

	unlocked, err := h.Achievements.Evaluate(r.Context(), user.TenantID, rec.EmployeeID, time.Now())
	if err != nil {
		slog.Warn("achievement evaluation failed", "employeeId", rec.EmployeeID, "err", err)
		return entries
	}
	if h.Metrics != nil && len(unlocked) > 0 {
		h.Metrics.RecordUnlocks(len(unlocked))
	}
	h.notifyUnlocks(r, user.TenantID, rec.EmployeeID, unlocked)
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
	records, err := h.Attendance.List(r.Context(), user.TenantID, employeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "attendance_list_failed", "failed to list attendance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, records, middleware.GetRequestID(r.Context()))
}
