package leaderboardhandler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"workpulse/internal/domain/audit"
	"workpulse/internal/domain/auth"
	"workpulse/internal/domain/core"
	"workpulse/internal/domain/leaderboard"
	"workpulse/internal/platform/jobs"
	"workpulse/internal/platform/metrics"
	"workpulse/internal/transport/http/api"
	"workpulse/internal/transport/http/middleware"
	"workpulse/internal/transport/http/shared"
)

type Handler struct {
	Leaderboard *leaderboard.Service
	Core        *core.Service
	Jobs        *jobs.Service
	Metrics     *metrics.Collector
	Audit       *audit.Service
}

func NewHandler(lb *leaderboard.Service, coreSvc *core.Service, jobsSvc *jobs.Service, collector *metrics.Collector, auditSvc *audit.Service) *Handler {
	return &Handler{Leaderboard: lb, Core: coreSvc, Jobs: jobsSvc, Metrics: collector, Audit: auditSvc}
}

func (h *Handler) RegisterRoutes(r chi.Router, perms middleware.PermissionStore) {
	r.Route("/leaderboard", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermLeaderboardRead, perms)).Get("/", h.handleStandings)
		r.With(middleware.RequirePermission(auth.PermLeaderboardRead, perms)).Get("/me", h.handleMyStanding)
		r.With(middleware.RequirePermission(auth.PermLeaderboardRecompute, perms)).Post("/recompute", h.handleRecompute)
	})
}

func parsePeriod(r *http.Request) (leaderboard.Period, bool) {
	period := leaderboard.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = leaderboard.PeriodWeekly
	}
	return period, period.Valid()
}

func (h *Handler) handleStandings(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	period, valid := parsePeriod(r)
	if !valid {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period must be weekly, monthly, quarterly or annual", middleware.GetRequestID(r.Context()))
		return
	}

	entries, err := h.Leaderboard.Standings(r.Context(), user.TenantID, period, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "leaderboard_failed", "failed to load standings", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleMyStanding(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	period, valid := parsePeriod(r)
	if !valid {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period must be weekly, monthly, quarterly or annual", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID, err := h.Core.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
	if err != nil || employeeID == "" {
		api.Fail(w, http.StatusNotFound, "employee_not_found", "no employee record for user", middleware.GetRequestID(r.Context()))
		return
	}

	entry, err := h.Leaderboard.EmployeeStanding(r.Context(), user.TenantID, employeeID, period, time.Now())
	if err != nil {
		api.Fail(w, http.StatusNotFound, "standing_not_found", "no standing for period", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, entry, middleware.GetRequestID(r.Context()))
}

// handleRecompute queues a recompute for every period rather than running
// inline, so an admin click behaves the same as the scheduler.
func (h *Handler) handleRecompute(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	tenantID := user.TenantID
	for _, period := range leaderboard.AllPeriods {
		p := period
		h.Jobs.Enqueue(jobs.JobLeaderboardRecompute, tenantID, func(ctx context.Context) (any, error) {
			ranked, err := h.Leaderboard.Recompute(ctx, tenantID, p, time.Now())
			if err == nil && h.Metrics != nil {
				h.Metrics.RecordLeaderboardRun()
			}
			return map[string]any{"period": string(p), "ranked": ranked}, err
		})
	}

	if h.Audit != nil {
		if err := h.Audit.Record(r.Context(), tenantID, user.UserID, "leaderboard.recompute", "leaderboard", "", middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, nil); err != nil {
			slog.Warn("recompute audit failed", "err", err)
		}
	}
	slog.Info("leaderboard recompute queued", "tenantId", tenantID, "by", user.UserID)
	api.Success(w, map[string]string{"status": "queued"}, middleware.GetRequestID(r.Context()))
}
