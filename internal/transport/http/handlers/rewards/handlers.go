package rewardshandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"workpulse/internal/domain/audit"
	"workpulse/internal/domain/auth"
	"workpulse/internal/domain/core"
	"workpulse/internal/domain/notifications"
	"workpulse/internal/domain/rewards"
	cryptoutil "workpulse/internal/platform/crypto"
	"workpulse/internal/transport/http/api"
	"workpulse/internal/transport/http/middleware"
	"workpulse/internal/transport/http/shared"
)

type Handler struct {
	Rewards        *rewards.Service
	Core           *core.Service
	Notifications  *notifications.Service
	Audit          *audit.Service
	Crypto         *cryptoutil.Service
	CertificateDir string
}

func NewHandler(rw *rewards.Service, coreSvc *core.Service, notif *notifications.Service, auditSvc *audit.Service, crypto *cryptoutil.Service, certDir string) *Handler {
	return &Handler{Rewards: rw, Core: coreSvc, Notifications: notif, Audit: auditSvc, Crypto: crypto, CertificateDir: certDir}
}

func (h *Handler) RegisterRoutes(r chi.Router, perms middleware.PermissionStore) {
	r.Route("/rewards", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermRewardsRead, perms)).Get("/balance", h.handleBalance)
		r.With(middleware.RequirePermission(auth.PermRewardsRead, perms)).Get("/history", h.handleHistory)
		r.With(middleware.RequirePermission(auth.PermRewardsAdjust, perms)).Post("/adjustments", h.handleAdjustment)
		r.With(middleware.RequirePermission(auth.PermRewardsRead, perms)).Get("/certificates/{achievementID}", h.handleCertificate)
	})
}

func (h *Handler) resolveEmployee(r *http.Request, user auth.UserContext) string {
	employeeID := r.URL.Query().Get("employeeId")
	if employeeID == "" {
		employeeID, _ = h.Core.EmployeeIDByUserID(r.Context(), user.TenantID, user.UserID)
	}
	return employeeID
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := h.resolveEmployee(r, user)
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_employee", "employee could not be resolved", middleware.GetRequestID(r.Context()))
		return
	}

	balance, err := h.Rewards.Balance(r.Context(), user.TenantID, employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "balance_failed", "failed to compute balance", middleware.GetRequestID(r.Context()))
		return
	}
	api.Success(w, map[string]any{"employeeId": employeeID, "balance": balance}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := h.resolveEmployee(r, user)
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_employee", "employee could not be resolved", middleware.GetRequestID(r.Context()))
		return
	}

	page := shared.ParsePagination(r, 50, 200)
	entries, total, err := h.Rewards.History(r.Context(), user.TenantID, employeeID, page.Limit, page.Offset)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "history_failed", "failed to list transactions", middleware.GetRequestID(r.Context()))
		return
	}
	w.Header().Set("X-Total-Count", strconv.Itoa(total))
	api.Success(w, entries, middleware.GetRequestID(r.Context()))
}

type adjustmentRequest struct {
	EmployeeID string `json:"employeeId"`
	Points     int    `json:"points"`
	Reason     string `json:"reason"`
}

func (h *Handler) handleAdjustment(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	var payload adjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return
	}

	v := shared.NewValidator()
	v.Required("employeeId", payload.EmployeeID, "employeeId is required")
	v.Required("reason", payload.Reason, "reason is required")
	if payload.Points == 0 {
		v.Add("points", "must not be zero")
	}
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return
	}

	entry, err := h.Rewards.ManualAdjustment(r.Context(), user.TenantID, payload.EmployeeID, payload.Points, payload.Reason)
	if errors.Is(err, rewards.ErrInvalidAdjustment) {
		api.Fail(w, http.StatusBadRequest, "invalid_adjustment", "adjustment needs non-zero points and a reason", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "adjustment_failed", "failed to record adjustment", middleware.GetRequestID(r.Context()))
		return
	}

	if h.Audit != nil {
		if err := h.Audit.Record(r.Context(), user.TenantID, user.UserID, "rewards.adjust", "point_transaction", entry.ID, middleware.GetRequestID(r.Context()), shared.ClientIP(r), nil, entry); err != nil {
			slog.Warn("adjustment audit failed", "err", err)
		}
	}
	if h.Notifications != nil {
		if emp, err := h.Core.GetEmployee(r.Context(), user.TenantID, payload.EmployeeID); err == nil && emp.UserID != "" {
			body := "Your point balance was adjusted by " + strconv.Itoa(payload.Points) + ": " + payload.Reason
			if err := h.Notifications.Create(r.Context(), user.TenantID, emp.UserID, notifications.TypePointsAdjusted, "Points adjusted", body); err != nil {
				slog.Warn("adjustment notification failed", "err", err)
			}
		}
	}

	api.Created(w, entry, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleCertificate(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return
	}

	employeeID := h.resolveEmployee(r, user)
	if employeeID == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_employee", "employee could not be resolved", middleware.GetRequestID(r.Context()))
		return
	}
	achievementID := chi.URLParam(r, "achievementID")

	path, err := h.Rewards.GenerateCertificatePDF(r.Context(), h.Crypto, h.CertificateDir, user.TenantID, employeeID, achievementID)
	if errors.Is(err, rewards.ErrCertificateMissing) {
		api.Fail(w, http.StatusNotFound, "certificate_missing", "achievement is not completed", middleware.GetRequestID(r.Context()))
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "certificate_failed", "failed to generate certificate", middleware.GetRequestID(r.Context()))
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "certificate_failed", "failed to read certificate", middleware.GetRequestID(r.Context()))
		return
	}
	if strings.HasSuffix(path, ".enc") && h.Crypto != nil && h.Crypto.Configured() {
		data, err = h.Crypto.Decrypt(data)
		if err != nil {
			api.Fail(w, http.StatusInternalServerError, "certificate_failed", "failed to decrypt certificate", middleware.GetRequestID(r.Context()))
			return
		}
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=certificate-"+achievementID+".pdf")
	_, _ = w.Write(data)
}
