// internal/server/server.go
package server

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ovse-portal/internal/admin"
	"ovse-portal/internal/common/errors"
	"ovse-portal/internal/common/logger"
	"ovse-portal/internal/common/observability"
	schemaval "ovse-portal/internal/common/validation"
	"ovse-portal/internal/models"
	"ovse-portal/internal/store"
	"ovse-portal/internal/validation"
	"ovse-portal/internal/workflow"
)

// Headers carrying the acting identity. The portal sits behind the
// department gateway which authenticates and injects these.
const (
	HeaderRole = "X-Portal-Role"
	HeaderUser = "X-Portal-User"
)

// Server is the HTTP boundary over the portal core. All domain rules live
// in the engine and the stores; handlers only decode, dispatch, and encode.
type Server struct {
	apps      *store.ApplicationStore
	drafts    *store.DraftLedger
	engine    *workflow.Engine
	directory *admin.Directory
	schemas   *schemaval.SchemaValidator
	obs       *observability.Observability
	logger    logger.Logger
}

func New(
	apps *store.ApplicationStore,
	drafts *store.DraftLedger,
	engine *workflow.Engine,
	directory *admin.Directory,
	schemas *schemaval.SchemaValidator,
	log logger.Logger,
) *Server {
	return &Server{
		apps:      apps,
		drafts:    drafts,
		engine:    engine,
		directory: directory,
		schemas:   schemas,
		logger:    log.WithFields(map[string]interface{}{"component": "http-server"}),
	}
}

// WithObservability attaches the otel meter; nil-safe when left unset.
func (s *Server) WithObservability(obs *observability.Observability) *Server {
	s.obs = obs
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /applications", s.handleListApplications)
	mux.HandleFunc("GET /applications/{id}", s.handleGetApplication)
	mux.HandleFunc("GET /applications/{id}/validation", s.handleValidation)
	mux.HandleFunc("POST /applications/{id}/actions", s.handleAction)
	mux.HandleFunc("POST /applications/{id}/low-quality", s.handleMarkLowQuality)

	mux.HandleFunc("GET /drafts", s.handleListDrafts)
	mux.HandleFunc("POST /drafts/{id}/nudge", s.handleNudge)

	mux.HandleFunc("GET /kpi/l1", s.handleAllStats)
	mux.HandleFunc("GET /kpi/l1/{actorId}", s.handleStatsFor)

	mux.HandleFunc("GET /admin/users", s.handleListUsers)
	mux.HandleFunc("GET /admin/changes", s.handleListChanges)
	mux.HandleFunc("GET /admin/audit", s.handleAuditLog)
	mux.HandleFunc("GET /admin/sessions", s.handleSessions)
	mux.HandleFunc("POST /admin/users/{id}/status", s.handleSetUserStatus)
	mux.HandleFunc("POST /admin/changes", s.handleSubmitChange)
	mux.HandleFunc("POST /admin/changes/{id}/approve", s.handleApproveChange)
	mux.HandleFunc("POST /admin/changes/{id}/reject", s.handleRejectChange)
	mux.HandleFunc("POST /admin/tiers/{tier}/freeze", s.handleFreezeTier)
	mux.HandleFunc("POST /admin/tiers/{tier}/unfreeze", s.handleUnfreezeTier)
	mux.HandleFunc("POST /admin/jit", s.handleRequestJIT)

	return mux
}

// --- helpers ---

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.CodeOf(err) {
	case errors.ErrCodeUnknownApplication, errors.ErrCodeUnknownAdminUser, errors.ErrCodeUnknownChangeRequest:
		status = http.StatusNotFound
	case errors.ErrCodeRoleLevelMismatch:
		status = http.StatusForbidden
	case errors.ErrCodeInvalidActionKind, errors.ErrCodeSchemaValidationFailed:
		status = http.StatusBadRequest
	case errors.ErrCodeConcurrentModification:
		status = http.StatusConflict
	}

	var pe *errors.PortalError
	if !stderrors.As(err, &pe) {
		pe = &errors.PortalError{Message: err.Error()}
	}
	s.writeJSON(w, status, map[string]interface{}{"error": pe})
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	s.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error": map[string]string{"message": msg},
	})
}

// readValidated reads the body and checks it against the registered schema
// for the operation before any decoding happens.
func (s *Server) readValidated(r *http.Request, operationID string) ([]byte, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}
	if err := s.schemas.ValidateOperation(operationID, body); err != nil {
		return nil, err
	}
	return body, nil
}

// --- core handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListApplications(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.apps.Snapshot())
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	app, err := s.apps.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	app, err := s.apps.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, validation.Evaluate(app))
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	role := models.AdminLevel(r.Header.Get(HeaderRole))
	if !role.Valid() {
		s.badRequest(w, "missing or invalid "+HeaderRole+" header")
		return
	}
	userID := r.Header.Get(HeaderUser)
	if userID == "" {
		s.badRequest(w, "missing "+HeaderUser+" header")
		return
	}

	body, err := s.readValidated(r, "process-action")
	if err != nil {
		s.writeError(w, err)
		return
	}
	var payload workflow.ActionPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		s.badRequest(w, "malformed action payload")
		return
	}

	app, err := s.apps.Get(r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	start := time.Now()
	updated, err := s.engine.ProcessAction(r.Context(), app, role, userID, payload)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if s.obs != nil {
		s.obs.RecordDecision(r.Context(), string(role), string(updated.Status))
		s.obs.RecordDecisionDuration(r.Context(), time.Since(start), string(updated.Status))
	}
	if err := s.apps.Commit(updated); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleMarkLowQuality(w http.ResponseWriter, r *http.Request) {
	body, err := s.readValidated(r, "mark-low-quality")
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	if err := s.drafts.MarkLowQuality(r.PathValue("id"), req.Reason); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListDrafts(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.drafts.Drafts())
}

func (s *Server) handleNudge(w http.ResponseWriter, r *http.Request) {
	body, err := s.readValidated(r, "nudge-draft")
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req struct {
		ActorID   string `json:"actorId"`
		ActorName string `json:"actorName"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	draft, err := s.drafts.Nudge(r.PathValue("id"), req.ActorID, req.ActorName)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, draft)
}

func (s *Server) handleAllStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.drafts.AllStats())
}

func (s *Server) handleStatsFor(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.drafts.StatsFor(r.PathValue("actorId")))
}

// --- admin handlers ---

func (s *Server) handleListUsers(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.directory.Users())
}

func (s *Server) handleListChanges(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.directory.PendingChanges())
}

func (s *Server) handleAuditLog(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.directory.AuditLog())
}

func (s *Server) handleSessions(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.directory.Sessions())
}

func (s *Server) handleSetUserStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status    models.AdminUserStatus `json:"status"`
		ActorName string                 `json:"actorName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	if req.Status != models.AdminActive && req.Status != models.AdminDisabled {
		s.badRequest(w, "status must be active or disabled")
		return
	}
	if err := s.directory.SetStatus(r.PathValue("id"), req.Status, req.ActorName); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSubmitChange(w http.ResponseWriter, r *http.Request) {
	var change models.PendingUserChange
	if err := json.NewDecoder(r.Body).Decode(&change); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	if change.Type != models.ChangeAddUser && change.Type != models.ChangeDeleteUser {
		s.badRequest(w, "type must be ADD_USER or DELETE_USER")
		return
	}
	s.writeJSON(w, http.StatusCreated, s.directory.SubmitChange(change))
}

func (s *Server) handleApproveChange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActorName string `json:"actorName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	if err := s.directory.ApproveChange(r.PathValue("id"), req.ActorName); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRejectChange(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason    string `json:"reason"`
		ActorName string `json:"actorName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	if err := s.directory.RejectChange(r.PathValue("id"), req.Reason, req.ActorName); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleFreezeTier(w http.ResponseWriter, r *http.Request) {
	tier := models.AdminLevel(r.PathValue("tier"))
	if !tier.Valid() {
		s.badRequest(w, "unknown tier")
		return
	}
	var req struct {
		ActorName string `json:"actorName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	s.directory.FreezeTier(tier, req.ActorName)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUnfreezeTier(w http.ResponseWriter, r *http.Request) {
	tier := models.AdminLevel(r.PathValue("tier"))
	if !tier.Valid() {
		s.badRequest(w, "unknown tier")
		return
	}
	var req struct {
		ActorName string `json:"actorName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	s.directory.UnfreezeTier(tier, req.ActorName)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRequestJIT(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RequesterID     string            `json:"requesterId"`
		RequesterName   string            `json:"requesterName"`
		RequesterRole   models.AdminLevel `json:"requesterRole"`
		Reason          string            `json:"reason"`
		DurationMinutes int               `json:"durationMinutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.badRequest(w, "malformed request body")
		return
	}
	if req.RequesterID == "" || req.DurationMinutes <= 0 {
		s.badRequest(w, "requesterId and a positive durationMinutes are required")
		return
	}
	grant := s.directory.RequestJIT(req.RequesterID, req.RequesterName, req.RequesterRole, req.Reason, req.DurationMinutes)
	s.writeJSON(w, http.StatusCreated, grant)
}
