// internal/workflow/engine.go
package workflow

import (
	"context"
	"time"

	"ovse-portal/internal/common/errors"
	"ovse-portal/internal/common/logger"
	"ovse-portal/internal/common/metrics"
	"ovse-portal/internal/models"
	"ovse-portal/internal/notify"
	"ovse-portal/internal/validation"
)

// ActionPayload carries one reviewer decision into the engine.
type ActionPayload struct {
	Action   models.RecommendationAction `json:"action"`
	Comments string                      `json:"comments,omitempty"`
	// IsFTR overrides the automated first-time-right verdict at Level 1.
	IsFTR *bool `json:"isFtr,omitempty"`
}

// Engine advances an application through the four approval levels. It is a
// pure transition function over its inputs: the caller owns reading the
// application from and committing the result back to the store.
type Engine struct {
	issuer   CredentialIssuer
	notifier notify.Notifier
	logger   logger.Logger
	now      func() time.Time
}

func NewEngine(issuer CredentialIssuer, notifier notify.Notifier, log logger.Logger) *Engine {
	return &Engine{
		issuer:   issuer,
		notifier: notifier,
		logger:   log.WithFields(map[string]interface{}{"component": "workflow-engine"}),
		now:      time.Now,
	}
}

// WithClock overrides the engine clock (tests).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// ProcessAction applies one decision and returns the updated application.
// On error the input application is returned unchanged: nothing is appended
// to the audit trail for a call that never entered the workflow.
func (e *Engine) ProcessAction(
	ctx context.Context,
	app models.Application,
	actingRole models.AdminLevel,
	actingUserID string,
	payload ActionPayload,
) (models.Application, error) {
	start := e.now()

	if !payload.Action.Valid() {
		metrics.WorkflowDecisionsRejected.WithLabelValues(string(actingRole), string(errors.ErrCodeInvalidActionKind)).Inc()
		return app, errors.NewInvalidActionKindError(string(payload.Action))
	}

	// The UI used to be the only guard here; the engine now enforces
	// ownership itself.
	if actingRole != app.CurrentLevel {
		metrics.WorkflowDecisionsRejected.WithLabelValues(string(actingRole), string(errors.ErrCodeRoleLevelMismatch)).Inc()
		return app, errors.NewRoleLevelMismatchError(string(actingRole), string(app.CurrentLevel))
	}

	updated := app
	timestamp := e.now().UTC().Format(time.RFC3339)

	// Record the recommendation unconditionally: the decision history is
	// preserved even for rejections and L4 no-ops.
	updated.Recommendations = append(app.CloneRecommendations(), models.Recommendation{
		Level:         actingRole,
		RecommenderID: actingUserID,
		Action:        payload.Action,
		Comments:      payload.Comments,
		Timestamp:     timestamp,
	})

	switch actingRole {
	case models.Level1: // Scrutiny
		if payload.Action == models.ActionApprove {
			updated.Status = models.StatusL1Approved
			updated.CurrentLevel = models.Level2
			updated.L1ApprovedBy = actingUserID

			// FTR driven by the reviewer checkbox, falling back to the
			// automated scrutiny verdict.
			if payload.IsFTR != nil {
				updated.IsFTR = payload.IsFTR
			} else {
				passed := validation.Evaluate(app).Passed
				updated.IsFTR = &passed
			}
		} else {
			// CORRECTION and REJECT both land on L1_REJECTED (send back).
			updated.Status = models.StatusL1Rejected
			updated.L1Comments = payload.Comments
		}

	case models.Level2: // Examination
		if payload.Action == models.ActionApprove {
			updated.Status = models.StatusL2Approved
			updated.CurrentLevel = models.Level3
			updated.L2ApprovedBy = actingUserID
		} else {
			updated.Status = models.StatusL1Rejected // sends back
		}

	case models.Level3: // Review & client ID handover
		if payload.Action == models.ActionApprove {
			updated.Status = models.StatusActive
			updated.CurrentLevel = models.Level4 // passes to L4 for audit visibility
			updated.L3ApprovedBy = actingUserID

			updated.ClientID = e.issuer.NewClientID()
			publicKey := ""
			if app.Data != nil && app.Data.TechnicalInfo != nil {
				publicKey = app.Data.TechnicalInfo.PublicKey
			}
			updated.X509Certificate = e.issuer.IssueCertificate(publicKey)

			e.sendIssuance(ctx, updated)
		} else {
			updated.Status = models.StatusL1Rejected
		}

	case models.Level4: // Final authority: revoke only
		if payload.Action == models.ActionReject {
			updated.Status = models.StatusRevoked
			updated.RevokedAt = timestamp
			updated.RevocationReason = payload.Comments
			e.sendRevocation(ctx, updated)
		}
		// APPROVE and CORRECTION append the recommendation but change no
		// stored state: the consequential state was already set at L3.
	}

	metrics.WorkflowDecisions.WithLabelValues(string(actingRole), string(payload.Action), string(updated.Status)).Inc()
	metrics.DecisionDuration.WithLabelValues(string(actingRole)).Observe(e.now().Sub(start).Seconds())

	e.logger.Info("decision processed", map[string]interface{}{
		"applicationId": updated.ID,
		"level":         actingRole,
		"action":        payload.Action,
		"status":        updated.Status,
	})

	return updated, nil
}

// sendIssuance notifies the OVSE portal of credential handover.
// Fire-and-forget: a delivery failure never rolls back the transition.
func (e *Engine) sendIssuance(ctx context.Context, app models.Application) {
	notice := notify.IssuanceNotice{
		ClientID:    app.ClientID,
		EntityName:  app.EntityName,
		Status:      string(app.Status),
		Certificate: app.X509Certificate,
	}
	if err := e.notifier.NotifyIssuance(ctx, notice); err != nil {
		metrics.NotificationsSent.WithLabelValues("issuance", "failed").Inc()
		e.logger.WithError(errors.NewNotificationSendFailedError(err)).Error("issuance notification failed", map[string]interface{}{
			"applicationId": app.ID,
		})
		return
	}
	metrics.NotificationsSent.WithLabelValues("issuance", "sent").Inc()
}

func (e *Engine) sendRevocation(ctx context.Context, app models.Application) {
	if err := e.notifier.NotifyRevocation(ctx, notify.RevocationNotice{ApplicationID: app.ID}); err != nil {
		metrics.NotificationsSent.WithLabelValues("revocation", "failed").Inc()
		e.logger.WithError(errors.NewNotificationSendFailedError(err)).Error("revocation notification failed", map[string]interface{}{
			"applicationId": app.ID,
		})
		return
	}
	metrics.NotificationsSent.WithLabelValues("revocation", "sent").Inc()
}
