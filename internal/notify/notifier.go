// internal/notify/notifier.go
package notify

import (
	"context"

	"ovse-portal/internal/common/logger"
)

// IssuanceNotice is published when Level 3 hands over credentials.
type IssuanceNotice struct {
	ClientID    string `json:"client_id"`
	EntityName  string `json:"entityName"`
	Status      string `json:"status"`
	Certificate string `json:"certificate"`
}

// RevocationNotice is published when Level 4 revokes an active entity.
type RevocationNotice struct {
	ApplicationID string `json:"applicationId"`
}

// Notifier is the outbound boundary toward the OVSE-side portal. Delivery is
// fire-and-forget from the engine's point of view: implementations report
// errors, the workflow transition never depends on them.
type Notifier interface {
	NotifyIssuance(ctx context.Context, notice IssuanceNotice) error
	NotifyRevocation(ctx context.Context, notice RevocationNotice) error
}

// Simulated logs the would-be webhook instead of calling anything. This is
// the demo default.
type Simulated struct {
	logger logger.Logger
}

func NewSimulated(log logger.Logger) *Simulated {
	return &Simulated{
		logger: log.WithFields(map[string]interface{}{"notifier": "simulated"}),
	}
}

func (s *Simulated) NotifyIssuance(_ context.Context, notice IssuanceNotice) error {
	s.logger.Info("[webhook simulation] L3 approved, OVSE portal notified", map[string]interface{}{
		"client_id":   notice.ClientID,
		"entityName":  notice.EntityName,
		"status":      notice.Status,
		"certificate": notice.Certificate,
	})
	return nil
}

func (s *Simulated) NotifyRevocation(_ context.Context, notice RevocationNotice) error {
	s.logger.Info("[webhook simulation] application revoked", map[string]interface{}{
		"applicationId": notice.ApplicationID,
	})
	return nil
}
