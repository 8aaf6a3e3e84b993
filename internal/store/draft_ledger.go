// internal/store/draft_ledger.go
package store

import (
	"sort"
	"sync"
	"time"

	"ovse-portal/internal/common/errors"
	"ovse-portal/internal/common/logger"
	"ovse-portal/internal/common/metrics"
	"ovse-portal/internal/kpi"
	"ovse-portal/internal/models"
)

// DraftLedger owns the pre-submission draft pool and the nudge attribution
// that feeds Level-1 KPI scores. It shares the application store's
// notification channel so dependent views re-read on draft moves too.
type DraftLedger struct {
	mu     sync.Mutex
	drafts []models.Application
	apps   *ApplicationStore
	logger logger.Logger
	now    func() time.Time
}

func NewDraftLedger(apps *ApplicationStore, seed []models.Application, log logger.Logger) *DraftLedger {
	drafts := make([]models.Application, len(seed))
	copy(drafts, seed)
	return &DraftLedger{
		drafts: drafts,
		apps:   apps,
		logger: log.WithFields(map[string]interface{}{"component": "draft-ledger"}),
		now:    time.Now,
	}
}

// WithClock overrides the ledger clock (tests).
func (l *DraftLedger) WithClock(now func() time.Time) *DraftLedger {
	l.now = now
	return l
}

// Drafts returns a copy of the draft pool.
func (l *DraftLedger) Drafts() []models.Application {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Application, len(l.drafts))
	copy(out, l.drafts)
	return out
}

// Nudge attributes a draft to the first Level-1 actor who nudges it.
// First-nudge-wins: once attributed, later calls are no-ops regardless of
// the caller, and the existing attribution is returned.
func (l *DraftLedger) Nudge(appID, actorID, actorName string) (models.Application, error) {
	l.mu.Lock()
	for i := range l.drafts {
		if l.drafts[i].ID != appID {
			continue
		}
		if l.drafts[i].NudgedByL1ID != "" {
			draft := l.drafts[i]
			l.mu.Unlock()
			metrics.DraftNudges.WithLabelValues("already_attributed").Inc()
			return draft, nil
		}
		l.drafts[i].NudgedByL1ID = actorID
		l.drafts[i].NudgedByL1Name = actorName
		l.drafts[i].NudgeTimestamp = l.now().UTC().Format(time.RFC3339)
		draft := l.drafts[i]
		l.mu.Unlock()

		metrics.DraftNudges.WithLabelValues("attributed").Inc()
		l.logger.Info("draft nudged", map[string]interface{}{
			"applicationId": appID,
			"actorId":       actorID,
		})
		l.apps.broadcast()
		return draft, nil
	}
	l.mu.Unlock()
	metrics.DraftNudges.WithLabelValues("unknown").Inc()
	return models.Application{}, errors.NewUnknownApplicationError(appID)
}

// MarkSubmitted records that the entity completed its draft and submitted.
// The record stays in the draft pool (only MarkLowQuality moves records
// between pools); the status change is what KPI conversion counts read.
func (l *DraftLedger) MarkSubmitted(appID string) error {
	l.mu.Lock()
	for i := range l.drafts {
		if l.drafts[i].ID == appID {
			l.drafts[i].Status = models.StatusSubmitted
			l.mu.Unlock()
			l.apps.broadcast()
			return nil
		}
	}
	l.mu.Unlock()
	return errors.NewUnknownApplicationError(appID)
}

// MarkLowQuality flags an application as a low-quality push. A record in the
// submitted pool moves back into the draft pool; a record already in the
// draft pool is flagged in place. This is the only path that sets
// LowQualityFlag and the only movement between pools.
func (l *DraftLedger) MarkLowQuality(appID, reason string) error {
	l.mu.Lock()
	for i := range l.drafts {
		if l.drafts[i].ID == appID {
			l.drafts[i].Status = models.StatusLowQuality
			l.drafts[i].LowQualityFlag = true
			l.drafts[i].LowQualityReason = reason
			l.mu.Unlock()

			metrics.LowQualityMarks.Inc()
			l.logger.Warn("draft flagged low quality", map[string]interface{}{
				"applicationId": appID,
				"reason":        reason,
			})
			l.apps.broadcast()
			return nil
		}
	}

	app, ok := l.apps.take(appID)
	if !ok {
		l.mu.Unlock()
		return errors.NewUnknownApplicationError(appID)
	}
	app.Status = models.StatusLowQuality
	app.LowQualityFlag = true
	app.LowQualityReason = reason
	l.drafts = append(l.drafts, app)
	l.mu.Unlock()

	metrics.LowQualityMarks.Inc()
	l.logger.Warn("application moved to draft pool as low quality", map[string]interface{}{
		"applicationId": appID,
		"reason":        reason,
	})
	l.apps.broadcast()
	return nil
}

// StatsFor computes the KPI record for one Level-1 actor on demand.
func (l *DraftLedger) StatsFor(actorID string) models.KPIStats {
	l.mu.Lock()
	defer l.mu.Unlock()
	stats := models.KPIStats{ActorID: actorID}

	for _, d := range l.drafts {
		if d.NudgedByL1ID != actorID {
			continue
		}
		stats.ActorName = d.NudgedByL1Name
		stats.NudgedCount++
		if d.Status != models.StatusDraft {
			stats.ConvertedCount++
		}
		if d.LowQualityFlag {
			stats.PenaltyCount++
		}
	}

	stats.NudgeScore = kpi.NudgeScore(stats.NudgedCount, stats.ConvertedCount, stats.PenaltyCount)
	return stats
}

// AllStats returns every actor with at least one nudge, sorted by
// descending score; ties break on actor id for a stable order.
func (l *DraftLedger) AllStats() []models.KPIStats {
	l.mu.Lock()
	actors := map[string]bool{}
	for _, d := range l.drafts {
		if d.NudgedByL1ID != "" {
			actors[d.NudgedByL1ID] = true
		}
	}
	l.mu.Unlock()

	out := make([]models.KPIStats, 0, len(actors))
	for actorID := range actors {
		out = append(out, l.StatsFor(actorID))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].NudgeScore != out[j].NudgeScore {
			return out[i].NudgeScore > out[j].NudgeScore
		}
		return out[i].ActorID < out[j].ActorID
	})
	return out
}
