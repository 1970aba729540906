package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/alphawork/alphawork/internal/log"
	"github.com/alphawork/alphawork/internal/tracker/domain"
)

// DefaultSnapshotMaxBytes bounds serialized before/after snapshots.
// Matches the audit column width of the original schema.
const DefaultSnapshotMaxBytes = 2000

// truncationMarker is appended whenever a snapshot is cut. Truncation is
// deterministic and always visible; content is never silently dropped.
const truncationMarker = "...[truncated]"

// Audit action labels.
const (
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionStatusChange = "STATUS_CHANGE"
	ActionDelete       = "DELETE"
	ActionTimeLogged   = "TIME_LOGGED"
	ActionNoteAdded    = "NOTE_ADDED"
)

// AuditRecorder serializes entity snapshots and appends audit rows.
// Record must be called with the same transaction that carries the
// mutation it describes: if the audit write fails the transaction fails,
// and the mutation is rolled back with it.
type AuditRecorder struct {
	maxBytes int
}

// NewAuditRecorder returns a recorder with the given snapshot bound.
// Non-positive values fall back to DefaultSnapshotMaxBytes.
func NewAuditRecorder(maxBytes int) *AuditRecorder {
	if maxBytes <= 0 {
		maxBytes = DefaultSnapshotMaxBytes
	}
	return &AuditRecorder{maxBytes: maxBytes}
}

// Record appends one audit row inside tx. before and after may be nil for
// creations and deletions respectively. When description is empty a change
// summary is derived from the snapshots.
func (r *AuditRecorder) Record(ctx context.Context, tx Tx, actorID, action, entityType, entityID string, before, after any, description string) error {
	beforeState := r.snapshot(before)
	afterState := r.snapshot(after)
	if description == "" {
		description = changeSummary(action, beforeState, afterState)
	}

	entry := &domain.AuditLog{
		ID:          uuid.NewString(),
		ActorID:     actorID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		BeforeState: beforeState,
		AfterState:  afterState,
		Description: r.truncate(description),
		Timestamp:   time.Now().UTC(),
	}
	if err := tx.Audit().Append(ctx, entry); err != nil {
		log.ErrorErr(log.CatAudit, "Audit append failed", err, "action", action, "entityType", entityType, "entityID", entityID)
		return fmt.Errorf("append audit entry: %w", err)
	}
	log.Debug(log.CatAudit, "Audit entry recorded", "action", action, "entityType", entityType, "entityID", entityID)
	return nil
}

// snapshot renders v as canonical JSON bounded to maxBytes.
func (r *AuditRecorder) snapshot(v any) string {
	if v == nil {
		return ""
	}
	data, err := json.Marshal(v)
	if err != nil {
		// Snapshots are best-effort descriptions, not the source of truth;
		// an unserializable value must not abort the mutation.
		return fmt.Sprintf("{\"_snapshot_error\":%q}", err.Error())
	}
	return r.truncate(string(data))
}

// truncate cuts s at the byte bound, backing up to a rune boundary, and
// appends the truncation marker.
func (r *AuditRecorder) truncate(s string) string {
	if len(s) <= r.maxBytes {
		return s
	}
	cut := r.maxBytes - len(truncationMarker)
	if cut < 0 {
		cut = 0
	}
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + truncationMarker
}

// changeSummary builds a short human-readable description from the
// serialized before/after states.
func changeSummary(action, before, after string) string {
	switch {
	case before == "" && after != "":
		return "entity created"
	case before != "" && after == "":
		return "entity deleted"
	case before == after:
		return "no field changes"
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))
	var added, removed int
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			removed += utf8.RuneCountInString(d.Text)
		}
	}
	return fmt.Sprintf("%s: +%d/-%d chars", action, added, removed)
}

// AuditService is the read surface over persisted audit rows.
type AuditService struct {
	store Store
}

// NewAuditService returns a query service over the audit log.
func NewAuditService(store Store) *AuditService {
	return &AuditService{store: store}
}

// ForEntity returns the full history for one entity id, in insertion order.
func (s *AuditService) ForEntity(ctx context.Context, entityID string) ([]*domain.AuditLog, error) {
	return s.store.Audit().ForEntity(ctx, entityID)
}

// ForEntityType returns the cross-entity history for a class of entities.
func (s *AuditService) ForEntityType(ctx context.Context, entityType string) ([]*domain.AuditLog, error) {
	return s.store.Audit().ForEntityType(ctx, entityType)
}
