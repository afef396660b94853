package app

import (
	"context"
	"log/slog"
	"time"

	"gopherblog/internal/model"
)

// ActivityLog records who changed what. With a publisher, entries go through
// the broker and a worker persists them; without one they are written to the
// store directly. Failures are logged and never fail the triggering request.
// A nil *ActivityLog records nothing.
type ActivityLog struct {
	publisher ActivityPublisher
	store     ActivityStore
	logger    *slog.Logger
}

func NewActivityLog(publisher ActivityPublisher, store ActivityStore, logger *slog.Logger) *ActivityLog {
	if logger == nil {
		logger = slog.Default()
	}
	return &ActivityLog{
		publisher: publisher,
		store:     store,
		logger:    logger,
	}
}

func (l *ActivityLog) Record(ctx context.Context, action, actorID, resourceType, resourceID string) {
	if l == nil {
		return
	}

	activity := model.Activity{
		Action:       action,
		ActorID:      actorID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		CreatedAt:    time.Now(),
	}
	var err error
	switch {
	case l.publisher != nil:
		err = l.publisher.Publish(ctx, activity)
	case l.store != nil:
		err = l.store.Create(ctx, &activity)
	default:
		return
	}
	if err != nil {
		l.logger.WarnContext(ctx, "record activity failed",
			"action", action,
			"actor_id", actorID,
			"resource_id", resourceID,
			"error", err,
		)
	}
}

func (l *ActivityLog) ListForActor(ctx context.Context, actorID string, limit int) ([]model.Activity, error) {
	if l == nil || l.store == nil {
		return []model.Activity{}, nil
	}
	return l.store.ListByActorID(ctx, actorID, limit)
}
