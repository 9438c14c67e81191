package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/account-service/internal/core/domain"
)

const auditCollection = "account_events"

// AuditRepository appends account lifecycle events to the audit collection.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	UserID     string    `bson:"user_id"`
	Action     string    `bson:"action"`
	At         time.Time `bson:"at"`
	RecordedAt time.Time `bson:"recorded_at"`
}

// EnsureIndexes creates the per-user timeline index. It is idempotent.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "at", Value: -1}},
		Options: options.Index().SetName("user_id_at"),
	})
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}

// InsertEvent persists one event.
func (r *AuditRepository) InsertEvent(ctx context.Context, event domain.AuditEvent) error {
	doc := auditDoc{
		UserID:     event.UserID,
		Action:     string(event.Action),
		At:         event.At.UTC(),
		RecordedAt: time.Now().UTC(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// ListByUser returns the most recent events of a user, newest first.
func (r *AuditRepository) ListByUser(ctx context.Context, userID string, limit int64) ([]domain.AuditEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cur, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []auditDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode audit events: %w", err)
	}

	events := make([]domain.AuditEvent, 0, len(docs))
	for _, d := range docs {
		events = append(events, domain.AuditEvent{
			UserID: d.UserID,
			Action: domain.AuditAction(d.Action),
			At:     d.At,
		})
	}
	return events, nil
}
