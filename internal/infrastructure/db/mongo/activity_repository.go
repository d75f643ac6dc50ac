package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

const collectionActivities = "activities"

// ActivityRepository implements ports.ActivityRepository using MongoDB.
type ActivityRepository struct {
	col *mongo.Collection
	seq sequence
}

// NewActivityRepository creates a new ActivityRepository.
func NewActivityRepository(db *mongo.Database) ports.ActivityRepository {
	return &ActivityRepository{col: db.Collection(collectionActivities), seq: newSequence(db, collectionActivities)}
}

// Insert persists one agent sample. Optional fields are omitted rather than
// stored as null.
func (r *ActivityRepository) Insert(ctx context.Context, a *domain.Activity) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return err
	}
	a.ID = id

	doc := bson.M{
		"_id":        id,
		"username":   a.Username,
		"action":     a.Action,
		"app_url":    a.AppURL,
		"created_at": a.CreatedAt.UTC(),
	}
	if a.LoginTime != nil {
		doc["login_time"] = a.LoginTime.UTC()
	}
	if a.LogoutTime != nil {
		doc["logout_time"] = a.LogoutTime.UTC()
	}
	if a.IdleTime != nil {
		doc["idle_time"] = *a.IdleTime
	}
	if a.ScreenshotPath != "" {
		doc["screenshot_path"] = a.ScreenshotPath
	}
	if a.Metadata != "" {
		doc["metadata"] = a.Metadata
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert activity: %w", err)
	}
	return nil
}
