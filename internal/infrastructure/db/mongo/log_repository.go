package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nnsolutions/isms/internal/core/domain"
)

const collectionLogs = "logs"

// LogRepository stores the audit trail.
type LogRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewLogRepository(db *mongo.Database) *LogRepository {
	return &LogRepository{col: db.Collection(collectionLogs), seq: newSequence(db, collectionLogs)}
}

type logDoc struct {
	ID          int64   `bson:"_id"`
	Username    string  `bson:"username"`
	LoginTime   string  `bson:"login_time"`
	LogoutTime  *string `bson:"logout_time"`
	Email       string  `bson:"email"`
	Domain      string  `bson:"domain"`
	Role        string  `bson:"role"`
	Designation string  `bson:"designation"`
	Action      string  `bson:"action"`
}

func (d logDoc) toDomain() *domain.LogEntry {
	e := &domain.LogEntry{
		ID:          d.ID,
		Username:    d.Username,
		LoginTime:   d.LoginTime,
		Email:       d.Email,
		Domain:      d.Domain,
		Role:        d.Role,
		Designation: d.Designation,
		Action:      d.Action,
	}
	if d.LogoutTime != nil {
		e.LogoutTime = *d.LogoutTime
	}
	return e
}

func (r *LogRepository) List(ctx context.Context, limit int64) ([]*domain.LogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(newestFirst)
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	var docs []logDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	out := make([]*domain.LogEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *LogRepository) Create(ctx context.Context, e *domain.LogEntry) (*domain.LogEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := logDoc{
		ID:          id,
		Username:    e.Username,
		LoginTime:   e.LoginTime,
		Email:       e.Email,
		Domain:      e.Domain,
		Role:        e.Role,
		Designation: e.Designation,
		Action:      e.Action,
	}
	if e.LogoutTime != "" {
		doc.LogoutTime = &e.LogoutTime
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert log: %w", err)
	}
	return doc.toDomain(), nil
}

// CloseLatest matches entries whose logout_time is null or missing.
func (r *LogRepository) CloseLatest(ctx context.Context, username string, logoutAt time.Time, action string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"username": username, "logout_time": nil}
	update := bson.M{"$set": bson.M{
		"logout_time": domain.Timestamp(logoutAt),
		"action":      action,
	}}
	opts := options.FindOneAndUpdate().SetSort(newestFirst)

	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("close session: %w", err)
	}
	return true, nil
}

func (r *LogRepository) CountByUsername(ctx context.Context, username string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"username": username})
}

func (r *LogRepository) Clear(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("clear logs: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *LogRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}, {Key: "_id", Value: -1}},
	})
	return err
}
