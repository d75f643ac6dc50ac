package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/ports"
)

const collectionTasks = "tasks"

type TaskRepository struct {
	col *mongo.Collection
	seq sequence
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks), seq: newSequence(db, collectionTasks)}
}

type taskDoc struct {
	ID          int64  `bson:"_id"`
	Title       string `bson:"title"`
	Domain      string `bson:"domain"`
	AssignedTo  string `bson:"assigned_to"`
	UserID      string `bson:"user_id"`
	Deadline    string `bson:"deadline"`
	Priority    string `bson:"priority"`
	Description string `bson:"description"`
	Status      string `bson:"status"`
	CreatedAt   string `bson:"created_at"`
	IsChecked   bool   `bson:"is_checked"`
}

func (d taskDoc) toDomain() *domain.Task {
	t := domain.Task(d)
	return &t
}

func (r *TaskRepository) List(ctx context.Context) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	var docs []taskDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	out := make([]*domain.Task, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := taskDoc(*t)
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) Update(ctx context.Context, id int64, p ports.TaskPatch) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.IsChecked != nil {
		set["is_checked"] = *p.IsChecked
	}
	if p.Priority != nil {
		set["priority"] = *p.Priority
	}
	if p.Deadline != nil {
		set["deadline"] = *p.Deadline
	}

	var doc taskDoc
	var err error
	if len(set) == 0 {
		err = r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}
