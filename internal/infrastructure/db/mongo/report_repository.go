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

// ReportRepository keeps daily and weekly reports in separate collections.
type ReportRepository struct {
	daily  *mongo.Collection
	weekly *mongo.Collection
}

func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{
		daily:  db.Collection("daily_reports"),
		weekly: db.Collection("weekly_reports"),
	}
}

type reportDoc struct {
	ID             string `bson:"_id"`
	Title          string `bson:"title"`
	ProjectName    string `bson:"project_name"`
	Designation    string `bson:"designation"`
	Name           string `bson:"name"`
	CreatedBy      string `bson:"created_by"`
	Status         string `bson:"status"`
	Date           string `bson:"date"`
	Day            string `bson:"day"`
	ReportContent  string `bson:"report_content"`
	MobileNumber   string `bson:"mobile_number"`
	Email          string `bson:"email"`
	WeeklySummary  string `bson:"weekly_summary,omitempty"`
	AttachmentName string `bson:"attachment_name,omitempty"`
	CreatedAt      int64  `bson:"created_at"`
}

func (r *ReportRepository) col(kind domain.ReportKind) *mongo.Collection {
	if kind == domain.ReportWeekly {
		return r.weekly
	}
	return r.daily
}

// List returns reports in submission order.
func (r *ReportRepository) List(ctx context.Context, kind domain.ReportKind) ([]*domain.Report, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.col(kind).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list %s reports: %w", kind, err)
	}
	var docs []reportDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list %s reports: %w", kind, err)
	}

	out := make([]*domain.Report, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.Report{
			ID:             d.ID,
			Kind:           kind,
			Title:          d.Title,
			ProjectName:    d.ProjectName,
			Designation:    d.Designation,
			Name:           d.Name,
			CreatedBy:      d.CreatedBy,
			Status:         d.Status,
			Date:           d.Date,
			Day:            d.Day,
			ReportContent:  d.ReportContent,
			MobileNumber:   d.MobileNumber,
			Email:          d.Email,
			WeeklySummary:  d.WeeklySummary,
			AttachmentName: d.AttachmentName,
			CreatedAt:      time.UnixMilli(d.CreatedAt).UTC(),
		})
	}
	return out, nil
}

func (r *ReportRepository) Create(ctx context.Context, rep *domain.Report) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := reportDoc{
		ID:             rep.ID,
		Title:          rep.Title,
		ProjectName:    rep.ProjectName,
		Designation:    rep.Designation,
		Name:           rep.Name,
		CreatedBy:      rep.CreatedBy,
		Status:         rep.Status,
		Date:           rep.Date,
		Day:            rep.Day,
		ReportContent:  rep.ReportContent,
		MobileNumber:   rep.MobileNumber,
		Email:          rep.Email,
		WeeklySummary:  rep.WeeklySummary,
		AttachmentName: rep.AttachmentName,
		CreatedAt:      rep.CreatedAt.UnixMilli(),
	}
	if _, err := r.col(rep.Kind).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrReportExists
		}
		return fmt.Errorf("insert %s report: %w", rep.Kind, err)
	}
	return nil
}

func (r *ReportRepository) Delete(ctx context.Context, kind domain.ReportKind, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col(kind).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s report: %w", kind, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrReportNotFound
	}
	return nil
}

func (r *ReportRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	for _, col := range []*mongo.Collection{r.daily, r.weekly} {
		if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: 1}}}); err != nil {
			return err
		}
	}
	return nil
}
