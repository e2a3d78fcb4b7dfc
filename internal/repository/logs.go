package repository

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultQueryLimit caps Query when no limit is given.
const DefaultQueryLimit = 100

// LogEntryDocument is the stored form of an activity log entry.
type LogEntryDocument struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty"`
	Timestamp  time.Time              `bson:"timestamp"`
	Level      string                 `bson:"level"`
	Message    string                 `bson:"message"`
	RequestID  string                 `bson:"request_id,omitempty"`
	Method     string                 `bson:"method,omitempty"`
	Path       string                 `bson:"path,omitempty"`
	StatusCode int                    `bson:"status_code,omitempty"`
	Duration   int64                  `bson:"duration_ms,omitempty"`
	IP         string                 `bson:"ip,omitempty"`
	UserAgent  string                 `bson:"user_agent,omitempty"`
	Error      string                 `bson:"error,omitempty"`
	Activity   string                 `bson:"activity,omitempty"`
	ReceiptID  string                 `bson:"receipt_id,omitempty"`
	Fields     map[string]interface{} `bson:"fields,omitempty"`
}

// prepare fills the id and timestamp of a new document.
func (d *LogEntryDocument) prepare(now time.Time) {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.Timestamp.IsZero() {
		d.Timestamp = now
	}
}

// LogQueryOptions filters activity log queries. Zero fields are ignored.
type LogQueryOptions struct {
	RequestID string
	Level     string
	Method    string
	// Path matches as a case-insensitive literal substring.
	Path      string
	Activity  string
	ReceiptID string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int
	Skip      int
}

// filter builds the MongoDB filter shared by Query and Count.
func (o LogQueryOptions) filter() bson.M {
	f := bson.M{}
	if o.RequestID != "" {
		f["request_id"] = o.RequestID
	}
	if o.Level != "" {
		f["level"] = o.Level
	}
	if o.Method != "" {
		f["method"] = o.Method
	}
	if o.Path != "" {
		f["path"] = primitive.Regex{Pattern: regexp.QuoteMeta(o.Path), Options: "i"}
	}
	if o.Activity != "" {
		f["activity"] = o.Activity
	}
	if o.ReceiptID != "" {
		f["receipt_id"] = o.ReceiptID
	}
	if o.StartTime != nil || o.EndTime != nil {
		window := bson.M{}
		if o.StartTime != nil {
			window["$gte"] = *o.StartTime
		}
		if o.EndTime != nil {
			window["$lte"] = *o.EndTime
		}
		f["timestamp"] = window
	}
	return f
}

// LogsRepository stores the register activity log.
type LogsRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

// NewLogsRepository creates a logs repository on db's activity log collection.
func NewLogsRepository(db *MongoDB) *LogsRepository {
	return &LogsRepository{collection: db.Logs, now: time.Now}
}

// Create inserts one entry.
func (r *LogsRepository) Create(ctx context.Context, entry *LogEntryDocument) error {
	entry.prepare(r.now())
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

// CreateMany inserts entries in one unordered bulk write.
func (r *LogsRepository) CreateMany(ctx context.Context, entries []*LogEntryDocument) error {
	if len(entries) == 0 {
		return nil
	}

	now := r.now()
	docs := make([]interface{}, len(entries))
	for i, entry := range entries {
		entry.prepare(now)
		docs[i] = entry
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	return err
}

// Query returns matching entries, newest first.
func (r *LogsRepository) Query(ctx context.Context, opts LogQueryOptions) ([]*LogEntryDocument, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultQueryLimit
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))
	if opts.Skip > 0 {
		findOptions.SetSkip(int64(opts.Skip))
	}

	cursor, err := r.collection.Find(ctx, opts.filter(), findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	entries := []*LogEntryDocument{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Count returns the number of matching entries. Limit and Skip are ignored.
func (r *LogsRepository) Count(ctx context.Context, opts LogQueryOptions) (int64, error) {
	return r.collection.CountDocuments(ctx, opts.filter())
}
