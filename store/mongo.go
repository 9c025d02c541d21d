// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danielhkuo/formbuilder/models"
)

// MongoStore implements Store on MongoDB with a "forms" and a
// "submissions" collection. Documents use string uuids as _id.
type MongoStore struct {
	client      *mongo.Client
	forms       *mongo.Collection
	submissions *mongo.Collection
	now         func() time.Time
}

type formDoc struct {
	ID        string           `bson:"_id"`
	Title     string           `bson:"title"`
	Inputs    []models.Input   `bson:"inputs"`
	Sections  []models.Section `bson:"sections"`
	CreatedAt time.Time        `bson:"createdAt"`
	UpdatedAt time.Time        `bson:"updatedAt"`
}

type submissionDoc struct {
	ID          string         `bson:"_id"`
	FormID      string         `bson:"formId"`
	Data        map[string]any `bson:"data"`
	SubmittedAt time.Time      `bson:"submittedAt"`
}

// OpenMongo connects to uri, verifies the connection and ensures indexes.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connection failed: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	s := NewMongoStore(client, database)
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

// NewMongoStore creates a MongoStore on a connected client.
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	dbh := client.Database(database)
	return &MongoStore{
		client:      client,
		forms:       dbh.Collection("forms"),
		submissions: dbh.Collection("submissions"),
		now:         now,
	}
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.forms.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "updatedAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("creating forms index: %w", err)
	}
	_, err = s.submissions.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "formId", Value: 1}, {Key: "submittedAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("creating submissions index: %w", err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]models.FormSummary, error) {
	counts, err := s.submissionCounts(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cur, err := s.forms.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, persistenceError("listing forms", err)
	}
	defer cur.Close(ctx)

	summaries := []models.FormSummary{}
	for cur.Next(ctx) {
		var doc formDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, persistenceError("decoding form", err)
		}
		summaries = append(summaries, models.FormSummary{
			Form:            doc.toForm(),
			SubmissionCount: counts[doc.ID],
		})
	}
	if err := cur.Err(); err != nil {
		return nil, persistenceError("iterating forms", err)
	}
	return summaries, nil
}

func (s *MongoStore) submissionCounts(ctx context.Context) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$formId"},
			{Key: "n", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
	cur, err := s.submissions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, persistenceError("counting submissions", err)
	}
	defer cur.Close(ctx)

	counts := make(map[string]int)
	for cur.Next(ctx) {
		var row struct {
			FormID string `bson:"_id"`
			N      int    `bson:"n"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, persistenceError("counting submissions", err)
		}
		counts[row.FormID] = row.N
	}
	if err := cur.Err(); err != nil {
		return nil, persistenceError("counting submissions", err)
	}
	return counts, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*models.Form, error) {
	var doc formDoc
	err := s.forms.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, persistenceError("querying form", err)
	}
	form := doc.toForm()
	return &form, nil
}

func (s *MongoStore) Create(ctx context.Context, form *models.Form) (*models.Form, error) {
	created := *form
	created.ID = uuid.NewString()
	created.CreatedAt = s.now()
	created.UpdatedAt = created.CreatedAt

	if _, err := s.forms.InsertOne(ctx, newFormDoc(&created)); err != nil {
		return nil, persistenceError("inserting form", err)
	}
	return &created, nil
}

func (s *MongoStore) Update(ctx context.Context, id string, form *models.Form) (*models.Form, error) {
	doc := newFormDoc(form)
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: doc.Title},
		{Key: "inputs", Value: doc.Inputs},
		{Key: "sections", Value: doc.Sections},
		{Key: "updatedAt", Value: s.now()},
	}}}

	res, err := s.forms.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return nil, persistenceError("updating form", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	res, err := s.forms.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return persistenceError("deleting form", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Submit(ctx context.Context, formID string, data map[string]any) (*models.Submission, error) {
	n, err := s.forms.CountDocuments(ctx, bson.D{{Key: "_id", Value: formID}})
	if err != nil {
		return nil, persistenceError("querying form", err)
	}
	if n == 0 {
		return nil, ErrNotFound
	}

	doc := submissionDoc{
		ID:          uuid.NewString(),
		FormID:      formID,
		Data:        cloneData(data),
		SubmittedAt: s.now(),
	}
	if _, err := s.submissions.InsertOne(ctx, doc); err != nil {
		return nil, persistenceError("inserting submission", err)
	}
	sub := doc.toSubmission()
	return &sub, nil
}

func (s *MongoStore) ListSubmissions(ctx context.Context, formID string) ([]models.Submission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	cur, err := s.submissions.Find(ctx, bson.D{{Key: "formId", Value: formID}}, opts)
	if err != nil {
		return nil, persistenceError("listing submissions", err)
	}
	defer cur.Close(ctx)

	subs := []models.Submission{}
	for cur.Next(ctx) {
		var doc submissionDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, persistenceError("decoding submission", err)
		}
		subs = append(subs, doc.toSubmission())
	}
	if err := cur.Err(); err != nil {
		return nil, persistenceError("iterating submissions", err)
	}
	return subs, nil
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func newFormDoc(f *models.Form) formDoc {
	doc := formDoc{
		ID:        f.ID,
		Title:     f.Title,
		Inputs:    f.Inputs,
		Sections:  f.Sections,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
	if doc.Inputs == nil {
		doc.Inputs = []models.Input{}
	}
	if doc.Sections == nil {
		doc.Sections = []models.Section{}
	}
	return doc
}

func (d formDoc) toForm() models.Form {
	f := models.Form{
		ID:        d.ID,
		Title:     d.Title,
		Inputs:    d.Inputs,
		Sections:  d.Sections,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if f.Inputs == nil {
		f.Inputs = []models.Input{}
	}
	if f.Sections == nil {
		f.Sections = []models.Section{}
	}
	return f
}

func (d submissionDoc) toSubmission() models.Submission {
	data := d.Data
	if data == nil {
		data = map[string]any{}
	}
	return models.Submission{
		ID:          d.ID,
		FormID:      d.FormID,
		Data:        data,
		SubmittedAt: d.SubmittedAt.UTC(),
	}
}
