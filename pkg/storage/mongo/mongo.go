// Package mongo is the document-database guestbook strategy. Entries live in
// the "guestbook" collection with a client-assigned millisecond-epoch id and a
// SHA-256 digest of the deletion password stored alongside; createdAt is the
// authoritative sort key. Paging fetches the whole collection and slices
// client-side: there is no cheap server-side count, and the guestbook is small
// enough that this holds up.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/witch49/wedding-invitation/pkg/models"
	"github.com/witch49/wedding-invitation/pkg/storage"
)

var ErrConnectDB = fmt.Errorf("unable to establish DB connection")

const collName = "guestbook"

type Storage struct {
	client *mongo.Client
	dbName string

	now func() time.Time
}

// document is the wire shape of one guestbook entry in the collection.
type document struct {
	ID           int64     `bson:"id"`
	Timestamp    int64     `bson:"timestamp"`
	Name         string    `bson:"name"`
	Content      string    `bson:"content"`
	PasswordHash string    `bson:"passwordHash"`
	CreatedAt    time.Time `bson:"createdAt"`
}

func New(ctx context.Context, conf *Config) (*Storage, error) {
	client, err := mongo.Connect(ctx, conf.Options())
	if err != nil {
		return nil, err
	}

	s := Storage{client: client, dbName: conf.DBName, now: time.Now}
	if err := s.createCollection(ctx, collName); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}
	addIndex(ctx, s.coll(), "createdAt")

	return &s, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Storage) Close(ctx context.Context) {
	s.client.Disconnect(ctx)
}

// Authenticate establishes the anonymous session this backend requires before
// reads and writes by verifying the connection is live.
func (s *Storage) Authenticate(ctx context.Context) error {
	if err := s.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrDBNotResponding, err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, name, content, password string) error {
	now := s.now()
	doc := document{
		ID:           now.UnixMilli(),
		Timestamp:    now.Unix(),
		Name:         name,
		Content:      content,
		PasswordHash: storage.Digest(password),
		CreatedAt:    now,
	}

	_, err := s.coll().InsertOne(ctx, doc)
	return err
}

func (s *Storage) Delete(ctx context.Context, id int64, password string) error {
	var doc document
	err := s.coll().FindOne(ctx, bson.M{"id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	if err != nil {
		return err
	}

	if storage.Digest(password) != doc.PasswordHash {
		return storage.ErrWrongPassword
	}

	_, err = s.coll().DeleteOne(ctx, bson.M{"id": id})
	return err
}

func (s *Storage) ListRecent(ctx context.Context, n int) ([]models.Post, error) {
	if n <= 0 {
		return []models.Post{}, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(n))

	cur, err := s.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	return decodePosts(ctx, cur)
}

func (s *Storage) ListPage(ctx context.Context, page, size int) (models.Page, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := s.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return models.Page{}, err
	}

	all, err := decodePosts(ctx, cur)
	if err != nil {
		return models.Page{}, err
	}

	return storage.SlicePage(all, page, size), nil
}

// List returns the offset/limit window plus the exact entry count. Unlike
// ListPage this one is server-side paging, used when this store backs the
// HTTP API.
func (s *Storage) List(ctx context.Context, offset, limit int) ([]models.Post, int, error) {
	total, err := s.coll().CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		return []models.Post{}, int(total), nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := s.coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}

	posts, err := decodePosts(ctx, cur)
	if err != nil {
		return nil, 0, err
	}

	return posts, int(total), nil
}

func (s *Storage) coll() *mongo.Collection {
	return s.client.Database(s.dbName).Collection(collName)
}

func decodePosts(ctx context.Context, cur *mongo.Cursor) ([]models.Post, error) {
	defer cur.Close(ctx)

	posts := make([]models.Post, 0)
	for cur.Next(ctx) {
		var doc document
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}

		ts := doc.Timestamp
		if ts == 0 && !doc.CreatedAt.IsZero() {
			ts = doc.CreatedAt.Unix()
		}

		posts = append(posts, models.Post{
			ID:           doc.ID,
			Timestamp:    ts,
			Name:         doc.Name,
			Content:      doc.Content,
			PasswordHash: doc.PasswordHash,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func (s *Storage) createCollection(ctx context.Context, name string) error {
	names, err := s.client.Database(s.dbName).ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("failed to list collection names: %w", err)
	}

	for _, n := range names {
		if n == name {
			return nil
		}
	}

	return s.client.Database(s.dbName).CreateCollection(ctx, name)
}

func addIndex(ctx context.Context, coll *mongo.Collection, field string) {
	index := mongo.IndexModel{
		Keys: bson.D{{Key: field, Value: -1}},
	}
	// Index creation failures are not fatal, queries just get slower.
	coll.Indexes().CreateOne(ctx, index)
}
