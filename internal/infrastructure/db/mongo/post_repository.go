package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bandhub/bandhub/internal/core/domain"
)

const collectionPosts = "webboard_posts"

// PostRepository stores webboard posts, one document per post.
type PostRepository struct {
	col *mongo.Collection
}

func NewPostRepository(db *mongo.Database) *PostRepository {
	return &PostRepository{col: db.Collection(collectionPosts)}
}

type postDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BandID     int64              `bson:"band_id"`
	AuthorID   int64              `bson:"author_id"`
	AuthorName string             `bson:"author_name"`
	Body       string             `bson:"body"`
	CreatedAt  time.Time          `bson:"created_at"`
}

func (d postDoc) toDomain() domain.Post {
	return domain.Post{
		ID:         d.ID.Hex(),
		BandID:     d.BandID,
		AuthorID:   d.AuthorID,
		AuthorName: d.AuthorName,
		Body:       d.Body,
		CreatedAt:  d.CreatedAt,
	}
}

// Create inserts the post and returns it with the generated id.
func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := postDoc{
		ID:         primitive.NewObjectID(),
		BandID:     p.BandID,
		AuthorID:   p.AuthorID,
		AuthorName: p.AuthorName,
		Body:       p.Body,
		CreatedAt:  p.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	out := doc.toDomain()
	return &out, nil
}

// ListByBand returns the newest posts first.
func (r *PostRepository) ListByBand(ctx context.Context, bandID int64, limit int) ([]domain.Post, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{"band_id": bandID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer cur.Close(ctx)

	var docs []postDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	posts := make([]domain.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toDomain())
	}
	return posts, nil
}

// EnsureIndexes creates the band/created_at index used by ListByBand.
func (r *PostRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "band_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
