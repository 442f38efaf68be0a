package repositories

import (
	"context"
	"time"

	"github.com/arifulhb/picstream/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoryRepository defines the interface for story operations. Every read
// filters on expires_at > now; expired documents are never returned and
// never deleted here.
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetActiveByOwnerID(ctx context.Context, userID uint) ([]models.Story, error)
	GetActiveByOwnerIDs(ctx context.Context, userIDs []uint) ([]models.Story, error)
}

type mongoStoryRepository struct {
	collection *mongo.Collection
}

// NewMongoStoryRepository creates a StoryRepository backed by MongoDB
func NewMongoStoryRepository(db *mongo.Database) StoryRepository {
	return &mongoStoryRepository{collection: db.Collection("stories")}
}

// CreateStory inserts a story expiring 24 hours after creation
func (r *mongoStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now()
	story.ExpiresAt = story.CreatedAt.Add(24 * time.Hour)
	_, err := r.collection.InsertOne(ctx, story)
	return err
}

// GetActiveByOwnerID retrieves one user's unexpired stories, newest first
func (r *mongoStoryRepository) GetActiveByOwnerID(ctx context.Context, userID uint) ([]models.Story, error) {
	return r.find(ctx, bson.M{
		"user_id":    userID,
		"expires_at": bson.M{"$gt": time.Now()},
	})
}

// GetActiveByOwnerIDs retrieves the unexpired stories of a set of users,
// newest first
func (r *mongoStoryRepository) GetActiveByOwnerIDs(ctx context.Context, userIDs []uint) ([]models.Story, error) {
	if len(userIDs) == 0 {
		return []models.Story{}, nil
	}
	return r.find(ctx, bson.M{
		"user_id":    bson.M{"$in": userIDs},
		"expires_at": bson.M{"$gt": time.Now()},
	})
}

func (r *mongoStoryRepository) find(ctx context.Context, filter bson.M) ([]models.Story, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stories := []models.Story{}
	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}
