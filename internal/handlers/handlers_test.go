package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arifulhb/picstream/backend/internal/models"
	"github.com/arifulhb/picstream/backend/internal/repositories"
	"github.com/arifulhb/picstream/backend/validators"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testSecret = "test-secret"

// fakePostRepository is an in-memory PostRepository used in place of MongoDB
type fakePostRepository struct {
	mu    sync.Mutex
	posts []models.Post
	seq   int
}

func (r *fakePostRepository) CreatePost(_ context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	post.ID = primitive.NewObjectID()
	r.seq++
	post.CreatedAt = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	r.posts = append(r.posts, *post)
	return nil
}

func (r *fakePostRepository) GetPostByID(_ context.Context, id string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.posts {
		if r.posts[i].ID.Hex() == id {
			post := r.posts[i]
			return &post, nil
		}
	}
	return nil, repositories.ErrPostNotFound
}

func (r *fakePostRepository) GetPostsByOwnerID(_ context.Context, userID uint) ([]models.Post, error) {
	return r.filtered(func(p *models.Post) bool { return p.UserID == userID }), nil
}

func (r *fakePostRepository) GetPostsByOwnerIDs(_ context.Context, userIDs []uint) ([]models.Post, error) {
	owners := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		owners[id] = true
	}
	return r.filtered(func(p *models.Post) bool { return owners[p.UserID] }), nil
}

func (r *fakePostRepository) GetAllPosts(_ context.Context) ([]models.Post, error) {
	return r.filtered(func(*models.Post) bool { return true }), nil
}

func (r *fakePostRepository) CountByOwnerID(_ context.Context, userID uint) (int64, error) {
	var count int64
	for i := range r.posts {
		if r.posts[i].UserID == userID {
			count++
		}
	}
	return count, nil
}

// filtered returns matching posts newest first, mirroring the Mongo sort
func (r *fakePostRepository) filtered(match func(*models.Post) bool) []models.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Post{}
	for i := range r.posts {
		if match(&r.posts[i]) {
			result = append(result, r.posts[i])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

// fakeStoryRepository is an in-memory StoryRepository used in place of MongoDB
type fakeStoryRepository struct {
	mu      sync.Mutex
	stories []models.Story
}

func (r *fakeStoryRepository) CreateStory(_ context.Context, story *models.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now()
	story.ExpiresAt = story.CreatedAt.Add(24 * time.Hour)
	r.stories = append(r.stories, *story)
	return nil
}

// add inserts a story document directly, bypassing creation defaults
func (r *fakeStoryRepository) add(story models.Story) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if story.ID.IsZero() {
		story.ID = primitive.NewObjectID()
	}
	r.stories = append(r.stories, story)
}

func (r *fakeStoryRepository) GetActiveByOwnerID(_ context.Context, userID uint) ([]models.Story, error) {
	return r.active(func(s *models.Story) bool { return s.UserID == userID }), nil
}

func (r *fakeStoryRepository) GetActiveByOwnerIDs(_ context.Context, userIDs []uint) ([]models.Story, error) {
	owners := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		owners[id] = true
	}
	return r.active(func(s *models.Story) bool { return owners[s.UserID] }), nil
}

// active filters on expires_at > now, mirroring the Mongo query
func (r *fakeStoryRepository) active(match func(*models.Story) bool) []models.Story {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	result := []models.Story{}
	for i := range r.stories {
		if r.stories[i].ExpiresAt.After(now) && match(&r.stories[i]) {
			result = append(result, r.stories[i])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

// testEnv wires real SQLite-backed relational repositories and fake content
// repositories into the handlers under test
type testEnv struct {
	t             *testing.T
	e             *echo.Echo
	db            *gorm.DB
	users         repositories.UserRepository
	follows       repositories.FollowRepository
	likes         repositories.LikeRepository
	comments      repositories.CommentRepository
	notifications repositories.NotificationRepository
	posts         *fakePostRepository
	stories       *fakeStoryRepository
	presenter     *Presenter

	auth          *AuthHandler
	userHandler   *UserHandler
	followHandler *FollowHandler
	postHandler   *PostHandler
	feedHandler   *FeedHandler
	likeHandler   *LikeHandler
	comment       *CommentHandler
	storyHandler  *StoryHandler
	notifHandler  *NotificationHandler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	e := echo.New()
	e.Validator = validators.NewValidator()

	env := &testEnv{
		t:             t,
		e:             e,
		db:            db,
		users:         repositories.NewPostgresUserRepository(db),
		follows:       repositories.NewPostgresFollowRepository(db),
		likes:         repositories.NewPostgresLikeRepository(db),
		comments:      repositories.NewPostgresCommentRepository(db),
		notifications: repositories.NewPostgresNotificationRepository(db),
		posts:         &fakePostRepository{},
		stories:       &fakeStoryRepository{},
	}
	env.presenter = NewPresenter(env.users, env.follows, env.posts, env.likes, env.comments)

	env.auth = NewAuthHandler(env.users, env.presenter, testSecret, time.Hour, 24*time.Hour)
	env.userHandler = NewUserHandler(env.users, env.presenter)
	env.followHandler = NewFollowHandler(env.follows, env.users, env.notifications, env.presenter)
	env.postHandler = NewPostHandler(env.posts, env.users, env.presenter)
	env.feedHandler = NewFeedHandler(env.posts, env.follows, env.presenter)
	env.likeHandler = NewLikeHandler(env.likes, env.posts, env.notifications)
	env.comment = NewCommentHandler(env.comments, env.posts, env.notifications, env.presenter)
	env.storyHandler = NewStoryHandler(env.stories, env.follows, env.users, env.presenter)
	env.notifHandler = NewNotificationHandler(env.notifications, env.presenter)

	return env
}

// createUser registers a user directly against the store with a known password
func (env *testEnv) createUser(username string) *models.User {
	env.t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		env.t.Fatalf("hashing password: %v", err)
	}
	user := &models.User{Username: username, Email: username + "@example.com", Password: string(hashed)}
	if err := env.users.CreateUserWithProfile(user); err != nil {
		env.t.Fatalf("creating user %q: %v", username, err)
	}
	return user
}

// createPost inserts a post owned by the given user
func (env *testEnv) createPost(userID uint, caption string) *models.Post {
	env.t.Helper()
	post := &models.Post{UserID: userID, ImageURL: "https://example.com/img.jpg", Caption: caption}
	if err := env.posts.CreatePost(context.Background(), post); err != nil {
		env.t.Fatalf("creating post: %v", err)
	}
	return post
}

// newContext builds an echo context carrying an optional authenticated user
func (env *testEnv) newContext(method, target string, body interface{}, userID uint) (echo.Context, *httptest.ResponseRecorder) {
	env.t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			env.t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.e.NewContext(req, rec)

	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	return c, rec
}

// decode unmarshals a recorded JSON response body
func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

// httpStatus extracts the status of a handler invocation, whether the handler
// wrote a response or returned an *echo.HTTPError
func httpStatus(rec *httptest.ResponseRecorder, err error) int {
	if err != nil {
		if httpErr, ok := err.(*echo.HTTPError); ok {
			return httpErr.Code
		}
		return 500
	}
	return rec.Code
}
