package handlers

import (
	"context"
	"time"

	"github.com/arifulhb/picstream/backend/internal/models"
	"github.com/arifulhb/picstream/backend/internal/repositories"
)

// commentPreviewLimit is the number of earliest comments embedded in a post
const commentPreviewLimit = 2

// UserSummary is the user representation embedded throughout API responses
type UserSummary struct {
	ID             uint           `json:"id"`
	Username       string         `json:"username"`
	Email          string         `json:"email"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	FollowersCount int64          `json:"followers_count"`
	FollowingCount int64          `json:"following_count"`
	PostsCount     int64          `json:"posts_count"`
	IsFollowing    bool           `json:"is_following"`
	Profile        models.Profile `json:"profile"`
}

// CommentView is a comment with its author embedded
type CommentView struct {
	ID        uint        `json:"id"`
	Text      string      `json:"text"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}

// PostView is a post enriched with owner, engagement counts, the viewer's
// liked flag and a preview of the two earliest comments
type PostView struct {
	ID            string        `json:"id"`
	ImageURL      string        `json:"image_url"`
	Caption       string        `json:"caption"`
	User          UserSummary   `json:"user"`
	CreatedAt     time.Time     `json:"created_at"`
	LikesCount    int64         `json:"likes_count"`
	CommentsCount int64         `json:"comments_count"`
	Comments      []CommentView `json:"comments"`
	IsLiked       bool          `json:"is_liked"`
}

// StoryView is a story with its author embedded
type StoryView struct {
	ID        string      `json:"id"`
	ImageURL  string      `json:"image_url"`
	Text      string      `json:"text"`
	User      UserSummary `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// NotificationView is a notification with sender and post context embedded
type NotificationView struct {
	ID               uint        `json:"id"`
	Sender           UserSummary `json:"sender"`
	NotificationType string      `json:"notification_type"`
	Message          string      `json:"message"`
	PostID           string      `json:"post_id,omitempty"`
	PostImage        string      `json:"post_image,omitempty"`
	IsRead           bool        `json:"is_read"`
	CreatedAt        time.Time   `json:"created_at"`
}

// Presenter assembles API representations from the stores. Counts and flags
// are always computed on read, never cached.
type Presenter struct {
	userRepository    repositories.UserRepository
	followRepository  repositories.FollowRepository
	postRepository    repositories.PostRepository
	likeRepository    repositories.LikeRepository
	commentRepository repositories.CommentRepository
}

// NewPresenter creates a new Presenter
func NewPresenter(
	userRepo repositories.UserRepository,
	followRepo repositories.FollowRepository,
	postRepo repositories.PostRepository,
	likeRepo repositories.LikeRepository,
	commentRepo repositories.CommentRepository,
) *Presenter {
	return &Presenter{
		userRepository:    userRepo,
		followRepository:  followRepo,
		postRepository:    postRepo,
		likeRepository:    likeRepo,
		commentRepository: commentRepo,
	}
}

// UserSummary builds the user representation seen by viewerID. IsFollowing is
// always false for the viewer's own summary.
func (p *Presenter) UserSummary(ctx context.Context, user *models.User, viewerID uint) (UserSummary, error) {
	summary := UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	var err error
	if summary.FollowersCount, err = p.followRepository.GetFollowersCount(user.ID); err != nil {
		return summary, err
	}
	if summary.FollowingCount, err = p.followRepository.GetFollowingCount(user.ID); err != nil {
		return summary, err
	}
	if summary.PostsCount, err = p.postRepository.CountByOwnerID(ctx, user.ID); err != nil {
		return summary, err
	}

	if viewerID != 0 && viewerID != user.ID {
		if summary.IsFollowing, err = p.followRepository.IsFollowing(viewerID, user.ID); err != nil {
			return summary, err
		}
	}

	if profile, err := p.userRepository.GetProfileByUserID(user.ID); err == nil {
		summary.Profile = *profile
	}

	return summary, nil
}

// UserSummaries builds summaries for a list of users
func (p *Presenter) UserSummaries(ctx context.Context, users []models.User, viewerID uint) ([]UserSummary, error) {
	summaries := make([]UserSummary, 0, len(users))
	for i := range users {
		summary, err := p.UserSummary(ctx, &users[i], viewerID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// userSummaryByID resolves and builds a summary through a per-request cache
func (p *Presenter) userSummaryByID(ctx context.Context, userID, viewerID uint, cache map[uint]UserSummary) (UserSummary, error) {
	if summary, ok := cache[userID]; ok {
		return summary, nil
	}
	user, err := p.userRepository.GetUserByID(userID)
	if err != nil {
		return UserSummary{}, err
	}
	summary, err := p.UserSummary(ctx, user, viewerID)
	if err != nil {
		return UserSummary{}, err
	}
	cache[userID] = summary
	return summary, nil
}

// PostView builds the enriched representation of one post
func (p *Presenter) PostView(ctx context.Context, post *models.Post, viewerID uint) (PostView, error) {
	return p.postView(ctx, post, viewerID, make(map[uint]UserSummary))
}

// PostViews builds enriched representations for a list of posts, sharing a
// user summary cache across the batch
func (p *Presenter) PostViews(ctx context.Context, posts []models.Post, viewerID uint) ([]PostView, error) {
	cache := make(map[uint]UserSummary)
	views := make([]PostView, 0, len(posts))
	for i := range posts {
		view, err := p.postView(ctx, &posts[i], viewerID, cache)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (p *Presenter) postView(ctx context.Context, post *models.Post, viewerID uint, cache map[uint]UserSummary) (PostView, error) {
	postID := post.ID.Hex()

	view := PostView{
		ID:        postID,
		ImageURL:  post.ImageURL,
		Caption:   post.Caption,
		CreatedAt: post.CreatedAt,
		Comments:  []CommentView{},
	}

	owner, err := p.userSummaryByID(ctx, post.UserID, viewerID, cache)
	if err != nil {
		return view, err
	}
	view.User = owner

	if view.LikesCount, err = p.likeRepository.GetLikesCountByPostID(postID); err != nil {
		return view, err
	}
	if view.CommentsCount, err = p.commentRepository.GetCommentsCountByPostID(postID); err != nil {
		return view, err
	}

	if viewerID != 0 {
		if view.IsLiked, err = p.likeRepository.HasUserLikedPost(postID, viewerID); err != nil {
			return view, err
		}
	}

	preview, err := p.commentRepository.GetFirstCommentsByPostID(postID, commentPreviewLimit)
	if err != nil {
		return view, err
	}
	for i := range preview {
		commentView, err := p.CommentView(ctx, &preview[i], viewerID, cache)
		if err != nil {
			return view, err
		}
		view.Comments = append(view.Comments, commentView)
	}

	return view, nil
}

// CommentView builds the representation of one comment
func (p *Presenter) CommentView(ctx context.Context, comment *models.Comment, viewerID uint, cache map[uint]UserSummary) (CommentView, error) {
	author, err := p.userSummaryByID(ctx, comment.UserID, viewerID, cache)
	if err != nil {
		return CommentView{}, err
	}
	return CommentView{
		ID:        comment.ID,
		Text:      comment.Text,
		User:      author,
		CreatedAt: comment.CreatedAt,
	}, nil
}

// StoryViews builds representations for a list of stories
func (p *Presenter) StoryViews(ctx context.Context, stories []models.Story, viewerID uint) ([]StoryView, error) {
	cache := make(map[uint]UserSummary)
	views := make([]StoryView, 0, len(stories))
	for i := range stories {
		author, err := p.userSummaryByID(ctx, stories[i].UserID, viewerID, cache)
		if err != nil {
			return nil, err
		}
		views = append(views, StoryView{
			ID:        stories[i].ID.Hex(),
			ImageURL:  stories[i].ImageURL,
			Text:      stories[i].Text,
			User:      author,
			CreatedAt: stories[i].CreatedAt,
			ExpiresAt: stories[i].ExpiresAt,
		})
	}
	return views, nil
}

// NotificationViews builds representations for a list of notifications,
// resolving sender summaries and post preview images
func (p *Presenter) NotificationViews(ctx context.Context, notifications []models.Notification, viewerID uint) ([]NotificationView, error) {
	cache := make(map[uint]UserSummary)
	views := make([]NotificationView, 0, len(notifications))
	for i := range notifications {
		n := &notifications[i]
		sender, err := p.userSummaryByID(ctx, n.SenderID, viewerID, cache)
		if err != nil {
			return nil, err
		}
		view := NotificationView{
			ID:               n.ID,
			Sender:           sender,
			NotificationType: n.Type,
			Message:          n.Message(sender.Username),
			PostID:           n.PostID,
			IsRead:           n.IsRead,
			CreatedAt:        n.CreatedAt,
		}
		if n.PostID != "" {
			if post, err := p.postRepository.GetPostByID(ctx, n.PostID); err == nil {
				view.PostImage = post.ImageURL
			}
		}
		views = append(views, view)
	}
	return views, nil
}
