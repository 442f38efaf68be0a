package handlers

import (
	"net/http"

	"github.com/arifulhb/picstream/backend/internal/metrics"
	"github.com/arifulhb/picstream/backend/internal/models"
	"github.com/arifulhb/picstream/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles comment HTTP requests
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	postRepository         repositories.PostRepository
	notificationRepository repositories.NotificationRepository
	presenter              *Presenter
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(
	commentRepo repositories.CommentRepository,
	postRepo repositories.PostRepository,
	notifRepo repositories.NotificationRepository,
	presenter *Presenter,
) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		postRepository:         postRepo,
		notificationRepository: notifRepo,
		presenter:              presenter,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.GET("/posts/:id/comments", h.GetComments)
	g.POST("/posts/:id/comments", h.CreateComment)
}

// GetComments returns a post's comments, oldest first
func (h *CommentHandler) GetComments(c echo.Context) error {
	postID := c.Param("id")

	if _, err := h.postRepository.GetPostByID(c.Request().Context(), postID); err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comments, err := h.commentRepository.GetCommentsByPostID(postID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	viewerID := getUserIDFromContext(c)
	cache := make(map[uint]UserSummary)
	views := make([]CommentView, 0, len(comments))
	for i := range comments {
		view, err := h.presenter.CommentView(c.Request().Context(), &comments[i], viewerID, cache)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		views = append(views, view)
	}

	return c.JSON(http.StatusOK, views)
}

// CreateComment appends a comment to a post. Comments are never deduplicated;
// the comment notification is, via the notification unique key, so repeated
// comments by the same user yield at most one notification row.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: currentUserID,
		Text:   req.Text,
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != currentUserID {
		notification := &models.Notification{
			RecipientID: post.UserID,
			SenderID:    currentUserID,
			Type:        models.NotificationTypeComment,
			PostID:      postID,
		}
		if _, err := h.notificationRepository.CreateNotification(notification); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	metrics.CommentsCreated.Inc()

	view, err := h.presenter.CommentView(c.Request().Context(), comment, currentUserID, make(map[uint]UserSummary))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, view)
}
