package handlers

import (
	"net/http"

	"github.com/arifulhb/picstream/backend/internal/metrics"
	"github.com/arifulhb/picstream/backend/internal/models"
	"github.com/arifulhb/picstream/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles the like toggle
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	postRepository         repositories.PostRepository
	notificationRepository repositories.NotificationRepository
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, notifRepo repositories.NotificationRepository) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		postRepository:         postRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleLike)
}

// ToggleLike flips the caller's like on a post. The create path is a single
// conditional insert on the (user, post) unique index; when it loses to an
// existing row the toggle falls through to the delete path. The like
// notification mirrors the like itself: created on like (unless the caller
// owns the post), removed on unlike.
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	postID := c.Param("id")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if err == repositories.ErrPostNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	like := &models.Like{
		UserID: currentUserID,
		PostID: postID,
	}

	created, err := h.likeRepository.CreateLike(like)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if created {
		if post.UserID != currentUserID {
			notification := &models.Notification{
				RecipientID: post.UserID,
				SenderID:    currentUserID,
				Type:        models.NotificationTypeLike,
				PostID:      postID,
			}
			if _, err := h.notificationRepository.CreateNotification(notification); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
		}

		metrics.LikesToggled.WithLabelValues("liked").Inc()
		return c.JSON(http.StatusCreated, echo.Map{"message": "Post liked", "liked": true})
	}

	if err := h.likeRepository.DeleteLike(postID, currentUserID); err != nil && err != repositories.ErrLikeNotFound {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if post.UserID != currentUserID {
		if err := h.notificationRepository.DeleteNotification(post.UserID, currentUserID, models.NotificationTypeLike, postID); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	metrics.LikesToggled.WithLabelValues("unliked").Inc()
	return c.JSON(http.StatusOK, echo.Map{"message": "Post unliked", "liked": false})
}
