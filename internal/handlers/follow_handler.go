package handlers

import (
	"net/http"
	"strconv"

	"github.com/arifulhb/picstream/backend/internal/models"
	"github.com/arifulhb/picstream/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// FollowHandler handles follow graph HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
	presenter              *Presenter
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	notifRepo repositories.NotificationRepository,
	presenter *Presenter,
) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
		presenter:              presenter,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:id", h.FollowUser)
	g.DELETE("/unfollow/:id", h.UnfollowUser)
	g.GET("/follow-status/:id", h.FollowStatus)
	g.GET("/followers", h.GetOwnFollowers)
	g.GET("/followers/:id", h.GetFollowers)
	g.GET("/following", h.GetOwnFollowing)
	g.GET("/following/:id", h.GetFollowing)
}

// FollowUser creates the follow edge if absent. Re-following is a no-op
// success; only the first creation emits a follow notification.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := h.targetUserID(c)
	if err != nil {
		return err
	}

	if currentUserID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	follow := &models.Follow{
		FollowerID:  currentUserID,
		FollowingID: targetID,
	}

	created, err := h.followRepository.CreateFollow(follow)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if !created {
		return c.JSON(http.StatusOK, echo.Map{"message": "Already following this user", "following": true})
	}

	notification := &models.Notification{
		RecipientID: targetID,
		SenderID:    currentUserID,
		Type:        models.NotificationTypeFollow,
	}
	if _, err := h.notificationRepository.CreateNotification(notification); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Successfully followed user", "following": true})
}

// UnfollowUser removes the follow edge if present
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := h.targetUserID(c)
	if err != nil {
		return err
	}

	if err := h.followRepository.DeleteFollow(currentUserID, targetID); err != nil {
		if err == repositories.ErrNotFollowing {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Not following this user", "following": false})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Successfully unfollowed user", "following": false})
}

// FollowStatus reports whether the caller follows the target user
func (h *FollowHandler) FollowStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	targetID, err := h.targetUserID(c)
	if err != nil {
		return err
	}

	isFollowing, err := h.followRepository.IsFollowing(currentUserID, targetID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"following": isFollowing})
}

// GetOwnFollowers lists the caller's followers
func (h *FollowHandler) GetOwnFollowers(c echo.Context) error {
	return h.followerList(c, getUserIDFromContext(c), h.followRepository.GetFollowers)
}

// GetFollowers lists a user's followers
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	targetID, err := h.targetUserID(c)
	if err != nil {
		return err
	}
	return h.followerList(c, targetID, h.followRepository.GetFollowers)
}

// GetOwnFollowing lists the users the caller follows
func (h *FollowHandler) GetOwnFollowing(c echo.Context) error {
	return h.followerList(c, getUserIDFromContext(c), h.followRepository.GetFollowing)
}

// GetFollowing lists the users a user follows
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	targetID, err := h.targetUserID(c)
	if err != nil {
		return err
	}
	return h.followerList(c, targetID, h.followRepository.GetFollowing)
}

func (h *FollowHandler) followerList(c echo.Context, userID uint, query func(uint) ([]models.User, error)) error {
	users, err := query(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	summaries, err := h.presenter.UserSummaries(c.Request().Context(), users, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summaries)
}

// targetUserID parses the :id param and verifies the user exists
func (h *FollowHandler) targetUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if _, err := h.userRepository.GetUserByID(uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return 0, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return uint(id), nil
}
