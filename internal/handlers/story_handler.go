package handlers

import (
	"net/http"
	"strconv"

	"github.com/arifulhb/picstream/backend/internal/models"
	"github.com/arifulhb/picstream/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// StoryHandler handles story HTTP requests
type StoryHandler struct {
	storyRepository  repositories.StoryRepository
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	presenter        *Presenter
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(
	storyRepo repositories.StoryRepository,
	followRepo repositories.FollowRepository,
	userRepo repositories.UserRepository,
	presenter *Presenter,
) *StoryHandler {
	return &StoryHandler{
		storyRepository:  storyRepo,
		followRepository: followRepo,
		userRepository:   userRepo,
		presenter:        presenter,
	}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetStories)
	g.POST("/stories", h.CreateStory)
	g.GET("/stories/my", h.GetOwnStories)
	g.GET("/stories/user/:id", h.GetUserStories)
}

// GetStories returns the active stories of followed users plus the caller's
// own, newest first. Expired stories are filtered at read time.
func (h *StoryHandler) GetStories(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	followingIDs, err := h.followRepository.GetFollowingIDs(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	ownerIDs := append(followingIDs, currentUserID)

	stories, err := h.storyRepository.GetActiveByOwnerIDs(c.Request().Context(), ownerIDs)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return h.storyListResponse(c, stories)
}

// CreateStory creates a story expiring 24 hours from now
func (h *StoryHandler) CreateStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	story := &models.Story{
		UserID:   currentUserID,
		ImageURL: req.ImageURL,
		Text:     req.Text,
	}

	if err := h.storyRepository.CreateStory(c.Request().Context(), story); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	views, err := h.presenter.StoryViews(c.Request().Context(), []models.Story{*story}, currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, views[0])
}

// GetOwnStories returns the caller's active stories
func (h *StoryHandler) GetOwnStories(c echo.Context) error {
	stories, err := h.storyRepository.GetActiveByOwnerID(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.storyListResponse(c, stories)
}

// GetUserStories returns one user's active stories
func (h *StoryHandler) GetUserStories(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if _, err := h.userRepository.GetUserByID(uint(id)); err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	stories, err := h.storyRepository.GetActiveByOwnerID(c.Request().Context(), uint(id))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return h.storyListResponse(c, stories)
}

func (h *StoryHandler) storyListResponse(c echo.Context, stories []models.Story) error {
	views, err := h.presenter.StoryViews(c.Request().Context(), stories, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, views)
}
