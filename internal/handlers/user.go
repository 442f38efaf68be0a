package handlers

import (
	"net/http"
	"strconv"

	"github.com/arifulhb/picstream/backend/internal/models"
	"github.com/arifulhb/picstream/backend/internal/repositories"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// searchResultLimit caps username search results
const searchResultLimit = 10

// UserHandler handles profile and user search HTTP requests
type UserHandler struct {
	userRepository repositories.UserRepository
	presenter      *Presenter
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userRepo repositories.UserRepository, presenter *Presenter) *UserHandler {
	return &UserHandler{userRepository: userRepo, presenter: presenter}
}

// RegisterProfileRoutes registers profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.PUT("/profile/picture", h.UpdateProfilePicture)
	g.GET("/profile/:id", h.GetProfile)
	g.GET("/users/search", h.SearchUsers)
}

// GetOwnProfile returns the authenticated user's profile
func (h *UserHandler) GetOwnProfile(c echo.Context) error {
	return h.profileResponse(c, getUserIDFromContext(c))
}

// GetProfile returns another user's profile by ID
func (h *UserHandler) GetProfile(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}
	return h.profileResponse(c, uint(id))
}

func (h *UserHandler) profileResponse(c echo.Context, userID uint) error {
	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	summary, err := h.presenter.UserSummary(c.Request().Context(), user, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summary)
}

// UpdateProfile updates the authenticated user's account fields. Updates are
// partial: empty fields are left unchanged, so values cannot be cleared here.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	}

	if req.Email != "" {
		user.Email = req.Email
	}
	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return h.profileResponse(c, currentUserID)
}

// UpdateProfilePicture updates the authenticated user's bio and picture URL.
// Like UpdateProfile, empty fields are left unchanged.
func (h *UserHandler) UpdateProfilePicture(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)

	var req models.UpdateProfilePictureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	profile, err := h.userRepository.GetProfileByUserID(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Profile not found")
	}

	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.ProfilePictureURL != "" {
		profile.ProfilePictureURL = req.ProfilePictureURL
	}

	if err := h.userRepository.UpdateProfile(profile); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, profile)
}

// SearchUsers searches for users by username substring, excluding the caller
func (h *UserHandler) SearchUsers(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusOK, []UserSummary{})
	}

	users, err := h.userRepository.SearchUsers(query, getUserIDFromContext(c), searchResultLimit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	summaries, err := h.presenter.UserSummaries(c.Request().Context(), users, getUserIDFromContext(c))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, summaries)
}
