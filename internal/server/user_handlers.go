package server

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"chirp/internal/models"

	"github.com/gofiber/fiber/v2"
)

const maxProfileImageBytes = 5 * 1024 * 1024

// GetMyProfile handles GET /api/users/me
// @Summary Get the authenticated user's profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

// UploadProfileImage handles POST /api/user/profile-image
// @Summary Upload a profile image
// @Description Accepts a multipart image upload and stores it as a base64 data URL on the user
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file (max 5MB)"
// @Success 200 {object} object{success=bool,profile_image=string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /user/profile-image [post]
func (s *Server) UploadProfileImage(c *fiber.Ctx) error {
	userID := currentUserID(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fail(c, models.NewValidationError("No image file provided"))
	}

	if fileHeader.Size > maxProfileImageBytes {
		return fail(c, models.NewValidationError("Image must be 5MB or less"))
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fail(c, models.NewValidationError("File must be an image"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxProfileImageBytes+1))
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}
	if len(data) > maxProfileImageBytes {
		return fail(c, models.NewValidationError("Image must be 5MB or less"))
	}

	// Stored inline as a data URL; clients render it directly in an img src.
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))

	if err := s.userRepo.UpdateProfileImage(c.Context(), userID, dataURL); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"profile_image": dataURL,
	})
}
