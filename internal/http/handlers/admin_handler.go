package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/saradorri/tournamenthub/internal/domain"
	"github.com/saradorri/tournamenthub/internal/http/middleware"
	"github.com/saradorri/tournamenthub/internal/usecase"
)

// maxUploadSize bounds image uploads
const maxUploadSize = 5 << 20

// AdminHandler serves the admin dashboard and image uploads
type AdminHandler struct {
	adminUseCase usecase.AdminUseCase
	images       domain.ImageStore
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUseCase usecase.AdminUseCase, images domain.ImageStore) *AdminHandler {
	return &AdminHandler{adminUseCase: adminUseCase, images: images}
}

// UploadResponse is the public URL of an uploaded image
type UploadResponse struct {
	URL string `json:"url" example:"https://cdn.example.com/tournaments/squad-cup-1a2b3c4d.png"`
}

// Stats returns the dashboard figures and recent activity
// @Summary Dashboard stats
// @Tags admin
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Success 200 {object} Response{data=usecase.DashboardStats}
// @Failure 403 {object} ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	respond(c, http.StatusOK, h.adminUseCase.Stats(middleware.Session(c)))
}

// Upload stores an image in object storage
// @Summary Upload image
// @Description Stores a tournament image or the app logo and returns its public URL
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Param X-Session-ID header string true "Client session id"
// @Param folder formData string false "Target folder" default(tournaments)
// @Param file formData file true "Image"
// @Success 201 {object} Response{data=UploadResponse}
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /admin/uploads [post]
func (h *AdminHandler) Upload(c *gin.Context) {
	if !h.images.Enabled() {
		fail(c, domain.NewAppError(domain.ErrCodeStorageDisabled, "Image storage is not configured", http.StatusServiceUnavailable, nil))
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		fail(c, domain.NewValidationError("file", "an image file is required"))
		return
	}
	if header.Size > maxUploadSize {
		fail(c, domain.NewAppError(domain.ErrCodeInvalidRange, "Image is larger than 5 MB", http.StatusBadRequest, nil))
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	file, err := header.Open()
	if err != nil {
		badRequest(c, err)
		return
	}
	defer file.Close()

	folder := c.DefaultPostForm("folder", "tournaments")
	url, err := h.images.Upload(c.Request.Context(), folder, header.Filename, contentType, file)
	if err != nil {
		fail(c, domain.NewExternalServiceError("storage", "upload", err))
		return
	}
	respond(c, http.StatusCreated, UploadResponse{URL: url})
}
