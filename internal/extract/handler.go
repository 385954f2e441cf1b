package extract

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// FormField is the multipart field carrying the uploaded document.
const FormField = "file"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /extract_text/
// --------------------------------------------------
func (h *Handler) ExtractText(c *gin.Context) {
	file, header, err := c.Request.FormFile(FormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}

	result, err := h.service.Process(c.Request.Context(), contentType, data)
	if err != nil {
		var stageErr *StageError
		switch {
		case errors.Is(err, ErrUnsupportedType):
			c.JSON(http.StatusBadRequest, gin.H{"error": ErrUnsupportedType.Error()})
		case errors.As(err, &stageErr):
			// Collaborator errors can carry upstream URLs and paths; the
			// detail stays in the service log.
			c.JSON(http.StatusInternalServerError, gin.H{"error": stageErr.Stage + " failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	// 200 even when the model output could not be parsed; the body then
	// carries {"error": ...}.
	c.Data(http.StatusOK, "application/json; charset=utf-8", result.Body())
}
