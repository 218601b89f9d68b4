package generations

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
	"resume-builder/resume/style"
)

const (
	msgGenerated = "Resume generated successfully"
	msgNotFound  = "Resume file not found"

	downloadFileName = "resume.docx"
)

// Handler wires HTTP handlers to the generation service.
type Handler struct {
	Svc *Service
	// MaxBodyBytes caps POST /generate bodies; zero means unlimited.
	MaxBodyBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, MaxBodyBytes: 1 << 20}
}

// RegisterRoutes attaches generation routes. generateMW wraps POST /generate only.
func (h *Handler) RegisterRoutes(r gin.IRoutes, generateMW ...gin.HandlerFunc) {
	r.POST("/generate", append(generateMW, h.generate)...)
	r.GET("/download", h.downloadLatest)
	r.GET("/download/:id", h.download)
	r.GET("/generations/:id", h.get)
}

// GenerateResponse is returned by POST /generate.
type GenerateResponse struct {
	Message     string `json:"message"`
	ID          string `json:"id"`
	DownloadURL string `json:"downloadUrl"`
}

func (h *Handler) generate(c *gin.Context) {
	body := c.Request.Body
	if h.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(c.Writer, body, h.MaxBodyBytes)
	}
	payload, err := io.ReadAll(body)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "invalid_request", err.Error())
		return
	}
	raw, err := DecodeRequest(payload)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, errorCode(err), err.Error())
		return
	}

	gen, err := h.Svc.Generate(c.Request.Context(), raw)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, errorCode(err), err.Error())
		return
	}

	c.Set(middleware.GenerationIDKey, gen.ID)
	respond.OK(c, GenerateResponse{
		Message:     msgGenerated,
		ID:          gen.ID,
		DownloadURL: "/download/" + gen.ID,
	})
}

func (h *Handler) download(c *gin.Context) {
	gen, rc, err := h.Svc.Open(c.Request.Context(), c.Param("id"))
	h.stream(c, gen, rc, err)
}

func (h *Handler) downloadLatest(c *gin.Context) {
	gen, rc, err := h.Svc.OpenLatest(c.Request.Context())
	h.stream(c, gen, rc, err)
}

func (h *Handler) stream(c *gin.Context, gen Generation, rc io.ReadCloser, err error) {
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "", msgNotFound)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "storage_error", err.Error())
		return
	}
	defer rc.Close()

	c.Set(middleware.GenerationIDKey, gen.ID)
	c.Header("Content-Type", render.MimeDOCX)
	c.Header("Content-Disposition", "attachment; filename=\""+downloadFileName+"\"")
	c.Header("X-Generation-Id", gen.ID)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Warn("download.copy_failed", map[string]any{"generation_id": gen.ID, "error": err})
	}
}

func (h *Handler) get(c *gin.Context) {
	gen, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "", msgNotFound)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", err.Error())
		return
	}
	respond.OK(c, gen)
}

func errorCode(err error) string {
	var validationErr *model.ValidationError
	var configErr *style.ConfigError
	var renderErr *render.RenderError
	switch {
	case errors.As(err, &validationErr):
		return "validation_error"
	case errors.As(err, &configErr):
		return "style_error"
	case errors.As(err, &renderErr):
		return "render_error"
	default:
		return "internal_error"
	}
}
