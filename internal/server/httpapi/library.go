package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/dmitrijs2005/paperkeeper/internal/notesdoc"
	"github.com/dmitrijs2005/paperkeeper/internal/server/models"
	"github.com/dmitrijs2005/paperkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

// room for the {"content": ...} envelope around a maximal notes document
const maxNoteRequestBytes = notesdoc.MaxBytes + 1024

type messageResponse struct {
	Message string `json:"message"`
}

type createPaperRequest struct {
	URL string `json:"url"`
}

type upsertNoteRequest struct {
	Content json.RawMessage `json:"content"`
}

func (h *handler) listCategories(c *gin.Context) {
	list, err := h.Categories.List(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *handler) createCategory(c *gin.Context) {
	var req models.CategoryInput
	if !h.bind(c, &req) {
		return
	}
	cat, err := h.Categories.Create(c.Request.Context(), userID(c), clientID(c), req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *handler) getCategory(c *gin.Context) {
	d, err := h.Categories.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *handler) updateCategory(c *gin.Context) {
	var patch models.CategoryPatch
	if !h.bind(c, &patch) {
		return
	}
	cat, err := h.Categories.Update(c.Request.Context(), userID(c), clientID(c), c.Param("id"), patch)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *handler) deleteCategory(c *gin.Context) {
	if err := h.Categories.Delete(c.Request.Context(), userID(c), clientID(c), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: services.DeletedMessage})
}

func (h *handler) createPaper(c *gin.Context) {
	var req createPaperRequest
	if !h.bind(c, &req) {
		return
	}
	p, err := h.Papers.Create(c.Request.Context(), userID(c), clientID(c), c.Param("id"), req.URL)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handler) getPaper(c *gin.Context) {
	p, err := h.Papers.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) updatePaper(c *gin.Context) {
	var patch models.PaperPatch
	if !h.bind(c, &patch) {
		return
	}
	p, err := h.Papers.Update(c.Request.Context(), userID(c), clientID(c), c.Param("id"), patch)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) deletePaper(c *gin.Context) {
	if err := h.Papers.Delete(c.Request.Context(), userID(c), clientID(c), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: services.DeletedMessage})
}

func (h *handler) upsertNote(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxNoteRequestBytes)

	var req upsertNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("notes exceed %d bytes", notesdoc.MaxBytes)
		}
		writeError(c, h.logger, fmt.Errorf("%w: %v", common.ErrorBadRequest, err))
		return
	}

	n, err := h.Papers.UpsertNote(c.Request.Context(), userID(c), c.Param("id"), req.Content)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

func (h *handler) presignUpload(c *gin.Context) {
	t, err := h.Uploads.Presign(c.Request.Context(), userID(c), clientID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}
