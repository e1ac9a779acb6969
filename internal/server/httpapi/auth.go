package httpapi

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *handler) bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, h.logger, fmt.Errorf("%w: %v", common.ErrorBadRequest, err))
		return false
	}
	return true
}

func (h *handler) register(c *gin.Context) {
	var req credentialsRequest
	if !h.bind(c, &req) {
		return
	}
	u, err := h.Users.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *handler) login(c *gin.Context) {
	var req credentialsRequest
	if !h.bind(c, &req) {
		return
	}
	pair, err := h.Users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *handler) refresh(c *gin.Context) {
	var req refreshRequest
	if !h.bind(c, &req) {
		return
	}
	pair, err := h.Users.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

func (h *handler) logout(c *gin.Context) {
	if err := h.Users.Logout(c.Request.Context(), userID(c)); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
