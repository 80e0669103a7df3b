package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Sizzle_Season/internal/service"
)

type EmailHandler struct {
	svc *service.EmailService
}

func NewEmailHandler(svc *service.EmailService) *EmailHandler {
	return &EmailHandler{svc: svc}
}

type SendCodeReq struct {
	Email string `json:"email" binding:"required,email"`
}

// SendCode scope 取 register / reset，写在路径里
func (h *EmailHandler) SendCode(c *gin.Context) {
	scope := c.Param("scope")
	if scope != "register" && scope != "reset" {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "unknown scope"})
		return
	}
	var req SendCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.SendCode(c.Request.Context(), scope, req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "send failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
