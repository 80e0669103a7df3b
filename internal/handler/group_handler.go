package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Sizzle_Season/internal/middleware"
	"Sizzle_Season/internal/service"
)

type GroupHandler struct {
	svc *service.GroupService
}

func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{svc: svc}
}

type GroupCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MaxMembers  int    `json:"max_members" binding:"required"`
	IsPrivate   bool   `json:"is_private"`
}

func (h *GroupHandler) Create(c *gin.Context) {
	uid, _ := middleware.CurrentUserID(c)

	var req GroupCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	g, err := h.svc.Create(c.Request.Context(), uid, req.Name, req.Description, req.MaxMembers, req.IsPrivate)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":          g.ID,
		"name":        g.Name,
		"description": g.Description,
		"max_members": g.MaxMembers,
		"is_private":  g.IsPrivate,
	})
}

func (h *GroupHandler) Join(c *gin.Context) {
	uid, _ := middleware.CurrentUserID(c)
	gid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	g, err := h.svc.Join(c.Request.Context(), gid, uid)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "group": g})
}

func (h *GroupHandler) Leave(c *gin.Context) {
	uid, _ := middleware.CurrentUserID(c)
	gid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	if err := h.svc.Leave(c.Request.Context(), gid, uid); err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *GroupHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.List(c.Request.Context(), page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
