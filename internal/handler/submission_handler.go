package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Sizzle_Season/internal/middleware"
	"Sizzle_Season/internal/service"
)

type SubmissionHandler struct {
	svc *service.EngagementService
}

func NewSubmissionHandler(svc *service.EngagementService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

type SubmitReq struct {
	ChallengeID uint64 `json:"challenge_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (h *SubmissionHandler) Submit(c *gin.Context) {
	uid, _ := middleware.CurrentUserID(c)

	var req SubmitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	sub, err := h.svc.Submit(c.Request.Context(), uid, req.ChallengeID, req.Title, req.Description, req.ImageURL)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubmissionHandler) Like(c *gin.Context) {
	uid, _ := middleware.CurrentUserID(c)
	sid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	sub, err := h.svc.Like(c.Request.Context(), uid, sid)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok", "like_count": sub.LikeCount})
}

func (h *SubmissionHandler) IsLiked(c *gin.Context) {
	uid, _ := middleware.CurrentUserID(c)
	sid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	liked, err := h.svc.IsLiked(c.Request.Context(), uid, sid)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (h *SubmissionHandler) LikeCount(c *gin.Context) {
	sid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	cnt, err := h.svc.LikeCount(c.Request.Context(), sid)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": cnt})
}

type CommentReq struct {
	Body string `json:"body" binding:"required"`
}

func (h *SubmissionHandler) Comment(c *gin.Context) {
	uid, _ := middleware.CurrentUserID(c)
	sid, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	var req CommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	cm, err := h.svc.Comment(c.Request.Context(), uid, sid, req.Body)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cm)
}

// Feed 时间游标翻页：?last_id=&last_created_at=&size=
func (h *SubmissionHandler) Feed(c *gin.Context) {
	cid, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	lastID, _ := strconv.ParseUint(c.Query("last_id"), 10, 64)
	lastCreatedAt, _ := strconv.ParseInt(c.Query("last_created_at"), 10, 64)
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.Feed(c.Request.Context(), cid, lastID, lastCreatedAt, size)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
