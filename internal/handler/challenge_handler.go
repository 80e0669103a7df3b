package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"Sizzle_Season/internal/service"
)

type ChallengeHandler struct {
	svc *service.ChallengeService
}

func NewChallengeHandler(svc *service.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{svc: svc}
}

type ChallengeCreateReq struct {
	Title       string   `json:"title" binding:"required"`
	Theme       string   `json:"theme" binding:"required"`
	Ingredients []string `json:"ingredients"`
	StartAt     int64    `json:"start_at" binding:"required"`
	EndAt       int64    `json:"end_at" binding:"required"`
}

func (h *ChallengeHandler) Create(c *gin.Context) {
	var req ChallengeCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	ch, err := h.svc.Create(c.Request.Context(), req.Title, req.Theme, req.Ingredients,
		time.Unix(req.StartAt, 0), time.Unix(req.EndAt, 0))
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, ch)
}

func (h *ChallengeHandler) Current(c *gin.Context) {
	view, err := h.svc.Current(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *ChallengeHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)

	view, err := h.svc.Get(c.Request.Context(), id, time.Now())
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}
