package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"Sizzle_Season/internal/middleware"
	"Sizzle_Season/internal/service"
)

type ProfileHandler struct {
	profiles *service.ProfileService
	scores   *service.ScoreService
	achieves *service.AchievementService
}

func NewProfileHandler(profiles *service.ProfileService, scores *service.ScoreService, achieves *service.AchievementService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, scores: scores, achieves: achieves}
}

// Get 看自己或别人的主页：/:id 为 0 或缺省时取当前登录用户
func (h *ProfileHandler) Get(c *gin.Context) {
	uid, _ := middleware.CurrentUserID(c)
	if idStr := c.Param("id"); idStr != "" {
		if id, err := strconv.ParseUint(idStr, 10, 64); err == nil && id > 0 {
			uid = id
		}
	}

	view, err := h.profiles.Get(c.Request.Context(), uid)
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, view)
}

// CheckIn 每日签到，同一天重复调用不再加分
func (h *ProfileHandler) CheckIn(c *gin.Context) {
	uid, _ := middleware.CurrentUserID(c)

	ev, fresh, err := h.scores.DailyCheckIn(c.Request.Context(), uid, time.Now())
	if err != nil {
		c.JSON(statusOf(err), gin.H{"msg": err.Error()})
		return
	}
	if !fresh {
		c.JSON(http.StatusOK, gin.H{"checked_in": true, "awarded": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"checked_in": true, "awarded": true, "points": ev.Points})
}

func (h *ProfileHandler) ScoreHistory(c *gin.Context) {
	uid, _ := middleware.CurrentUserID(c)
	size, _ := strconv.Atoi(c.Query("size"))
	if size <= 0 || size > 100 {
		size = 20
	}

	list, err := h.scores.History(c.Request.Context(), uid, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "history failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ProfileHandler) Achievements(c *gin.Context) {
	uid, _ := middleware.CurrentUserID(c)

	list, err := h.achieves.ListWithStatus(c.Request.Context(), uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "achievements failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ProfileHandler) WeeklyLeaderboard(c *gin.Context) {
	n, _ := strconv.ParseInt(c.Query("n"), 10, 64)

	list, err := h.scores.WeeklyTop(c.Request.Context(), time.Now(), n)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "leaderboard failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
