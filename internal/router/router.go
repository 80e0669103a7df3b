package router

import (
	"github.com/gin-gonic/gin"

	"Sizzle_Season/internal/handler"
	"Sizzle_Season/internal/middleware"
	"Sizzle_Season/internal/pkg"
	"Sizzle_Season/internal/service"
)

// Handlers 路由用到的全部 handler，由 main 装配
type Handlers struct {
	User       *handler.UserHandler
	Email      *handler.EmailHandler
	Group      *handler.GroupHandler
	Submission *handler.SubmissionHandler
	Challenge  *handler.ChallengeHandler
	Profile    *handler.ProfileHandler
}

func InitRouter(h Handlers, tokens *pkg.TokenManager, sessions service.SessionStore) *gin.Engine {
	r := gin.Default()

	auth := middleware.AuthMiddleware(tokens, sessions)

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", h.Email.SendCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", h.User.Register)
		userGroup.POST("/login", h.User.Login)
		userGroup.POST("/reset", h.User.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", h.User.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(auth)
	{
		authGroup.POST("/logout", h.User.Logout)
		authGroup.POST("/change-password", h.User.ChangePassword)
	}

	// 小组相关接口
	groupGroup := r.Group("/api/group")
	groupGroup.Use(auth)
	{
		groupGroup.POST("/create", h.Group.Create)
		groupGroup.POST("/:id/join", h.Group.Join)
		groupGroup.POST("/:id/leave", h.Group.Leave)
		groupGroup.GET("/list", h.Group.List)
	}

	// 挑战相关接口
	challengeGroup := r.Group("/api/challenge")
	challengeGroup.Use(auth)
	{
		challengeGroup.POST("/create", h.Challenge.Create)
		challengeGroup.GET("/current", h.Challenge.Current)
		challengeGroup.GET("/:id", h.Challenge.Get)
		challengeGroup.GET("/:id/feed", h.Submission.Feed)
	}

	// 投稿相关接口
	submissionGroup := r.Group("/api/submission")
	submissionGroup.Use(auth)
	{
		submissionGroup.POST("/create", h.Submission.Submit)
		submissionGroup.POST("/:id/like", h.Submission.Like)
		submissionGroup.GET("/:id/liked", h.Submission.IsLiked)
		submissionGroup.GET("/:id/likes", h.Submission.LikeCount)
		submissionGroup.POST("/:id/comment", h.Submission.Comment)
	}

	// 个人主页与积分相关接口
	profileGroup := r.Group("/api/profile")
	profileGroup.Use(auth)
	{
		profileGroup.GET("/", h.Profile.Get)
		profileGroup.GET("/:id", h.Profile.Get)
		profileGroup.POST("/checkin", h.Profile.CheckIn)
		profileGroup.GET("/score/history", h.Profile.ScoreHistory)
		profileGroup.GET("/achievements", h.Profile.Achievements)
	}

	// 周榜
	leaderboardGroup := r.Group("/api/leaderboard")
	leaderboardGroup.Use(auth)
	{
		leaderboardGroup.GET("/weekly", h.Profile.WeeklyLeaderboard)
	}

	return r
}
