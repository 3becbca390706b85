package router

import (
	"communityhub/internal/handler"
	"communityhub/internal/middleware"
	"communityhub/internal/pkg"
	"communityhub/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Deps struct {
	Maker  *pkg.TokenMaker
	Tokens service.TokenStore
	Log    *zap.Logger

	Auth       *handler.AuthHandler
	Category   *handler.CategoryHandler
	Community  *handler.CommunityHandler
	Post       *handler.PostHandler
	Comment    *handler.CommentHandler
	Vote       *handler.VoteHandler
	Moderation *handler.ModerationHandler
	Admin      *handler.AdminHandler
	Search     *handler.SearchHandler
}

func InitRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(d.Log))

	authed := middleware.Auth(d.Maker, d.Tokens)
	optional := middleware.OptionalAuth(d.Maker, d.Tokens)
	admin := middleware.RequireAdmin()

	auth := r.Group("/auth")
	{
		auth.POST("/member/join", d.Auth.MemberJoin)
		auth.POST("/member/login", d.Auth.MemberLogin)
		// bootstrap allows the first admin to self-join; after that an
		// admin token is required, hence optional auth here
		auth.POST("/admin/join", optional, d.Auth.AdminJoin)
		auth.POST("/admin/login", d.Auth.AdminLogin)
		auth.POST("/refresh", d.Auth.Refresh)

		auth.POST("/logout", authed, d.Auth.Logout)
		auth.POST("/password", authed, d.Auth.ChangePassword)
		auth.GET("/sessions", authed, d.Auth.ListSessions)
		auth.DELETE("/sessions/:id", authed, d.Auth.RevokeSession)
	}

	api := r.Group("/communityPlatform")

	categories := api.Group("/categories")
	{
		categories.GET("", d.Category.List)
		categories.GET("/:id", d.Category.Get)
		categories.POST("", authed, admin, d.Category.Create)
		categories.PUT("/:id", authed, admin, d.Category.Update)
		categories.DELETE("/:id", authed, admin, d.Category.Delete)
	}

	communities := api.Group("/communities")
	{
		communities.GET("", d.Community.List)
		communities.GET("/:id", d.Community.Get)
		communities.GET("/:id/members", d.Community.ListMembers)
		communities.GET("/:id/rules", d.Community.ListRules)

		communities.POST("", authed, d.Community.Create)
		communities.PUT("/:id", authed, d.Community.Update)
		communities.DELETE("/:id", authed, d.Community.Delete)
		communities.POST("/:id/join", authed, d.Community.Join)
		communities.POST("/:id/leave", authed, d.Community.Leave)
		communities.POST("/:id/rules", authed, d.Community.AddRule)
		communities.PUT("/:id/rules/:ruleID", authed, d.Community.UpdateRule)
		communities.DELETE("/:id/rules/:ruleID", authed, d.Community.DeleteRule)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", d.Post.List)
		posts.GET("/:id", d.Post.Get)
		posts.GET("/:id/comments", d.Comment.ListByPost)
		posts.GET("/:id/vote", optional, d.Vote.ScorePost)

		posts.POST("", authed, d.Post.Create)
		posts.PUT("/:id", authed, d.Post.Update)
		posts.DELETE("/:id", authed, d.Post.Delete)
		posts.POST("/:id/comments", authed, d.Comment.Create)
		posts.PUT("/:id/vote", authed, d.Vote.CastPost)
	}

	comments := api.Group("/comments")
	{
		comments.GET("/:id", d.Comment.Get)
		comments.GET("/:id/vote", optional, d.Vote.ScoreComment)

		comments.PUT("/:id", authed, d.Comment.Update)
		comments.DELETE("/:id", authed, d.Comment.Delete)
		comments.PUT("/:id/vote", authed, d.Vote.CastComment)
	}

	reports := api.Group("/reports")
	reports.Use(authed)
	{
		reports.POST("", d.Moderation.CreateReport)
		reports.POST("/:id/appeal", d.Moderation.CreateAppeal)

		reports.GET("", admin, d.Moderation.ListReports)
		reports.GET("/:id", admin, d.Moderation.GetReport)
		reports.POST("/:id/resolve", admin, d.Moderation.ResolveReport)
	}

	appeals := api.Group("/appeals")
	appeals.Use(authed, admin)
	{
		appeals.GET("", d.Moderation.ListAppeals)
		appeals.POST("/:id/resolve", d.Moderation.ResolveAppeal)
	}

	api.GET("/auditLogs", authed, admin, d.Admin.ListAuditLogs)
	api.GET("/searchLogs", authed, admin, d.Admin.ListSearchLogs)

	configurations := api.Group("/configurations")
	{
		configurations.GET("/key/:key", d.Admin.GetConfiguration)

		configurations.GET("", authed, admin, d.Admin.ListConfigurations)
		configurations.POST("", authed, admin, d.Admin.CreateConfiguration)
		configurations.PUT("/:id", authed, admin, d.Admin.UpdateConfiguration)
		configurations.DELETE("/:id", authed, admin, d.Admin.DeleteConfiguration)
	}

	api.GET("/search", optional, d.Search.Search)

	return r
}
