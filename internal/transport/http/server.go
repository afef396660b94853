package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gopherblog/internal/bootstrap"
	"gopherblog/internal/transport/http/handler"
	"gopherblog/internal/transport/http/middleware"
	"gopherblog/internal/transport/http/response"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(app.Logger), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/", healthHandler.Root)
	router.GET("/healthz", healthHandler.Check)
	router.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, response.MsgRouteNotFound)
	})

	authHandler := handler.NewAuthHandler(app.Auth, app.Users, app.Activity)
	userHandler := handler.NewUserHandler(app.Users, app.Posts)
	postHandler := handler.NewPostHandler(app.Posts)
	commentHandler := handler.NewCommentHandler(app.Comments)
	requireAuth := middleware.RequireAuth(app.Auth)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/profile", requireAuth, authHandler.Profile)
	authGroup.PUT("/profile", requireAuth, authHandler.UpdateProfile)
	authGroup.DELETE("/profile", requireAuth, authHandler.DeleteProfile)
	authGroup.GET("/activity", requireAuth, authHandler.Activity)

	userGroup := api.Group("/users")
	userGroup.GET("", userHandler.List)
	userGroup.GET("/:id/posts", userHandler.Posts)

	postGroup := api.Group("/posts")
	postGroup.GET("", postHandler.List)
	postGroup.GET("/slug/:slug", postHandler.GetBySlug)
	postGroup.GET("/:id", postHandler.Get)
	postGroup.POST("", requireAuth, postHandler.Create)
	postGroup.PUT("/:id", requireAuth, postHandler.Update)
	postGroup.DELETE("/:id", requireAuth, postHandler.Delete)
	postGroup.GET("/:id/comments", commentHandler.ListByPost)
	postGroup.POST("/:id/comments", requireAuth, commentHandler.Create)

	commentGroup := api.Group("/comments")
	commentGroup.PUT("/:id", requireAuth, commentHandler.Update)
	commentGroup.DELETE("/:id", requireAuth, commentHandler.Delete)

	return router
}
