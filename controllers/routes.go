package controllers

import (
	"pawsgram/middlewares"
)

func (s *Server) initializeRoutes() {

	api := s.Router.Group("/api")
	{
		// Auth routes
		authGroup := api.Group("/auth")
		authGroup.Use(middlewares.AuthRateLimitMiddleware())
		{
			authGroup.POST("/register", s.Register)
			authGroup.POST("/login", s.Login)
			authGroup.POST("/password/forgot", s.ForgotPassword)
			authGroup.POST("/password/reset", s.ResetPassword)
		}

		// Post routes
		api.GET("/posts", s.GetPosts)
		api.POST("/posts", middlewares.TokenAuthMiddleware(s.DB), s.CreatePost)
		api.GET("/posts/:id", s.GetPost)
		api.DELETE("/posts/:id", middlewares.TokenAuthMiddleware(s.DB), s.DeletePost)
		api.POST("/posts/:id/like", middlewares.TokenAuthMiddleware(s.DB), s.LikePost)
		api.DELETE("/posts/:id/like", middlewares.TokenAuthMiddleware(s.DB), s.UnlikePost)
		api.POST("/posts/:id/save", middlewares.TokenAuthMiddleware(s.DB), s.SavePost)
		api.DELETE("/posts/:id/save", middlewares.TokenAuthMiddleware(s.DB), s.UnsavePost)

		// User routes. Static segments (saved, profile) must not collide
		// with the :username parameter, gin resolves them first.
		api.GET("/users/saved", middlewares.TokenAuthMiddleware(s.DB), s.GetSavedPosts)
		api.PUT("/users/profile", middlewares.TokenAuthMiddleware(s.DB), s.UpdateProfile)
		api.GET("/users/:username", s.GetProfile)
		api.GET("/users/:username/followers", s.GetFollowers)
		api.GET("/users/:username/following", s.GetFollowing)
		api.POST("/users/:username/follow", middlewares.TokenAuthMiddleware(s.DB), s.FollowUser)
		api.DELETE("/users/:username/follow", middlewares.TokenAuthMiddleware(s.DB), s.UnfollowUser)
	}
}
