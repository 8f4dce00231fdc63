package main

import (
	api "pawsgram"
)

// @title PawsGram API
// @version 1.0
// @description API for posts, likes, saves, and follows
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Provide a valid JWT as: Bearer <token>
func main() {
	api.Run()
}
