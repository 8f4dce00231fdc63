package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"pawsgram/cache"
	"pawsgram/middlewares"
	"pawsgram/models"
	"pawsgram/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	DB      *gorm.DB
	Router  *gin.Engine
	Storage storage.Storage
}

// The pool serializes database access per connection; ten is the fixed
// ceiling, queuing is unbounded beyond that.
const maxOpenConns = 10

var errList = make(map[string]string)

func (server *Server) Initialize(DbUser, DbPassword, DbPort, DbHost, DbName string) {
	var dsn string

	if strings.EqualFold(os.Getenv("APP_ENV"), "production") {
		dsn = os.Getenv("DATABASE_URL")
		if dsn != "" && !strings.Contains(dsn, "sslmode=") {
			if strings.Contains(dsn, "?") {
				dsn += "&sslmode=require"
			} else {
				dsn += "?sslmode=require"
			}
		}
	} else {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			DbHost, DbUser, DbPassword, DbName, DbPort,
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Cannot connect to Postgres: %v", err)
	}
	server.DB = db

	sqlDB, err := server.DB.DB()
	if err != nil {
		log.Fatalf("Cannot access connection pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)

	if err := server.DB.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Save{},
		&models.Follow{},
		&models.PasswordReset{},
	); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	// Redis init (safe failure)
	if err := cache.InitFromEnv(); err != nil {
		log.Printf("warning: could not connect to redis: %v", err)
	}

	server.Storage, err = storage.FromEnv(context.Background())
	if err != nil {
		log.Fatalf("Error initializing image storage: %v", err)
	}

	server.Router = gin.Default()
	server.Router.Use(middlewares.CORSMiddleware())
	server.Router.Use(middlewares.RateLimitMiddleware())
	server.initializeRoutes()

	// Local uploads are served straight off disk; the S3 backend returns
	// absolute URLs so this route simply never matches.
	if local, ok := server.Storage.(*storage.LocalStorage); ok {
		server.Router.Static("/uploads", local.Dir)
	}
}

func (server *Server) Run(addr string) {
	log.Fatal(http.ListenAndServe(addr, server.Router))
}

// Close tears down the connection pool at shutdown.
func (server *Server) Close() {
	if server.DB == nil {
		return
	}
	if sqlDB, err := server.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
