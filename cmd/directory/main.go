package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/staffdir/staffdir/internal/database"
	emphandler "github.com/staffdir/staffdir/internal/employee/handler"
	"github.com/staffdir/staffdir/internal/employee/repository"
	"github.com/staffdir/staffdir/internal/employee/service"
	"github.com/staffdir/staffdir/internal/tokens"
	"github.com/staffdir/staffdir/pkg/logger"
)

// Standalone employee directory API without the auth/session stack. Useful
// for local frontend work: point it at a Mongo instance or run it fully
// in-memory, and mint tokens out of band with the shared JWT_SECRET.
func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))

	port := os.Getenv("DIRECTORY_PORT")
	if port == "" {
		port = "5001"
	}

	var repo repository.Repository
	if uri := os.Getenv("MONGODB_URI"); uri != "" {
		client, err := database.ConnectMongo(context.Background(), uri, 10*time.Second)
		if err != nil {
			logger.Fatalf("failed to connect to MongoDB: %v", err)
		}
		dbName := os.Getenv("MONGODB_DATABASE")
		if dbName == "" {
			dbName = "staffdir"
		}
		repo = repository.NewMongoRepo(client.Database(dbName).Collection("employees"))
	} else {
		logger.Warn("MONGODB_URI not set; using in-memory repository")
		repo = repository.NewMemoryRepo()
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logger.Fatalf("JWT_SECRET is required")
	}

	r := gin.Default()
	emphandler.New(service.New(repo)).Register(r, tokens.NewVerifier(secret))

	logger.Infof("directory API listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
