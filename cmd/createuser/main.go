package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/staffdir/staffdir/internal/config"
	"github.com/staffdir/staffdir/internal/database"
	"github.com/staffdir/staffdir/internal/users"
	"github.com/staffdir/staffdir/pkg/logger"
)

// Seeds a directory account directly in MongoDB. Intended for bootstrapping
// the first admin before the API has any users to log in with.
func main() {
	username := flag.String("username", "admin", "account username")
	password := flag.String("password", "", "account password (required)")
	role := flag.String("role", "admin", "account role: admin or viewer")
	email := flag.String("email", "", "account email")
	flag.Parse()

	logger.Init(os.Getenv("LOG_LEVEL"))

	if *password == "" {
		fmt.Fprintln(os.Stderr, "error: -password is required")
		flag.Usage()
		os.Exit(2)
	}
	if *role != "admin" && *role != "viewer" {
		fmt.Fprintf(os.Stderr, "error: invalid role %q (want admin or viewer)\n", *role)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.MongoDB.URI == "" {
		logger.Fatalf("MONGODB_URI is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		logger.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() { _ = client.Disconnect(ctx) }()

	svc := users.NewService(users.NewMongoUserRepository(client.Database(cfg.MongoDB.Database).Collection("users")))

	existing, err := svc.GetByUsername(ctx, *username)
	if err != nil {
		logger.Fatalf("failed to look up user: %v", err)
	}
	if existing != nil {
		fmt.Printf("user %q already exists (role %s), nothing to do\n", existing.Username, existing.Role)
		return
	}

	u, err := svc.CreateUser(ctx, *username, *email, *password, *role)
	if err != nil {
		logger.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("created user %q with role %s (id %s)\n", u.Username, u.Role, u.ID)
}
