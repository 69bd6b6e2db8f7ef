package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dimitrije/site-admin-api/internal/config"
	"github.com/dimitrije/site-admin-api/internal/database"
	"github.com/dimitrije/site-admin-api/internal/models"
	"github.com/dimitrije/site-admin-api/internal/services"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Println("Usage: promote-admin <email> [admin|super_admin]")
		os.Exit(1)
	}

	email := strings.ToLower(strings.TrimSpace(os.Args[1]))
	role := models.RoleSuperAdmin
	if len(os.Args) == 3 {
		role = models.ParseRole(os.Args[2])
		if role == "" {
			log.Fatalf("Unknown role: %s", os.Args[2])
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db := database.NewLazy(cfg.DatabaseURL)
	defer db.Close()

	updated, err := services.NewProfileService(db).PromoteByEmail(ctx, email, role)
	if err != nil {
		log.Fatalf("Failed to update admin profile: %v", err)
	}
	if !updated {
		log.Fatalf("No admin profile found with email: %s", email)
	}

	fmt.Printf("Successfully set %s to %s\n", email, role)
}
