package main

import (
	"github.com/farhat-is-coding/blog/config"
	"github.com/farhat-is-coding/blog/models"
	"github.com/farhat-is-coding/blog/routes"
	"github.com/farhat-is-coding/blog/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Post{}, &models.Comment{})

	// The admin account is data, not a magic id.
	if err := config.SeedAdmin(db); err != nil {
		utils.Sugar.Fatalf("failed to seed admin account: %v", err)
	}

	// Pages cached by a previous build may not match the current templates.
	utils.InvalidateByPrefix("cache:")

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
