// Package main provides account management utilities for roomboard.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"roomboard/internal/config"
	"roomboard/internal/database"
	"roomboard/internal/models"
	"roomboard/internal/repository"
	"roomboard/internal/service"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run ./cmd/admin list-users              - List all users")
	fmt.Println("  go run ./cmd/admin delete-user <user_id>   - Delete a user, their comments, and authorship of rooms")
	fmt.Println("  go run ./cmd/admin list-themes             - List all themes")
	fmt.Println("  go run ./cmd/admin delete-theme <theme_id> - Delete a theme and untag its rooms")
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	themeRepo := repository.NewThemeRepository(db)
	users := service.NewUserService(
		repository.NewUserRepository(db),
		repository.NewRoomRepository(db),
		repository.NewCommentRepository(db),
		themeRepo,
	)
	themes := service.NewThemeService(themeRepo)
	ctx := context.Background()

	switch os.Args[1] {
	case "list-users":
		listUsers(ctx, users)

	case "delete-user":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin delete-user <user_id>")
			os.Exit(1)
		}
		deleteUser(ctx, users, os.Args[2])

	case "list-themes":
		listThemes(ctx, themes)

	case "delete-theme":
		if len(os.Args) < 3 {
			fmt.Println("Usage: go run ./cmd/admin delete-theme <theme_id>")
			os.Exit(1)
		}
		deleteTheme(ctx, themes, os.Args[2])

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func listUsers(ctx context.Context, users *service.UserService) {
	list, err := users.ListUsers(ctx)
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if len(list) == 0 {
		fmt.Println("No users")
		return
	}
	fmt.Printf("%-6s %-24s %s\n", "ID", "USERNAME", "EMAIL")
	for _, u := range list {
		fmt.Printf("%-6d %-24s %s\n", u.ID, u.Username, u.Email)
	}
}

func deleteUser(ctx context.Context, users *service.UserService, arg string) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		fmt.Printf("Invalid user ID: %s\n", arg)
		os.Exit(1)
	}

	user, err := users.GetUserByID(ctx, uint(id))
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			fmt.Printf("User with ID %d not found\n", id)
			os.Exit(1)
		}
		log.Fatalf("Database error: %v", err)
	}

	if err := users.DeleteUser(ctx, user.ID); err != nil {
		log.Fatalf("Failed to delete user: %v", err)
	}
	fmt.Printf("Deleted user %s (ID: %d)\n", user.Username, user.ID)
}

func listThemes(ctx context.Context, themes *service.ThemeService) {
	list, err := themes.Search(ctx, "")
	if err != nil {
		log.Fatalf("Database error: %v", err)
	}
	if len(list) == 0 {
		fmt.Println("No themes")
		return
	}
	fmt.Printf("%-6s %s\n", "ID", "TITLE")
	for _, th := range list {
		fmt.Printf("%-6d %s\n", th.ID, th.Title)
	}
}

func deleteTheme(ctx context.Context, themes *service.ThemeService, arg string) {
	id, err := strconv.ParseUint(arg, 10, 32)
	if err != nil || id == 0 {
		fmt.Printf("Invalid theme ID: %s\n", arg)
		os.Exit(1)
	}

	if err := themes.Delete(ctx, uint(id)); err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			fmt.Printf("Theme with ID %d not found\n", id)
			os.Exit(1)
		}
		log.Fatalf("Failed to delete theme: %v", err)
	}
	fmt.Printf("Deleted theme %d\n", id)
}
