package main

import (
	"database/sql"
	"log"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/auth"
)

func runAdminCommand(db *sql.DB, args []string) {
	if len(args) == 0 {
		log.Fatal("admin: missing subcommand (create-user)")
	}

	switch args[0] {
	case "create-user":
		if len(args) != 4 {
			log.Fatal("usage: cms admin create-user <username> <display name> <password>")
		}
		service := auth.NewService(auth.NewRepository(db))
		user, err := service.RegisterUser(args[1], args[2], args[3])
		if err != nil {
			log.Fatalf("create-user: %v", err)
		}
		log.Printf("created user %s (id %d)", user.Username, user.ID)
	default:
		log.Fatalf("admin: unknown subcommand %q", args[0])
	}
}
