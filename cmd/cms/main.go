package main

import (
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/auth"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/database"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/web"
)

func main() {
	var (
		dsn       = flag.String("dsn", "cms.db", "The database connection string.")
		addr      = flag.String("addr", ":8080", "The address to listen on.")
		uploadDir = flag.String("uploads", "uploads", "The directory for uploaded media.")
	)
	flag.Parse()

	db, err := database.New(*dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	log.Println("database migrated")

	// cms admin create-user <username> <display name> <password>
	if len(flag.Args()) > 0 && flag.Arg(0) == "admin" {
		runAdminCommand(db, flag.Args()[1:])
		os.Exit(0)
	}

	sessionKey := os.Getenv("CMS_SESSION_KEY")
	if err := auth.InitSessionStore(sessionKey); err != nil {
		log.Fatalf("CMS_SESSION_KEY: %v", err)
	}

	if err := os.MkdirAll(*uploadDir, 0o755); err != nil {
		log.Fatal(err)
	}

	server := web.NewServer(db, *uploadDir)

	log.Printf("starting server on %s", *addr)
	if err := http.ListenAndServe(*addr, server); err != nil {
		log.Fatal(err)
	}
}
