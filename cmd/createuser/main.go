// Command createuser seeds an account directly through the user
// service, bypassing the HTTP API. It exists so an operator can create
// the first Project Manager on a fresh deployment.
//
// Usage:
//
//	createuser -email pm@example.com -username pm [-role PM] [-d <dsn>]
//
// The password is read from the terminal without echo.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/Tushar822/bugtracker/internal/server/config"
	"github.com/Tushar822/bugtracker/internal/server/models"
	"github.com/Tushar822/bugtracker/internal/server/repositories/repomanager"
	"github.com/Tushar822/bugtracker/internal/server/services"

	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {

	email := flag.String("email", "", "user email")
	username := flag.String("username", "", "user name")
	role := flag.String("role", string(models.RolePM), "user role (PM, Developer, Designer)")
	dsn := flag.String("d", "", "database DSN (defaults to server config)")
	flag.Parse()

	if *email == "" || *username == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := &config.Config{}
	cfg.LoadDefaults()
	if *dsn != "" {
		cfg.DatabaseDSN = *dsn
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		log.Fatalf("reading password: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	us := services.NewUserService(db, rm, cfg)

	user, err := us.Register(ctx, *email, *username, string(password), models.Role(*role))
	if err != nil {
		log.Fatalf("creating user: %v", err)
	}

	fmt.Printf("created user %s (%s) with role %s\n", user.UserName, user.Email, user.Role)
}

// getPassword prints a prompt and reads a password from the terminal
// without echo. A newline is printed after the read to keep the output
// tidy.
func getPassword(w *os.File) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
