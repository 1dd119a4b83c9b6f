package main

import (
	"context"
	"log"

	"github.com/Tushar822/bugtracker/internal/server"
	"github.com/Tushar822/bugtracker/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
