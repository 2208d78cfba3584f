package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/voicememo/internal/logging"
	"github.com/dmitrijs2005/voicememo/internal/server"
	"github.com/dmitrijs2005/voicememo/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	l := logging.NewJSONLogger(os.Stdout, "info")

	app, err := server.NewApp(ctx, cfg, l)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
