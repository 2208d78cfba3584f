package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/voicememo/internal/client/cli"
	"github.com/dmitrijs2005/voicememo/internal/client/config"
	"github.com/dmitrijs2005/voicememo/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	l := logging.NewTextLogger(os.Stderr, "warn")

	app, err := cli.NewApp(ctx, cfg, l)
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)

}
