package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/voicememo/internal/flagx"
)

var clientFlags = []string{"-a", "-i", "-f", "-t", "-l"}

// parseFlags populates Config fields from command-line flags.
//
//	-a string   address and port of the backend server
//	-i int      online check interval in seconds
//	-f string   local database file
//	-t int      transcription timeout in seconds
//	-l string   default transcription language
//
// Only the flags above are kept from os.Args (flagx.FilterArgs), so other
// layers can share the command line.
func parseFlags(cfg *Config) {
	parseArgs(cfg, os.Args[1:])
}

func parseArgs(cfg *Config, argv []string) {
	args := flagx.FilterArgs(argv, clientFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "local database file")
	transcriptionTimeout := fs.Int("t", int(cfg.TranscriptionTimeout.Seconds()), "transcription timeout (in seconds)")
	fs.StringVar(&cfg.DefaultLanguage, "l", cfg.DefaultLanguage, "default transcription language")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
	cfg.TranscriptionTimeout = time.Duration(*transcriptionTimeout) * time.Second
}
