package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/flagx"
)

// parseFlags overlays command-line flags onto config:
//
//	-a string   HTTP listen address (":3000")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret
//	-t int      token validity, minutes
//	-k string   AI provider API key
//	-u string   AI provider chat completions URL
//	-m string   AI model
//	-o string   comma-separated CORS origins
//	-l string   log level
//
// Only these flags are parsed so -c and -env can share the command line.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-k", "-u", "-m", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT secret key")
	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.AIProviderKey, "k", config.AIProviderKey, "AI provider API key")
	fs.StringVar(&config.AIProviderURL, "u", config.AIProviderURL, "AI provider chat completions URL")
	fs.StringVar(&config.AIModel, "m", config.AIModel, "AI model")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins, comma separated")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Only explicitly given flags replace values from earlier layers, so a
	// sub-minute TTL from the environment survives the minutes round trip.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "o":
			config.AllowedOrigins = splitList(*origins)
		}
	})
}
