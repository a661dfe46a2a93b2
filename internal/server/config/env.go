package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/moodjournal/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// envKeys lists the variables read for each setting; the first one set wins.
// The unprefixed names are kept for deployments of the original service.
var envKeys = struct {
	HTTPAddr, DatabaseDSN, SecretKey, TokenTTL, AIURL, AIKey, AIModel, Origins, LogLevel []string
}{
	HTTPAddr:    []string{"MOODJOURNAL_HTTP_ADDR"},
	DatabaseDSN: []string{"MOODJOURNAL_DATABASE_DSN", "DATABASE_URL"},
	SecretKey:   []string{"MOODJOURNAL_SECRET_KEY", "JWT_SECRET"},
	TokenTTL:    []string{"MOODJOURNAL_TOKEN_TTL"},
	AIURL:       []string{"MOODJOURNAL_AI_URL"},
	AIKey:       []string{"MOODJOURNAL_AI_KEY", "OPENROUTER_API_KEY"},
	AIModel:     []string{"MOODJOURNAL_AI_MODEL"},
	Origins:     []string{"MOODJOURNAL_ALLOWED_ORIGINS"},
	LogLevel:    []string{"MOODJOURNAL_LOG_LEVEL"},
}

// parseEnv loads a dotenv file into the process environment and then copies
// the known variables into config. The file named by -env must exist; the
// default ".env" is optional. Variables already set in the environment are
// not overwritten by the file.
func parseEnv(config *Config) {
	path := flagx.EnvFileFlags()
	required := path != ""
	if !required {
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	applyEnv(config, os.LookupEnv)
}

func applyEnv(config *Config, lookup func(string) (string, bool)) {
	get := func(keys []string) (string, bool) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}

	if v, ok := get(envKeys.HTTPAddr); ok {
		config.HTTPAddr = v
	}
	if v, ok := get(envKeys.DatabaseDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := get(envKeys.SecretKey); ok {
		config.SecretKey = v
	}
	if v, ok := get(envKeys.TokenTTL); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		config.TokenValidityDuration = d
	}
	if v, ok := get(envKeys.AIURL); ok {
		config.AIProviderURL = v
	}
	if v, ok := get(envKeys.AIKey); ok {
		config.AIProviderKey = v
	}
	if v, ok := get(envKeys.AIModel); ok {
		config.AIModel = v
	}
	if v, ok := get(envKeys.Origins); ok {
		config.AllowedOrigins = splitList(v)
	}
	if v, ok := get(envKeys.LogLevel); ok {
		config.LogLevel = v
	}
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
