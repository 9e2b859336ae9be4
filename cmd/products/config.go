package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envFileVar  = "PRODUCTS_ENV_FILE"
	defaultEnvs = ".env"
)

// CLI is the command line of products. Every flag can also come from the
// environment, which in turn may be seeded from a .env file.
type CLI struct {
	File     string `short:"f" env:"PRODUCTS_FILE" help:"Products file (id,title,category,description,price with a header line)."`
	LogLevel string `name:"log-level" enum:"debug,info,warn,error" default:"info" env:"PRODUCTS_LOG_LEVEL" help:"Log level (${enum})."`
	JSON     bool   `help:"Print products as JSON."`
}

// loadDotenv seeds the environment from path. A missing file is not an error
// and variables already set are kept.
func loadDotenv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func envFile() string {
	if v := os.Getenv(envFileVar); v != "" {
		return v
	}
	return defaultEnvs
}

func newLogger(level string, w zapcore.WriteSyncer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(enc, w, lvl)), nil
}
