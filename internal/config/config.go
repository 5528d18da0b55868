package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken    string
	DatabaseURL string // optional; Postgres is used when set, SQLite otherwise
	DataDir     string // location of the SQLite file
	Timezone    string // the one clock habit days are evaluated in
}

func Load() (Config, error) {
	// .env is optional; real env vars win.
	_ = godotenv.Load()

	bt := os.Getenv("BOT_TOKEN")
	if bt == "" {
		return Config{}, errors.New("BOT_TOKEN is required")
	}

	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}

	tz := os.Getenv("TZ")
	if tz == "" {
		tz = "Europe/London"
	}

	return Config{
		BotToken:    bt,
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DataDir:     dataDir,
		Timezone:    tz,
	}, nil
}

func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatal(err)
	}
	return cfg
}
