package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/gptgolf/assets"
	"github.com/robalobadob/gptgolf/internal/auth"
	"github.com/robalobadob/gptgolf/internal/config"
	"github.com/robalobadob/gptgolf/internal/db"
	"github.com/robalobadob/gptgolf/internal/generate"
	"github.com/robalobadob/gptgolf/internal/httpserver"
	"github.com/robalobadob/gptgolf/internal/results"
	"github.com/robalobadob/gptgolf/internal/store"
	"github.com/robalobadob/gptgolf/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	wl, err := words.Load(cfg.WordlistFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	log.Info().Int("words", wl.Count()).Msg("word list loaded")

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer conn.Close()
	migrations, err := assets.Migrations()
	if err != nil {
		log.Fatal().Err(err).Msg("load migrations")
	}
	if err := db.Migrate(conn, migrations); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	if cfg.OpenAIKey == "" && cfg.OpenAIBaseURL == "" {
		log.Warn().Msg("OPENAI_API_KEY and OPENAI_BASE_URL unset; generation requests will fail")
	}
	gen := generate.NewOpenAI(generate.Options{
		APIKey:    cfg.OpenAIKey,
		BaseURL:   cfg.OpenAIBaseURL,
		Model:     cfg.Model,
		MaxTokens: cfg.MaxTokens,
		Timeout:   cfg.GenerationTimeout,
	})

	srv := httpserver.New(httpserver.Deps{
		Config:    cfg,
		Sessions:  store.NewMemoryStore(),
		Results:   results.NewStore(conn),
		Auth:      auth.NewService(conn, cfg.JWTSecret, time.Duration(cfg.JWTExpiresDays)*24*time.Hour),
		Words:     wl,
		Generator: gen,
	})

	log.Info().Str("port", cfg.Port).Str("model", cfg.Model).Msg("starting gpt-golf")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
