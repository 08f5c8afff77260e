package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/notepid/flockr/internal/api"
	"github.com/notepid/flockr/internal/channel"
	"github.com/notepid/flockr/internal/chat"
	"github.com/notepid/flockr/internal/clock"
	"github.com/notepid/flockr/internal/config"
	"github.com/notepid/flockr/internal/db"
	"github.com/notepid/flockr/internal/hangman"
	"github.com/notepid/flockr/internal/message"
	"github.com/notepid/flockr/internal/metrics"
	"github.com/notepid/flockr/internal/stream"
	"github.com/notepid/flockr/internal/user"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	envPath := flag.String("env", ".env", "optional dotenv file with FLOCKR_* overrides")
	flag.Parse()

	if err := godotenv.Load(*envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("Failed to load %s: %v", *envPath, err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.Paths.Data, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Open database
	database, err := db.Open(cfg.Paths.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer database.Close()
	log.Printf("Database opened: %s", cfg.Paths.Database)

	words, err := hangman.LoadDictionary(cfg.Paths.Dictionary)
	if err != nil {
		log.Fatalf("Failed to load dictionary: %v", err)
	}
	log.Printf("Loaded %d hangman words", words.Len())

	clk := clock.Real()
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Create repositories
	userRepo := user.NewRepo(database.DB)
	sessions := user.NewSessions(database.DB, clk, cfg.Sessions.TTL)
	channelRepo := channel.NewRepo(database.DB, userRepo)

	broker := chat.NewBroker()
	store := message.NewStore(message.Options{
		Clock:        clk,
		Directory:    channel.NewDirectory(channelRepo, userRepo),
		Words:        words,
		Notifier:     broker,
		Recorder:     m,
		PageSize:     cfg.Messages.PageSize,
		MaxLength:    cfg.Messages.MaxLength,
		MaxIncorrect: cfg.Hangman.MaxIncorrect,
	})

	streamMgr := stream.NewManager(cfg.Server.MaxStreams)
	m.WatchGauge("flockr_streams_open", "Open websocket channel streams.", func() float64 {
		return float64(streamMgr.Count())
	})
	m.WatchGauge("flockr_sessions_active", "Unexpired login sessions.", func() float64 {
		n, err := sessions.Active()
		if err != nil {
			return 0
		}
		return float64(n)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper, err := user.NewSweeper(sessions, clk, cfg.Sessions.PurgeCron)
	if err != nil {
		log.Fatalf("Failed to create session sweeper: %v", err)
	}
	sweeper.Start(ctx)

	handler := api.New(api.Deps{
		Users:    userRepo,
		Sessions: sessions,
		Channels: channelRepo,
		Messages: store,
		Streams:  stream.NewServer(streamMgr, broker),
		Metrics:  m,
		Gatherer: reg,
	}).Handler()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	users, _ := userRepo.Count()
	fmt.Printf("\nflockr is running\n")
	fmt.Printf("  HTTP:     port %d\n", cfg.Server.HTTPPort)
	fmt.Printf("  Users:    %s\n", humanize.Comma(int64(users)))
	fmt.Printf("  Streams:  0/%d\n", cfg.Server.MaxStreams)
	fmt.Printf("  Sessions: ttl %s, purge %q\n", cfg.Sessions.TTL, cfg.Sessions.PurgeCron)
	fmt.Println("\nPress Ctrl+C to shut down.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh

	log.Printf("Received signal %v, shutting down...", sig)

	// Notify live streams before closing them
	streamMgr.Broadcast("Server is shutting down NOW. Goodbye!")
	streamMgr.CloseAll()
	sweeper.Stop()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}

	log.Printf("flockr shut down complete.")
}
