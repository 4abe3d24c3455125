package main

import (
	"flag"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/taskmux/internal/lock"
	"github.com/danmuck/taskmux/internal/logging"
	"github.com/danmuck/taskmux/internal/observability"
	"github.com/danmuck/taskmux/internal/scenario"
	"github.com/danmuck/taskmux/internal/task"
)

type options struct {
	configPath string
	serveAddr  string
	verify     bool
}

func main() {
	logging.ConfigureRuntime()
	logger := observability.InitLogger("taskctl")

	var opts options
	flag.StringVar(&opts.configPath, "config", "cmd/taskctl/config.toml", "scenario file")
	flag.StringVar(&opts.serveAddr, "serve", "", "serve /health and /metrics on this address")
	flag.BoolVar(&opts.verify, "verify", false, "verify critical sections never overlapped")
	flag.Parse()

	cfg, err := scenario.Load(opts.configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load scenario")
	}
	log.Info().Str("path", opts.configPath).Str("scenario", cfg.Name).
		Int("tasks", len(cfg.Tasks)).Msg("loaded scenario")

	if opts.serveAddr != "" {
		go serveObservability(logger, opts.serveAddr)
	}

	var shared lock.TimedMutex = lock.NewCheckedMutex()
	var recorder *lock.RecordingMutex
	if opts.verify {
		recorder = lock.NewRecordingMutex(shared)
		shared = recorder
	}

	launcher := task.NewLauncher(logger)
	handles := make([]*task.Handle, 0, len(cfg.Tasks))
	start := time.Now()
	for i, spec := range cfg.Tasks {
		h, ok := launcher.LaunchParams(task.Params{
			Mutex:           shared,
			WaitBeforeLock:  spec.WaitBefore(),
			WaitWhileLocked: spec.WaitWhile(),
			LockTimeout:     spec.LockTimeout(),
			PinOSThread:     cfg.PinOSThread,
		})
		if !ok {
			log.Fatal().Int("task", i).Msg("launch failed")
		}
		handles = append(handles, h)
	}

	failures := 0
	for i, h := range handles {
		block := h.Join()
		event := log.Info()
		if block.Status() != task.StatusSuccess {
			event = log.Error().Err(block.Cause())
			failures++
		}
		event.Int("task", i).Stringer("id", block.ID()).
			Stringer("status", block.Status()).Msg("task joined")
	}
	elapsed := time.Since(start)

	if recorder != nil {
		if i, j, overlap := recorder.FirstOverlap(); overlap {
			log.Error().Int("first", i).Int("second", j).
				Msg("critical sections overlapped")
			failures++
		} else {
			log.Info().Int("holds", len(recorder.Intervals())).
				Msg("critical sections serialized")
		}
	}

	log.Info().Str("scenario", cfg.Name).Dur("elapsed", elapsed).
		Int("failures", failures).Msg("scenario complete")
	if failures > 0 {
		os.Exit(1)
	}
	if opts.serveAddr != "" {
		// Keep the metrics endpoint scrapeable after the run.
		select {}
	}
}

func serveObservability(logger zerolog.Logger, addr string) {
	observability.RegisterMetrics()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(logger))
	r.Use(observability.RequestMetrics("taskctl"))
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "taskctl",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if err := r.Run(addr); err != nil {
		logger.Error().Err(err).Msg("observability server stopped")
	}
}
