package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zaphod-black/BookingSearchMCP/config"
	"github.com/zaphod-black/BookingSearchMCP/handlers"
	"github.com/zaphod-black/BookingSearchMCP/middleware"
	"github.com/zaphod-black/BookingSearchMCP/routes"
	"github.com/zaphod-black/BookingSearchMCP/services/availability"
	"github.com/zaphod-black/BookingSearchMCP/services/booking"
	"github.com/zaphod-black/BookingSearchMCP/services/calendar"
	"github.com/zaphod-black/BookingSearchMCP/services/handoff"
	"github.com/zaphod-black/BookingSearchMCP/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Synthesizer backends. The calendar backend is optional: without
	// credentials the service still runs on the mock backend.
	synths := []availability.Synthesizer{availability.NewMockSynthesizer()}

	if config.AppConfig.GoogleServiceAccountEmail != "" {
		calClient, err := calendar.NewGoogleClient(context.Background())
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize calendar client: %v", err)
		}
		synths = append(synths, availability.NewCalendarSynthesizer(
			calClient,
			config.AppConfig.BusinessHoursStart,
			config.AppConfig.BusinessHoursEnd,
		))
	} else {
		logger.Sugar().Warn("main: no calendar credentials configured, calendar backend disabled")
	}

	handoffClient := handoff.NewWebhookClient(
		config.AppConfig.HandoffURL,
		config.AppConfig.HandoffEndpoint,
		time.Duration(config.AppConfig.HandoffTimeoutMs)*time.Millisecond,
	)

	monitor := utils.NewVoiceMonitor(
		time.Duration(config.AppConfig.SlowOpThresholdMs)*time.Millisecond,
		time.Minute,
		logger,
	)

	opts := booking.OptionsFromConfig()
	if _, ok := findSynth(synths, opts.DefaultPlatform); !ok {
		logger.Sugar().Warnf("main: default platform %q unavailable, falling back to mock", opts.DefaultPlatform)
		opts.DefaultPlatform = "mock"
	}

	pipeline := booking.NewPipeline(synths, handoffClient, monitor, opts)
	defer pipeline.Close()

	if config.AppConfig.CacheWarmupEnabled {
		pipeline.WarmCache(context.Background())
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimit())

	bookingHandler := handlers.NewBookingHandler(pipeline)
	healthHandler := handlers.NewHealthHandler(pipeline, handoffClient, monitor)
	routes.RegisterRoutes(router, bookingHandler, healthHandler)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	monitor.Stop()

	logger.Sugar().Info("main: server stopped gracefully")
}

func findSynth(synths []availability.Synthesizer, name string) (availability.Synthesizer, bool) {
	for _, s := range synths {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}
