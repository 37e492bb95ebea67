package main // Entry point package

import (
	"context"   // Sweep loop contexts
	"log"       // Logging library
	"os"        // Environment access
	"os/signal" // Shutdown signal handling
	"syscall"   // Signal constants

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/enactusftu/gatekeeper/internal/config"     // Environment config loaders
	"github.com/enactusftu/gatekeeper/internal/cooldown"   // Command cooldown tracker
	"github.com/enactusftu/gatekeeper/internal/database"   // MySQL roster connection
	"github.com/enactusftu/gatekeeper/internal/handler"    // HTTP handlers
	"github.com/enactusftu/gatekeeper/internal/platform"   // Gateway bridge + member view
	"github.com/enactusftu/gatekeeper/internal/queue"      // AMQP consumer + publisher
	"github.com/enactusftu/gatekeeper/internal/repository" // Roster directory queries
	"github.com/enactusftu/gatekeeper/internal/router"     // Route registration
	"github.com/enactusftu/gatekeeper/internal/scheduler"  // Deadline timers + sweep loop
	"github.com/enactusftu/gatekeeper/internal/store"      // Pending session store
	"github.com/enactusftu/gatekeeper/internal/verify"     // Verification state machine
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly

	cfg := config.Load()                   // required settings, fatal when missing
	vcfg := config.LoadVerificationConfig() // workflow tunables with defaults

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil means in-process cooldown fallback

	roster := repository.NewRosterRepo(db)
	sessions := store.NewSessionStore()
	sched := scheduler.New()
	cool := cooldown.New(rdb, vcfg.CommandCooldown)

	view := platform.NewMemberView()
	actions := queue.NewActionPublisher(envOr("ACTIONS_QUEUE", "gatekeeper.actions"))
	bridge := platform.NewBridge(view, actions, cfg.GuildID)

	machine := verify.New(vcfg, roster, bridge, bridge, sessions, sched, cool)
	dispatcher := &queue.Dispatcher{Machine: machine, View: view}

	go func() {
		if err := queue.StartEventConsumer(envOr("EVENTS_QUEUE", "gatekeeper.events"), dispatcher); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	stopSweep := make(chan struct{})
	go sched.RunSweep(vcfg.SweepInterval, stopSweep, func() {
		machine.Sweep(context.Background())
	})

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e)
	router.RegisterAdmin(e, &cfg, handler.NewAuthHandler(cfg), handler.NewAdminHandler(sessions, machine))

	go func() {
		addr := ":" + cfg.Port
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		if err := e.Start(addr); err != nil {
			log.Printf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down")
	close(stopSweep)
	e.Close()
}

// envOr reads an optional environment variable with a fallback.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
