package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbeisheim/chessmatch/internal/config"
	"github.com/benbeisheim/chessmatch/internal/controller"
	"github.com/benbeisheim/chessmatch/internal/middleware"
	"github.com/benbeisheim/chessmatch/internal/model"
	"github.com/benbeisheim/chessmatch/internal/service"
	"github.com/benbeisheim/chessmatch/internal/ws"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
)

func main() {
	cfg := config.Default()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.AllowOrigins, "origins", cfg.AllowOrigins, "comma separated allowed origins")
	flag.IntVar(&cfg.ReadBufferSize, "ws-read-buffer", cfg.ReadBufferSize, "websocket read buffer size")
	flag.IntVar(&cfg.WriteBufferSize, "ws-write-buffer", cfg.WriteBufferSize, "websocket write buffer size")
	flag.DurationVar(&cfg.MatchTTL, "match-ttl", cfg.MatchTTL, "idle time before a match is removed")
	flag.DurationVar(&cfg.ReapInterval, "reap-interval", cfg.ReapInterval, "how often idle matches are removed")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *debug {
		log.SetLevel(log.LevelDebug)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))

	// Initialize services
	matchManager := service.NewMatchManager()
	matchManager.SetEncoder(func(s model.MatchState) interface{} { return ws.MatchState(s) })
	matchService := service.NewMatchService(matchManager)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go matchManager.RunReaper(ctx, cfg.ReapInterval, cfg.MatchTTL)

	// Initialize controllers
	matchController := controller.NewMatchController(matchService)
	wsController := controller.NewWebSocketController(matchService)

	app.Get("/ws/match/:matchId", middleware.EnsureMatchID(), middleware.WebSocketUpgrade(),
		websocket.New(func(c *websocket.Conn) {
			log.Infof("websocket connection established for match %s", c.Params("matchId"))
			wsController.HandleConnection(c)
		}, websocket.Config{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			Origins:         cfg.Origins(),
		}))

	matchController.Register(app.Group("/api"))

	go func() {
		<-ctx.Done()
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorf("shutdown: %v", err)
		}
	}()

	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
