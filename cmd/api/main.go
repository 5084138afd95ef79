package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anjiri1684/tutoring_center/attempt"
	config "github.com/anjiri1684/tutoring_center/configs"
	"github.com/anjiri1684/tutoring_center/database"
	"github.com/anjiri1684/tutoring_center/handlers"
	"github.com/anjiri1684/tutoring_center/jobs"
	"github.com/anjiri1684/tutoring_center/logger"
	"github.com/anjiri1684/tutoring_center/notifications"
	"github.com/anjiri1684/tutoring_center/routes"
	"github.com/anjiri1684/tutoring_center/services"
	"github.com/anjiri1684/tutoring_center/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()

	reporter := logger.NewReporter(cfg)
	defer reporter.Close()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}
	log.Println("✅ Database connection successfully opened")
	if err := database.Migrate(db); err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	if err := database.SeedAdmin(db, cfg); err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
	}
	store := database.NewStore(db)

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	defer rdb.Close()
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 3*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("Warning: redis unavailable at %s, answers will not survive a restart: %v", cfg.RedisAddr, err)
	}
	cancelPing()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub(store)
	go hub.Run(ctx)

	mailer := notifications.NewMailer(cfg)
	targeting := services.NewTargeting(store)
	certificates := services.NewCertificateService(store, cfg)
	results := services.NewResultNotifier(store, mailer)

	attempts := attempt.NewManager(store, store, attempt.Options{
		Cache:       attempt.NewRedisCache(rdb, cfg.AnswerCacheTTL),
		Notifier:    hub,
		Authorize:   targeting.Authorize,
		Hooks:       []attempt.SubmitHook{certificates.OnSubmitted, results.OnSubmitted},
		IdleTimeout: cfg.AttemptIdleTimeout,
	})

	c := cron.New()
	if _, err := c.AddFunc("*/5 * * * *", jobs.MarkAbsentees(store, time.Now)); err != nil {
		log.Fatalf("🔥 Failed to schedule attendance job: %v", err)
	}
	reminders := &jobs.HomeworkReminders{
		Store:       store,
		Recipients:  targeting,
		Sender:      mailer,
		FrontendURL: cfg.FrontendURL,
		Now:         time.Now,
	}
	if _, err := c.AddFunc("0 * * * *", reminders.Run); err != nil {
		log.Fatalf("🔥 Failed to schedule reminder job: %v", err)
	}
	if _, err := c.AddFunc("*/10 * * * *", jobs.SweepAttempts(attempts, time.Now)); err != nil {
		log.Fatalf("🔥 Failed to schedule attempt sweep: %v", err)
	}
	c.Start()
	log.Println("✅ Cron jobs scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:      "Tutoring Center",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: handlers.ErrorHandler(reporter),
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Africa/Nairobi",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.Setup(app, &routes.Handlers{
		JWTSecret:  cfg.JWTSecret,
		Auth:       handlers.NewAuthHandler(db, cfg, mailer),
		Profile:    handlers.NewProfileHandler(db),
		Admin:      handlers.NewAdminHandler(db, cfg, mailer),
		Quiz:       handlers.NewQuizHandler(db),
		Attempt:    handlers.NewAttemptHandler(attempts),
		Submission: handlers.NewSubmissionHandler(db),
		Attendance: handlers.NewAttendanceHandler(db),
		Report:     handlers.NewReportHandler(db),
		Messaging:  handlers.NewMessagingHandler(db, hub, cfg.JWTSecret),
		Upload:     handlers.NewUploadHandler(cfg),
		HealthCheck: func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"status":          "ok",
				"active_attempts": attempts.Active(),
			})
		},
	})

	go func() {
		<-ctx.Done()
		log.Println("Shutting down server...")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("✅ Server is running on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		reporter.Critical("server failed to start", err)
		log.Fatalf("🔥 Server failed to start: %v", err)
	}

	<-c.Stop().Done()
	attempts.Shutdown()
	log.Println("✅ Server stopped")
}
