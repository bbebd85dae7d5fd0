package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/wlong0711/sporthall/internal/booking"
	"github.com/wlong0711/sporthall/internal/config"
	"github.com/wlong0711/sporthall/internal/database"
	"github.com/wlong0711/sporthall/internal/handler"
	"github.com/wlong0711/sporthall/internal/mailer"
	custommw "github.com/wlong0711/sporthall/internal/middleware"
	"github.com/wlong0711/sporthall/internal/queue"
	"github.com/wlong0711/sporthall/internal/repository"
	"github.com/wlong0711/sporthall/internal/router"
	queue_publisher "github.com/wlong0711/sporthall/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	users := repository.NewUserRepo(db)
	courts := repository.NewCourtRepo(db)
	bookings := repository.NewBookingRepo(db)
	overrides := repository.NewAvailabilityRepo(db)

	engine := booking.NewEngine(courts, bookings, overrides, time.Now)

	mail := mailer.NewFromEnv()
	if mail == nil {
		log.Println("mailer: SENDGRID_API_KEY not set, outbound email disabled")
	}
	var authMail handler.AuthMailer
	var confMail handler.ConfirmationMailer
	if mail != nil {
		authMail = mail
		confMail = mail
	}

	authH := handler.NewAuthHandler(cfg, users, authMail)
	bookH := handler.NewBookingHandler(engine, users, queue_publisher.PublishBookingConfirmed, confMail)
	courtH := handler.NewCourtHandler(engine, courts)
	availH := handler.NewAvailabilityHandler(overrides, courts)

	e := echo.New()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis: unreachable, cache and rate limiting disabled")
	}
	e.Use(custommw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := custommw.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBookings(e, bookH, cfg.JWTSecret)
	router.RegisterCourts(e, courtH, cfg.JWTSecret, cacheMW)
	router.RegisterAvailability(e, availH, cfg.JWTSecret, cacheMW)

	// Background consumer keeps its own reconnect loop.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking-consumer: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
