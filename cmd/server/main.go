package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/studyhive/seatbook/internal/config"
	"github.com/studyhive/seatbook/internal/database"
	"github.com/studyhive/seatbook/internal/handler"
	"github.com/studyhive/seatbook/internal/queue"
	"github.com/studyhive/seatbook/internal/repository"
	"github.com/studyhive/seatbook/internal/router"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient() // nil disables rate limiting and caching

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	seats := repository.NewSeatRepo(db)
	bookings := repository.NewBookingRepo(db)
	waitlist := repository.NewWaitlistRepo(db)
	transactions := repository.NewTransactionRepo(db)
	stats := repository.NewStatsRepo(db)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	availH := handler.NewAvailabilityHandler(seats, bookings, waitlist)
	bookH := handler.NewBookingHandler(seats, bookings, waitlist)
	adminBookH := handler.NewAdminBookingHandler(bookings, seats, users, waitlist, transactions)
	adminSeatH := handler.NewAdminSeatHandler(seats, bookings)
	adminStatsH := handler.NewAdminStatsHandler(stats)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterBooking(e, cfg.JWTSecret, rdb, availH, bookH)
	router.RegisterAdmin(e, cfg.JWTSecret, adminBookH, adminSeatH, adminStatsH)

	// Drain booking.approved into logs/booking.log in the background.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
