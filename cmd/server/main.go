package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env into the process environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/cinema-ticketing/internal/config"
	"github.com/iliyamo/cinema-ticketing/internal/database"
	"github.com/iliyamo/cinema-ticketing/internal/handler"
	"github.com/iliyamo/cinema-ticketing/internal/middleware"
	"github.com/iliyamo/cinema-ticketing/internal/queue"
	"github.com/iliyamo/cinema-ticketing/internal/repository"
	"github.com/iliyamo/cinema-ticketing/internal/reservation"
	"github.com/iliyamo/cinema-ticketing/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: caching and rate limiting degrade gracefully
	// when no client is available.
	rdb := config.NewRedisClient()

	films := repository.NewFilmRepo(db)
	rooms := repository.NewRoomRepo(db)
	seats := repository.NewSeatRepo(db)
	screenings := repository.NewScreeningRepo(db)
	reservations := repository.NewReservationRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	catalog := repository.NewCatalog(screenings, seats)
	allocator := reservation.NewAllocator(catalog, reservations)
	occupancy := reservation.NewOccupancy(catalog, reservations)
	access := reservation.NewAccess(reservations)

	cat := router.Catalog{
		Films:      handler.NewFilmHandler(films),
		Rooms:      handler.NewRoomHandler(rooms, seats),
		Seats:      handler.NewSeatHandler(seats, rooms),
		Screenings: handler.NewScreeningHandler(screenings, films, rooms, occupancy),
	}
	auth := handler.NewAuthHandler(cfg, users, tokens)
	accounts := handler.NewUserHandler(cfg, users)
	bookings := handler.NewReservationHandler(allocator, access, screenings, films, rooms)

	var cache, limiter echo.MiddlewareFunc
	if rdb != nil {
		if cc := config.LoadCacheConfig(); cc.Enabled {
			cache = middleware.NewRedisCache(cc, rdb)
		}
		limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth)
	router.RegisterCatalog(e, cat, cache)
	router.RegisterAdmin(e, cat, cfg.JWTSecret)
	router.RegisterUsers(e, accounts, cfg.JWTSecret)
	router.RegisterReservations(e, bookings, cfg.JWTSecret, limiter)

	// Background consumer that mirrors committed bookings into
	// logs/reservation.log.  It reconnects on broker failures.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
