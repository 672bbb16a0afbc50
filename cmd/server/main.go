// Command server runs the coworking reservation API.
package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/campuslabs/coworking-reservation/internal/config"
	"github.com/campuslabs/coworking-reservation/internal/database"
	"github.com/campuslabs/coworking-reservation/internal/handler"
	"github.com/campuslabs/coworking-reservation/internal/queue"
	"github.com/campuslabs/coworking-reservation/internal/repository"
	"github.com/campuslabs/coworking-reservation/internal/router"
	"github.com/campuslabs/coworking-reservation/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the cache and rate limiter degrade to
	// pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	reservationRepo := repository.NewReservationRepo(db)
	seatRepo := repository.NewSeatRepo(db)
	roomRepo := repository.NewRoomRepo(db)
	userRepo := repository.NewUserRepo(db)
	hoursRepo := repository.NewOperatingHoursRepo(db)

	pol := config.LoadPolicy()
	policy := service.NewPolicyService(service.PolicyConfig{
		WalkinWindow:                      pol.WalkinWindow,
		WalkinInitialDuration:             pol.WalkinInitialDuration,
		ReservationWindow:                 pol.ReservationWindow,
		MinimumReservationDuration:        pol.MinimumReservationDuration,
		MaximumInitialReservationDuration: pol.MaximumInitialReservationDuration,
		ReservationDraftTimeout:           pol.ReservationDraftTimeout,
		ReservationCheckinTimeout:         pol.ReservationCheckinTimeout,
	})

	hoursService := service.NewOperatingHoursService(hoursRepo)
	reservationService := service.NewReservationService(
		reservationRepo,
		seatRepo,
		userRepo,
		hoursService,
		policy,
		service.NewRoleAuthorizer(),
		queue.PublishReservationState,
	)

	e := echo.New()
	e.Validator = handler.NewRequestValidator()

	router.RegisterRoutes(e)
	router.RegisterCatalog(e, handler.NewCatalogHandler(roomRepo, seatRepo), cacheCfg, rdb)
	router.RegisterOperatingHours(e, handler.NewOperatingHoursHandler(hoursService), cfg.JWTSecret, cacheCfg, rdb)
	router.RegisterCoworking(e, handler.NewCoworkingHandler(reservationService, seatRepo, userRepo), cfg.JWTSecret, rlCfg, cacheCfg, rdb)

	// Lifecycle events land in logs/reservations.log via the broker. The
	// consumer reconnects on its own, so a down broker only delays delivery.
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
