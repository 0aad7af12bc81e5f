package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"fieldbook/internal/database"
	"fieldbook/internal/middleware"
	"fieldbook/internal/modules/booking"
	"fieldbook/internal/modules/catalog"
	"fieldbook/internal/modules/payment"
	"fieldbook/internal/modules/pricing"
	"fieldbook/internal/modules/schedule"
	"fieldbook/internal/modules/watch"
	jwtsvc "fieldbook/internal/pkg/jwt"
	"fieldbook/internal/pkg/validator"
	"fieldbook/internal/repository"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
		if err := validator.RegisterCustom(v); err != nil {
			log.Fatal(err)
		}
	}

	facilityRepo := repository.NewFacilityRepository(db)
	fieldRepo := repository.NewFieldRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	ruleRepo := repository.NewPricingRuleRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	j := jwtsvc.New(secret, 24*time.Hour)

	hub := watch.NewHub()
	defer hub.Close()
	watchHandler := watch.NewHandler(hub)

	pricingService := pricing.NewService(ruleRepo, slotRepo, fieldRepo, facilityRepo, hub)
	pricingHandler := pricing.NewHandler(pricingService)

	scheduleService := schedule.NewService(slotRepo, ruleRepo, fieldRepo, facilityRepo)
	scheduleHandler := schedule.NewHandler(scheduleService)

	bookingService := booking.NewService(bookingRepo, slotRepo, fieldRepo, facilityRepo, customerRepo, orderRepo)
	bookingHandler := booking.NewHandler(bookingService)

	catalogService := catalog.NewService(facilityRepo, fieldRepo, slotRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	// Drafts go to Redis when configured so payment correlation survives
	// restarts; the in-process store is for single-instance setups.
	var drafts payment.DraftStore = payment.NewMemoryDraftStore()
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		drafts = payment.NewRedisDraftStore(redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		}))
	}

	gatewayCfg := payment.GatewayConfig{
		TmnCode:    os.Getenv("VNP_TMN_CODE"),
		HashSecret: os.Getenv("VNP_HASH_SECRET"),
		PayURL:     envOrDefault("VNP_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
		ReturnURL:  os.Getenv("VNP_RETURN_URL"),
	}
	paymentService := payment.NewService(
		drafts,
		slotRepo,
		fieldRepo,
		bookingService,
		bookingRepo,
		orderRepo,
		gatewayCfg,
		envOrDefault("FRONTEND_RESULT_URL", "http://localhost:3000"),
		log.Printf,
	)
	paymentHandler := payment.NewHandler(paymentService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		catalogHandler.RegisterRoutes(v1)
		bookingHandler.RegisterRoutes(v1)
		paymentHandler.RegisterRoutes(v1)
		watchHandler.RegisterRoutes(v1)

		// staff-only maintenance surfaces
		staff := v1.Group("/")
		staff.Use(middleware.Auth(j), middleware.RequireStaff())
		{
			scheduleHandler.RegisterRoutes(staff)
			pricingHandler.RegisterRoutes(staff)
			catalogHandler.RegisterStaffRoutes(staff)
		}
	}

	addr := ":" + envOrDefault("PORT", "8080")
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}

func envOrDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}
