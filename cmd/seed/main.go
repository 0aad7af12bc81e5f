package main

import (
	"context"
	"log"
	"os"

	"fieldbook/internal/database"
	"fieldbook/internal/domain"
	"fieldbook/internal/repository"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "fieldbook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM order_fields")
	db.Exec("DELETE FROM orders")
	db.Exec("DELETE FROM slots")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM pricing_rules")
	db.Exec("DELETE FROM fields")
	db.Exec("DELETE FROM facilities")
	db.Exec("DELETE FROM customers")

	ctx := context.Background()
	facilityRepo := repository.NewFacilityRepository(db)
	fieldRepo := repository.NewFieldRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	ruleRepo := repository.NewPricingRuleRepository(db)

	log.Println("Creating facilities...")
	central := domain.Facility{
		Name:      "Central Sports Park",
		Address:   "12 Nguyen Hue, District 1",
		Phone:     "+84 28 3822 0000",
		OpenTime:  "06:00",
		CloseTime: "23:00",
	}
	if err := facilityRepo.Create(ctx, &central); err != nil {
		log.Fatal(err)
	}
	riverside := domain.Facility{
		Name:      "Riverside Arena",
		Address:   "88 Ton Duc Thang, District 4",
		Phone:     "+84 28 3941 1111",
		OpenTime:  "07:00",
		CloseTime: "22:00",
	}
	if err := facilityRepo.Create(ctx, &riverside); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating fields...")
	fields := []domain.Field{
		{FacilityID: central.ID, CategoryID: 1, Name: "Football 5-a-side A", IsBookingEnabled: true},
		{FacilityID: central.ID, CategoryID: 1, Name: "Football 5-a-side B", IsBookingEnabled: true},
		{FacilityID: central.ID, CategoryID: 2, Name: "Badminton Court 1", IsBookingEnabled: true},
		{FacilityID: riverside.ID, CategoryID: 1, Name: "Football 7-a-side", IsBookingEnabled: true},
		{FacilityID: riverside.ID, CategoryID: 3, Name: "Tennis Court (resurfacing)", IsBookingEnabled: false},
	}
	for i := range fields {
		if err := fieldRepo.Create(ctx, &fields[i]); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating pricing rules...")
	rules := []domain.PricingRule{
		{FieldID: fields[0].ID, StartTime: "06:00", EndTime: "16:00", Price: 100000},
		{FieldID: fields[0].ID, StartTime: "16:00", EndTime: "23:00", Price: 150000},
		{FieldID: fields[1].ID, StartTime: "06:00", EndTime: "23:00", Price: 120000},
		{FieldID: fields[3].ID, StartTime: "07:00", EndTime: "17:00", Price: 200000},
		{FieldID: fields[3].ID, StartTime: "17:00", EndTime: "22:00", Price: 300000},
	}
	for i := range rules {
		if err := ruleRepo.Create(ctx, &rules[i]); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Creating customers...")
	customers := []domain.Customer{
		{Name: "Nguyen Van An", Phone: "0901234567", Email: "an.nguyen@example.com"},
		{Name: "Tran Thi Binh", Phone: "0912345678", Email: "binh.tran@example.com"},
	}
	for i := range customers {
		if err := customerRepo.Create(ctx, &customers[i]); err != nil {
			log.Fatal(err)
		}
	}

	log.Println("Seed complete.")
}
