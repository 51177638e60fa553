package main

import (
	"log"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stayhub/internal/config"
	"stayhub/internal/db"
	"stayhub/internal/model"
)

const seedPassword = "password123"

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Listing{},
		&model.ListingImage{},
		&model.Reservation{},
		&model.HostApplication{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	admin := seedUser(gormDB, "Admin", "admin@stayhub.local", string(hash), model.RoleAdmin)
	host := seedUser(gormDB, "Hannah Host", "hannah@stayhub.local", string(hash), model.RoleHost)
	guest := seedUser(gormDB, "Gary Guest", "gary@stayhub.local", string(hash), model.RoleGuest)
	log.Printf("Seeded users: admin=%d host=%d guest=%d", admin.ID, host.ID, guest.ID)

	listing := model.Listing{
		HostID:        host.ID,
		Title:         "Sunny Loft Downtown",
		Description:   "Bright loft close to everything.",
		Address:       "12 Harbor St",
		City:          "Lisbon",
		PricePerNight: decimal.NewFromInt(85),
		MaxGuests:     3,
		Beds:          2,
		Bathrooms:     1,
		Status:        model.ListingStatusApproved,
		Images: []model.ListingImage{
			{URL: "https://images.stayhub.local/loft-1.jpg", Position: 0},
			{URL: "https://images.stayhub.local/loft-2.jpg", Position: 1},
		},
	}
	if err := gormDB.Where("title = ? AND host_id = ?", listing.Title, host.ID).
		FirstOrCreate(&listing).Error; err != nil {
		log.Fatalf("Failed to seed listing: %v", err)
	}
	log.Printf("Seeded listing %d (%s)", listing.ID, listing.Title)

	checkIn := time.Now().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	checkOut := checkIn.AddDate(0, 0, 4)
	reservation := model.Reservation{
		ListingID:  listing.ID,
		GuestID:    guest.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		TotalPrice: listing.PricePerNight.Mul(decimal.NewFromInt(4)),
		Status:     model.ReservationStatusConfirmed,
	}
	if err := gormDB.Where("listing_id = ? AND guest_id = ? AND check_in = ?", listing.ID, guest.ID, checkIn).
		FirstOrCreate(&reservation).Error; err != nil {
		log.Fatalf("Failed to seed reservation: %v", err)
	}
	log.Printf("Seeded reservation %d (%s to %s)", reservation.ID,
		checkIn.Format("2006-01-02"), checkOut.Format("2006-01-02"))

	log.Println("Seed completed")
}

func seedUser(gormDB *gorm.DB, name, email, hash string, role model.Role) model.User {
	user := model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := gormDB.Where("email = ?", email).FirstOrCreate(&user).Error; err != nil {
		log.Fatalf("Failed to seed user %s: %v", email, err)
	}
	return user
}
