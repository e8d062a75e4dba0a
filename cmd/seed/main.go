package main

import (
	"context"
	"log"
	"os"

	"meetingbooking/internal/database"
	"meetingbooking/internal/domain"
	"meetingbooking/internal/repository"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "meetingbooking.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM email_verification_tokens")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	rooms := repository.NewRoomRepository(db)

	log.Println("Creating users...")
	seedUsers := []struct {
		email    string
		password string
		name     string
		role     domain.UserRole
	}{
		{"admin@meetingbooking.local", "admin123", "Admin", domain.RoleAdmin},
		{"vip@meetingbooking.local", "vip12345", "VIP User", domain.RoleVIP},
		{"alice@meetingbooking.local", "alice123", "Alice", domain.RoleUser},
		{"bob@meetingbooking.local", "bob12345", "Bob", domain.RoleUser},
	}
	for _, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal(err)
		}
		u := &domain.User{
			Email:         su.email,
			PasswordHash:  string(hash),
			Name:          su.name,
			Role:          su.role,
			EmailVerified: true,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal("seed user failed:", err)
		}
		log.Printf("User created: %s / %s", su.email, su.password)
	}

	log.Println("Creating rooms...")
	seedRooms := []*domain.Room{
		{Name: "Small Meeting Room", Capacity: 4, Equipment: []string{"whiteboard"}, RoomType: domain.RoomRegular, IsActive: true},
		{Name: "Team Room", Capacity: 8, Equipment: []string{"whiteboard", "tv"}, RoomType: domain.RoomRegular, IsActive: true},
		{Name: "Conference Hall", Capacity: 20, Equipment: []string{"projector", "conference phone"}, RoomType: domain.RoomRegular, IsActive: true},
		{Name: "Executive Boardroom", Capacity: 12, Equipment: []string{"projector", "video conferencing", "catering"}, RoomType: domain.RoomVIP, IsActive: true},
	}
	for _, room := range seedRooms {
		if err := rooms.Create(ctx, room); err != nil {
			log.Fatal("seed room failed:", err)
		}
		log.Printf("Room created: %s (%s, capacity %d)", room.Name, room.RoomType, room.Capacity)
	}

	log.Println("Seed completed")
}
