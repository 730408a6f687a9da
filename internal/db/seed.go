package db

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SeedTestData resets the database and populates it with demo profiles,
// swipes (some guaranteed mutual, with matches and chats materialized),
// message requests, and a few conversations.
//
// Compatible with both MySQL and SQLite.
func SeedTestData(db *gorm.DB) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	tables := []string{"messages", "chats", "message_requests", "matches", "swipes", "user_images", "users"}
	for _, tbl := range tables {
		if err := db.Exec("DELETE FROM " + tbl).Error; err != nil {
			return fmt.Errorf("failed to clear %s: %w", tbl, err)
		}
	}

	switch db.Dialector.Name() {
	case "mysql":
		for _, tbl := range tables {
			db.Exec("ALTER TABLE " + tbl + " AUTO_INCREMENT = 1")
		}
	case "sqlite":
		for _, tbl := range tables {
			db.Exec("DELETE FROM sqlite_sequence WHERE name = ?", tbl)
		}
	}

	log.Println("Cleared existing data")

	cities := []struct{ city, country string }{
		{"London", "UK"}, {"Manchester", "UK"}, {"Dublin", "Ireland"}, {"Amsterdam", "Netherlands"},
	}

	// --- Seed Users (10 male, 10 female) ---
	for i := 1; i <= 20; i++ {
		hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		gender := "male"
		if i > 10 {
			gender = "female"
		}
		loc := cities[r.Intn(len(cities))]

		user := User{
			Name:         fmt.Sprintf("user%d", i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Gender:       gender,
			Age:          21 + r.Intn(20),
			City:         loc.city,
			Country:      loc.country,
			Bio:          "Here for something real.",
			Intents:      "long-term",
			Active:       true,
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to seed user: %w", err)
		}

		for p := 0; p < 2; p++ {
			img := UserImage{
				UserID:    user.ID,
				ObjectKey: uuid.NewString(),
				URL:       fmt.Sprintf("https://images.example.com/%d/%d.jpg", user.ID, p),
				Position:  p,
			}
			if err := db.Create(&img).Error; err != nil {
				return fmt.Errorf("failed to seed image: %w", err)
			}
		}
	}
	log.Println("Seeded 20 users.")

	var users []User
	if err := db.Order("id ASC").Find(&users).Error; err != nil {
		return err
	}

	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "actor_id"}, {Name: "recipient_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"liked", "updated_at"}),
	}

	// --- Seed Swipes (~200, every 3rd guaranteed mutual) ---
	counter := 0
	for _, actor := range users {
		for j := 0; j < 12; j++ {
			recipient := users[r.Intn(len(users))]
			if actor.ID == recipient.ID || actor.Gender == recipient.Gender {
				continue
			}

			liked := r.Intn(100) < 70

			if counter%3 == 0 {
				liked = true
				recip := Swipe{ActorID: recipient.ID, RecipientID: actor.ID, Liked: true}
				db.Clauses(upsert).Create(&recip)
			}

			swipe := Swipe{ActorID: actor.ID, RecipientID: recipient.ID, Liked: liked}
			if err := db.Clauses(upsert).Create(&swipe).Error; err != nil {
				return fmt.Errorf("failed to seed swipe: %w", err)
			}

			if liked {
				var reverse int64
				db.Model(&Swipe{}).
					Where("actor_id = ? AND recipient_id = ? AND liked = ?", recipient.ID, actor.ID, true).
					Count(&reverse)
				if reverse > 0 {
					a, b := actor.ID, recipient.ID
					if b < a {
						a, b = b, a
					}
					db.Clauses(clause.OnConflict{DoNothing: true}).Create(&Match{UserAID: a, UserBID: b})
					db.Clauses(clause.OnConflict{DoNothing: true}).Create(&Chat{UserAID: a, UserBID: b})
				}
			}

			counter++
		}
	}
	log.Println("Seeded swipes and matches.")

	// --- Seed a few conversations on matched chats ---
	var chats []Chat
	if err := db.Limit(5).Find(&chats).Error; err != nil {
		return err
	}
	for i, chat := range chats {
		if i%2 == 0 {
			continue // leave some matches in the match strip
		}
		msgs := []Message{
			{ChatID: chat.ID, SenderID: chat.UserAID, Content: "Hey! How's your week going?"},
			{ChatID: chat.ID, SenderID: chat.UserBID, Content: "Pretty good, just got back from a trip."},
		}
		if err := db.Create(&msgs).Error; err != nil {
			return fmt.Errorf("failed to seed messages: %w", err)
		}
	}

	// --- Seed a pending message request between two unmatched users ---
	if len(users) >= 2 {
		sender, receiver := users[0], users[len(users)-1]
		req := MessageRequest{SenderID: sender.ID, ReceiverID: receiver.ID}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&req).Error; err != nil {
			return fmt.Errorf("failed to seed request: %w", err)
		}
		a, b := sender.ID, receiver.ID
		if b < a {
			a, b = b, a
		}
		chat := Chat{UserAID: a, UserBID: b}
		db.Clauses(clause.OnConflict{DoNothing: true}).Create(&chat)
		db.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&chat)
		db.Create(&Message{ChatID: chat.ID, SenderID: sender.ID, Content: "I noticed we both love hiking!"})
	}

	log.Println("Seeding completed.")
	return nil
}
