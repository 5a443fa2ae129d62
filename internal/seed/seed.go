// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password assigned to every seeded account.
const DefaultPassword = "Password123"

// Seeder populates the database with demo users, posts, and comments.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:  db,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded data. Order matters for foreign keys.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{&models.Comment{}, &models.Post{}, &models.User{}} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// Run seeds numUsers accounts and numPosts posts with a sprinkling of
// comments. One ADMIN account (admin@example.com) is always created.
func (s *Seeder) Run(numUsers, numPosts int) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	users := make([]*models.User, 0, numUsers)
	for i := 0; i < numUsers; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    fmt.Sprintf("user%d@%s", i, gofakeit.DomainName()),
			Password: string(hashed),
			Role:     models.RoleUser,
		}
		if err := s.db.Create(user).Error; err != nil {
			return fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users (plus admin)", len(users))

	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		owner := users[s.rng.Intn(len(users))]
		post := s.buildPost(owner)
		if err := s.db.Create(post).Error; err != nil {
			return fmt.Errorf("creating post %d: %w", i, err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))

	comments := 0
	for _, post := range posts {
		if post.Status != models.StatusPublic {
			continue
		}
		for i := 0; i < s.rng.Intn(4); i++ {
			commenter := users[s.rng.Intn(len(users))]
			comment := &models.Comment{
				Text:   gofakeit.Sentence(8),
				Author: commenter.Username,
				PostID: post.ID,
			}
			if err := s.db.Create(comment).Error; err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
			comments++
		}
	}
	log.Printf("Seeded %d comments", comments)

	return nil
}

// buildPost constructs an unsaved post with a realistic created_at spread.
// Roughly one in five posts is PRIVATE.
func (s *Seeder) buildPost(owner *models.User) *models.Post {
	status := models.StatusPublic
	if s.rng.Intn(5) == 0 {
		status = models.StatusPrivate
	}

	daysBack := s.rng.Intn(90)
	hoursBack := s.rng.Intn(24)

	return &models.Post{
		Author:    owner.Username,
		Title:     gofakeit.Sentence(5),
		Contents:  gofakeit.Paragraph(1, 3, 5, "\n"),
		Status:    status,
		UserID:    owner.ID,
		Version:   1,
		CreatedAt: time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour),
	}
}
