// Package seed populates the database with realistic development data.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"chirp/internal/models"
	"chirp/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the plaintext password every seeded account gets,
// so developers can log in as any of them.
const DefaultPassword = "password123"

// Seeder generates fake users, posts, and interactions.
type Seeder struct {
	db           *gorm.DB
	interactions repository.InteractionRepository
}

// NewSeeder creates a Seeder over db.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{
		db:           db,
		interactions: repository.NewInteractionRepository(db),
	}
}

// ClearAll removes all seeded data. Interactions go first so the post
// counters are never orphaned mid-wipe.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.Interaction{},
		&models.Post{},
		&models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	log.Println("Database cleared")
	return nil
}

// SeedUsers creates n users with fake usernames and the shared default password.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing seed password: %w", err)
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Password: string(hashed),
		}
		if err := s.db.Create(user).Error; err != nil {
			return nil, fmt.Errorf("creating user %q: %w", user.Username, err)
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedPosts creates n posts with fake content spread over the given authors.
func (s *Seeder) SeedPosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to author posts")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			Content: gofakeit.SentenceSimple(),
			UserID:  author.ID,
		}
		if err := s.db.Create(post).Error; err != nil {
			return nil, fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("Seeded %d posts", len(posts))
	return posts, nil
}

// SeedInteractions sprinkles likes and retweets across posts. It goes
// through the ledger's Toggle so counters stay consistent with the rows.
func (s *Seeder) SeedInteractions(users []*models.User, posts []*models.Post, perPost int) error {
	ctx := context.Background()
	kinds := []models.InteractionKind{models.InteractionLike, models.InteractionRetweet}

	total := 0
	for _, post := range posts {
		for i := 0; i < perPost; i++ {
			user := users[rand.Intn(len(users))]
			kind := kinds[rand.Intn(len(kinds))]
			added, err := s.interactions.Toggle(ctx, post.ID, user.ID, kind)
			if err != nil {
				return fmt.Errorf("toggling %s on post %d: %w", kind, post.ID, err)
			}
			if added {
				total++
			} else {
				// Toggle picked an existing (user, post, kind) pair and
				// removed it; count the net effect, not the call.
				total--
			}
		}
	}
	log.Printf("Seeded %d net interactions", total)
	return nil
}

// Run performs a full seed pass: users, posts, then interactions.
func (s *Seeder) Run(numUsers, numPosts, interactionsPerPost int) error {
	users, err := s.SeedUsers(numUsers)
	if err != nil {
		return err
	}
	posts, err := s.SeedPosts(users, numPosts)
	if err != nil {
		return err
	}
	return s.SeedInteractions(users, posts, interactionsPerPost)
}
