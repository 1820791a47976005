package config

import (
	"log"

	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/core/domain"
	"siports-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := SeedPackages(s.db); err != nil {
		return err
	}

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	if s.cfg.IsDev() {
		if err := s.seedDemoUsers(); err != nil {
			log.Printf("⚠️ Demo seeder skipped: %v", err)
		}
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin account.
// Change the password immediately on a production deployment.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleAdmin)).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("admin123")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:             "admin@siportevent.com",
		PasswordHash:      hashedPassword,
		FirstName:         "Admin",
		LastName:          "SIPORTS",
		Company:           "SIPORTS",
		Role:              string(domain.RoleAdmin),
		Status:            string(domain.StatusValidated),
		ProfileCompletion: 100,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}

// seedDemoUsers seeds validated demo accounts for local development
func (s *Seeder) seedDemoUsers() error {
	demos := []struct {
		email     string
		plain     string
		firstName string
		lastName  string
		company   string
		role      domain.Role
	}{
		{"visiteur@example.com", "visit123", "Victor", "Marin", "Port Solutions", domain.RoleVisitor},
		{"exposant@example.com", "expo123", "Elena", "Kader", "Maritime Tech", domain.RoleExhibitor},
		{"partenaire@example.com", "partner123", "Pascal", "Berrada", "Ocean Partners", domain.RolePartner},
	}

	for _, d := range demos {
		var count int64
		s.db.Model(&models.User{}).Where("email = ?", d.email).Count(&count)
		if count > 0 {
			continue
		}

		hashed, err := password.Hash(d.plain)
		if err != nil {
			return err
		}

		user := &models.User{
			Email:             d.email,
			PasswordHash:      hashed,
			FirstName:         d.firstName,
			LastName:          d.lastName,
			Company:           d.company,
			Role:              string(d.role),
			Status:            string(domain.StatusValidated),
			ProfileCompletion: 70,
		}
		if err := s.db.Create(user).Error; err != nil {
			return err
		}

		log.Printf("✅ Demo user created: %s", d.email)
	}

	return nil
}
