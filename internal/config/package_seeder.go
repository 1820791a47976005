package config

import (
	"log"

	"siports-backend/internal/adapters/persistence/models"
	"siports-backend/internal/core/domain"

	"gorm.io/gorm"
)

// SeedPackages loads the entitlement catalog. The catalog is reference
// data: rows are upserted by id so a redeploy can adjust prices or
// features without touching user assignments.
func SeedPackages(db *gorm.DB) error {
	packages := []models.Package{
		// Visitor passes
		{
			ID: "free", Name: "Free Pass", Scope: string(domain.ScopeVisitor),
			Price: 0, Currency: "EUR",
			Features:       `["Accès exposition","Conférences publiques"]`,
			MeetingCredits: 0, DurationDays: 1, IsActive: true,
		},
		{
			ID: "basic", Name: "Basic Pass", Scope: string(domain.ScopeVisitor),
			Price: 150, Currency: "EUR",
			Features:       `["Accès exposition","Conférences publiques","2 rendez-vous B2B"]`,
			MeetingCredits: 2, DurationDays: 1, IsActive: true,
		},
		{
			ID: "premium", Name: "Premium Pass", Scope: string(domain.ScopeVisitor),
			Price: 350, Currency: "EUR",
			Features:       `["Accès 2 jours","Ateliers techniques","5 rendez-vous B2B","Déjeuner networking"]`,
			MeetingCredits: 5, DurationDays: 2, IsActive: true,
		},
		{
			ID: "vip", Name: "VIP Pass", Scope: string(domain.ScopeVisitor),
			Price: 750, Currency: "EUR",
			Features:       `["Accès 3 jours","Rendez-vous B2B illimités","Soirée de gala","Salon VIP","Conciergerie"]`,
			MeetingCredits: domain.UnlimitedMeetings, DurationDays: 3, IsActive: true,
		},

		// Partnership tiers
		{
			ID: "startup", Name: "Startup Package", Scope: string(domain.ScopePartnership),
			Price: 5000, Currency: "EUR",
			Features:       `["Logo sur le site","2 pass exposants","2 rendez-vous B2B"]`,
			MeetingCredits: 2, DurationDays: 90, IsActive: true,
		},
		{
			ID: "silver", Name: "Silver Partner", Scope: string(domain.ScopePartnership),
			Price: 15000, Currency: "EUR",
			Features:       `["Logo sur supports imprimés","4 pass exposants","5 rendez-vous B2B","Communiqué partagé"]`,
			MeetingCredits: 5, DurationDays: 90, IsActive: true,
		},
		{
			ID: "gold", Name: "Gold Partner", Scope: string(domain.ScopePartnership),
			Price: 25000, Currency: "EUR",
			Features:       `["Visibilité scène principale","8 pass exposants","10 rendez-vous B2B","Atelier sponsorisé"]`,
			MeetingCredits: 10, DurationDays: 90, IsActive: true,
		},
		{
			ID: "platinum", Name: "Platinum Partner", Scope: string(domain.ScopePartnership),
			Price: 50000, Currency: "EUR",
			Features:       `["Partenaire officiel","Pass illimités","Rendez-vous B2B illimités","Keynote dédiée"]`,
			MeetingCredits: domain.UnlimitedMeetings, DurationDays: 90, IsActive: true,
		},

		// Exhibition stands
		{
			ID: "stand-basic", Name: "Stand Basic 9m²", Scope: string(domain.ScopeExhibition),
			Price: 1200, Currency: "EUR",
			Features:       `["Stand équipé 9m²","2 pass exposants","2 rendez-vous B2B"]`,
			MeetingCredits: 2, DurationDays: 90, IsActive: true,
		},
		{
			ID: "stand-standard", Name: "Stand Standard 18m²", Scope: string(domain.ScopeExhibition),
			Price: 2500, Currency: "EUR",
			Features:       `["Stand équipé 18m²","4 pass exposants","5 rendez-vous B2B","Mini-site exposant"]`,
			MeetingCredits: 5, DurationDays: 90, IsActive: true,
		},
		{
			ID: "stand-premium", Name: "Stand Premium 36m²", Scope: string(domain.ScopeExhibition),
			Price: 4500, Currency: "EUR",
			Features:       `["Stand équipé 36m²","8 pass exposants","10 rendez-vous B2B","Mini-site exposant","Emplacement premium"]`,
			MeetingCredits: 10, DurationDays: 90, IsActive: true,
		},
		{
			ID: "stand-custom", Name: "Stand Sur Mesure", Scope: string(domain.ScopeExhibition),
			Price: 8000, Currency: "EUR",
			Features:       `["Surface libre","Pass illimités","Rendez-vous B2B illimités","Accompagnement dédié"]`,
			MeetingCredits: domain.UnlimitedMeetings, DurationDays: 90, IsActive: true,
		},
	}

	for _, pkg := range packages {
		if err := db.Save(&pkg).Error; err != nil {
			return err
		}
	}

	log.Printf("✅ Entitlement catalog seeded (%d packages)", len(packages))
	return nil
}
