// Command seed provisions a development database with a superadmin account
// and a handful of catalogue events. It is idempotent: existing rows with the
// same email or title are left alone.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/techfest-api/internal/models"
	"github.com/noah-isme/techfest-api/pkg/config"
	"github.com/noah-isme/techfest-api/pkg/database"
)

func main() {
	var (
		adminEmail    string
		adminPassword string
		withEvents    bool
	)
	flag.StringVar(&adminEmail, "admin-email", "admin@techfest.local", "Email for the seeded superadmin")
	flag.StringVar(&adminPassword, "admin-password", "changeme", "Password for the seeded superadmin")
	flag.BoolVar(&withEvents, "events", true, "Also seed sample events")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	now := time.Now().UTC()
	result, err := db.ExecContext(ctx, `INSERT INTO users (id, email, password_hash, full_name, role, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, true, $6, $6)
ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(), adminEmail, string(hash), "Fest Superadmin", models.RoleSuperAdmin, now)
	if err != nil {
		log.Fatalf("failed to seed superadmin: %v", err)
	}
	if affected, _ := result.RowsAffected(); affected > 0 {
		log.Printf("seeded superadmin %s", adminEmail)
	} else {
		log.Printf("superadmin %s already present", adminEmail)
	}

	if !withEvents {
		return
	}

	events := []models.Event{
		{
			Title:            "Robo Soccer",
			Description:      "Autonomous robots compete in a five-a-side soccer match.",
			Date:             now.AddDate(0, 1, 0).Format(models.DateLayout),
			Location:         "Main Arena",
			EventType:        models.EventTypeCompetition,
			RegistrationFees: models.RegistrationFees{Solo: 100, Team: 250},
			Image:            "https://cdn.techfest.local/events/robo-soccer.png",
			QRCode:           "https://cdn.techfest.local/qr/robo-soccer.png",
			UPIID:            "techfest@upi",
			IsTeamEvent:      true,
			TeamSize:         models.TeamSize{Min: 1, Max: 4},
			Capacity:         60,
			Rules:            models.StringList{"Robots must be fully autonomous", "Max footprint 30x30 cm"},
		},
		{
			Title:       "Paper Presentation",
			Description: "Present original research to a panel of faculty judges.",
			Date:        now.AddDate(0, 1, 2).Format(models.DateLayout),
			Location:    "Seminar Hall",
			EventType:   models.EventTypeTechnical,
			Image:       "https://cdn.techfest.local/events/paper-talk.png",
			Capacity:    120,
		},
	}

	for i := range events {
		e := &events[i]
		e.ID = uuid.NewString()
		e.IsActive = true
		e.CreatedAt = now
		e.UpdatedAt = now
		e.ApplyDefaults()

		result, err := db.NamedExecContext(ctx, `INSERT INTO events (
	id, title, description, date, location, event_type, registration_fees,
	image, qr_code, upi_id, is_team_event, team_size, capacity, prizes, rules,
	requirements, about_content, details_content, coordinators, start_time, end_time,
	is_active, created_at, updated_at
) VALUES (
	:id, :title, :description, :date, :location, :event_type, :registration_fees,
	:image, :qr_code, :upi_id, :is_team_event, :team_size, :capacity, :prizes, :rules,
	:requirements, :about_content, :details_content, :coordinators, :start_time, :end_time,
	:is_active, :created_at, :updated_at
) ON CONFLICT DO NOTHING`, e)
		if err != nil {
			log.Fatalf("failed to seed event %q: %v", e.Title, err)
		}
		if affected, _ := result.RowsAffected(); affected > 0 {
			log.Printf("seeded event %q", e.Title)
		}
	}
}
