package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gorm.io/gorm"

	"boxoffice/internal/auth"
	"boxoffice/internal/bookings"
	"boxoffice/internal/events"
	"boxoffice/internal/ledger"
	"boxoffice/internal/pricing"
	"boxoffice/internal/shared/config"
	"boxoffice/internal/shared/database"
	"boxoffice/internal/sponsors"
	"boxoffice/internal/users"
	"boxoffice/pkg/api"
	"boxoffice/pkg/logger"
)

type Seeder struct {
	db  *database.DB
	cfg *config.Config
	log *logger.Logger
}

type options struct {
	clean    bool
	operator string
	password string
	bookings int
}

func main() {
	_ = godotenv.Load()

	var opts options
	pflag.BoolVar(&opts.clean, "clean", true, "empty every table before seeding")
	pflag.StringVar(&opts.operator, "operator", "boxoffice", "operator username to create")
	pflag.StringVar(&opts.password, "password", "boxoffice", "operator password")
	pflag.IntVar(&opts.bookings, "bookings", 6, "sample bookings to place on the first event")
	pflag.Parse()

	fmt.Println("🌱 Starting Box Office Database Seeder...")

	cfg := config.Load()
	seedLog := logger.NewWithWriter(io.Discard, "error")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// The seeder writes straight to the database; a stale cache is flushed
	// by the server's TTLs.
	cfg.Redis.Enabled = false
	db, err := database.InitDB(ctx, cfg, seedLog)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, cfg: cfg, log: seedLog}

	if opts.clean {
		fmt.Println("\n🧹 Cleaning database...")
		if err := seeder.CleanDatabase(ctx); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
		fmt.Println("✅ Database cleaned successfully")
	}

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(ctx, opts); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")
	fmt.Printf("\n🎉 Seeding completed! Log in as %q.\n", opts.operator)
}

// CleanDatabase empties all tables, children first
func (s *Seeder) CleanDatabase(ctx context.Context) error {
	tables := []string{
		"ledger_blocks",
		"bookings",
		"event_sponsors",
		"tiers",
		"events",
		"sponsors",
		"users",
	}

	return s.db.SQL.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, table := range tables {
			fmt.Printf("  Emptying table: %s\n", table)
			stmt := fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)
			if s.cfg.Database.Driver == "sqlite" {
				stmt = "DELETE FROM " + table
			}
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to empty table %s: %w", table, err)
			}
		}
		return nil
	})
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll(ctx context.Context, opts options) error {
	sql := s.db.SQL
	userRepo := users.NewRepository(sql)
	sponsorRepo := sponsors.NewRepository(sql)
	eventRepo := events.NewRepository(sql)

	authService := auth.NewService(userRepo, s.cfg.JWT, s.log)
	if _, err := authService.CreateOperator(ctx, "Box Office", opts.operator, opts.password); err != nil {
		return fmt.Errorf("failed to seed operator: %w", err)
	}
	fmt.Printf("  Operator: %s\n", opts.operator)

	sponsorIDs, err := s.SeedSponsors(ctx, sponsors.NewService(sponsorRepo, s.log))
	if err != nil {
		return fmt.Errorf("failed to seed sponsors: %w", err)
	}

	eventService := events.NewService(eventRepo, sponsorRepo, s.log)
	seeded, err := s.SeedEvents(ctx, eventService, sponsorIDs)
	if err != nil {
		return fmt.Errorf("failed to seed events: %w", err)
	}

	if opts.bookings > 0 && len(seeded) > 0 {
		bookingService := bookings.NewService(bookings.Deps{
			DB:       sql,
			Repo:     bookings.NewRepository(sql),
			Events:   eventRepo,
			EventSvc: eventService,
			Users:    userRepo,
			Ledger:   ledger.NewService(ledger.NewRepository(sql), ledger.WithLogger(s.log)),
			Pricing:  pricing.NewModel(s.cfg.Pricing),
			Log:      s.log,
		})
		if err := s.SeedBookings(ctx, bookingService, seeded[0], opts.bookings); err != nil {
			return fmt.Errorf("failed to seed bookings: %w", err)
		}
	}
	return nil
}

func (s *Seeder) SeedSponsors(ctx context.Context, svc sponsors.Service) ([]uint, error) {
	reqs := []api.CreateSponsorRequest{
		{Name: "Acme Audio", Website: "https://acme-audio.example"},
		{Name: "Northwind Beverages", Website: "https://northwind.example"},
		{Name: "Lumen Lighting"},
	}
	ids := make([]uint, 0, len(reqs))
	for _, req := range reqs {
		sp, err := svc.CreateSponsor(ctx, req)
		if err != nil {
			return nil, err
		}
		ids = append(ids, sp.ID)
		fmt.Printf("  Sponsor: %s\n", sp.Name)
	}
	return ids, nil
}

func (s *Seeder) SeedEvents(ctx context.Context, svc events.Service, sponsorIDs []uint) ([]*api.Event, error) {
	day := time.Now().UTC().Truncate(24 * time.Hour)
	at := func(days, hour int) time.Time {
		return day.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	}

	reqs := []api.CreateEventRequest{
		{
			Title:       "Midnight Jazz Sessions",
			Description: "Late set with the house quartet.",
			Location:    "Blue Room",
			StartTime:   at(3, 22),
			EndTime:     at(4, 1),
			Tiers: []api.CreateTierRequest{
				{Name: "VIP", Price: 120, TotalSeats: 20},
				{Name: "General", Price: 45, TotalSeats: 180},
			},
			SponsorIDs: sponsorIDs[:2],
		},
		{
			Title:     "City Marathon Expo",
			Location:  "Convention Centre Hall B",
			StartTime: at(14, 9),
			EndTime:   at(14, 18),
			Tiers: []api.CreateTierRequest{
				{Name: "Exhibitor", Price: 300, TotalSeats: 40},
				{Name: "Visitor", Price: 10, TotalSeats: 960},
			},
			SponsorIDs: sponsorIDs[1:],
		},
		{
			Title:     "Symphony in the Park",
			Location:  "Riverside Amphitheatre",
			StartTime: at(30, 18),
			EndTime:   at(30, 21),
			Tiers: []api.CreateTierRequest{
				{Name: "Lawn", Price: 25, TotalSeats: 500},
			},
		},
	}

	out := make([]*api.Event, 0, len(reqs))
	for _, req := range reqs {
		ev, err := svc.CreateEvent(ctx, req)
		if err != nil {
			return nil, err
		}
		out = append(out, ev)
		fmt.Printf("  Event: %s (%d seats)\n", ev.Title, ev.TotalSeats())
	}
	return out, nil
}

// SeedBookings sells a few tickets so the bookings and ledger views have
// something to show.
func (s *Seeder) SeedBookings(ctx context.Context, svc bookings.Service, ev *api.Event, n int) error {
	for i := 0; i < n; i++ {
		tier := ev.Tiers[i%len(ev.Tiers)]
		b, err := svc.BookTicket(ctx, api.BookTicketRequest{
			UserPhone: fmt.Sprintf("90000000%02d", i%100),
			EventID:   ev.ID,
			TierID:    tier.ID,
			Qty:       1 + i%3,
		})
		if err != nil {
			return err
		}
		fmt.Printf("  Booking: %s x%d %.2f %s\n", tier.Name, b.Qty, b.PricePaid, b.TicketHash[:12])
	}
	return nil
}
