package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	web "southpaw/internal/adapters/http"
	"southpaw/internal/adapters/storage"
	attendanceStore "southpaw/internal/adapters/storage/attendance"
	coachStore "southpaw/internal/adapters/storage/coach"
	earningsStore "southpaw/internal/adapters/storage/earnings"
	membershipStore "southpaw/internal/adapters/storage/membership"
	paymentStore "southpaw/internal/adapters/storage/payment"
	snapshotStore "southpaw/internal/adapters/storage/snapshot"
	"southpaw/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Optional .env for local development; real deployments set env vars.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("SOUTHPAW_DB", "southpaw.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	// Health check
	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}

	log.Println("Database initialized successfully!")

	// Wrap DB with slow-query instrumentation
	timedDB := storage.NewTimedDB(db)

	stores := &web.Stores{
		CoachStore:      coachStore.NewSQLiteStore(timedDB),
		EarningsStore:   earningsStore.NewSQLiteStore(timedDB),
		MembershipStore: membershipStore.NewSQLiteStore(timedDB),
		AttendanceStore: attendanceStore.NewSQLiteStore(timedDB),
		PaymentStore:    paymentStore.NewSQLiteStore(timedDB),
		SnapshotStore:   snapshotStore.NewSQLiteStore(timedDB),
	}

	// Membership rate: dollars per active member per period
	rate := decimal.Zero
	if v := os.Getenv("SOUTHPAW_MEMBERSHIP_RATE"); v != "" {
		parsed, err := decimal.NewFromString(v)
		if err != nil || parsed.IsNegative() {
			log.Fatalf("SOUTHPAW_MEMBERSHIP_RATE must be a non-negative number, got %q", v)
		}
		rate = parsed
	}

	// Seed demo data for development only
	if os.Getenv("SOUTHPAW_ENV") != "production" {
		seedDeps := orchestrators.DemoSeedDeps{
			CoachStore:      stores.CoachStore,
			EarningsStore:   stores.EarningsStore,
			MembershipStore: stores.MembershipStore,
			AttendanceStore: stores.AttendanceStore,
			PaymentStore:    stores.PaymentStore,
		}
		if err := orchestrators.ExecuteSeedDemo(context.Background(), seedDeps, time.Now()); err != nil {
			log.Fatalf("failed to seed demo data: %v", err)
		}
		log.Println("Demo seed data loaded (dev mode)")
	}

	// Create HTTP handler with middleware
	mux := web.NewMux("static", stores, web.Config{MembershipRate: rate})

	// Start server
	addr := envOrDefault("SOUTHPAW_ADDR", ":8080")
	log.Printf("Southpaw %s starting on %s (env=%s)", version, addr, envOrDefault("SOUTHPAW_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
