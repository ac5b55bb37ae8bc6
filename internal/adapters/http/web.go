package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"southpaw/internal/adapters/http/middleware"
	attendanceStore "southpaw/internal/adapters/storage/attendance"
	coachStore "southpaw/internal/adapters/storage/coach"
	earningsStore "southpaw/internal/adapters/storage/earnings"
	membershipStore "southpaw/internal/adapters/storage/membership"
	paymentStore "southpaw/internal/adapters/storage/payment"
	snapshotStore "southpaw/internal/adapters/storage/snapshot"
)

// Stores holds all storage dependencies.
type Stores struct {
	CoachStore      coachStore.Store
	EarningsStore   earningsStore.Store
	MembershipStore membershipStore.Store
	AttendanceStore attendanceStore.Store
	PaymentStore    paymentStore.Store
	SnapshotStore   snapshotStore.Store
}

// Config holds request-independent settings for the handlers.
type Config struct {
	// MembershipRate is the per-member revenue rate. Zero uses the domain
	// default.
	MembershipRate decimal.Decimal
}

// loadCSRFKey reads the CSRF secret from SOUTHPAW_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("SOUTHPAW_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("SOUTHPAW_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("SOUTHPAW_ENV") == "production" {
		log.Fatal("SOUTHPAW_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set SOUTHPAW_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global config instance (set by NewMux)
var config Config

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, cfg Config) http.Handler {
	stores = s
	config = cfg

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
		middleware.Timing(),
	)
}
