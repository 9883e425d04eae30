package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"steppingstones/internal/adapters/http/middleware"
	"steppingstones/internal/adapters/http/session"
	"steppingstones/internal/application/notify"
	"steppingstones/internal/application/orchestrators"
)

// SubmissionStore is the full store surface the handlers need. The fallback
// wrapper satisfies it; tests wire mocks.
type SubmissionStore interface {
	orchestrators.SubmissionSaver
	orchestrators.SubmissionLister
	orchestrators.SubmissionTransitioner
	orchestrators.SubmissionStoreForReply
}

// Stores holds all storage dependencies.
type Stores struct {
	SubmissionStore SubmissionStore
	AdminProviders  []orchestrators.AdminUserStore
}

// Options carries behavior toggles wired from the environment.
type Options struct {
	// ReplyDowngradesConverted preserves the observed behavior of a reply
	// moving a converted lead back to contacted.
	ReplyDowngradesConverted bool
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session codec (set by NewMux)
var sessionCodec *session.Codec

// Global behavior options (set by NewMux)
var options Options

// Global notification dispatcher (set by SetDispatcher)
var dispatcher *notify.Dispatcher

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// SetDispatcher sets the global notification dispatcher for the application.
func SetDispatcher(d *notify.Dispatcher) {
	dispatcher = d
}

// loadCSRFKey reads the CSRF secret from STEPPINGSTONES_CSRF_KEY (hex-encoded,
// 32 bytes). In production, the key MUST be set. In development, a random key
// is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("STEPPINGSTONES_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("STEPPINGSTONES_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("STEPPINGSTONES_ENV") == "production" {
		log.Fatal("STEPPINGSTONES_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (form tokens won't survive restart). Set STEPPINGSTONES_CSRF_KEY for production.")
	return key
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, codec *session.Codec, opts Options) http.Handler {
	stores = s
	sessionCodec = codec
	options = opts
	session.SecureCookies = os.Getenv("STEPPINGSTONES_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	mux.Handle("/metrics", promhttp.Handler())
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Metrics -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(codec),
		middleware.RateLimit(limiter),
		middleware.Metrics,
	)
}

// registerRoutes attaches all page and action handlers.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleHome)
	mux.HandleFunc("/learn-more", handleLearnMore)
	mux.HandleFunc("/contact", handleContact)
	mux.HandleFunc("/admin/login", handleAdminLogin)
	mux.HandleFunc("/admin/logout", handleAdminLogout)
	mux.HandleFunc("/admin/submissions", handleAdminSubmissions)
	mux.HandleFunc("/admin/submissions/contacted", handleMarkContacted)
	mux.HandleFunc("/admin/submissions/converted", handleMarkConverted)
	mux.HandleFunc("/admin/submissions/reply", handleSendReply)
}
