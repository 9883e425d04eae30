package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	emailPkg "steppingstones/internal/adapters/email"
	web "steppingstones/internal/adapters/http"
	"steppingstones/internal/adapters/http/session"
	"steppingstones/internal/adapters/storage"
	adminuserStore "steppingstones/internal/adapters/storage/adminuser"
	submissionStore "steppingstones/internal/adapters/storage/submission"
	"steppingstones/internal/application/notify"
	"steppingstones/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	production := os.Getenv("STEPPINGSTONES_ENV") == "production"

	// Two connection tiers against the managed Postgres: a restricted writer
	// for the public form INSERT and an elevated pool for admin reads and
	// updates. When the database is unreachable the site keeps running on the
	// in-memory tier alone.
	var (
		writeDB *sql.DB
		adminDB *sql.DB
	)
	writeDSN := os.Getenv("STEPPINGSTONES_DATABASE_URL")
	adminDSN := envOrDefault("STEPPINGSTONES_DATABASE_ADMIN_URL", writeDSN)
	if writeDSN != "" {
		var err error
		writeDB, err = storage.Open(writeDSN)
		if err != nil {
			log.Printf("WARNING: database unreachable (%v); running on in-memory storage", err)
			writeDB = nil
		} else {
			defer writeDB.Close()
			if adminDSN == writeDSN {
				adminDB = writeDB
			} else {
				adminDB, err = storage.Open(adminDSN)
				if err != nil {
					log.Printf("WARNING: admin database unreachable (%v); running on in-memory storage", err)
					writeDB = nil
				} else {
					defer adminDB.Close()
				}
			}
		}
	} else {
		log.Println("STEPPINGSTONES_DATABASE_URL not set; running on in-memory storage")
	}

	var subStore *submissionStore.FallbackStore
	memStore := submissionStore.NewMemoryStore()
	if writeDB != nil {
		if err := storage.EnsureSchema(adminDB); err != nil {
			log.Fatalf("failed to ensure schema: %v", err)
		}
		subStore = submissionStore.NewFallbackStore(
			submissionStore.NewPostgresStore(writeDB, adminDB), memStore)
		log.Println("Database initialized successfully!")
	} else {
		subStore = submissionStore.NewFallbackOnly(memStore)
	}

	// Session signing key
	sessionKey := os.Getenv("STEPPINGSTONES_SESSION_KEY")
	if sessionKey == "" {
		if production {
			log.Fatal("STEPPINGSTONES_SESSION_KEY is required in production")
		}
		sessionKey = "dev-only-session-key"
		log.Println("WARNING: using dev session key (sessions won't survive deploys). Set STEPPINGSTONES_SESSION_KEY for production.")
	}
	codec := session.NewCodec([]byte(sessionKey))

	// Seed the bootstrap operator, then chain the database-backed provider
	// behind it so admins added to admin_users can also log in.
	seeded := adminuserStore.NewSeededStore()
	seedInput := orchestrators.SeedOperatorInput{
		Email:    envOrDefault("STEPPINGSTONES_ADMIN_EMAIL", "admin@steppingstones.com"),
		Name:     envOrDefault("STEPPINGSTONES_ADMIN_NAME", "SteppingStones Admin"),
		Password: envOrDefault("STEPPINGSTONES_ADMIN_PASSWORD", "admin123"),
		Role:     "super_admin",
	}
	if production && os.Getenv("STEPPINGSTONES_ADMIN_PASSWORD") == "" {
		log.Fatal("STEPPINGSTONES_ADMIN_PASSWORD is required in production")
	}
	if err := orchestrators.ExecuteSeedOperator(seeded, seedInput); err != nil {
		log.Fatalf("failed to seed operator: %v", err)
	}
	providers := []orchestrators.AdminUserStore{seeded}
	if adminDB != nil {
		providers = append(providers, adminuserStore.NewPostgresStore(adminDB))
	}

	// Configure email sender: Resend first, SMTP as the self-hosted option,
	// noop keeps dev environments running without a provider.
	emailFrom := envOrDefault("STEPPINGSTONES_EMAIL_FROM", "SteppingStones <noreply@steppingstones.com>")
	emailReply := envOrDefault("STEPPINGSTONES_REPLY_TO", "hello@steppingstones.com")
	var sender emailPkg.Sender
	switch {
	case os.Getenv("STEPPINGSTONES_RESEND_KEY") != "":
		sender = emailPkg.NewResendSender(os.Getenv("STEPPINGSTONES_RESEND_KEY"), emailFrom)
		log.Println("Email sender configured (Resend)")
	case os.Getenv("STEPPINGSTONES_SMTP_HOST") != "":
		port, _ := strconv.Atoi(envOrDefault("STEPPINGSTONES_SMTP_PORT", "587"))
		sender = emailPkg.NewSMTPSender(
			os.Getenv("STEPPINGSTONES_SMTP_HOST"),
			port,
			os.Getenv("STEPPINGSTONES_SMTP_USER"),
			os.Getenv("STEPPINGSTONES_SMTP_PASSWORD"),
			emailFrom,
		)
		log.Println("Email sender configured (SMTP)")
	case production:
		log.Println("WARNING: no email provider configured, email delivery is DISABLED in production")
	default:
		sender = emailPkg.NewNoopSender()
		log.Println("Email sender configured (noop, set STEPPINGSTONES_RESEND_KEY for real delivery)")
	}
	web.SetDispatcher(&notify.Dispatcher{
		Sender:        sender,
		From:          emailFrom,
		ReplyTo:       emailReply,
		BusinessInbox: envOrDefault("STEPPINGSTONES_BUSINESS_INBOX", "hello@steppingstones.com"),
		ContactPhone:  envOrDefault("STEPPINGSTONES_CONTACT_PHONE", "(555) 123-4567"),
	})

	stores := &web.Stores{
		SubmissionStore: subStore,
		AdminProviders:  providers,
	}
	opts := web.Options{
		ReplyDowngradesConverted: envOrDefault("STEPPINGSTONES_REPLY_DOWNGRADES_CONVERTED", "true") == "true",
	}
	mux := web.NewMux("static", stores, codec, opts)

	addr := envOrDefault("STEPPINGSTONES_ADDR", ":8080")
	log.Printf("SteppingStones %s starting on %s (env=%s)", version, addr, envOrDefault("STEPPINGSTONES_ENV", "development"))

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
