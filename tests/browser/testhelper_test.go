package browser_test

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	emailPkg "steppingstones/internal/adapters/email"
	web "steppingstones/internal/adapters/http"
	"steppingstones/internal/adapters/http/middleware"
	"steppingstones/internal/adapters/http/session"
	adminuserStore "steppingstones/internal/adapters/storage/adminuser"
	submissionStore "steppingstones/internal/adapters/storage/submission"
	"steppingstones/internal/application/notify"
	"steppingstones/internal/application/orchestrators"
)

const (
	testAdminEmail    = "admin@test.com"
	testAdminPassword = "TestPass123!"
)

// testApp holds the running test server and Playwright handles.
// The app runs on the in-memory storage tier only, so no database is needed.
type testApp struct {
	BaseURL string
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
	Memory  *submissionStore.MemoryStore
}

// newTestApp wires the full app against in-memory storage and starts an HTTP server.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	memStore := submissionStore.NewMemoryStore()
	seeded := adminuserStore.NewSeededStore()
	err := orchestrators.ExecuteSeedOperator(seeded, orchestrators.SeedOperatorInput{
		Email:    testAdminEmail,
		Name:     "Test Admin",
		Password: testAdminPassword,
		Role:     "super_admin",
	})
	if err != nil {
		t.Fatalf("failed to seed operator: %v", err)
	}

	stores := &web.Stores{
		SubmissionStore: submissionStore.NewFallbackOnly(memStore),
		AdminProviders:  []orchestrators.AdminUserStore{seeded},
	}

	web.SetDispatcher(&notify.Dispatcher{
		Sender:        emailPkg.NewNoopSender(),
		From:          "SteppingStones <noreply@test.local>",
		ReplyTo:       "hello@test.local",
		BusinessInbox: "hello@test.local",
		ContactPhone:  "(555) 123-4567",
	})

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	// Browser tests click fast; loosen the per-IP limit
	web.RateLimitPerSecond = 100

	codec := session.NewCodec([]byte("browser-test-session-key"))
	mux := web.NewMux("static", stores, codec, web.Options{ReplyDowngradesConverted: true})
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	// Start Playwright
	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
		Memory:  memStore,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// login navigates to the login page and logs in as the seeded admin.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	_, err := page.Goto(a.BaseURL + "/admin/login")
	if err != nil {
		t.Fatalf("failed to navigate to login: %v", err)
	}
	if err := page.Locator("input[name=email]").Fill(testAdminEmail); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill(testAdminPassword); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/admin/submissions", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to dashboard: %v", err)
	}
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
