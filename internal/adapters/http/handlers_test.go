package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	emailPkg "steppingstones/internal/adapters/email"
	"steppingstones/internal/adapters/http/middleware"
	"steppingstones/internal/adapters/http/session"
	adminuserStore "steppingstones/internal/adapters/storage/adminuser"
	submissionStore "steppingstones/internal/adapters/storage/submission"
	"steppingstones/internal/application/notify"
	"steppingstones/internal/application/orchestrators"
	admindomain "steppingstones/internal/domain/admin"
	domain "steppingstones/internal/domain/submission"
)

// TestMain moves to the project root so the relative template path resolves.
func TestMain(m *testing.M) {
	dir, err := os.Getwd()
	if err != nil {
		os.Exit(1)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			os.Exit(1)
		}
		dir = parent
	}
	if err := os.Chdir(dir); err != nil {
		os.Exit(1)
	}
	os.Exit(m.Run())
}

const (
	testAdminEmail    = "admin@test.com"
	testAdminPassword = "TestPass123!"
)

// setupApp wires the package globals against in-memory stores.
func setupApp(t *testing.T) *submissionStore.MemoryStore {
	t.Helper()

	memStore := submissionStore.NewMemoryStore()
	seeded := adminuserStore.NewSeededStore()
	err := orchestrators.ExecuteSeedOperator(seeded, orchestrators.SeedOperatorInput{
		Email:    testAdminEmail,
		Name:     "Test Admin",
		Password: testAdminPassword,
		Role:     admindomain.RoleSuperAdmin,
	})
	require.NoError(t, err)

	stores = &Stores{
		SubmissionStore: submissionStore.NewFallbackOnly(memStore),
		AdminProviders:  []orchestrators.AdminUserStore{seeded},
	}
	sessionCodec = session.NewCodec([]byte("handler-test-secret"))
	options = Options{ReplyDowngradesConverted: true}
	dispatcher = &notify.Dispatcher{
		Sender:        emailPkg.NewNoopSender(),
		From:          "SteppingStones <noreply@test.local>",
		ReplyTo:       "hello@test.local",
		BusinessInbox: "hello@test.local",
		ContactPhone:  "(555) 123-4567",
	}
	return memStore
}

func adminRequest(method, target string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("Accept", "text/html")
	ctx := middleware.ContextWithAdmin(req.Context(), admindomain.User{
		ID: "op-1", Email: testAdminEmail, Name: "Test Admin", Role: admindomain.RoleSuperAdmin, IsActive: true,
	})
	return req.WithContext(ctx)
}

func validContactForm() url.Values {
	return url.Values{
		"firstName": {"Sarah"},
		"lastName":  {"Johnson"},
		"email":     {"sarah@example.com"},
		"phone":     {"+1-555-0123"},
		"message":   {"I would love to learn more about your services."},
	}
}

func TestContactFormRenders(t *testing.T) {
	setupApp(t)
	req := httptest.NewRequest("GET", "/contact", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handleContact(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="firstName"`)
	assert.Contains(t, body, `name="message"`)
}

func TestContactSubmitHTML(t *testing.T) {
	memStore := setupApp(t)
	req := httptest.NewRequest("POST", "/contact", strings.NewReader(validContactForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handleContact(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you Sarah!")

	subs, _ := memStore.ListAll(context.Background())
	require.Len(t, subs, 1)
	assert.Equal(t, "sarah@example.com", subs[0].Email)
}

func TestContactSubmitJSON(t *testing.T) {
	setupApp(t)
	req := httptest.NewRequest("POST", "/contact", strings.NewReader(validContactForm().Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handleContact(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		ID      string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.True(t, payload.Success)
	assert.NotEmpty(t, payload.ID)
}

func TestContactSubmitValidationErrors(t *testing.T) {
	memStore := setupApp(t)
	form := validContactForm()
	form.Set("message", "Too short")
	req := httptest.NewRequest("POST", "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handleContact(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Message must be at least 10 characters")
	assert.Contains(t, body, `value="Sarah"`, "inputs are preserved on re-render")

	subs, _ := memStore.ListAll(context.Background())
	assert.Empty(t, subs)
}

func TestContactSubmitValidationErrorsJSON(t *testing.T) {
	setupApp(t)
	form := validContactForm()
	form.Set("email", "not-an-email")
	req := httptest.NewRequest("POST", "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handleContact(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	setupApp(t)
	form := url.Values{"email": {testAdminEmail}, "password": {testAdminPassword}}
	req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	handleAdminLogin(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/submissions", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, session.CookieName, cookies[0].Name)

	user, err := sessionCodec.Verify(cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, testAdminEmail, user.Email)
}

func TestLoginWrongPasswordRerenders(t *testing.T) {
	setupApp(t)
	form := url.Values{"email": {testAdminEmail}, "password": {"wrong"}}
	req := httptest.NewRequest("POST", "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	handleAdminLogin(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid email or password")
	assert.Empty(t, rec.Result().Cookies())
}

func TestLogoutClearsCookie(t *testing.T) {
	setupApp(t)
	req := httptest.NewRequest("POST", "/admin/logout", nil)
	rec := httptest.NewRecorder()

	handleAdminLogout(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestDashboardRequiresSession(t *testing.T) {
	setupApp(t)
	req := httptest.NewRequest("GET", "/admin/submissions", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()

	handleAdminSubmissions(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
}

func TestAdminActionWithoutSessionIs401ForJSON(t *testing.T) {
	setupApp(t)
	req := httptest.NewRequest("POST", "/admin/submissions/contacted", strings.NewReader("id=x"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()

	handleMarkContacted(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardListsSubmissions(t *testing.T) {
	memStore := setupApp(t)
	memStore.Save(context.Background(), domain.NewSubmission{
		FirstName: "Moana", LastName: "Tester", Email: "moana@example.com",
		Phone: "+64 21 555 0100", Message: "Keen to hear more about the process.",
	})

	rec := httptest.NewRecorder()
	handleAdminSubmissions(rec, adminRequest("GET", "/admin/submissions", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Moana Tester")
	assert.Contains(t, body, "moana@example.com")
}

func TestMarkContactedAction(t *testing.T) {
	memStore := setupApp(t)
	saved, _ := memStore.Save(context.Background(), domain.NewSubmission{FirstName: "Moana"})

	form := url.Values{"id": {saved.ID}, "notes": {"Left a voicemail"}}
	rec := httptest.NewRecorder()
	handleMarkContacted(rec, adminRequest("POST", "/admin/submissions/contacted", form))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "notice=")

	got, _ := memStore.GetByID(context.Background(), saved.ID)
	assert.Equal(t, domain.StatusContacted, got.Status)
	assert.Equal(t, "Left a voicemail", got.Notes)
}

func TestMarkConvertedAction(t *testing.T) {
	memStore := setupApp(t)
	saved, _ := memStore.Save(context.Background(), domain.NewSubmission{FirstName: "Moana"})

	form := url.Values{"id": {saved.ID}}
	rec := httptest.NewRecorder()
	handleMarkConverted(rec, adminRequest("POST", "/admin/submissions/converted", form))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	got, _ := memStore.GetByID(context.Background(), saved.ID)
	assert.Equal(t, domain.StatusConverted, got.Status)
}

func TestTransitionUnknownIDShowsAlert(t *testing.T) {
	setupApp(t)
	form := url.Values{"id": {"missing"}}
	rec := httptest.NewRecorder()
	handleMarkContacted(rec, adminRequest("POST", "/admin/submissions/contacted", form))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "alert=")
}

func TestSendReplyAction(t *testing.T) {
	memStore := setupApp(t)
	saved, _ := memStore.Save(context.Background(), domain.NewSubmission{
		FirstName: "Moana", Email: "moana@example.com",
	})

	form := url.Values{
		"id":      {saved.ID},
		"subject": {"Your consultation"},
		"message": {"We would love to meet you next week."},
	}
	rec := httptest.NewRecorder()
	handleSendReply(rec, adminRequest("POST", "/admin/submissions/reply", form))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "notice=")

	got, _ := memStore.GetByID(context.Background(), saved.ID)
	assert.Equal(t, domain.StatusContacted, got.Status)
	assert.Equal(t, "Reply sent: Your consultation", got.Notes)
}

func TestSendReplyRequiresSubject(t *testing.T) {
	memStore := setupApp(t)
	saved, _ := memStore.Save(context.Background(), domain.NewSubmission{FirstName: "Moana"})

	form := url.Values{"id": {saved.ID}, "subject": {""}, "message": {"hello there"}}
	rec := httptest.NewRecorder()
	handleSendReply(rec, adminRequest("POST", "/admin/submissions/reply", form))

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "alert=")

	got, _ := memStore.GetByID(context.Background(), saved.ID)
	assert.Equal(t, domain.StatusNew, got.Status)
}

func TestAdminActionsRejectGet(t *testing.T) {
	setupApp(t)
	for _, handler := range []http.HandlerFunc{handleMarkContacted, handleMarkConverted, handleSendReply} {
		rec := httptest.NewRecorder()
		handler(rec, adminRequest("GET", "/admin/submissions/contacted", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	}
}

func TestHomeRenders(t *testing.T) {
	setupApp(t)
	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()

	handleHome(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "SteppingStones")
}

func TestHomeUnknownPathIs404(t *testing.T) {
	setupApp(t)
	req := httptest.NewRequest("GET", "/nope", nil)
	rec := httptest.NewRecorder()

	handleHome(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
