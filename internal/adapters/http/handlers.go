package web

import (
	"bytes"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"steppingstones/internal/adapters/http/middleware"
	"steppingstones/internal/adapters/http/session"
	"steppingstones/internal/application/orchestrators"
	"steppingstones/internal/application/validation"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

const templatesDir = "internal/adapters/http/templates"

func isHTMLRequest(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || strings.Contains(accept, "application/xhtml+xml")
}

func renderTemplate(w http.ResponseWriter, r *http.Request, templateName string, data any) {
	user, ok := middleware.GetAdminFromContext(r.Context())
	email := ""
	name := ""
	if ok {
		email = user.Email
		name = user.Name
	}

	funcMap := template.FuncMap{
		"currentEmail": func() string { return email },
		"currentName":  func() string { return name },
		"isLoggedIn":   func() bool { return email != "" },
		"csrfToken":    func() string { return csrf.Token(r) },
		"renderMarkdown": func(md string) template.HTML {
			var buf bytes.Buffer
			if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
				return template.HTML(template.HTMLEscapeString(md))
			}
			return template.HTML(buf.String())
		},
		"fieldErrors": func(errs map[string][]string, field string) []string {
			return errs[field]
		},
	}

	layoutPath := filepath.Join(templatesDir, "layout.html")
	pagePath := filepath.Join(templatesDir, templateName)
	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFiles(layoutPath, pagePath)
	if err != nil {
		http.Error(w, "Template error: "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tpl.Execute(w, data); err != nil {
		http.Error(w, "Render error: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// Marketing copy, rendered to HTML through goldmark at request time so the
// words live in one editable place rather than inside markup.
const homeIntro = `
## Your journey to lasting love begins here

SteppingStones is a boutique marriage facilitation service. We take the time
to understand who you are and who you are looking for, then walk beside you
from the first conversation to the wedding day.

- Personal consultations, never algorithms alone
- Discreet, respectful introductions
- Guidance through every step of the journey
`

const learnMoreCopy = `
## How it works

1. **Reach out** — tell us a little about yourself through the contact form.
2. **Consultation** — our team reviews your message within 24 hours and
   schedules a personal consultation.
3. **Introductions** — we propose thoughtfully chosen matches and arrange
   introductions at your pace.
4. **Beside you** — we stay in touch through the engagement and beyond.

Every enquiry is handled in strict confidence.
`

// handleHome handles GET /
func handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "home.html", map[string]any{
		"Intro": homeIntro,
	})
}

// handleLearnMore handles GET /learn-more
func handleLearnMore(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	renderTemplate(w, r, "learn_more.html", map[string]any{
		"Copy": learnMoreCopy,
	})
}

// handleContact handles GET (form) and POST (submit) for /contact.
// The POST runs the full submission pipeline and always answers with either
// a definitive success or field-level validation errors, never a raw
// backend or provider error.
func handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "contact.html", contactFormData("", nil, orchestrators.SubmitContactInput{}))
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.SubmitContactInput{
			FirstName: r.FormValue("firstName"),
			LastName:  r.FormValue("lastName"),
			Email:     r.FormValue("email"),
			Phone:     r.FormValue("phone"),
			Message:   r.FormValue("message"),
		}

		deps := orchestrators.SubmitContactDeps{
			Store:      stores.SubmissionStore,
			Dispatcher: dispatcher,
		}

		result := orchestrators.ExecuteSubmitContact(r.Context(), input, deps)
		if result.Success {
			middleware.RecordSubmission("accepted")
		} else {
			middleware.RecordSubmission("rejected")
		}

		if !isHTMLRequest(r) {
			w.Header().Set("Content-Type", "application/json")
			if !result.Success {
				w.WriteHeader(http.StatusUnprocessableEntity)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"success": result.Success,
				"message": result.Message,
				"errors":  result.Errors,
				"id":      result.SubmissionID,
			})
			return
		}

		if !result.Success {
			renderTemplate(w, r, "contact.html", contactFormData(result.Message, result.Errors, input))
			return
		}
		renderTemplate(w, r, "contact.html", map[string]any{
			"Success": true,
			"Message": result.Message,
		})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// contactFormData builds the template payload for the contact form. Every key
// the template touches is present, so a fresh GET and a failed POST render
// through the same path.
func contactFormData(message string, errs validation.FieldErrors, input orchestrators.SubmitContactInput) map[string]any {
	if errs == nil {
		errs = validation.FieldErrors{}
	}
	return map[string]any{
		"Success":   false,
		"Message":   message,
		"Errors":    map[string][]string(errs),
		"FirstName": input.FirstName,
		"LastName":  input.LastName,
		"Email":     input.Email,
		"Phone":     input.Phone,
		"Body":      input.Message,
	}
}

// handleAdminLogin handles GET (form) and POST (authenticate) for /admin/login
func handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		// If already logged in, redirect to the dashboard
		if _, ok := middleware.GetAdminFromContext(r.Context()); ok {
			http.Redirect(w, r, "/admin/submissions", http.StatusSeeOther)
			return
		}
		renderTemplate(w, r, "login.html", map[string]any{"Error": "", "Email": ""})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Email:    r.FormValue("email"),
			Password: r.FormValue("password"),
		}
		deps := orchestrators.LoginDeps{Providers: stores.AdminProviders}

		user, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"Error": err.Error(),
				"Email": input.Email,
			})
			return
		}

		token, err := sessionCodec.Issue(user)
		if err != nil {
			slog.Error("session_issue_failed", "error", err.Error())
			http.Error(w, "Session error", http.StatusInternalServerError)
			return
		}

		session.SetCookie(w, token)
		http.Redirect(w, r, "/admin/submissions", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleAdminLogout handles POST /admin/logout
func handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	session.ClearCookie(w)
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
