package web

import (
	"context"
	"net/http"
	"net/url"

	"steppingstones/internal/adapters/http/middleware"
	"steppingstones/internal/application/orchestrators"
	domain "steppingstones/internal/domain/admin"
)

// requireAdmin extracts the verified admin or redirects to the login page.
// Every admin handler calls this on entry, so the guard runs per request
// rather than relying on any long-lived state.
func requireAdmin(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	user, ok := middleware.GetAdminFromContext(r.Context())
	if !ok {
		if !isHTMLRequest(r) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return domain.User{}, false
		}
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return domain.User{}, false
	}
	return user, true
}

// handleAdminSubmissions handles GET /admin/submissions (the dashboard).
func handleAdminSubmissions(w http.ResponseWriter, r *http.Request) {
	user, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := orchestrators.ExecuteListSubmissions(r.Context(), orchestrators.ListSubmissionsDeps{
		Store: stores.SubmissionStore,
	})
	if err != nil {
		http.Error(w, "Failed to load submissions", http.StatusInternalServerError)
		return
	}

	renderTemplate(w, r, "admin_submissions.html", map[string]any{
		"Admin":       user,
		"Submissions": result.Submissions,
		"Stats":       result.Stats,
		"Notice":      r.URL.Query().Get("notice"),
		"Alert":       r.URL.Query().Get("alert"),
	})
}

// redirectWithOutcome bounces back to the dashboard carrying the outcome
// message as a query parameter, keeping the action handlers stateless.
func redirectWithOutcome(w http.ResponseWriter, r *http.Request, success bool, message string) {
	param := "notice"
	if !success {
		param = "alert"
	}
	http.Redirect(w, r, "/admin/submissions?"+param+"="+url.QueryEscape(message), http.StatusSeeOther)
}

// handleMarkContacted handles POST /admin/submissions/contacted
func handleMarkContacted(w http.ResponseWriter, r *http.Request) {
	handleTransition(w, r, orchestrators.ExecuteMarkContacted)
}

// handleMarkConverted handles POST /admin/submissions/converted
func handleMarkConverted(w http.ResponseWriter, r *http.Request) {
	handleTransition(w, r, orchestrators.ExecuteMarkConverted)
}

func handleTransition(w http.ResponseWriter, r *http.Request,
	execute func(context.Context, orchestrators.UpdateStatusInput, orchestrators.UpdateStatusDeps) orchestrators.UpdateStatusResult,
) {
	user, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	var notes *string
	if n := r.FormValue("notes"); n != "" {
		notes = &n
	}

	input := orchestrators.UpdateStatusInput{
		SubmissionID: r.FormValue("id"),
		Notes:        notes,
		ActorEmail:   user.Email,
	}
	result := execute(r.Context(), input, orchestrators.UpdateStatusDeps{Store: stores.SubmissionStore})
	redirectWithOutcome(w, r, result.Success, result.Message)
}

// handleSendReply handles POST /admin/submissions/reply
func handleSendReply(w http.ResponseWriter, r *http.Request) {
	user, ok := requireAdmin(w, r)
	if !ok {
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}

	input := orchestrators.SendReplyInput{
		SubmissionID: r.FormValue("id"),
		Subject:      r.FormValue("subject"),
		Body:         r.FormValue("message"),
		ActorEmail:   user.Email,
	}
	deps := orchestrators.SendReplyDeps{
		Store:              stores.SubmissionStore,
		Dispatcher:         dispatcher,
		DowngradeConverted: options.ReplyDowngradesConverted,
	}
	result := orchestrators.ExecuteSendReply(r.Context(), input, deps)
	redirectWithOutcome(w, r, result.Success, result.Message)
}
