package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"thearchives/internal/middleware"
	"thearchives/internal/observability"
	"thearchives/internal/render"
	"thearchives/internal/submission"
)

// Submission result labels.
const (
	submitAccepted = "accepted"
	submitInvalid  = "invalid"
	submitLimited  = "limited"
)

// Submit handles the "share a hidden gem" form. A valid submission is
// answered with a redirect to a pre-filled mailto link.
type Submit struct {
	render    *render.Renderer
	recipient string
}

// NewSubmit creates the submission handlers. recipient is the curator
// address the mail is addressed to.
func NewSubmit(rn *render.Renderer, recipient string) *Submit {
	return &Submit{render: rn, recipient: recipient}
}

// Form renders the empty submission form.
func (s *Submit) Form(w http.ResponseWriter, r *http.Request) {
	s.page(w, r, http.StatusOK, submission.Gem{}, "")
}

// Create validates the posted form. Invalid input re-renders the form with
// a 422 and the visitor's values kept.
func (s *Submit) Create(w http.ResponseWriter, r *http.Request) {
	gem := submission.Gem{
		Name:           r.PostFormValue("gem_name"),
		Location:       r.PostFormValue("location"),
		Description:    r.PostFormValue("description"),
		SubmitterName:  r.PostFormValue("your_name"),
		SubmitterEmail: r.PostFormValue("email"),
	}

	sub, err := submission.New(gem)
	if err != nil {
		var verr *submission.ValidationError
		if !errors.As(err, &verr) {
			slog.Error("submission failed", "error", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		observability.ObserveSubmission(submitInvalid)
		s.page(w, r, http.StatusUnprocessableEntity, gem, verr.Message)
		return
	}

	observability.ObserveSubmission(submitAccepted)
	slog.Info("hidden gem submitted",
		"ref", sub.Ref.String(),
		"gem", sub.Gem.Name,
		"location", sub.Gem.Location,
	)
	http.Redirect(w, r, sub.MailtoURL(s.recipient), http.StatusSeeOther)
}

// Limited records a submission refused by the rate limiter.
func (s *Submit) Limited(r *http.Request) {
	observability.ObserveSubmission(submitLimited)
	slog.Warn("hidden gem submission rate limited", "remote", r.RemoteAddr)
}

func (s *Submit) page(w http.ResponseWriter, r *http.Request, status int, gem submission.Gem, errMsg string) {
	s.render.Page(w, r, status, "submit", &render.PageData{
		Title:   "Share a Hidden Gem",
		Section: "hidden-gems",
		Data: map[string]any{
			"Gem":       gem,
			"Error":     errMsg,
			"CSRFToken": middleware.CSRFToken(r.Context()),
			"Recipient": s.recipient,
		},
	})
}
