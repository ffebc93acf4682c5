package handler

import (
	"net/http"

	"github.com/Dan9191/crypto-companion/internal/models"
	"github.com/Dan9191/crypto-companion/internal/service"
	"github.com/Dan9191/crypto-companion/internal/session"
	"github.com/Dan9191/crypto-companion/internal/utils"
	"github.com/gorilla/mux"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email      string `json:"email"`
	RedirectTo string `json:"redirect_to"`
}

type recoverRequest struct {
	Token string `json:"token"`
}

type updateUserRequest struct {
	Password string `json:"password"`
}

type sessionResponse struct {
	Status   session.Status  `json:"status"`
	Session  *models.Session `json:"session"`
	Redirect string          `json:"redirect,omitempty"`
}

// SignUp handles user registration
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.svc.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, user)
}

// SignIn handles password authentication
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !h.decode(w, r, &req) {
		return
	}

	sess, err := h.svc.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sess)
}

// ResetPassword mails a recovery link
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.RedirectTo == "" {
		req.RedirectTo = h.resetRedirect
	}

	if err := h.svc.ResetPasswordForEmail(r.Context(), req.Email, req.RedirectTo); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "If the address is registered, a reset link is on its way"})
}

// Recover exchanges a recovery token for a session
func (h *Handler) Recover(w http.ResponseWriter, r *http.Request) {
	var req recoverRequest
	if !h.decode(w, r, &req) {
		return
	}

	sess, err := h.svc.Recover(r.Context(), req.Token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sess)
}

const oauthStateCookie = "oauth_state"

// OAuthStart redirects to the provider's consent page and pins the state to
// the browser in a cookie
func (h *Handler) OAuthStart(w http.ResponseWriter, r *http.Request) {
	target, state, err := h.svc.SignInWithOAuth(mux.Vars(r)["provider"])
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/auth/oauth",
		MaxAge:   int(service.OAuthStateTTL.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, target, http.StatusFound)
}

// OAuthCallback completes the provider sign-in started by this browser
func (h *Handler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if msg := q.Get("error"); msg != "" {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: msg})
		return
	}

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || !utils.SameState(cookie.Value, q.Get("state")) {
		h.writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "OAuth state does not match this browser"})
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Path: "/auth/oauth", MaxAge: -1})

	sess, err := h.svc.CompleteOAuth(r.Context(), mux.Vars(r)["provider"], q.Get("code"), q.Get("state"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, sess)
}

// Session reports the navigation status for the client path in ?path=
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	state := session.State{}
	if sess, ok := session.FromContext(r.Context()); ok {
		state.Session = sess
	}
	status := session.Resolve(state)

	resp := sessionResponse{Status: status, Session: state.Session}
	if path := r.URL.Query().Get("path"); path != "" {
		resp.Redirect = session.Navigate(status, path)
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// SignOut ends the current session
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}

	if err := h.svc.SignOut(r.Context(), sess); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UpdateUser changes the password of the current user
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.currentSession(w, r)
	if !ok {
		return
	}
	var req updateUserRequest
	if !h.decode(w, r, &req) {
		return
	}

	if err := h.svc.UpdateUser(r.Context(), sess, req.Password); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, messageResponse{Message: "Password updated"})
}
