// internal/handler/auth.go
package handler

import (
	"net/http"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/serializer"
	"github.com/dangerclosesec/audiencelab/internal/service"
)

// CookieConfig describes the session cookie written on signup and signin.
type CookieConfig struct {
	Name   string
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	accounts *service.AccountService
	cookie   CookieConfig
	rs       *Responder
}

func NewAuthHandler(accounts *service.AccountService, cookie CookieConfig, rs *Responder) *AuthHandler {
	return &AuthHandler{accounts: accounts, cookie: cookie, rs: rs}
}

type userData struct {
	User serializer.User `json:"user"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input service.SignupInput
	if err := decodeJSON(r, &input); err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	result, err := h.accounts.Signup(r.Context(), input)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to create account")
		return
	}

	h.setSession(w, result.Token)
	h.rs.JSON(w, r, http.StatusCreated, "User created successfully", userData{User: serializer.NewUser(result.User)})
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var input service.SigninInput
	if err := decodeJSON(r, &input); err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	result, err := h.accounts.Signin(r.Context(), input)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to sign in")
		return
	}

	h.setSession(w, result.Token)
	h.rs.JSON(w, r, http.StatusOK, "Signed in successfully", userData{User: serializer.NewUser(result.User)})
}

func (h *AuthHandler) Signout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	h.rs.JSON(w, r, http.StatusOK, "Signed out successfully", nil)
}

// Me returns the signed-in user as currently stored.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, err := principal(r)
	if err != nil {
		h.rs.Error(w, r, err, "")
		return
	}

	user, err := h.accounts.Me(r.Context(), p)
	if err != nil {
		h.rs.Error(w, r, err, "Failed to load user")
		return
	}

	h.rs.JSON(w, r, http.StatusOK, "", userData{User: serializer.NewUser(user)})
}

func (h *AuthHandler) setSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.MaxAge.Seconds()),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}
