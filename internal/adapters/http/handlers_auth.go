package http

import (
	"net/http"

	"github.com/openlance/openlance/internal/application"
)

type registerRequest struct {
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	UserType    string          `json:"userType"`
	FirstName   string          `json:"firstName,omitempty"`
	LastName    string          `json:"lastName,omitempty"`
	CompanyName string          `json:"companyName,omitempty"`
	Consents    map[string]bool `json:"consents"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "register", err)
		return
	}

	res, err := h.service.Register(r.Context(), application.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		UserType:    req.UserType,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CompanyName: req.CompanyName,
		Consents:    req.Consents,
		IPAddress:   readIP(r),
		UserAgent:   r.UserAgent(),
	})
	if err != nil {
		writeMappedError(r.Context(), w, "register", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAuthResultView(res))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "login", err)
		return
	}

	res, err := h.service.Login(r.Context(), application.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeMappedError(r.Context(), w, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, toAuthResultView(res))
}

// logout revokes whatever bearer token is presented. Extraction is
// best effort: a missing token and a second logout of the same token
// both return 200.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	token, _ := bearerTokenFromHeader(r.Header.Get("Authorization"))
	if err := h.service.Logout(r.Context(), token); err != nil {
		writeMappedError(r.Context(), w, "logout", err)
		return
	}
	writeMessage(w, http.StatusOK, "logged out")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "refresh", err)
		return
	}

	res, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeMappedError(r.Context(), w, "refresh", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"tokens": tokenPairView{
			AccessToken:  res.Tokens.AccessToken,
			RefreshToken: res.Tokens.RefreshToken,
		},
	})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		return
	}
	account, profile, err := h.service.CurrentAccount(r.Context(), claims.AccountID)
	if err != nil {
		writeMappedError(r.Context(), w, "me", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":    toAccountView(account),
		"profile": toProfileView(profile),
	})
}
