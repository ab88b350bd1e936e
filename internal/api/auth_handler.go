package api

import (
	"net/http"

	"github.com/phrazzld/booklist-api/internal/api/shared"
	"github.com/phrazzld/booklist-api/internal/service"
)

// AuthHandler handles registration, login and password management.
type AuthHandler struct {
	accounts service.AccountService
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(accounts service.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// Register handles POST /register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.accounts.Register(r.Context(), req.toInput())
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, RegisterResponse{
		AccessToken: result.AccessToken,
		ID:          result.Account.ID,
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		AccessToken: result.AccessToken,
		User: LoginUser{
			Name:  result.Account.FirstName,
			Email: result.Account.Email,
			Role:  result.Account.Role,
			ID:    result.Account.ID,
		},
	})
}

// ChangePassword handles PUT /changePassword for the account in the token.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	accountID, ok := shared.GetAccountID(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Auth token is not supplied")
		return
	}

	var req ChangePasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.accounts.ChangePassword(r.Context(), accountID, service.ChangePasswordInput{
		OldPassword:        req.OldPassword,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, MsgPasswordUpdated)
}

// ForgotPassword handles PUT /forgotPassword.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	err := h.accounts.ForgotPassword(r.Context(), service.ForgotPasswordInput{
		Username:           req.Username,
		Email:              req.Email,
		Phone:              req.Phone,
		NewPassword:        req.NewPassword,
		ConfirmNewPassword: req.ConfirmNewPassword,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithMessage(w, r, http.StatusOK, MsgPasswordUpdated)
}
