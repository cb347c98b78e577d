package httpapi

import (
	"net/http"
	"strings"

	"github.com/cnfl/fantasy-cricket/internal/domain/user"
	"github.com/cnfl/fantasy-cricket/internal/usecase"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Login")
	defer span.End()

	var req loginRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	session, account, err := h.authService.Login(ctx, usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, loginResponse{
		Token: session.Token,
		User:  userToDTO(account),
	})
}

type registerRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	ProfileLink string `json:"profileLink" validate:"omitempty,url"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Register")
	defer span.End()

	var req registerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	account, err := h.authService.Register(ctx, usecase.RegisterInput{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    req.Password,
		ProfileLink: req.ProfileLink,
	})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, userToDTO(account))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	h.authService.Logout(ctx, token)

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMe")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	account, err := h.authService.GetUser(ctx, principal.UserID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(account))
}

type updateProfileRequest struct {
	FullName    string `json:"fullName" validate:"required"`
	ProfileLink string `json:"profileLink" validate:"omitempty,url"`
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyProfile")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	account, err := h.authService.UpdateProfile(ctx, principal.UserID, req.FullName, req.ProfileLink)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(account))
}

type updatePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMyPassword")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	var req updatePasswordRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.authService.UpdatePassword(ctx, principal.UserID, req.NewPassword); err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "password updated"})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListUsers")
	defer span.End()

	accounts, err := h.authService.ListUsers(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]userDTO, 0, len(accounts))
	for _, account := range accounts {
		out = append(out, userToDTO(account))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=ADMIN PARTICIPANT"`
}

func (h *Handler) ChangeUserRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ChangeUserRole")
	defer span.End()

	principal, ok := mustPrincipal(ctx, w)
	if !ok {
		return
	}

	var req changeRoleRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	account, err := h.authService.ChangeRole(ctx, principal, r.PathValue("userID"), user.Role(req.Role))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, userToDTO(account))
}
