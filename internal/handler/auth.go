package handler

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wlong0711/sporthall/internal/config"
	"github.com/wlong0711/sporthall/internal/repository"
	"github.com/wlong0711/sporthall/internal/utils"
)

const (
	verifyTokenTTL = 24 * time.Hour
	resetTokenTTL  = 10 * time.Minute
)

// AuthMailer is the outbound-email surface the auth endpoints need.
// *mailer.Mailer satisfies it; a nil AuthMailer disables sending, in
// which case links are logged instead so local setups stay usable.
type AuthMailer interface {
	SendVerification(toName, toEmail, link string) error
	SendPasswordReset(toName, toEmail, link string) error
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
	Mail  AuthMailer
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, mail AuthMailer) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Mail: mail}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type forgotReq struct {
	Email string `json:"email"`
}
type resetReq struct {
	Password string `json:"password"`
}

type userResp struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

// Register creates an unverified account and mails a verification
// link.  The account is removed again when the email cannot be sent so
// no dead rows accumulate.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide all required fields"})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide all required fields"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Password must be at least 6 characters long"})
	}

	token, err := utils.NewLinkToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password,
		utils.HashToken(token), time.Now().UTC().Add(verifyTokenTTL), h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "User already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	link := fmt.Sprintf("%s/api/auth/verifyemail/%s", h.Cfg.AppBaseURL, token)
	if h.Mail == nil {
		log.Printf("auth: mailer disabled, verification link for %s: %s", req.Email, link)
	} else if err := h.Mail.SendVerification(req.Name, req.Email, link); err != nil {
		log.Printf("auth: verification email to %s failed: %v", req.Email, err)
		_ = h.Users.Delete(ctx, uid)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Email could not be sent"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Email sent to %s. Please check your email to verify account.", req.Email),
	})
}

// VerifyEmail redeems a verification link and returns an access token
// so the fresh account is logged in immediately.
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or expired token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.VerifyByToken(ctx, utils.HashToken(token), time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or expired token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Email verified successfully! You can now login.",
		"token":   access.Token,
	})
}

// Login verifies credentials and returns the user plus a signed access
// token.  Unverified accounts are refused with the same status as bad
// credentials.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide email and password"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide email and password"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password"})
	}
	if !u.IsVerified {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Please verify your email first"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
		"token": access.Token,
	})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, ok := currentUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Not authorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, userResp{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsVerified: u.IsVerified,
	})
}

// ForgotPassword issues a short-lived reset token and mails the link.
// The token hash replaces any previous one, so only the newest link
// works.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide an email"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide an email"})
	}

	token, err := utils.NewLinkToken()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.SetResetToken(ctx, req.Email, utils.HashToken(token), time.Now().UTC().Add(resetTokenTTL))
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "There is no user with that email"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	link := fmt.Sprintf("%s/api/auth/resetpassword/%s", h.Cfg.AppBaseURL, token)
	if h.Mail == nil {
		log.Printf("auth: mailer disabled, reset link for %s: %s", req.Email, link)
	} else if err := h.Mail.SendPasswordReset(u.Name, u.Email, link); err != nil {
		log.Printf("auth: reset email to %s failed: %v", req.Email, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Email could not be sent"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Email sent"})
}

// ResetPassword redeems a reset link and replaces the password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	token := c.Param("token")
	var req resetReq
	if err := c.Bind(&req); err != nil || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Please provide a new password"})
	}
	if len(req.Password) < 6 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Password must be at least 6 characters long"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	err := h.Users.ResetPassword(ctx, utils.HashToken(token), req.Password, h.Cfg.BcryptCost, time.Now().UTC())
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid or expired token"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "message": "Password reset successful. You can now login."})
}
