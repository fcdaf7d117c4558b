package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/moneyseed/moneyseed/internal/config"
	"github.com/moneyseed/moneyseed/internal/domain/user"
	"github.com/moneyseed/moneyseed/internal/http/middlewares"
	"github.com/moneyseed/moneyseed/internal/repo/postgres"
	"github.com/moneyseed/moneyseed/internal/security"
)

// Keep these small so tests can swap in the memory repo.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByUsername(ctx context.Context, username string) (user.User, error)
	Create(ctx context.Context, username, email, passwordHash string) (user.User, error)
}

type TokenIssuer interface {
	Issue(email string) (string, error)
}

type AuthHandler struct {
	users UserStore
	jwt   TokenIssuer
}

func NewAuthHandler(users UserStore, jwt TokenIssuer) *AuthHandler {
	return &AuthHandler{
		users: users,
		jwt:   jwt,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	// bcrypt ignores input past 72 bytes, so cap it at binding time
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates an account. Email uniqueness is checked before username
// so a request that collides on both always reports the email first. The
// check-then-insert pair is not atomic; the unique constraints arbitrate the
// race and the violation is translated to the same responses.
func (h *AuthHandler) Register(ctx *gin.Context) {
	var req RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	_, err := h.users.GetByEmail(cctx, req.Email)

	if err == nil {
		RespondBadRequest(ctx, "email_taken", "Email already registered.", nil)
		return
	}

	if !errors.Is(err, postgres.ErrUserNotFound) {
		RespondInternal(ctx, "Could not create user")
		return
	}

	_, err = h.users.GetByUsername(cctx, req.Username)

	if err == nil {
		RespondBadRequest(ctx, "username_taken", "Username already taken.", nil)
		return
	}

	if !errors.Is(err, postgres.ErrUserNotFound) {
		RespondInternal(ctx, "Could not create user")
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	u, err := h.users.Create(cctx, req.Username, req.Email, hash)

	if err != nil {
		switch {
		case errors.Is(err, postgres.ErrEmailAlreadyUsed):
			RespondBadRequest(ctx, "email_taken", "Email already registered.", nil)
		case errors.Is(err, postgres.ErrUsernameAlreadyUsed):
			RespondBadRequest(ctx, "username_taken", "Username already taken.", nil)
		default:
			RespondInternal(ctx, "Could not create user")
		}
		return
	}

	// u serializes without the hash (json:"-").
	ctx.JSON(http.StatusCreated, u)
}

// Login verifies credentials and issues a bearer token with subject = email.
// Unknown email and wrong password produce byte-identical responses.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		// only a confirmed miss is a credential failure; a store outage
		// must not masquerade as one
		if errors.Is(err, postgres.ErrUserNotFound) {
			RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
			return
		}

		RespondInternal(ctx, "Could not log in")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	accessToken, err := h.jwt.Issue(foundUser.Email)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token": accessToken,
		"token_type":   "bearer",
	})
}

// Me returns the account resolved by the auth middleware.
func (h *AuthHandler) Me(ctx *gin.Context) {
	u, ok := middlewares.CurrentUserFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "unauthorized", "Could not validate credentials")
		return
	}

	ctx.JSON(http.StatusOK, u)
}
