package api

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"labelbox/auth"
	"labelbox/models"
	"labelbox/storage"
	"labelbox/utils"
)

// queryTimeout bounds every persistence round-trip made from a handler.
const queryTimeout = 5 * time.Second

// UserStore is the persistence surface the auth handlers need
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthHandler handles sign-up, sign-in, and sign-out
type AuthHandler struct {
	users  UserStore
	tokens *auth.TokenManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(users UserStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{
		users:  users,
		tokens: tokens,
	}
}

type signUpRequest struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// sessionResponse is the payload returned by both sign-up and sign-in
type sessionResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// HandleSignUp registers a new account and opens a session for it
func (h *AuthHandler) HandleSignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("invalid request body", err)
	}

	// Accumulate every violation, not just the first
	fields := make(map[string][]string)
	if req.Email == "" {
		fields["email"] = append(fields["email"], "email can't be empty")
	}
	if req.Password == "" {
		fields["password"] = append(fields["password"], "password can't be empty")
	}
	if req.PasswordConfirmation == "" {
		fields["password_confirmation"] = append(fields["password_confirmation"], "password must be confirmed")
	}
	if req.Password != req.PasswordConfirmation {
		fields["password_confirmation"] = append(fields["password_confirmation"], "password confirmation didn't match")
	}
	if len(fields) > 0 {
		return utils.ValidationError(fields)
	}

	userID := uuid.New().String()

	// Hashing happens before the uniqueness outcome is known; the spent
	// work on a duplicate email is accepted.
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return utils.InternalServerError("failed to hash password", err)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	user := &models.User{ID: userID, Email: req.Email, PasswordHash: hash}
	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return utils.ValidationError(map[string][]string{
				"email": {"email is already signed up"},
			})
		}
		return utils.InternalServerError("failed to create user", err)
	}

	token, err := h.tokens.Issue(userID, req.Email)
	if err != nil {
		return utils.InternalServerError("failed to issue session token", err)
	}
	c.Cookie(auth.SessionCookie(token, auth.SessionTTL))

	return Respond(c, fiber.StatusCreated, sessionResponse{
		UserID: userID,
		Email:  req.Email,
		Token:  token,
	})
}

// HandleSignIn verifies credentials and opens a session
func (h *AuthHandler) HandleSignIn(c *fiber.Ctx) error {
	var req signInRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestError("invalid request body", err)
	}

	fields := make(map[string][]string)
	if req.Email == "" {
		fields["email"] = append(fields["email"], "email can't be empty")
	}
	if req.Password == "" {
		fields["password"] = append(fields["password"], "password can't be empty")
	}
	if len(fields) > 0 {
		return utils.ValidationError(fields)
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), queryTimeout)
	defer cancel()

	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return utils.ValidationError(map[string][]string{
				"email": {"email is not signed up"},
			})
		}
		return utils.InternalServerError("failed to look up user", err)
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return utils.UnauthorizedError("wrong password", nil).
			WithField("password", "password didn't match")
	}

	token, err := h.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return utils.InternalServerError("failed to issue session token", err)
	}
	c.Cookie(auth.SessionCookie(token, auth.SessionTTL))

	return Respond(c, fiber.StatusCreated, sessionResponse{
		UserID: user.ID,
		Email:  user.Email,
		Token:  token,
	})
}

// HandleSignOut expires the session cookie. Sessions are stateless, so
// there is nothing to revoke server-side.
func (h *AuthHandler) HandleSignOut(c *fiber.Ctx) error {
	c.Cookie(auth.ExpiredSessionCookie())
	return Respond(c, fiber.StatusOK, nil)
}
