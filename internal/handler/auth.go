package handler

import (
	"context"   // context with cancellation for DB calls
	"errors"    // sentinel error matching
	"io"        // reader plumbing for uploads
	"log/slog"  // structured server-side logging
	"net/http"  // HTTP status codes and primitives
	"strings"   // string manipulation utilities
	"time"      // timeouts for DB calls

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/user-profile-service/internal/config"     // app configuration
	"github.com/iliyamo/user-profile-service/internal/middleware" // subject extraction from the auth gate
	"github.com/iliyamo/user-profile-service/internal/model"      // user record type
	"github.com/iliyamo/user-profile-service/internal/queue"      // registration event payload
	"github.com/iliyamo/user-profile-service/internal/repository" // sentinel errors
	"github.com/iliyamo/user-profile-service/internal/utils"      // password verification, token issuing
	qp "github.com/iliyamo/user-profile-service/internal/service" // best-effort event publishing
)

// uploadsPrefix is the public URL prefix under which stored images are
// served; the same value is echoed into the database path column.
const uploadsPrefix = "/uploads/"

// UserStore is the slice of the repository the auth handlers need. Kept
// as a small interface so tests can fake it easily.
type UserStore interface {
	Create(ctx context.Context, name, email, dob, gender, password string, cost int) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdateProfile(ctx context.Context, id uint64, name, dob, gender string, profileImage *string) error
	SetProfileImage(ctx context.Context, id uint64, path string) error
	ClearProfileImage(ctx context.Context, id uint64) error
}

// ImageStore abstracts the on-disk avatar store.
type ImageStore interface {
	Save(owner, origName string, src io.Reader) (string, error)
	Remove(rel string) error
}

// ProfileInvalidator drops a cached profile after a mutation. The Redis
// profile cache satisfies it; a nil cache is a no-op.
type ProfileInvalidator interface {
	Invalidate(ctx context.Context, email string)
}

// EventPublisher pushes a registration event to the broker. Failures are
// logged and ignored; signup never depends on the broker being up.
type EventPublisher func(ctx context.Context, ev queue.UserRegisteredEvent) error

// AuthHandler bundles dependencies for the auth and profile endpoints.
type AuthHandler struct {
	Cfg     config.Config
	Users   UserStore
	Images  ImageStore
	Cache   ProfileInvalidator
	Log     *slog.Logger
	Publish EventPublisher
}

func NewAuthHandler(cfg config.Config, users UserStore, images ImageStore, cache ProfileInvalidator, log *slog.Logger) *AuthHandler {
	return &AuthHandler{
		Cfg:     cfg,
		Users:   users,
		Images:  images,
		Cache:   cache,
		Log:     log,
		Publish: qp.PublishUserRegistered,
	}
}

// ----- DTOs -----

type registerReq struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	Gender      string `json:"gender" validate:"required"`
	Password    string `json:"password" validate:"required"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type updateProfileReq struct {
	Name         string  `json:"name" validate:"required"`
	DateOfBirth  string  `json:"dateOfBirth" validate:"required"`
	Gender       string  `json:"gender" validate:"required"`
	ProfileImage *string `json:"profileImage"`
}

type profileResp struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	DateOfBirth  string  `json:"dateOfBirth"`
	Gender       string  `json:"gender"`
	ProfileImage *string `json:"profileImage"`
}

// Register: validate, hash, insert. The password and its hash never appear
// in any response, and a duplicate email is the only per-field failure the
// caller can distinguish.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.DateOfBirth, req.Gender, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"message": "Email already registered"})
		}
		h.Log.Error("register: create user failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}

	if h.Publish != nil {
		_ = h.Publish(ctx, queue.UserRegisteredEvent{
			UserID:       uid,
			Name:         req.Name,
			Email:        req.Email,
			RegisteredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "User registered"})
}

// Login: verify credentials and issue a session token. Unknown email and
// wrong password produce byte-identical responses so the endpoint cannot
// be used to probe which accounts exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password"})
		}
		h.Log.Error("login: query failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid email or password"})
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.ID, h.Cfg.AccessTTLMin)
	if err != nil {
		h.Log.Error("login: issue token failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not issue token"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Login successful", "token": tok.Token})
}

// GetProfile returns the public view of one user, looked up by email.
// Deliberately unauthenticated (directory-style lookup); the password
// hash is never part of the response shape.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, c.Param("email"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		h.Log.Error("profile: query failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}

	return c.JSON(http.StatusOK, profileResp{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		DateOfBirth:  u.DOB,
		Gender:       u.Gender,
		ProfileImage: h.imageURL(c, u.ProfileImage),
	})
}

// UpdateProfile overwrites the subject's mutable fields. The row to update
// comes from the verified token only; an id smuggled into the body is
// ignored by the request shape.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	uid, ok := middleware.SubjectID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields required"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "All fields required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, uid, req.Name, req.DateOfBirth, req.Gender, req.ProfileImage); err != nil {
		h.Log.Error("profile update failed", "user_id", uid, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	h.invalidateProfile(ctx, uid)

	return c.JSON(http.StatusOK, echo.Map{"message": "Profile updated successfully"})
}

// UploadProfileImage stores a multipart image for the subject and records
// its public path. The previous path is overwritten in the record; the old
// file on disk is left behind when the extension differs.
func (h *AuthHandler) UploadProfileImage(c echo.Context) error {
	uid, ok := middleware.SubjectID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}
	file, err := c.FormFile("profile_image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No file uploaded"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		h.Log.Error("upload: load user failed", "user_id", uid, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not save image"})
	}

	src, err := file.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No file uploaded"})
	}
	defer src.Close()

	rel, err := h.Images.Save(u.Name, file.Filename, src)
	if err != nil {
		h.Log.Error("upload: save image failed", "user_id", uid, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not save image"})
	}
	path := uploadsPrefix + rel

	if err := h.Users.SetProfileImage(ctx, uid, path); err != nil {
		h.Log.Error("upload: record image failed", "user_id", uid, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	h.invalidate(ctx, u.Email)

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Image uploaded",
		"imageUrl": absoluteURL(c, path),
	})
}

// DeleteProfileImage removes the subject's stored image. "No image on
// record" is a client error; "file already gone from disk" is not — the
// record is cleared either way.
func (h *AuthHandler) DeleteProfileImage(c echo.Context) error {
	uid, ok := middleware.SubjectID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "Unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "User not found"})
		}
		h.Log.Error("image delete: load user failed", "user_id", uid, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	if u.ProfileImage == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "No image to delete"})
	}

	if err := h.Images.Remove(strings.TrimPrefix(*u.ProfileImage, uploadsPrefix)); err != nil {
		h.Log.Error("image delete: unlink failed", "user_id", uid, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Could not delete image"})
	}
	if err := h.Users.ClearProfileImage(ctx, uid); err != nil {
		h.Log.Error("image delete: clear record failed", "user_id", uid, "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Database error"})
	}
	h.invalidate(ctx, u.Email)

	return c.JSON(http.StatusOK, echo.Map{"message": "Image deleted"})
}

// ----- helpers -----

// imageURL maps a stored image path to what the client should see: nil
// stays nil, absolute URLs pass through, relative paths get the request's
// scheme and host prepended.
func (h *AuthHandler) imageURL(c echo.Context, stored *string) *string {
	if stored == nil {
		return nil
	}
	u := absoluteURL(c, *stored)
	return &u
}

func absoluteURL(c echo.Context, path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	return c.Scheme() + "://" + c.Request().Host + path
}

func (h *AuthHandler) invalidate(ctx context.Context, email string) {
	if h.Cache != nil {
		h.Cache.Invalidate(ctx, email)
	}
}

// invalidateProfile drops the cache entry for the subject's email. Best
// effort: a failed lookup only means the entry ages out by TTL instead.
func (h *AuthHandler) invalidateProfile(ctx context.Context, uid uint64) {
	if u, err := h.Users.GetByID(ctx, uid); err == nil {
		h.invalidate(ctx, u.Email)
	}
}
