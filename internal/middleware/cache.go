package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/user-profile-service/internal/config"
)

// ProfileCache caches the JSON bodies of public profile reads in Redis.
// The cache is keyed by the email route parameter, so the mutating
// endpoints can invalidate exactly one entry after changing a record.
// A nil Redis client or a disabled config turns every method into a
// no-op and requests flow straight through to the database.
type ProfileCache struct {
	cfg config.ProfileCacheConfig
	rdb *redis.Client
	log *slog.Logger
}

func NewProfileCache(cfg config.ProfileCacheConfig, rdb *redis.Client, log *slog.Logger) *ProfileCache {
	return &ProfileCache{cfg: cfg, rdb: rdb, log: log}
}

func (p *ProfileCache) enabled() bool { return p != nil && p.cfg.Enabled && p.rdb != nil }

func (p *ProfileCache) key(email string) string { return p.cfg.Prefix + ":" + email }

// captureWriter captures the response body while forwarding to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) { cw.status = code; cw.ResponseWriter.WriteHeader(code) }
func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Middleware serves cached profile bodies and stores fresh 200 responses.
// Only successful lookups are cached; 404s always hit the database so a
// user who registers is visible immediately.
func (p *ProfileCache) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !p.enabled() {
				return next(c)
			}
			email := c.Param("email")
			getCtx, cancel := context.WithTimeout(c.Request().Context(), 500*time.Millisecond)
			defer cancel()

			if body, err := p.rdb.Get(getCtx, p.key(email)).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, body)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				return err
			}
			if cw.status == http.StatusOK {
				// Fresh deadline: the request context may have burned its
				// budget inside the handler.
				setCtx, cancelSet := context.WithTimeout(context.Background(), 500*time.Millisecond)
				defer cancelSet()
				if err := p.rdb.Set(setCtx, p.key(email), cw.buf.Bytes(), p.cfg.TTL).Err(); err != nil {
					p.log.Warn("profile cache store failed", "email", email, "err", err)
				}
			}
			return nil
		}
	}
}

// Invalidate drops the cached profile for one email. Called by the profile
// mutation handlers so readers never see a stale record past the write.
func (p *ProfileCache) Invalidate(ctx context.Context, email string) {
	if !p.enabled() || email == "" {
		return
	}
	if err := p.rdb.Del(ctx, p.key(email)).Err(); err != nil {
		p.log.Warn("profile cache invalidate failed", "email", email, "err", err)
	}
}
