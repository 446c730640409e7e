package services

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"todo-panel/internal/config"
	"todo-panel/internal/metrics"
	"todo-panel/internal/models"

	"gorm.io/gorm"
)

// unknownAddress is the bucket used when no caller address can be
// derived. All such clients share one counter; the tracker is
// best-effort, not a strict rate limiter.
const unknownAddress = "unknown"

// maxAddressLen matches the width of login_attempts.address. Anything
// longer (a spoofed X-Forwarded-For entry) would overflow the column on
// MySQL and drop the write.
const maxAddressLen = 45

// LockoutTracker counts consecutive failed logins per
// (username, address) pair and enforces a timed lockout window once the
// limit is reached. Store failures degrade to no-ops when
// degradeOnStoreError is set: login availability wins over
// supplementary rate limiting.
type LockoutTracker struct {
	maxAttempts         int
	lockFor             time.Duration
	staleAfter          time.Duration
	degradeOnStoreError bool

	// now is swappable for tests.
	now func() time.Time
}

func NewLockoutTracker(cfg *config.Config) *LockoutTracker {
	return &LockoutTracker{
		maxAttempts:         cfg.Security.Lockout.MaxAttempts,
		lockFor:             cfg.LockoutWindow(),
		staleAfter:          cfg.StaleWindow(),
		degradeOnStoreError: cfg.DegradeOnStoreError(),
		now:                 time.Now,
	}
}

// RecordFailure registers one failed attempt for the key. Records older
// than the stale window are reset to a fresh count of one, which also
// clears any leftover lock. Reaching the attempt limit starts a lockout
// window.
func (t *LockoutTracker) RecordFailure(username, address string) error {
	now := t.now()

	var rec models.LoginAttempt
	err := models.DB.Where("username = ? AND address = ?", username, address).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		rec = models.LoginAttempt{
			Username:    username,
			Address:     address,
			Attempts:    1,
			LastAttempt: now,
		}
		t.lockIfOverLimit(&rec, now)
		return t.degrade("create login attempt", models.DB.Create(&rec).Error)
	}
	if err != nil {
		return t.degrade("find login attempt", err)
	}

	if now.Sub(rec.LastAttempt) > t.staleAfter {
		// A fresh window: the old count no longer says anything about
		// the current caller, and any lock it carried expired long ago.
		rec.Attempts = 1
		rec.LockedUntil = nil
	} else {
		rec.Attempts++
	}
	rec.LastAttempt = now
	t.lockIfOverLimit(&rec, now)

	return t.degrade("update login attempt", models.DB.Save(&rec).Error)
}

func (t *LockoutTracker) lockIfOverLimit(rec *models.LoginAttempt, now time.Time) {
	if rec.Attempts < t.maxAttempts {
		return
	}
	lockedUntil := now.Add(t.lockFor)
	rec.LockedUntil = &lockedUntil
	metrics.Lockouts.Inc()
	slog.Warn("login lockout engaged",
		"username", rec.Username,
		"address", rec.Address,
		"attempts", rec.Attempts,
		"locked_until", lockedUntil,
	)
}

// IsLocked reports whether the key is inside an active lockout window.
// An expired lock is cleared on the way through.
func (t *LockoutTracker) IsLocked(username, address string) (bool, error) {
	var rec models.LoginAttempt
	err := models.DB.Where("username = ? AND address = ?", username, address).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, t.degrade("find login attempt", err)
	}

	if rec.LockedUntil == nil {
		return false, nil
	}
	if t.now().Before(*rec.LockedUntil) {
		return true, nil
	}

	err = models.DB.Model(&rec).Update("locked_until", nil).Error
	return false, t.degrade("clear expired lock", err)
}

// RecordSuccess resets the counter and clears any lock for the key.
func (t *LockoutTracker) RecordSuccess(username, address string) error {
	err := models.DB.Model(&models.LoginAttempt{}).
		Where("username = ? AND address = ?", username, address).
		Updates(map[string]interface{}{
			"attempts":     0,
			"locked_until": nil,
			"last_attempt": t.now(),
		}).Error
	return t.degrade("reset login attempts", err)
}

func (t *LockoutTracker) degrade(op string, err error) error {
	if err == nil {
		return nil
	}
	if t.degradeOnStoreError {
		slog.Warn("lockout tracking degraded", "op", op, "error", err)
		return nil
	}
	return err
}

// ClientAddress derives the lockout key address for a request: the
// first X-Forwarded-For entry, then the connection address, then the
// shared unknown bucket. The result is capped at the address column
// width so an oversized header can't dodge tracking.
func ClientAddress(r *http.Request) string {
	addr := rawClientAddress(r)
	if len(addr) > maxAddressLen {
		return addr[:maxAddressLen]
	}
	return addr
}

func rawClientAddress(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return unknownAddress
}
