package services

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todo-panel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTracker(t *testing.T) (*LockoutTracker, *time.Time) {
	cfg := setupTestDB(t)
	t.Cleanup(func() { cleanupTestDB(t, cfg) })

	now := time.Now()
	tracker := NewLockoutTracker(cfg)
	tracker.now = func() time.Time { return now }
	return tracker, &now
}

func loadAttempt(t *testing.T, username, address string) *models.LoginAttempt {
	var rec models.LoginAttempt
	err := models.DB.Where("username = ? AND address = ?", username, address).First(&rec).Error
	require.NoError(t, err)
	return &rec
}

func TestRecordFailure_AccumulatesThenLocks(t *testing.T) {
	tracker, _ := testTracker(t)

	for i := 0; i < 4; i++ {
		require.NoError(t, tracker.RecordFailure("alice", "1.2.3.4"))
		locked, err := tracker.IsLocked("alice", "1.2.3.4")
		require.NoError(t, err)
		assert.False(t, locked, "attempt %d should not lock", i+1)
	}

	require.NoError(t, tracker.RecordFailure("alice", "1.2.3.4"))

	locked, err := tracker.IsLocked("alice", "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, locked)

	rec := loadAttempt(t, "alice", "1.2.3.4")
	assert.Equal(t, 5, rec.Attempts)
	require.NotNil(t, rec.LockedUntil)
}

func TestIsLocked_PerAddress(t *testing.T) {
	tracker, _ := testTracker(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, tracker.RecordFailure("alice", "1.2.3.4"))
	}

	locked, err := tracker.IsLocked("alice", "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = tracker.IsLocked("alice", "5.6.7.8")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestIsLocked_ExpiryClearsLock(t *testing.T) {
	tracker, now := testTracker(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, tracker.RecordFailure("alice", "1.2.3.4"))
	}

	*now = now.Add(11 * time.Minute)

	locked, err := tracker.IsLocked("alice", "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, locked)

	rec := loadAttempt(t, "alice", "1.2.3.4")
	assert.Nil(t, rec.LockedUntil)
}

func TestRecordSuccess_Resets(t *testing.T) {
	tracker, _ := testTracker(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, tracker.RecordFailure("alice", "1.2.3.4"))
	}

	require.NoError(t, tracker.RecordSuccess("alice", "1.2.3.4"))

	rec := loadAttempt(t, "alice", "1.2.3.4")
	assert.Equal(t, 0, rec.Attempts)
	assert.Nil(t, rec.LockedUntil)

	locked, err := tracker.IsLocked("alice", "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestRecordFailure_StaleWindow(t *testing.T) {
	tracker, now := testTracker(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, tracker.RecordFailure("alice", "1.2.3.4"))
	}
	rec := loadAttempt(t, "alice", "1.2.3.4")
	require.NotNil(t, rec.LockedUntil)

	// A failure after the stale window restarts the count and drops the
	// leftover lock.
	*now = now.Add(25 * time.Hour)
	require.NoError(t, tracker.RecordFailure("alice", "1.2.3.4"))

	rec = loadAttempt(t, "alice", "1.2.3.4")
	assert.Equal(t, 1, rec.Attempts)
	assert.Nil(t, rec.LockedUntil)
}

func TestTracker_FailsOpenOnStoreError(t *testing.T) {
	cfg := setupTestDB(t)
	t.Cleanup(func() { cleanupTestDB(t, cfg) })

	tracker := NewLockoutTracker(cfg)
	closeTestDB(t)

	assert.NoError(t, tracker.RecordFailure("alice", "1.2.3.4"))
	locked, err := tracker.IsLocked("alice", "1.2.3.4")
	assert.NoError(t, err)
	assert.False(t, locked)
	assert.NoError(t, tracker.RecordSuccess("alice", "1.2.3.4"))
}

func TestTracker_PropagatesStoreErrorWhenNotDegrading(t *testing.T) {
	cfg := setupTestDB(t)
	t.Cleanup(func() { cleanupTestDB(t, cfg) })
	cfg.Security.Lockout.DegradeOnStoreError = boolPtr(false)

	tracker := NewLockoutTracker(cfg)
	closeTestDB(t)

	assert.Error(t, tracker.RecordFailure("alice", "1.2.3.4"))
}

func TestClientAddress(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/auth/login", nil)
	req.Header.Set("X-Forwarded-For", "1.2.3.4, 10.0.0.1")
	assert.Equal(t, "1.2.3.4", ClientAddress(req))

	req = httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = "9.8.7.6:54321"
	assert.Equal(t, "9.8.7.6", ClientAddress(req))

	req = httptest.NewRequest("POST", "/api/auth/login", nil)
	req.RemoteAddr = ""
	assert.Equal(t, "unknown", ClientAddress(req))

	// An oversized forwarded entry is capped to the address column width
	// so the attempt row still fits and gets written.
	req = httptest.NewRequest("POST", "/api/auth/login", nil)
	long := strings.Repeat("x", 200)
	req.Header.Set("X-Forwarded-For", long)
	got := ClientAddress(req)
	assert.Len(t, got, maxAddressLen)
	assert.Equal(t, long[:maxAddressLen], got)
}
