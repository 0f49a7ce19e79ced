package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyByAddress(t *testing.T) {
	r := httptest.NewRequest("GET", "/portfolio/analysis", nil)
	r.RemoteAddr = "192.0.2.10:54321"

	assert.Equal(t, "192.0.2.10", KeyByAddress(r))
}

func TestKeyByAddressPath(t *testing.T) {
	r := httptest.NewRequest("GET", "/portfolio/analysis", nil)
	r.RemoteAddr = "192.0.2.10:54321"

	assert.Equal(t, "192.0.2.10:/portfolio/analysis", KeyByAddressPath(r))
}

func TestFixedWindow_QuotaAndReset(t *testing.T) {
	fw := NewFixedWindow(3, 50*time.Millisecond)
	defer fw.Close()

	for i := 0; i < 3; i++ {
		d := fw.Allow("client-a")
		require.True(t, d.Allowed, "request %d must pass", i+1)
	}

	d := fw.Allow("client-a")
	require.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, d.RetryAfter, 50*time.Millisecond)

	// другой ключ не затронут
	assert.True(t, fw.Allow("client-b").Allowed)

	// после окна прежний ключ снова проходит
	time.Sleep(60 * time.Millisecond)
	assert.True(t, fw.Allow("client-a").Allowed)
}

func TestFixedWindow_ZeroLimitDisables(t *testing.T) {
	fw := NewFixedWindow(0, time.Minute)
	defer fw.Close()

	for i := 0; i < 100; i++ {
		assert.True(t, fw.Allow("any").Allowed)
	}
}

func TestFixedWindow_Cleanup(t *testing.T) {
	fw := NewFixedWindow(1, 10*time.Millisecond)
	defer fw.Close()

	fw.Allow("stale")
	time.Sleep(15 * time.Millisecond)
	fw.cleanup(time.Now())

	fw.mu.Lock()
	_, ok := fw.entries["stale"]
	fw.mu.Unlock()
	assert.False(t, ok)
}

func TestMovingWindow_BurstThenDeny(t *testing.T) {
	mw := NewMovingWindow(5, time.Minute)

	for i := 0; i < 5; i++ {
		require.True(t, mw.Allow("client-a").Allowed, "burst request %d must pass", i+1)
	}

	d := mw.Allow("client-a")
	require.False(t, d.Allowed)
	assert.Greater(t, d.RetryAfter, time.Duration(0))

	// независимый ключ имеет собственный бакет
	assert.True(t, mw.Allow("client-b").Allowed)
}

func TestMovingWindow_Refill(t *testing.T) {
	// 100 запросов в секунду: токен пополняется за 10мс
	mw := NewMovingWindow(1, 10*time.Millisecond)

	require.True(t, mw.Allow("k").Allowed)
	require.False(t, mw.Allow("k").Allowed)

	time.Sleep(15 * time.Millisecond)
	assert.True(t, mw.Allow("k").Allowed)
}
