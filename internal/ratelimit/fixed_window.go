package ratelimit

import (
	"sync"
	"time"
)

const sweepInterval = 5 * time.Minute

type windowState struct {
	count     int
	windowEnd time.Time
}

// FixedWindow допускает не более limit запросов на ключ в пределах
// фиксированного окна. Счетчик сбрасывается по истечении окна,
// просроченные ключи убирает фоновый сборщик.
type FixedWindow struct {
	mu      sync.Mutex
	limit   int
	window  time.Duration
	entries map[string]windowState
	stopCh  chan struct{}
	once    sync.Once
}

// NewFixedWindow создает лимитер с заданной квотой и окном.
func NewFixedWindow(limit int, window time.Duration) *FixedWindow {
	if window <= 0 {
		window = time.Minute
	}
	fw := &FixedWindow{
		limit:   limit,
		window:  window,
		entries: make(map[string]windowState),
		stopCh:  make(chan struct{}),
	}
	go fw.sweepLoop()
	return fw
}

// Allow учитывает запрос с данным ключом и сообщает решение.
func (fw *FixedWindow) Allow(key string) Decision {
	if fw.limit <= 0 {
		return Decision{Allowed: true}
	}
	now := time.Now()

	fw.mu.Lock()
	defer fw.mu.Unlock()

	state, ok := fw.entries[key]
	if !ok || now.After(state.windowEnd) {
		fw.entries[key] = windowState{count: 1, windowEnd: now.Add(fw.window)}
		return Decision{Allowed: true}
	}
	if state.count >= fw.limit {
		return Decision{Allowed: false, RetryAfter: state.windowEnd.Sub(now)}
	}
	state.count++
	fw.entries[key] = state
	return Decision{Allowed: true}
}

func (fw *FixedWindow) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fw.cleanup(time.Now())
		case <-fw.stopCh:
			return
		}
	}
}

func (fw *FixedWindow) cleanup(now time.Time) {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	for key, state := range fw.entries {
		if now.After(state.windowEnd) {
			delete(fw.entries, key)
		}
	}
}

// Close останавливает фоновый сборщик.
func (fw *FixedWindow) Close() {
	fw.once.Do(func() {
		close(fw.stopCh)
	})
}
