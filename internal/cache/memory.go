package cache

import (
	"container/list"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	key       string
	data      []byte
	expiresAt time.Time
}

// Memory реализует Cache в памяти процесса с ограничением вместимости.
// При переполнении вытесняется самая старая запись, просроченные записи
// отбрасываются при чтении.
type Memory struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*list.Element
	order    *list.List // от старых к новым
}

// NewMemory создает кеш на capacity записей. Неположительная вместимость
// трактуется как 1.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = 1
	}
	return &Memory{
		capacity: capacity,
		entries:  make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get получает значение по ключу; false — ключ отсутствует или просрочен.
func (c *Memory) Get(key string, result any) (bool, error) {
	const op = "cache.Memory.Get"
	c.mu.Lock()
	elem, ok := c.entries[key]
	if !ok {
		c.mu.Unlock()
		return false, nil
	}
	entry := elem.Value.(*memoryEntry)
	if time.Now().After(entry.expiresAt) {
		c.order.Remove(elem)
		delete(c.entries, key)
		c.mu.Unlock()
		return false, nil
	}
	data := entry.data
	c.mu.Unlock()

	if err := json.Unmarshal(data, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение с временем жизни, вытесняя самую старую запись
// при переполнении.
func (c *Memory) Set(key string, value any, expiration time.Duration) error {
	const op = "cache.Memory.Set"
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		entry := elem.Value.(*memoryEntry)
		entry.data = data
		entry.expiresAt = time.Now().Add(expiration)
		c.order.MoveToBack(elem)
		return nil
	}

	if len(c.entries) >= c.capacity {
		oldest := c.order.Front()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*memoryEntry).key)
		}
	}

	c.entries[key] = c.order.PushBack(&memoryEntry{
		key:       key,
		data:      data,
		expiresAt: time.Now().Add(expiration),
	})
	return nil
}

// Invalidate удаляет значение по ключу.
func (c *Memory) Invalidate(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.order.Remove(elem)
		delete(c.entries, key)
	}
	return nil
}
