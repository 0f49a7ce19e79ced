// Package ratelimit ограничивает частоту запросов по ключу, выводимому
// из запроса. Политика маршрута складывается из функции ключа
// (адрес клиента либо адрес+путь) и алгоритма окна (фиксированное
// либо скользящее), каждый маршрут настраивается явно.
package ratelimit

import (
	"net"
	"net/http"
	"time"
)

// Decision результат проверки лимита для одного запроса.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter проверяет, допустим ли запрос с данным ключом.
type Limiter interface {
	Allow(key string) Decision
}

// KeyFunc выводит ключ ограничения из запроса.
type KeyFunc func(r *http.Request) string

// KeyByAddress возвращает сетевой адрес клиента без порта.
func KeyByAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// KeyByAddressPath возвращает адрес клиента вместе с путем запроса,
// чтобы окна разных маршрутов не пересекались.
func KeyByAddressPath(r *http.Request) string {
	return KeyByAddress(r) + ":" + r.URL.Path
}
