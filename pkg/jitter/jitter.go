// Package jitter добавляет случайность в интервалы повторов, чтобы клиенты не ретраили синхронно.
package jitter

import (
	"math/rand/v2"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

// Duration возвращает d с джиттером в диапазоне [d, d*(1+jitterFactor)).
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	return d + time.Duration(rand.Float64()*jitterFactor*float64(d))
}

// ExponentialBackoff удваивает base на каждую попытку (attempt считается с нуля),
// ограничивает результат значением maxDelay и добавляет джиттер.
func ExponentialBackoff(base, maxDelay time.Duration, attempt int, jitterFactor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt && backoff < maxDelay; i++ {
		backoff *= 2
	}

	return Duration(min(backoff, maxDelay), jitterFactor)
}
