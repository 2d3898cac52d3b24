package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// LookupLimiter caps dictionary lookups per client IP. Each client owns a
// bucket of perMinute tokens that refills continuously; a request spends one.
type LookupLimiter struct {
	perMinute float64
	now       func() time.Time

	mu      sync.Mutex
	clients map[string]*allowance

	done     chan struct{}
	stopOnce sync.Once
}

type allowance struct {
	tokens  float64
	updated time.Time
}

// NewLookupLimiter creates a limiter allowing perMinute requests per client.
// When sweepEvery > 0 a goroutine drops idle clients at that interval; call
// Stop to end it.
func NewLookupLimiter(perMinute int, sweepEvery time.Duration) *LookupLimiter {
	l := &LookupLimiter{
		perMinute: float64(perMinute),
		now:       time.Now,
		clients:   make(map[string]*allowance),
		done:      make(chan struct{}),
	}
	if sweepEvery > 0 {
		go l.sweepLoop(sweepEvery)
	}
	return l
}

// Stop ends the sweep goroutine. It is safe to call more than once.
func (l *LookupLimiter) Stop() {
	l.stopOnce.Do(func() { close(l.done) })
}

// Middleware rejects requests over the limit with 429 and a Retry-After
// header in whole seconds.
func (l *LookupLimiter) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, wait := l.take(clientIP(r))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// take spends one token for key. When none is left it reports how long until
// the next one.
func (l *LookupLimiter) take(key string) (bool, time.Duration) {
	now := l.now()
	perSecond := l.perMinute / 60

	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.clients[key]
	if !ok {
		a = &allowance{tokens: l.perMinute, updated: now}
		l.clients[key] = a
	}

	a.tokens = math.Min(l.perMinute, a.tokens+now.Sub(a.updated).Seconds()*perSecond)
	a.updated = now

	if a.tokens < 1 {
		missing := 1 - a.tokens
		return false, time.Duration(missing / perSecond * float64(time.Second))
	}
	a.tokens--
	return true, 0
}

// sweep forgets clients idle for a full minute. Their buckets would be full
// again, which is also the state of a client seen for the first time.
func (l *LookupLimiter) sweep() {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for key, a := range l.clients {
		if now.Sub(a.updated) >= time.Minute {
			delete(l.clients, key)
		}
	}
}

func (l *LookupLimiter) sweepLoop(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.sweep()
		}
	}
}

// clientIP strips the port so every connection from one host shares a bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
