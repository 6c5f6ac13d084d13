package httpapi

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type responseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *responseWriter) WriteHeader(status int) {
	rw.status = status
	rw.ResponseWriter.WriteHeader(status)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		log.Printf("[meal-svc] %s %s %d %dB %s %s",
			r.Method, r.URL.Path, rw.status, rw.bytes, time.Since(start), clientIP(r, false))
	})
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	r        rate.Limit
	b        int
}

func (vl *visitorLimiter) get(ip string) *rate.Limiter {
	vl.mu.Lock()
	defer vl.mu.Unlock()
	if v, ok := vl.visitors[ip]; ok {
		v.lastSeen = time.Now()
		return v.limiter
	}
	l := rate.NewLimiter(vl.r, vl.b)
	vl.visitors[ip] = &visitor{limiter: l, lastSeen: time.Now()}
	return l
}

func (vl *visitorLimiter) sweep(idle time.Duration) {
	vl.mu.Lock()
	defer vl.mu.Unlock()
	for ip, v := range vl.visitors {
		if time.Since(v.lastSeen) > idle {
			delete(vl.visitors, ip)
		}
	}
}

// run evicts limiters idle for longer than idle every interval until ctx ends.
func (vl *visitorLimiter) run(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			vl.sweep(idle)
		}
	}
}

// RateLimit allows each client IP rps requests per second with the given burst.
// Every page view costs one upstream NEIS request. Forwarding headers are only
// read when trustProxy is set; otherwise clients are keyed by RemoteAddr. The
// idle-entry sweeper stops when ctx is cancelled.
func RateLimit(ctx context.Context, rps float64, burst int, trustProxy bool) func(http.Handler) http.Handler {
	vl := &visitorLimiter{
		visitors: make(map[string]*visitor),
		r:        rate.Limit(rps),
		b:        burst,
	}
	go vl.run(ctx, time.Minute, 3*time.Minute)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !vl.get(clientIP(r, trustProxy)).Allow() {
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			return strings.TrimSpace(strings.Split(xff, ",")[0])
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return xri
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
