package decorators

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Middleware wraps a handler to add behaviour around it.
//
// With Chain(h, mw1, mw2, mw3):
//
//	request  → mw1 → mw2 → mw3 → handler
//	response → mw3 → mw2 → mw1
type Middleware func(http.Handler) http.Handler

// Chain applies mws right to left so the first one listed runs outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// statusRecorder captures the status code written by the next handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// accessLog collects request lines from handler goroutines.
type accessLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *accessLog) add(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func (l *accessLog) snapshot() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.lines...)
}

func logRequests(log *accessLog) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.add("%s %s → %d", r.Method, r.URL.Path, rec.status)
		})
	}
}

func requireToken(token string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") != token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func recoverPanics(log *accessLog) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if v := recover(); v != nil {
					log.add("recovered: %v", v)
					http.Error(w, "internal server error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// demoMiddleware runs a throwaway server and closes it before returning.
// Access log lines are printed after Close, which waits for handlers.
func demoMiddleware(w io.Writer) {
	const secret = "s3cret"
	log := &accessLog{}

	mux := http.NewServeMux()
	mux.Handle("GET /protected", Chain(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, "secret data") }),
		logRequests(log), requireToken(secret), recoverPanics(log),
	))
	mux.Handle("GET /panic", Chain(
		http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("handler bug") }),
		logRequests(log), recoverPanics(log),
	))

	srv := httptest.NewServer(mux)
	client := srv.Client()

	get := func(path, token string) string {
		req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
		if err != nil {
			return err.Error()
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := client.Do(req)
		if err != nil {
			return err.Error()
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		return fmt.Sprintf("%d %q", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	fmt.Fprintln(w, "  GET /protected without token →", get("/protected", ""))
	fmt.Fprintln(w, "  GET /protected with token    →", get("/protected", secret))
	fmt.Fprintln(w, "  GET /panic                   →", get("/panic", ""))

	srv.Close()
	fmt.Fprintln(w, "  access log:")
	for _, line := range log.snapshot() {
		fmt.Fprintln(w, "   ", line)
	}
}
