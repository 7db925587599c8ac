package middleware

import (
	"context"
	"maps"
	"net/http"
	"sync"
	"time"
)

// Timeout returns middleware that bounds handler execution. The request
// context carries the deadline so downstream I/O can abort early; if the
// handler still has not finished when the deadline passes, the client gets a
// 504 Gateway Timeout and whatever the handler writes afterwards is
// discarded.
func Timeout(limit time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), limit)
			defer cancel()

			bw := &bufferedWriter{dst: w}
			done := make(chan struct{})

			go func() {
				defer close(done)
				next.ServeHTTP(bw, r.WithContext(ctx))
			}()

			select {
			case <-done:
				bw.mu.Lock()
				bw.release()
				bw.mu.Unlock()
			case <-ctx.Done():
				bw.mu.Lock()
				if !bw.wroteHeader {
					w.WriteHeader(http.StatusGatewayTimeout)
				}
				bw.mu.Unlock()
			}
		})
	}
}

// bufferedWriter holds the handler's response until the race against the
// deadline is decided. The mutex covers both the handler goroutine and the
// select above.
type bufferedWriter struct {
	dst         http.ResponseWriter
	mu          sync.Mutex
	header      http.Header
	body        []byte
	status      int
	wroteHeader bool
}

func (bw *bufferedWriter) Header() http.Header {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	if bw.header == nil {
		bw.header = make(http.Header)
	}
	return bw.header
}

func (bw *bufferedWriter) WriteHeader(code int) {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	if bw.wroteHeader {
		return
	}
	bw.status = code
	bw.wroteHeader = true
}

func (bw *bufferedWriter) Write(b []byte) (int, error) {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	if !bw.wroteHeader {
		bw.status = http.StatusOK
		bw.wroteHeader = true
	}
	bw.body = append(bw.body, b...)
	return len(b), nil
}

// release copies the buffered response to the real writer. Caller holds the
// mutex.
func (bw *bufferedWriter) release() {
	if bw.header != nil {
		maps.Copy(bw.dst.Header(), bw.header)
	}
	if bw.wroteHeader {
		bw.dst.WriteHeader(bw.status)
	}
	if len(bw.body) > 0 {
		_, _ = bw.dst.Write(bw.body)
	}
}
