package middleware

import (
	"log"
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Logger writes one access log line per request. Server errors are logged
// as warnings so they surface at GELF level 4.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		prefix := ""
		if sw.status >= http.StatusInternalServerError {
			prefix = "Warning: "
		}
		log.Printf("%s%s %s %d %dB %s %s", prefix, r.Method, r.URL.Path, sw.status, sw.bytes,
			time.Since(start).Round(time.Millisecond), r.RemoteAddr)
	})
}
