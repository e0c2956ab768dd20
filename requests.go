package fsrv

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fsrv-dev/fsrv/slogc"
	"github.com/segmentio/ksuid"
)

// requestWriter tags each response with a request id and records enough of
// the outcome to log it.
type requestWriter struct {
	http.ResponseWriter

	request *http.Request
	id      ksuid.KSUID
	start   time.Time
	status  int
	bytes   int64
}

func newRequestWriter(w http.ResponseWriter, r *http.Request) *requestWriter {
	id := ksuid.New()
	w.Header().Set("X-Request-Id", id.String())
	return &requestWriter{
		ResponseWriter: w,
		request:        r,
		id:             id,
		start:          time.Now(),
	}
}

func (w *requestWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *requestWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += int64(n)
	return n, err
}

func (w *requestWriter) logDone(logger *slog.Logger) {
	status := w.status
	if status == 0 {
		status = http.StatusOK
	}
	slogc.Fine(logger, "request",
		"id", w.id,
		"remote", w.request.RemoteAddr,
		"method", w.request.Method,
		"path", w.request.URL.Path,
		"status", status,
		"bytes", w.bytes,
		"duration", time.Since(w.start))
}
