package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/posecoach/internal/telemetry/metrics"
	"github.com/2beens/posecoach/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

// PanicRecovery logs a handler panic together with the matched route and the
// session it was serving, and answers 500 when nothing was written yet.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(respWriter http.ResponseWriter, req *http.Request) {
			tw := &trackingWriter{ResponseWriter: respWriter}
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				log.WithFields(panicFields(req)).Errorf("http: panic serving %s %s: %v\n%s", req.Method, req.URL.Path, r, debug.Stack())
				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				if !tw.wroteHeader {
					pkg.WriteJSON(tw, map[string]string{"error": "internal error"}, http.StatusInternalServerError)
				}
			}()

			// handler call
			next.ServeHTTP(tw, req)
		})
	}
}

func panicFields(req *http.Request) log.Fields {
	fields := log.Fields{
		"method": req.Method,
		"route":  routeTemplate(req),
	}
	vars := mux.Vars(req)
	if id := vars["id"]; id != "" {
		fields["session_id"] = id
	}
	if userID := vars["userId"]; userID != "" {
		fields["user_id"] = userID
	}
	return fields
}

type trackingWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *trackingWriter) WriteHeader(statusCode int) {
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *trackingWriter) Write(p []byte) (int, error) {
	w.wroteHeader = true
	return w.ResponseWriter.Write(p)
}
