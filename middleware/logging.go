package middleware

import (
	"context"
	"net/http"
	"path/filepath"
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/rediwo/redi-debug/logger"
)

// Logging logs HTTP requests: 5xx at ERROR, 4xx at WARN, everything else at INFO.
// Records carry the source position of the innermost wrapped handler, also
// when other middleware from this package sits in between.
func Logging(l logger.Logger) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		own, known := handlerSite(next)
		return func(w http.ResponseWriter, r *http.Request) {
			r, site := requestSite(r, own, known)
			start := time.Now()

			// Create a response writer wrapper to capture status code
			wrapped := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next(wrapped, r)

			duration := time.Since(start)
			l.Emit(statusLevel(wrapped.statusCode), site.file, site.line, "%s %s %d %v", r.Method, r.URL.Path, wrapped.statusCode, duration)
		}
	}
}

// Recover turns a handler panic into a 500 response and an ERROR record with the stack
func Recover(l logger.Logger) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		own, known := handlerSite(next)
		return func(w http.ResponseWriter, r *http.Request) {
			r, site := requestSite(r, own, known)
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				l.Emit(logger.LogLevelError, site.file, site.line, "panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}()

			next(w, r)
		}
	}
}

func statusLevel(code int) logger.LogLevel {
	switch {
	case code >= 500:
		return logger.LogLevelError
	case code >= 400:
		return logger.LogLevelWarn
	default:
		return logger.LogLevelInfo
	}
}

// callSite is shared through the request context by the middleware serving
// one request; the innermost one to know the handler fills it in
type callSite struct {
	file string
	line int
}

type siteKey struct{}

// packagePrefix is the symbol prefix of functions declared in this package
var packagePrefix = strings.TrimSuffix(funcName(reflect.ValueOf(statusLevel).Pointer()), "statusLevel")

func funcName(pc uintptr) string {
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.Name()
	}
	return ""
}

// handlerSite returns where h is defined. known is false when h is a handler
// returned by Logging or Recover.
func handlerSite(h http.HandlerFunc) (site callSite, known bool) {
	fn := runtime.FuncForPC(reflect.ValueOf(h).Pointer())
	if fn == nil {
		return callSite{file: "???"}, true
	}
	name := fn.Name()
	if strings.HasPrefix(name, packagePrefix+"Logging.") || strings.HasPrefix(name, packagePrefix+"Recover.") {
		return callSite{}, false
	}
	file, line := fn.FileLine(fn.Entry())
	return callSite{file: filepath.Base(file), line: line}, true
}

// requestSite returns the call site shared by the middleware serving r,
// recording own in it when known
func requestSite(r *http.Request, own callSite, known bool) (*http.Request, *callSite) {
	site, _ := r.Context().Value(siteKey{}).(*callSite)
	if site == nil {
		site = &callSite{file: "???"}
		r = r.WithContext(context.WithValue(r.Context(), siteKey{}, site))
	}
	if known {
		*site = own
	}
	return r, site
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *responseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}
