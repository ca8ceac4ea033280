package server

import (
	"net"
	"net/http"
	"strings"

	"github.com/bokysan/codecs/internal/args"
	"github.com/bokysan/codecs/internal/logging"
	"github.com/go-chi/chi/middleware"
)

type NextHandlerFunc func(next http.Handler) http.Handler

// GetRequestLogger returns the access log middleware, in the log format selected by the general options
func GetRequestLogger(address *net.TCPAddr) (logger NextHandlerFunc) {
	if args.General.LogFormat == "json" {
		logger = middleware.RequestLogger(
			&logging.JSONLogFormatter{
				ServerAddress: address,
			},
		)
	} else {
		color := strings.TrimSpace(strings.ToLower(args.General.LogColor))
		logger = middleware.RequestLogger(
			&middleware.DefaultLogFormatter{
				Logger:  &logging.ChiLogWriter{},
				NoColor: color == "no" || color == "false" || color == "0",
			},
		)
	}

	return
}

// serverHeader adds the `Server` header to every response
func serverHeader(value string) NextHandlerFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Server", value)
			next.ServeHTTP(w, r)
		})
	}
}
