package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bokysan/codecs/internal/cert"
	"github.com/bokysan/codecs/internal/version"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultMaxBodySize is the largest request body accepted by the encode and decode endpoints
	DefaultMaxBodySize = 16 * 1024 * 1024

	shutdownTimeout = 5 * time.Second
)

// Config holds the options of the codec service
type Config struct {
	cert.ServerConfig `group:"TLS options"`

	Listen            string `json:"listen"            short:"L" long:"listen"             env:"LISTEN"             description:"Address to listen on" default:"127.0.0.1:8080"`
	EndpointPrefix    string `json:"endpointPrefix"              long:"endpoint-prefix"    env:"ENDPOINT_PREFIX"    description:"Prefix of all endpoints, e.g. '/api'"`
	MaxBodySize       int64  `json:"maxBodySize"                 long:"max-body-size"      env:"MAX_BODY_SIZE"      description:"Largest accepted request body, in bytes" default:"16777216"`
	EnableCompression bool   `json:"enableCompression"           long:"enable-compression" env:"ENABLE_COMPRESSION" description:"Negotiate per message compression on websockets"`
}

// HttpServer serves the encoders over HTTP and websockets
type HttpServer struct {
	Config

	secure      bool
	server      *http.Server
	listener    net.Listener
	connections *connections
}

func NewHttpServer(config Config) *HttpServer {
	if config.MaxBodySize <= 0 {
		config.MaxBodySize = DefaultMaxBodySize
	}
	config.EndpointPrefix = "/" + strings.Trim(config.EndpointPrefix, "/")
	return &HttpServer{
		Config:      config,
		connections: newConnections(),
	}
}

func (ws *HttpServer) String() string {
	protocol := "http"
	if ws.secure {
		protocol = "https"
	}
	address := ws.Listen
	if ws.listener != nil {
		address = ws.listener.Addr().String()
	}
	return fmt.Sprintf("%s://%s%s", protocol, address, strings.TrimSuffix(ws.EndpointPrefix, "/"))
}

// Addr returns the address the server is listening on, nil if it's not started
func (ws *HttpServer) Addr() net.Addr {
	if ws.listener == nil {
		return nil
	}
	return ws.listener.Addr()
}

// Router builds the chi router with all the endpoints mounted under the endpoint prefix
func (ws *HttpServer) Router(address *net.TCPAddr) http.Handler {
	router := chi.NewRouter()
	router.Use(
		middleware.RequestID, // Set Request Id on all requests
		middleware.RealIP,    // Extract actual IP if running behind reverse proxy
		GetRequestLogger(address),
		middleware.RedirectSlashes, // Redirect slashes to no slash URLs
		middleware.Recoverer,       // Recover from panics without crashing the server
		serverHeader(version.UserAgent()),
	)

	h := &handlers{
		maxBodySize: ws.MaxBodySize,
		upgrader:    newUpgrader(ws.EnableCompression),
		connections: ws.connections,
	}

	routes := func(r chi.Router) {
		r.Get("/codecs", h.codecs)
		r.Post("/encode/{codec}", h.encode)
		r.Post("/decode/{codec}", h.decode)
		r.Get("/ws/{direction}/{codec}", h.websocket)
	}

	if ws.EndpointPrefix == "/" {
		routes(router)
	} else {
		router.Route(ws.EndpointPrefix, routes)
	}

	return router
}

// Startup starts listening and serving in the background. It returns once the listener is ready.
func (ws *HttpServer) Startup() error {
	ln, err := net.Listen("tcp", ws.Listen)
	if err != nil {
		return errors.Wrapf(err, "Could not listen on %v", ws.Listen)
	}

	address, _ := ln.Addr().(*net.TCPAddr)
	ws.listener = ln
	ws.server = &http.Server{
		Handler:           ws.Router(address),
		ReadHeaderTimeout: 30 * time.Second,
	}

	if ws.HasCertificate() {
		tlsConfig, err := ws.ServerConfig.GetTlsConfig()
		if err != nil {
			_ = ln.Close()
			return errors.Wrapf(err, "Could not configure TLS")
		}
		ws.server.TLSConfig = tlsConfig
		ws.secure = true
	}

	go func() {
		var err error
		if ws.secure {
			log.Infof("Starting HTTPS server at %v", ws)
			err = ws.server.ServeTLS(ln, "", "")
		} else {
			log.Infof("Starting HTTP server at %v", ws)
			err = ws.server.Serve(ln)
		}
		if err != nil && err != http.ErrServerClosed {
			err = errors.WithStack(err)
			log.WithError(err).Errorf("Could not start the server %v", err)
		}
	}()

	return nil
}

// Shutdown gracefully stops the server, waiting at most 5 seconds for the running requests to complete. Open
// websockets are closed with "going away" (1001) afterwards.
func (ws *HttpServer) Shutdown() error {
	if ws.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := ws.server.Shutdown(ctx)
	ws.connections.closeAll()
	return errors.WithStack(err)
}
