package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bokysan/codecs/internal/logging"
	"github.com/bokysan/codecs/internal/server"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Command runs the HTTP codec service until interrupted
type Command struct {
	server.Config

	srv *server.HttpServer
}

func NewCommand() *Command {
	return &Command{}
}

func (s *Command) Startup() error {
	s.srv = server.NewHttpServer(s.Config)
	return s.srv.Startup()
}

func (s *Command) Shutdown() error {
	var errs error

	log.Infof("Graceful server shutdown...")
	if s.srv != nil {
		log.Debugf("[Server] Shutting down %v", s.srv)
		if err := s.srv.Shutdown(); err != nil {
			errs = multierror.Append(errs, errors.Wrapf(err, "Could not shutdown %v", s.srv))
		}
	}

	return errs
}

func (s *Command) Execute(args []string) error {
	logging.SetupLogging()

	interrupted := make(chan os.Signal, 1)
	signal.Notify(interrupted, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupted)

	if err := s.Startup(); err != nil {
		return err
	}

	<-interrupted
	return s.Shutdown()
}
