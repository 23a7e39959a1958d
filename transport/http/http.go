package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"hotel/config"
	"hotel/infras/kafka"
	"hotel/infras/postgres"
	"hotel/internal/jobs"
	"hotel/shared/constant"
	"hotel/transport/http/router"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type ServerState int32

const (
	ServerStateReady ServerState = iota + 1
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

type HTTP struct {
	Config *config.Config
	Router router.Router
	Jobs   jobs.Jobs
	DB     *postgres.Connection
	Kafka  kafka.Client

	state   atomic.Int32
	once    sync.Once
	handler http.Handler
	server  *http.Server
}

func New(cfg *config.Config, r router.Router, jobs jobs.Jobs, db *postgres.Connection, kafka kafka.Client) *HTTP {
	return &HTTP{
		Config: cfg,
		Router: r,
		Jobs:   jobs,
		DB:     db,
		Kafka:  kafka,
	}
}

func (h *HTTP) State() ServerState {
	return ServerState(h.state.Load())
}

func (h *HTTP) setState(state ServerState) {
	h.state.Store(int32(state))
}

// Ready reports whether new requests are still accepted.
func (h *HTTP) Ready() bool {
	return h.State() == ServerStateReady
}

// Serve runs the server and the background jobs until SIGINT or SIGTERM.
func (h *HTTP) Serve() error {
	h.setup()

	h.server = &http.Server{
		Addr:         net.JoinHostPort(h.Config.Server.Host, h.Config.Server.Port),
		Handler:      h.handler,
		ReadTimeout:  time.Duration(h.Config.Server.Timeout.ReadSeconds) * time.Second,
		WriteTimeout: time.Duration(h.Config.Server.Timeout.WriteSeconds) * time.Second,
		IdleTimeout:  time.Duration(h.Config.Server.Timeout.IdleSeconds) * time.Second,
	}

	if err := h.Jobs.Start(); err != nil {
		return fmt.Errorf("starting jobs: %w", err)
	}

	serveErr := make(chan error, 1)

	go func() {
		log.Info().Str("addr", h.server.Addr).Msg("Starting up HTTP server.")

		if err := h.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}

		close(serveErr)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case err := <-serveErr:
		if err != nil {
			h.release()

			return fmt.Errorf("http server stopped: %w", err)
		}

		return h.release()
	case <-signals:
		return h.Shutdown(context.Background())
	}
}

// ServeHTTP lets the service run behind a function runtime that owns the listener.
func (h *HTTP) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.setup()
	h.handler.ServeHTTP(w, r)
}

func (h *HTTP) setup() {
	h.once.Do(func() {
		mux := chi.NewRouter()
		h.Router.SetupRoutes(mux, h.Ready)

		h.handler = mux
		h.setState(ServerStateReady)
	})
}

// Shutdown fails readiness for the grace period so load balancers stop routing here,
// then drains in-flight requests within the cleanup period and releases resources.
func (h *HTTP) Shutdown(ctx context.Context) error {
	shutdownConfig := h.Config.Server.Shutdown

	if h.Config.Server.Env == constant.ServerEnvDevelopment {
		log.Warn().Msg("Received SIGTERM. Shutting down now.")
	} else {
		log.Info().Int64("seconds", shutdownConfig.GracePeriodSeconds).Msg("Received SIGTERM. Entering grace period.")

		h.setState(ServerStateInGracePeriod)

		time.Sleep(time.Duration(shutdownConfig.GracePeriodSeconds) * time.Second)
	}

	log.Info().Int64("seconds", shutdownConfig.CleanupPeriodSeconds).Msg("Entering cleanup period.")

	h.setState(ServerStateInCleanupPeriod)

	var errs []error

	if h.server != nil {
		drainCtx, cancel := context.WithTimeout(ctx, time.Duration(shutdownConfig.CleanupPeriodSeconds)*time.Second)
		defer cancel()

		if err := h.server.Shutdown(drainCtx); err != nil {
			errs = append(errs, fmt.Errorf("draining http server: %w", err))
		}
	}

	if err := h.release(); err != nil {
		errs = append(errs, err)
	}

	log.Info().Msg("Cleaning up completed. Shutting down now.")

	return errors.Join(errs...)
}

// release stops the jobs before closing what they write to.
func (h *HTTP) release() error {
	var errs []error

	if err := h.Jobs.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stopping jobs: %w", err))
	}

	if h.Kafka != nil {
		if err := h.Kafka.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing kafka: %w", err))
		}
	}

	if h.DB != nil {
		if err := h.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
	}

	return errors.Join(errs...)
}
