// Package server starts the game's services in order and stops them in
// reverse on a signal, a failed service, or context cancellation.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component. Start blocks until Stop is called or
// the service fails.
type Service interface {
	Start() error
	Stop()
}

// FuncService adapts a start/stop function pair into a Service.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls StartFn.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls StopFn.
func (f *FuncService) Stop() { f.StopFn() }

// Lifecycle runs a fixed list of services.
//
// Services are started in the order added and stopped in reverse, so a
// service may depend on everything added before it. The world is added
// before the acceptor for that reason: sessions ended by the acceptor still
// log out through a running world.
type Lifecycle struct {
	logger *zap.Logger

	// StopTimeout bounds each Stop call; a service that takes longer is
	// logged and left behind. Zero waits forever.
	StopTimeout time.Duration
	// OnReady runs once every service has been started.
	OnReady func()
	// OnShutdown runs before the first service is stopped.
	OnShutdown func()

	mu       sync.Mutex
	services []namedService
	signals  []os.Signal
}

type namedService struct {
	name    string
	service Service
}

// NewLifecycle creates a Lifecycle that shuts down on SIGINT or SIGTERM.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		logger:  logger,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Add registers svc under name.
//
// Precondition: name must be non-empty; svc must be non-nil; Run has not
// been called.
func (l *Lifecycle) Add(name string, svc Service) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.services = append(l.services, namedService{name: name, service: svc})
}

// Run starts every service and blocks until a signal arrives, a service
// fails, or ctx is done. It then stops every service in reverse order.
//
// Postcondition: every service has been asked to stop; the first service
// error, if any, is returned.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()
	l.mu.Lock()
	services := append([]namedService(nil), l.services...)
	l.mu.Unlock()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, l.signals...)
	defer signal.Stop(sigCh)

	errCh := make(chan error, len(services))
	for _, ns := range services {
		go l.start(ns, errCh)
	}
	l.logger.Info("services started",
		zap.Int("count", len(services)),
		zap.Duration("startup", time.Since(start)),
	)
	if l.OnReady != nil {
		l.OnReady()
	}

	var runErr error
	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case runErr = <-errCh:
		l.logger.Error("service failed, shutting down", zap.Error(runErr))
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	if l.OnShutdown != nil {
		l.OnShutdown()
	}
	l.shutdown(services)
	l.logger.Info("shutdown complete", zap.Duration("uptime", time.Since(start)))
	return runErr
}

func (l *Lifecycle) start(ns namedService, errCh chan<- error) {
	l.logger.Info("starting service", zap.String("service", ns.name))
	begin := time.Now()
	if err := ns.service.Start(); err != nil {
		l.logger.Error("service failed",
			zap.String("service", ns.name),
			zap.Error(err),
			zap.Duration("uptime", time.Since(begin)),
		)
		errCh <- fmt.Errorf("service %s: %w", ns.name, err)
	}
}

func (l *Lifecycle) shutdown(services []namedService) {
	begin := time.Now()
	for i := len(services) - 1; i >= 0; i-- {
		ns := services[i]
		svcStart := time.Now()
		if !l.stop(ns) {
			l.logger.Warn("service did not stop in time",
				zap.String("service", ns.name),
				zap.Duration("timeout", l.StopTimeout),
			)
			continue
		}
		l.logger.Info("service stopped",
			zap.String("service", ns.name),
			zap.Duration("elapsed", time.Since(svcStart)),
		)
	}
	l.logger.Info("all services stopped", zap.Duration("shutdown_elapsed", time.Since(begin)))
}

// stop reports whether ns stopped within StopTimeout.
func (l *Lifecycle) stop(ns namedService) bool {
	if l.StopTimeout <= 0 {
		ns.service.Stop()
		return true
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		ns.service.Stop()
	}()
	timer := time.NewTimer(l.StopTimeout)
	defer timer.Stop()
	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}
