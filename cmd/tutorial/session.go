package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"pipelined.dev/tutorial/config"
	"pipelined.dev/tutorial/media"
	"pipelined.dev/tutorial/metric"
)

// session is the initialized framework with optional metrics server.
type session struct {
	cfg    *config.Config
	log    *logrus.Logger
	metric *metric.Metric
	server *http.Server
}

func newSession(cfg *config.Config, l *logrus.Logger) (*session, error) {
	b, err := cfg.NewBackend(l)
	if err != nil {
		return nil, err
	}
	if err := media.Init(b); err != nil {
		return nil, err
	}
	s := &session{
		cfg: cfg,
		log: l,
	}
	if cfg.MetricsAddr != "" {
		if err := s.serveMetrics(cfg.MetricsAddr); err != nil {
			media.Deinit()
			return nil, err
		}
	}
	return s, nil
}

func (s *session) serveMetrics(addr string) error {
	reg := prometheus.NewRegistry()
	s.metric = metric.New(reg)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", metric.Handler(reg))
	s.server = &http.Server{Handler: mux}
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Errorf("metrics server failed: %v", err)
		}
	}()
	s.log.Infof("Serving metrics on %s/metrics", ln.Addr())
	return nil
}

func (s *session) close() {
	if s.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.server.Shutdown(ctx); err != nil {
			s.log.Debugf("metrics server shutdown: %v", err)
		}
	}
	media.Deinit()
}
