package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type HttpServer struct {
	Done        chan Done
	Server      http.Server
	ServiceLogs chan<- ServiceLog
}

func (s *HttpServer) Start() error {
	s.ServiceLogs <- ServiceLogf(LogLevelInfo, "starting http server on %s...", s.Server.Addr)
	if s.Done != nil {
		go func() {
			<-s.Done
			if err := s.Server.Close(); err != nil {
				s.ServiceLogs <- ServiceLogf(LogLevelError, "server closed: %s", err)
			}
		}()
	}

	if err := s.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits up to
// DefaultDurationConnectionTimeout for in-flight requests to finish
func (s *HttpServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultDurationConnectionTimeout)
	defer cancel()
	if err := s.Server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut server down: %w", err)
	}
	return nil
}

type NewHttpServerOpts struct {
	Addr        string
	Done        chan Done
	IpAllowlist *NewHttpServerIpAllowlistOpts
	Handler     http.Handler
	ServiceLogs chan<- ServiceLog
}

type NewHttpServerIpAllowlistOpts struct {
	AllowedIps []string
}

func NewHttpServer(opts NewHttpServerOpts) (*HttpServer, error) {
	logger := GetRequestLoggerMiddleware(opts.ServiceLogs)

	var handler http.Handler = opts.Handler

	if opts.IpAllowlist != nil && len(opts.IpAllowlist.AllowedIps) > 0 {
		cidrs, warnings, err := ParseCidrs(opts.IpAllowlist.AllowedIps)
		if err != nil {
			return nil, fmt.Errorf("failed to parse provided cidrs['%s']: %w", strings.Join(opts.IpAllowlist.AllowedIps, "', '"), err)
		}
		for warningIndex, warning := range warnings {
			opts.ServiceLogs <- ServiceLogf(LogLevelWarn, "received warning[%v] while parsing cidrs: %s", warningIndex, warning)
		}
		ipAllowLister := GetIpAllowlistMiddleware(opts.ServiceLogs, cidrs)
		handler = ipAllowLister(handler)
	}

	handler = logger(handler)

	return &HttpServer{
		Done: opts.Done,
		Server: http.Server{
			Addr:              opts.Addr,
			Handler:           handler,
			IdleTimeout:       DefaultDurationConnectionTimeout,
			ReadTimeout:       DefaultDurationConnectionTimeout,
			ReadHeaderTimeout: DefaultDurationConnectionTimeout,
			WriteTimeout:      DefaultDurationConnectionTimeout,
		},
		ServiceLogs: opts.ServiceLogs,
	}, nil
}
