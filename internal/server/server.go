// Package server exposes the quiz interpreter over a TCP listener.
//
// Each accepted connection gets its own engine instance with its own
// interpreter state and play round; only the record store is shared.
// Closing a connection tears down that session and nothing else.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/google/uuid"

	"github.com/amadrinan/quiz/internal/engine"
	"github.com/amadrinan/quiz/internal/quiz"
	"github.com/amadrinan/quiz/internal/render"
)

// Server accepts quiz sessions over TCP.
type Server struct {
	addr  string
	store quiz.Store
	log   *slog.Logger

	ln net.Listener

	// A persistence failure in any session poisons the whole process:
	// the first one wins and shuts the listener down.
	fatalOnce sync.Once
	fatalErr  error
	shutdown  context.CancelFunc
}

// New creates a Server listening on addr once Serve is called.
func New(addr string, store quiz.Store, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{addr: addr, store: store, log: logger}
}

// Listen binds the TCP listener. Serve calls it implicitly; tests call
// it first to learn the bound address via Addr.
func (s *Server) Listen(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.ln = ln
	return nil
}

// Addr returns the bound listener address. Valid after Listen.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve runs the accept loop until ctx is cancelled or the listener
// fails. Every connection is handled on its own goroutine; Serve waits
// for in-flight sessions before returning.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.shutdown = cancel

	if s.ln == nil {
		if err := s.Listen(ctx); err != nil {
			return err
		}
	}
	ln := s.ln
	s.log.Info("listening", "addr", ln.Addr().String())

	// Unblock Accept on cancellation.
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	var wg sync.WaitGroup
	for {
		conn, err := ln.Accept()
		if err != nil {
			wg.Wait()
			if s.fatalErr != nil {
				return s.fatalErr
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handle(ctx, conn)
		}()
	}
}

// handle runs one complete session over conn.
func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	// Unblock the line reader when the server shuts down.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	session := uuid.NewString()
	remote := conn.RemoteAddr().String()
	log := s.log.With("session", session, "remote", remote)
	log.Info("session opened")

	// Plain text to the socket: no TTY, no color.
	out := render.New(conn, false)
	out.Logf("Connected to quiz server from %s", remote)

	eng := engine.New(s.store, out)
	eng.Greet()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}
		action, err := eng.Feed(ctx, scanner.Text())
		if err != nil {
			// Store failure: the process can no longer trust its
			// persistence layer. Shut the whole server down.
			log.Error("store failure", "error", err)
			out.Errorf("internal storage failure, closing session")
			s.fatalOnce.Do(func() {
				s.fatalErr = err
				s.shutdown()
			})
			break
		}
		if action == engine.ActionQuit {
			break
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Info("session transport error", "error", err)
	}
	log.Info("session closed")
}
