package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadrinan/quiz/internal/quiz"
	"github.com/amadrinan/quiz/internal/store"
)

// startServer runs a server on an ephemeral port and returns its
// address. The server is torn down when the test ends.
func startServer(t *testing.T, st quiz.Store) string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	srv := New("127.0.0.1:0", st, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, srv.Listen(ctx))

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("server did not shut down")
		}
	})
	return srv.Addr().String()
}

// runSession sends the given lines over one connection and returns the
// full transcript read until the server closed the connection.
func runSession(t *testing.T, addr string, lines ...string) string {
	t.Helper()
	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetDeadline(time.Now().Add(5*time.Second)))
	for _, line := range lines {
		_, err := io.WriteString(conn, line+"\n")
		require.NoError(t, err)
	}
	transcript, err := io.ReadAll(conn)
	require.NoError(t, err)
	return string(transcript)
}

func TestSessionBannerAndQuit(t *testing.T) {
	addr := startServer(t, store.NewMemory())

	transcript := runSession(t, addr, "quit")
	assert.Contains(t, transcript, "Connected to quiz server from ")
	assert.Contains(t, transcript, "Goodbye, come back soon!")
}

func TestSessionCommandsRunAgainstSharedStore(t *testing.T) {
	st := store.NewMemory()
	addr := startServer(t, st)

	transcript := runSession(t, addr,
		"add", "Capital de Peru", "Lima", "show 5", "quit")
	assert.Contains(t, transcript, "Added: Capital de Peru => Lima")
	assert.Contains(t, transcript, "5: Capital de Peru => Lima")

	// The mutation is visible outside the session.
	r, err := st.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Capital de Peru", r.Question)
}

func TestSessionsAreIsolated(t *testing.T) {
	addr := startServer(t, store.NewMemory())

	// Session A parks inside the add prompt; session B must still be
	// able to dispatch commands.
	connA, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	defer connA.Close()
	_, err = io.WriteString(connA, "add\n")
	require.NoError(t, err)

	transcript := runSession(t, addr, "list", "quit")
	assert.Contains(t, transcript, "1: Capital de Italia")
}

func TestAbruptCloseTearsDownOnlyThatSession(t *testing.T) {
	addr := startServer(t, store.NewMemory())

	conn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	_, err = io.WriteString(conn, "add\n")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	// A fresh session works fine afterwards.
	transcript := runSession(t, addr, "list", "quit")
	assert.Contains(t, transcript, "4: Capital de Portugal")
}

func TestConcurrentDeleteSameID(t *testing.T) {
	st := store.NewMemory()
	addr := startServer(t, st)

	const sessions = 4
	transcripts := make([]string, sessions)
	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn, err := net.Dial("tcp", addr)
			if err != nil {
				transcripts[i] = "dial failed: " + err.Error()
				return
			}
			defer conn.Close()
			conn.SetDeadline(time.Now().Add(5 * time.Second))
			io.WriteString(conn, "delete 1\nquit\n")
			data, _ := io.ReadAll(conn)
			transcripts[i] = string(data)
		}(i)
	}
	wg.Wait()

	// Exactly one session deleted the record; the others saw NotFound.
	failures := 0
	for _, transcript := range transcripts {
		failures += strings.Count(transcript, "Error: no quiz found for id = 1")
	}
	assert.Equal(t, sessions-1, failures)

	_, err := st.GetByID(context.Background(), 1)
	assert.True(t, errors.Is(err, quiz.ErrNotFound))

	count, err := st.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(quiz.Seed())-1, count)
}
