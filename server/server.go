// Package server accepts TCP connections, decodes RESP requests off them,
// dispatches each to the command package, and writes back the response
// frame.
package server

import (
	"bytes"
	"context"
	"expvar"
	"io"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/harfangapps/respkv-server/command"
	"github.com/harfangapps/respkv-server/common"
	"github.com/harfangapps/respkv-server/logger"
	"github.com/harfangapps/respkv-server/resp"
	"github.com/harfangapps/respkv-server/store"
)

// initial and maximum size of the per-connection read buffer.
const (
	initialBufSize = 4096
	maxBufSize     = 1 << 20
)

// Server listens for RESP client connections and executes commands against
// a shared Store.
type Server struct {
	// The address the server listens on.
	Addr net.Addr

	// Write timeout before returning a network error on a write attempt.
	WriteTimeout time.Duration

	// Store backs every command executed by this server. Must not be nil
	// by the time ListenAndServe is called.
	Store *store.Store

	// Log receives lifecycle and error messages. If the zero value, a
	// stdout logger is used.
	Log logger.Logger

	// If not nil, this is an expvar map that receives statistics about
	// commands and connections, mirrored into the Prometheus counters in
	// metrics.go.
	Stats *expvar.Map

	// The channel to send errors to. If nil, errors are logged. If the
	// send would block, the error is dropped. It is the responsibility
	// of the caller to close the channel once the Server is stopped.
	ErrChan chan<- error

	server common.RetryServer

	mu    sync.Mutex
	state int
}

const (
	none = iota
	started
	closed
)

// ListenAndServe starts the server on the specified Addr.
//
// This call is blocking, it returns only when an error is encountered. As
// such, it always returns a non-nil error.
func (s *Server) ListenAndServe(ctx context.Context) error {
	l, err := net.Listen(s.Addr.Network(), s.Addr.String())
	if err != nil {
		return errors.Wrap(err, "listen error")
	}
	return s.serve(ctx, l)
}

func (s *Server) serve(ctx context.Context, l net.Listener) error {
	s.mu.Lock()
	switch s.state {
	case none:
		// all good, keep going
	case started:
		s.mu.Unlock()
		return errors.New("server already started")
	case closed:
		s.mu.Unlock()
		return errors.New("server closed")
	}

	s.server.Dispatch = s.serveConn
	s.server.ErrChan = s.ErrChan
	s.server.Listener = l
	s.state = started
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.state = closed
		s.mu.Unlock()
	}()

	return s.server.Serve(ctx)
}

var defaultLogger = logger.New(logger.Options{Stdout: true, Level: logger.LevelInfo})

// logger returns s.Log, falling back to a stdout logger when the zero
// value was never assigned.
func (s *Server) logger() logger.Logger {
	if s.Log == (logger.Logger{}) {
		return defaultLogger
	}
	return s.Log
}

func (s *Server) serveConn(ctx context.Context, d common.Doner, conn net.Conn) {
	connID := uuid.NewString()
	log := s.logger().With("conn", connID, "remote", conn.RemoteAddr())

	connectionsTotal.Inc()
	connectionsActive.Inc()
	s.statAdd("connections_active", 1)
	s.statAdd("connections_total", 1)

	log.Infof("connection accepted")

	defer func() {
		conn.Close()
		connectionsActive.Dec()
		s.statAdd("connections_active", -1)
		log.Infof("connection closed")
		d.Done()
	}()

	s.readWriteLoop(ctx, log, conn)
}

// readWriteLoop owns a growable read buffer for conn: it refills from the
// socket whenever the decoder reports NotComplete, decodes one request at a
// time, executes it, and writes the response before reading the next
// request. A malformed frame produces a SimpleError response and closes the
// connection, since the byte stream can no longer be trusted to be
// request-aligned past that point.
func (s *Server) readWriteLoop(ctx context.Context, log logger.Logger, conn net.Conn) {
	buf := make([]byte, 0, initialBufSize)
	read := make([]byte, initialBufSize)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		frame, consumed, err := resp.Decode(buf)
		if err == nil {
			buf = buf[consumed:]
			if !s.handleFrame(log, conn, frame) {
				return
			}
			continue
		}

		decErr, ok := err.(*resp.DecodeError)
		if !ok {
			log.Errorf("unexpected decode error: %v", err)
			return
		}

		if decErr.Status != resp.StatusNotComplete {
			decodeErrorsTotal.Inc()
			s.statAdd("decode_errors_total", 1)
			if werr := s.writeFrame(conn, resp.SimpleError("ERR Protocol error: "+decErr.Msg)); werr != nil {
				log.Errorf("write error response: %v", werr)
			}
			return
		}

		if len(buf) >= maxBufSize {
			log.Errorf("request exceeds maximum buffer size of %d bytes", maxBufSize)
			s.writeFrame(conn, resp.SimpleError("ERR Protocol error: request too large"))
			return
		}

		n, err := conn.Read(read)
		if n > 0 {
			buf = append(buf, read[:n]...)
		}
		if err != nil {
			if err != io.EOF {
				log.Errorf("read error: %v", errors.Wrap(err, "read"))
			}
			return
		}
	}
}

// handleFrame executes a single decoded request frame and writes its
// response. It returns false if the connection should be closed.
func (s *Server) handleFrame(log logger.Logger, conn net.Conn, frame resp.Frame) bool {
	cmd, err := command.FromFrame(frame)
	if err != nil {
		log.Warnf("invalid command: %v", err)
		if werr := s.writeFrame(conn, resp.SimpleError(err.Error())); werr != nil {
			log.Errorf("write error response: %v", werr)
			return false
		}
		return true
	}

	commandsTotal.WithLabelValues(commandLabel(frame)).Inc()
	s.statAdd("commands_executed", 1)

	res := cmd.Execute(s.Store)

	if s.WriteTimeout > 0 {
		if err := conn.SetWriteDeadline(time.Now().Add(s.WriteTimeout)); err != nil {
			log.Errorf("set write deadline: %v", errors.Wrap(err, "set write deadline"))
			return false
		}
	}
	if err := s.writeFrame(conn, res); err != nil {
		log.Errorf("write response: %v", err)
		return false
	}
	return true
}

func (s *Server) writeFrame(conn net.Conn, f resp.Frame) error {
	_, err := conn.Write(resp.Marshal(f))
	return err
}

func (s *Server) statAdd(key string, delta int64) {
	if s.Stats != nil {
		s.Stats.Add(key, delta)
	}
}

// commandLabel extracts the lowercased command name from a request frame
// for metrics labeling, without re-validating it (FromFrame already did).
func commandLabel(f resp.Frame) string {
	items := f.Items()
	if len(items) == 0 {
		return "unknown"
	}
	name := bytes.ToLower(items[0].Bytes())
	if len(name) == 0 {
		return "unknown"
	}
	return string(name)
}
