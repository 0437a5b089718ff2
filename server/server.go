// Package server answers board requests over a bare TCP connection.
//
// A request is anything that looks like the head of an HTTP GET:
//
//	GET /abcdefghijklmnop HTTP/1.1
//
// The sixteen bytes after "GET /" are the board. The reply is a minimal
// HTTP/1.1 response whose body lists the words found, one per line.
// Connections are served one at a time and closed after the reply.
package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/milden6/boggle"
)

const (
	// DefaultMaxRequestBytes bounds the request head.
	DefaultMaxRequestBytes = 8 << 10 // 8 KiB

	// DefaultReadTimeout bounds how long a client may take to send its request.
	DefaultReadTimeout = 5 * time.Second

	boardStart = len("GET /")
	boardEnd   = boardStart + boggle.BoardSize*boggle.BoardSize
)

var errTooLarge = errors.New("request head too large")

// Solver finds the words on a board. *boggle.Trie implements it.
type Solver interface {
	Search(b boggle.Board) ([]string, error)
}

// Config holds the listener settings.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	MaxRequestBytes int
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request logs.
func WithLogger(l *zap.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// Server is the board request server.
type Server struct {
	solver Solver
	cfg    Config
	log    *zap.Logger
	lower  cases.Caser
}

// New creates a server that answers requests with solver.
func New(solver Solver, cfg Config, opts ...Option) *Server {
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = DefaultMaxRequestBytes
	}

	s := &Server{
		solver: solver,
		cfg:    cfg,
		log:    zap.NewNop(),
		lower:  cases.Lower(language.Und),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListenAndServe listens on the configured address and serves until ctx is
// done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and answers them one after another. It
// closes ln and returns nil once ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
		}
		ln.Close()
	}()

	s.log.Info("server listening", zap.String("addr", ln.Addr().String()))

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				s.log.Info("server stopped")
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				s.log.Warn("accept timeout", zap.Error(err))
				continue
			}
			return fmt.Errorf("accept: %w", err)
		}
		s.ServeConn(conn)
	}
}

// ServeConn reads one request from conn, writes the reply and closes conn.
func (s *Server) ServeConn(conn net.Conn) {
	defer conn.Close()
	start := time.Now()

	conn.SetReadDeadline(start.Add(s.cfg.ReadTimeout))

	var resp response
	lines, err := readHead(conn, s.cfg.MaxRequestBytes)
	switch {
	case errors.Is(err, errTooLarge):
		resp = textResponse(http.StatusRequestHeaderFieldsTooLarge, err.Error())
	case err != nil:
		s.log.Debug("read request", zap.Error(err))
		resp = textResponse(http.StatusBadRequest, "unreadable request")
	default:
		resp = s.handle(lines)
	}

	conn.SetWriteDeadline(time.Now().Add(s.cfg.ReadTimeout))
	if err := resp.writeTo(conn); err != nil {
		s.log.Warn("write response", zap.Error(err))
	}

	fields := []zap.Field{
		zap.String("remote", remoteAddr(conn)),
		zap.Int("status", resp.status),
		zap.Duration("elapsed", time.Since(start)),
	}
	if resp.board != "" {
		fields = append(fields, zap.String("board", resp.board), zap.Int("words", resp.words))
	}
	s.log.Info("request", fields...)
}

func remoteAddr(conn net.Conn) string {
	if addr := conn.RemoteAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

// readHead reads lines up to the first empty line or EOF, without the line
// terminators.
func readHead(r io.Reader, limit int) ([]string, error) {
	br := bufio.NewReader(io.LimitReader(r, int64(limit)+1))

	var lines []string
	total := 0
	for {
		line, err := br.ReadString('\n')
		total += len(line)
		if total > limit {
			return nil, errTooLarge
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" && (err == nil || len(lines) > 0) {
			return lines, nil
		}
		if line != "" {
			lines = append(lines, line)
		}

		if err != nil {
			if err == io.EOF && len(lines) > 0 {
				return lines, nil
			}
			return nil, err
		}
	}
}

func (s *Server) handle(lines []string) response {
	if len(lines) == 0 {
		return textResponse(http.StatusBadRequest, "empty request")
	}

	first := lines[0]
	method, rest, _ := strings.Cut(first, " ")
	if method != http.MethodGet {
		return textResponse(http.StatusMethodNotAllowed, "only GET is supported")
	}

	target, _, _ := strings.Cut(rest, " ")
	switch target {
	case "/":
		return textResponse(http.StatusOK, "Hello, world!")
	case "/bees":
		return textResponse(http.StatusOK, "It's bee time :)")
	}

	board, err := s.extractBoard(first)
	if err != nil {
		return textResponse(http.StatusBadRequest, err.Error())
	}

	words, err := s.solver.Search(board)
	if err != nil {
		return textResponse(http.StatusBadRequest, err.Error())
	}

	resp := textResponse(http.StatusOK, strings.Join(words, "\n"))
	resp.board = board.String()
	resp.words = len(words)
	return resp
}

// extractBoard cuts the board out of a request line of the form
// "GET /<16 letters>[ ...]".
func (s *Server) extractBoard(line string) (boggle.Board, error) {
	if len(line) < boardStart || line[boardStart-1] != '/' {
		return boggle.Board{}, &boggle.BoardError{Board: line, Reason: "no board in request target"}
	}
	if len(line) < boardEnd || (len(line) > boardEnd && line[boardEnd] != ' ') {
		target, _, _ := strings.Cut(line[boardStart:], " ")
		return boggle.Board{}, &boggle.BoardError{
			Board:  target,
			Reason: fmt.Sprintf("want %d letters", boardEnd-boardStart),
		}
	}
	return boggle.ParseBoard(s.lower.String(line[boardStart:boardEnd]))
}
