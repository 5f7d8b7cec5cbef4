package connector

import (
	"bufio"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/domain/tm"
	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/logger"
)

// ErrBaseXAuth is returned when the BaseX server rejects the credentials
var ErrBaseXAuth = errors.New("basex authentication failed")

// BaseX client/server protocol command codes
const (
	baseXCreate  byte = 0x08
	baseXAdd     byte = 0x09
	baseXReplace byte = 0x0C
	baseXEscape  byte = 0xFF
)

const baseXDialTimeout = 10 * time.Second

// baseXConnector opens sessions on a BaseX server
type baseXConnector struct {
	settings *config.BaseXSettings
	logger   logger.Logger
}

// NewBaseXConnector creates a session opener for the configured BaseX server
func NewBaseXConnector(settings *config.BaseXSettings, logger logger.Logger) (tm.SessionOpener, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &baseXConnector{settings: settings, logger: logger}, nil
}

// Dial opens an authenticated session without opening a database.
// The connection is closed when ctx is done, failing any blocked call.
func (c *baseXConnector) Dial(ctx context.Context) (tm.Session, error) {
	d := net.Dialer{Timeout: baseXDialTimeout}
	conn, err := d.DialContext(ctx, "tcp", c.settings.Address())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to BaseX at %s: %w", c.settings.Address(), err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	s := &baseXSession{
		conn: conn,
		r:    bufio.NewReader(conn),
		w:    bufio.NewWriter(conn),
		stop: context.AfterFunc(ctx, func() { _ = conn.Close() }),
	}
	if err := s.authenticate(c.settings.User, c.settings.Password); err != nil {
		s.stop()
		_ = conn.Close()
		if ctx.Err() != nil {
			return nil, fmt.Errorf("basex authentication interrupted: %w", ctx.Err())
		}
		return nil, err
	}
	return s, nil
}

// Open opens an authenticated session and runs OPEN on the database.
// An empty name selects the configured default database.
func (c *baseXConnector) Open(ctx context.Context, database string) (tm.Session, error) {
	if database == "" {
		database = c.settings.DefaultDatabase
	}

	s, err := c.Dial(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.Execute("OPEN " + database); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to open database %s: %w", database, err)
	}

	c.logger.Debug("basex session opened", "database", database, "address", c.settings.Address())
	return s, nil
}

// baseXSession speaks the BaseX client/server protocol over one TCP connection
type baseXSession struct {
	mu   sync.Mutex
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
	info string
	stop func() bool
}

func md5hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// authenticate answers the server challenge. Servers since 8.0 send "realm:nonce",
// older ones a plain timestamp.
func (s *baseXSession) authenticate(user, password string) error {
	challenge, err := s.readString()
	if err != nil {
		return fmt.Errorf("failed to read BaseX challenge: %w", err)
	}

	var digest string
	if realm, nonce, ok := strings.Cut(challenge, ":"); ok {
		digest = md5hex(md5hex(user+":"+realm+":"+password) + nonce)
	} else {
		digest = md5hex(md5hex(password) + challenge)
	}

	s.writeString(user)
	s.writeString(digest)
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("failed to send BaseX credentials: %w", err)
	}

	ok, err := s.r.ReadByte()
	if err != nil {
		return fmt.Errorf("failed to read BaseX authentication status: %w", err)
	}
	if ok != 0 {
		return ErrBaseXAuth
	}
	return nil
}

// Execute runs a database command and returns its result
func (s *baseXSession) Execute(command string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writeString(command)
	if err := s.w.Flush(); err != nil {
		return "", fmt.Errorf("failed to send command: %w", err)
	}

	result, err := s.readString()
	if err != nil {
		return "", fmt.Errorf("failed to read command result: %w", err)
	}
	if err := s.readStatus(); err != nil {
		return "", err
	}
	return result, nil
}

// Add stores a document under path in the opened database
func (s *baseXSession) Add(path, input string) error {
	return s.sendInput(baseXAdd, path, input)
}

// Replace stores or overwrites the document under path
func (s *baseXSession) Replace(path, input string) error {
	return s.sendInput(baseXReplace, path, input)
}

// Create creates a database, optionally with an initial document
func (s *baseXSession) Create(name, input string) error {
	return s.sendInput(baseXCreate, name, input)
}

// Info returns the information string of the last command
func (s *baseXSession) Info() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// Close ends the session and closes the connection. It is a no-op when the
// dial context already closed the connection.
func (s *baseXSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.stop() {
		return nil
	}

	s.writeString("exit")
	_ = s.w.Flush()
	return s.conn.Close()
}

func (s *baseXSession) sendInput(code byte, arg, input string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.w.WriteByte(code)
	s.writeString(arg)
	s.writeEscaped(input)
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("failed to send input: %w", err)
	}
	return s.readStatus()
}

// readStatus reads the info string and the status byte that close every response
func (s *baseXSession) readStatus() error {
	info, err := s.readString()
	if err != nil {
		return fmt.Errorf("failed to read command info: %w", err)
	}
	s.info = info

	status, err := s.r.ReadByte()
	if err != nil {
		return fmt.Errorf("failed to read command status: %w", err)
	}
	if status != 0 {
		return fmt.Errorf("basex: %s", strings.TrimSpace(info))
	}
	return nil
}

func (s *baseXSession) writeString(v string) {
	_, _ = s.w.WriteString(v)
	_ = s.w.WriteByte(0)
}

// writeEscaped prefixes 0x00 and 0xFF bytes with 0xFF
func (s *baseXSession) writeEscaped(v string) {
	for i := 0; i < len(v); i++ {
		if v[i] == 0 || v[i] == baseXEscape {
			_ = s.w.WriteByte(baseXEscape)
		}
		_ = s.w.WriteByte(v[i])
	}
	_ = s.w.WriteByte(0)
}

// readString reads up to the next unescaped 0x00
func (s *baseXSession) readString() (string, error) {
	var sb strings.Builder
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return "", err
		}
		switch b {
		case 0:
			return sb.String(), nil
		case baseXEscape:
			b, err = s.r.ReadByte()
			if err != nil {
				return "", err
			}
		}
		sb.WriteByte(b)
	}
}
