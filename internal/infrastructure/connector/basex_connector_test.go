//go:build unit
// +build unit

package connector

import (
	"bufio"
	"context"
	"errors"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hpusset/ELRI-sub001/internal/pkg/config"
	"github.com/hpusset/ELRI-sub001/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	fakeBaseXUser     = "admin"
	fakeBaseXPassword = "secret"
	fakeBaseXRealm    = "BaseX"
	fakeBaseXNonce    = "1234567890"
)

// fakeBaseXServer implements enough of the BaseX server protocol for session tests
type fakeBaseXServer struct {
	ln        net.Listener
	legacy    bool
	databases map[string]bool

	mu       sync.Mutex
	commands []string
	inputs   map[string]string
}

func newFakeBaseXServer(t *testing.T, legacy bool) *fakeBaseXServer {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := &fakeBaseXServer{
		ln:        ln,
		legacy:    legacy,
		databases: map[string]bool{config.BaseXDefaultDatabase: true},
		inputs:    make(map[string]string),
	}
	go srv.serve()
	t.Cleanup(func() { _ = ln.Close() })
	return srv
}

func (f *fakeBaseXServer) settings(password string) *config.BaseXSettings {
	_, port, _ := net.SplitHostPort(f.ln.Addr().String())
	p, _ := strconv.Atoi(port)
	return &config.BaseXSettings{
		ServerURL:       "http://127.0.0.1/",
		Port:            p,
		User:            fakeBaseXUser,
		Password:        password,
		DefaultDatabase: config.BaseXDefaultDatabase,
	}
}

func (f *fakeBaseXServer) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}
		go f.handle(conn)
	}
}

func readField(r *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := r.ReadByte()
		if err != nil {
			return "", err
		}
		if b == 0 {
			return sb.String(), nil
		}
		if b == 0xFF {
			if b, err = r.ReadByte(); err != nil {
				return "", err
			}
		}
		sb.WriteByte(b)
	}
}

func (f *fakeBaseXServer) handle(conn net.Conn) {
	defer conn.Close()
	r := bufio.NewReader(conn)

	var expected string
	if f.legacy {
		_, _ = conn.Write([]byte(fakeBaseXNonce + "\x00"))
		expected = md5hex(md5hex(fakeBaseXPassword) + fakeBaseXNonce)
	} else {
		_, _ = conn.Write([]byte(fakeBaseXRealm + ":" + fakeBaseXNonce + "\x00"))
		expected = md5hex(md5hex(fakeBaseXUser+":"+fakeBaseXRealm+":"+fakeBaseXPassword) + fakeBaseXNonce)
	}

	user, err := readField(r)
	if err != nil {
		return
	}
	digest, err := readField(r)
	if err != nil {
		return
	}
	if user != fakeBaseXUser || digest != expected {
		_, _ = conn.Write([]byte{1})
		return
	}
	_, _ = conn.Write([]byte{0})

	for {
		code, err := r.ReadByte()
		if err != nil {
			return
		}
		switch code {
		case baseXAdd, baseXReplace, baseXCreate:
			path, _ := readField(r)
			input, err := readField(r)
			if err != nil {
				return
			}
			f.mu.Lock()
			f.inputs[path] = input
			f.mu.Unlock()
			_, _ = conn.Write([]byte("Resource(s) added.\x00\x00"))
		default:
			_ = r.UnreadByte()
			cmd, err := readField(r)
			if err != nil {
				return
			}
			if cmd == "exit" {
				return
			}
			if strings.HasPrefix(cmd, "XQUERY hang") {
				// never answers; the client must give up on its own
				continue
			}
			f.mu.Lock()
			f.commands = append(f.commands, cmd)
			f.mu.Unlock()
			_, _ = conn.Write(f.reply(cmd))
		}
	}
}

func (f *fakeBaseXServer) reply(cmd string) []byte {
	switch {
	case strings.HasPrefix(cmd, "OPEN "):
		db := strings.TrimPrefix(cmd, "OPEN ")
		if !f.databases[db] {
			return []byte("\x00Database '" + db + "' was not found.\x00\x01")
		}
		return []byte("\x00Database '" + db + "' was opened.\x00\x00")
	case strings.HasPrefix(cmd, "XQUERY "):
		// 0x00 and 0xFF in results travel escaped
		return []byte("<units>a\xFF\x00b</units>\x00Query executed.\x00\x00")
	default:
		return []byte("\x00Unknown command: " + cmd + "\x00\x01")
	}
}

func (f *fakeBaseXServer) recorded() ([]string, map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	inputs := make(map[string]string, len(f.inputs))
	for k, v := range f.inputs {
		inputs[k] = v
	}
	return append([]string(nil), f.commands...), inputs
}

func TestBaseXConnector_Open(t *testing.T) {
	for _, legacy := range []bool{false, true} {
		name := "realm digest"
		if legacy {
			name = "legacy digest"
		}
		t.Run(name, func(t *testing.T) {
			srv := newFakeBaseXServer(t, legacy)
			opener, err := NewBaseXConnector(srv.settings(fakeBaseXPassword), testutil.NewRecordingLogger())
			require.NoError(t, err)

			session, err := opener.Open(context.Background(), "")
			require.NoError(t, err)
			defer session.Close()

			assert.Equal(t, "Database 'elri_tm' was opened.", session.Info())

			commands, _ := srv.recorded()
			assert.Equal(t, []string{"OPEN elri_tm"}, commands)
		})
	}
}

func TestBaseXConnector_WrongPassword(t *testing.T) {
	srv := newFakeBaseXServer(t, false)
	opener, err := NewBaseXConnector(srv.settings("wrong"), testutil.NewRecordingLogger())
	require.NoError(t, err)

	_, err = opener.Open(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBaseXAuth))
}

func TestBaseXConnector_UnknownDatabase(t *testing.T) {
	srv := newFakeBaseXServer(t, false)
	opener, err := NewBaseXConnector(srv.settings(fakeBaseXPassword), testutil.NewRecordingLogger())
	require.NoError(t, err)

	_, err = opener.Open(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Database 'missing' was not found.")
}

func TestBaseXSession_ExecuteAndInput(t *testing.T) {
	srv := newFakeBaseXServer(t, false)
	opener, err := NewBaseXConnector(srv.settings(fakeBaseXPassword), testutil.NewRecordingLogger())
	require.NoError(t, err)

	session, err := opener.Dial(context.Background())
	require.NoError(t, err)
	defer session.Close()

	result, err := session.Execute("XQUERY count(//tu)")
	require.NoError(t, err)
	assert.Equal(t, "<units>a\x00b</units>", result)
	assert.Equal(t, "Query executed.", session.Info())

	require.NoError(t, session.Add("tm/a.tmx", "<tmx>\x00\xFF</tmx>"))
	require.NoError(t, session.Replace("tm/b.tmx", "<tmx/>"))
	require.NoError(t, session.Create("other", ""))
	assert.Equal(t, "Resource(s) added.", session.Info())

	_, err = session.Execute("DROP EVERYTHING")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unknown command")

	_, inputs := srv.recorded()
	assert.Equal(t, "<tmx>\x00\xFF</tmx>", inputs["tm/a.tmx"])
	assert.Equal(t, "<tmx/>", inputs["tm/b.tmx"])
	assert.Contains(t, inputs, "other")
}

func TestBaseXSession_ContextCancelClosesConnection(t *testing.T) {
	srv := newFakeBaseXServer(t, false)
	opener, err := NewBaseXConnector(srv.settings(fakeBaseXPassword), testutil.NewRecordingLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	session, err := opener.Dial(ctx)
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() {
		_, err := session.Execute("XQUERY hang()")
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read command result")
	case <-time.After(5 * time.Second):
		t.Fatal("Execute did not return after the context was cancelled")
	}
	assert.NoError(t, session.Close())
}

func TestBaseXConnector_DialCancelledContext(t *testing.T) {
	srv := newFakeBaseXServer(t, false)
	opener, err := NewBaseXConnector(srv.settings(fakeBaseXPassword), testutil.NewRecordingLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = opener.Dial(ctx)
	assert.Error(t, err)
}

func TestNewBaseXConnector_InvalidSettings(t *testing.T) {
	_, err := NewBaseXConnector(&config.BaseXSettings{}, testutil.NewRecordingLogger())
	assert.Error(t, err)
}
