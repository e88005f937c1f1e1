package testutil

import (
	"bufio"
	"fmt"
	"net"
	"regexp"
	"strings"
	"testing"
	"time"
)

var ansiSeq = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TelnetClient drives a game server the way a player's client would.
type TelnetClient struct {
	conn    net.Conn
	reader  *bufio.Reader
	t       *testing.T
	pending strings.Builder
}

// NewTelnetClient dials addr.
//
// Precondition: addr must be a "host:port" with a listening server.
// Postcondition: Returns a connected TelnetClient closed on test cleanup, or
// fails the test.
func NewTelnetClient(t *testing.T, addr string) *TelnetClient {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, 5*time.Second)
	if err != nil {
		t.Fatalf("connecting to %s: %v", addr, err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return &TelnetClient{conn: conn, reader: bufio.NewReader(conn), t: t}
}

// ReadUntil returns everything received up to and including substr, with
// Telnet negotiation and ANSI colors removed and CRLF turned into LF. Text
// after the match is kept for the next call.
//
// Precondition: substr must be non-empty.
func (c *TelnetClient) ReadUntil(substr string, timeout time.Duration) string {
	c.t.Helper()
	_ = c.conn.SetReadDeadline(time.Now().Add(timeout))
	defer func() { _ = c.conn.SetReadDeadline(time.Time{}) }()

	tmp := make([]byte, 1024)
	for {
		text := clean(c.pending.String())
		if i := strings.Index(text, substr); i >= 0 {
			c.pending.Reset()
			c.pending.WriteString(text[i+len(substr):])
			return text[:i+len(substr)]
		}
		n, err := c.reader.Read(tmp)
		if n > 0 {
			c.pending.Write(tmp[:n])
			continue
		}
		if err != nil {
			c.t.Fatalf("reading until %q: got %q, error: %v", substr, text, err)
		}
	}
}

func clean(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		// IAC WILL/WONT/DO/DONT <option>
		if s[i] == 0xff && i+2 < len(s) && s[i+1] >= 0xfb {
			i += 2
			continue
		}
		b.WriteByte(s[i])
	}
	s = ansiSeq.ReplaceAllString(b.String(), "")
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// Send writes text followed by CRLF.
func (c *TelnetClient) Send(text string) {
	c.t.Helper()
	_ = c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	if _, err := fmt.Fprintf(c.conn, "%s\r\n", text); err != nil {
		c.t.Fatalf("sending %q: %v", text, err)
	}
}

// Command sends line and returns the output up to the next command prompt.
func (c *TelnetClient) Command(line string) string {
	c.t.Helper()
	c.Send(line)
	return strings.TrimSuffix(c.ReadUntil("> ", 5*time.Second), "> ")
}

// Login answers the name prompt and returns the first room view.
func (c *TelnetClient) Login(name string) string {
	c.t.Helper()
	c.ReadUntil("known? ", 5*time.Second)
	c.Send(name)
	return strings.TrimSuffix(c.ReadUntil("> ", 5*time.Second), "> ")
}

// Close closes the connection.
func (c *TelnetClient) Close() {
	_ = c.conn.Close()
}
