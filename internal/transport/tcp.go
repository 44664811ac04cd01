package transport

import (
	"net"
	"time"
)

// tcpTransport adapts a net.Conn (plain or TLS-wrapped) to Transport,
// setting a fresh per-operation deadline on every call rather than one
// deadline for the connection's whole lifetime.
type tcpTransport struct {
	conn net.Conn
}

// NewConn wraps an already-established net.Conn as a Transport. Dial
// uses this internally after completing TCP/TLS setup; callers that
// already hold a conn (a test harness using net.Pipe, an accepted
// listener socket) can use it directly instead of going through Dial.
func NewConn(conn net.Conn) Transport {
	return &tcpTransport{conn: conn}
}

func (t *tcpTransport) Read(buf []byte, deadline time.Time) (int, error) {
	if err := t.conn.SetReadDeadline(deadline); err != nil {
		return 0, err
	}
	return t.conn.Read(buf)
}

func (t *tcpTransport) Write(buf []byte, deadline time.Time) (int, error) {
	if err := t.conn.SetWriteDeadline(deadline); err != nil {
		return 0, err
	}
	return t.conn.Write(buf)
}

func (t *tcpTransport) Close() error {
	return t.conn.Close()
}
