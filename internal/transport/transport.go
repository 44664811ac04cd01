// Package transport wraps the byte-stream a session controller drives:
// a plain TCP dial or a TLS-wrapped one, each honoring a per-operation
// deadline rather than a single connection-wide one. Grounded on the
// teacher's net.Dial usage in cmd/vision3 and on
// pascaldekloe-part5/session/tcp.go's deadline-per-read/write style.
package transport

import (
	"crypto/tls"
	"net"
	"strconv"
	"time"
)

// Transport is the capability the session controller depends on instead
// of a concrete net.Conn, so tests can substitute an in-memory stream.
type Transport interface {
	Read(buf []byte, deadline time.Time) (int, error)
	Write(buf []byte, deadline time.Time) (int, error)
	Close() error
}

// TLSConfig configures the optional TLS sub-transport. A zero value
// means "use Go's default verification"; ServerName defaults to the
// dial host when empty.
type TLSConfig struct {
	ServerName         string
	InsecureSkipVerify bool
}

// Dial connects to host:port, wrapping the connection in TLS when cfg is
// non-nil, and applies connectTimeout to the combined TCP+TLS handshake.
func Dial(host string, port int, cfg *TLSConfig, connectTimeout time.Duration) (Transport, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	d := net.Dialer{Timeout: connectTimeout}
	deadline := time.Now().Add(connectTimeout)
	if connectTimeout <= 0 {
		deadline = time.Time{}
	}

	conn, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		return &tcpTransport{conn: conn}, nil
	}

	serverName := cfg.ServerName
	if serverName == "" {
		serverName = host
	}
	tlsConn := tls.Client(conn, &tls.Config{
		ServerName:         serverName,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	})
	if !deadline.IsZero() {
		if err := tlsConn.SetDeadline(deadline); err != nil {
			conn.Close()
			return nil, err
		}
	}
	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, err
	}
	_ = tlsConn.SetDeadline(time.Time{})
	return &tcpTransport{conn: tlsConn}, nil
}
