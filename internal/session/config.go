package session

import "github.com/ibm5250/tn5250/internal/transport"

// ScreenSize names the two screen geometries this module allows.
type ScreenSize int

const (
	Screen24x80 ScreenSize = iota
	Screen27x132
)

// Config is the session's single configuration struct. Unlike the
// teacher's configtool package (which loads JSON from disk via
// fsnotify-watched files), this module takes configuration as a plain
// in-memory struct — config-file parsing is out of scope as an external
// collaborator.
type Config struct {
	Host string
	Port int
	TLS  *transport.TLSConfig

	DeviceName string
	CodePage   int
	ScreenSize ScreenSize

	ConnectTimeoutMs    int
	ReadTimeoutMs       int
	WriteTimeoutMs      int
	InactivityTimeoutMs int

	KeepaliveEnabled    bool
	KeepaliveIntervalMs int

	MaxRetries        int
	InitialRetryDelayMs int

	BreakerThreshold int
	BreakerCooloffMs int

	Enhanced5250  bool
	ExtendedAttrs bool

	// StrictMode selects the §7 propagation policy for malformed inbound
	// data: disconnect (true) versus discard-and-continue (false).
	StrictMode bool
}

// maxBackoffMs is the retry backoff cap.
const maxBackoffMs = 5000

// defaultBreakerCooloffMs is the default cool-off when the config
// leaves BreakerCooloffMs unset.
const defaultBreakerCooloffMs = 30_000
