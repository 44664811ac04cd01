package session

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/ibm5250/tn5250/internal/proto"
	"github.com/ibm5250/tn5250/internal/telnet"
	"github.com/ibm5250/tn5250/internal/transport"
)

func testConfig() Config {
	return Config{
		Host:                "test",
		Port:                2300,
		DeviceName:          "DEV1",
		CodePage:            37,
		ScreenSize:          Screen24x80,
		ConnectTimeoutMs:    2000,
		ReadTimeoutMs:       2000,
		WriteTimeoutMs:      2000,
		InactivityTimeoutMs: 0,
		MaxRetries:          0,
		InitialRetryDelayMs: 10,
		BreakerThreshold:    2,
		BreakerCooloffMs:    50,
	}
}

// runFakeHost drives the server side of the Telnet/TN5250E handshake
// against a Controller's negotiator, then blocks for further writes the
// test injects directly on conn.
func runFakeHost(conn net.Conn) {
	framer := telnet.NewFramer()
	buf := make([]byte, 4096)
	termTypeOffered := false
	for {
		n, err := conn.Read(buf)
		if err != nil {
			return
		}
		events, ferr := framer.Feed(buf[:n])
		if ferr != nil {
			return
		}
		for _, ev := range events {
			switch ev.Kind {
			case telnet.EventOption:
				switch ev.Cmd {
				case telnet.DO:
					_, _ = conn.Write(telnet.CommandBytes(telnet.WILL, ev.Option))
				case telnet.WILL:
					_, _ = conn.Write(telnet.CommandBytes(telnet.DO, ev.Option))
				}
				if ev.Option == telnet.OptSGA && !termTypeOffered {
					termTypeOffered = true
					_, _ = conn.Write(telnet.CommandBytes(telnet.WILL, telnet.OptTermType))
				}
			case telnet.EventSubneg:
				switch ev.Option {
				case telnet.OptTermType:
					reply := append([]byte{0x00}, []byte("IBM-3179-2")...)
					_, _ = conn.Write(telnet.SubnegBytes(telnet.OptTermType, reply))
				case telnet.Opt5250E:
					payload := []byte{0x41, 0x00, 0x00, 0x00, 0x01}
					payload = append(payload, []byte("DEV1")...)
					_, _ = conn.Write(telnet.SubnegBytes(telnet.Opt5250E, payload))
				}
			}
		}
	}
}

func connectOverPipe(t *testing.T, cfg Config) (*Controller, net.Conn) {
	t.Helper()
	ctrl, err := NewController(cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	client, hostSide := net.Pipe()
	ctrl.dial = func(string, int, *transport.TLSConfig, time.Duration) (transport.Transport, error) {
		return transport.NewConn(client), nil
	}
	go runFakeHost(hostSide)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ctrl.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return ctrl, hostSide
}

func TestConnectNegotiatesAndReachesConnected(t *testing.T) {
	ctrl, hostSide := connectOverPipe(t, testConfig())
	defer hostSide.Close()
	defer ctrl.Disconnect()

	if ctrl.State() != Connected {
		t.Fatalf("State() = %v, want Connected", ctrl.State())
	}
	if !ctrl.Profile().Enhanced {
		t.Errorf("Profile().Enhanced = false, want true")
	}
	if ctrl.Profile().DeviceName != "DEV1" {
		t.Errorf("Profile().DeviceName = %q, want DEV1", ctrl.Profile().DeviceName)
	}
}

func TestConnectThenRecordFlowsToDispatcher(t *testing.T) {
	ctrl, hostSide := connectOverPipe(t, testConfig())
	defer hostSide.Close()
	defer ctrl.Disconnect()

	received := make(chan RecordReceived, 1)
	ctrl.Subscribe(func(ev Event) {
		if ev.Received != nil {
			received <- *ev.Received
		}
	})

	rec := proto.BuildRecordHeader(1, proto.OpcodeNoOp, []byte{0x40}) // Clear Unit
	framed := telnet.Frame(rec)
	if _, err := hostSide.Write(framed); err != nil {
		t.Fatalf("host write: %v", err)
	}

	select {
	case ev := <-received:
		if ev.Err != nil {
			t.Errorf("RecordReceived.Err = %v, want nil", ev.Err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for RecordReceived event")
	}
}

func TestDisconnectIsIdempotent(t *testing.T) {
	ctrl, hostSide := connectOverPipe(t, testConfig())
	defer hostSide.Close()

	ctrl.Disconnect()
	if ctrl.State() != Disconnected {
		t.Fatalf("State() = %v, want Disconnected", ctrl.State())
	}
	ctrl.Disconnect() // must not block or panic
}

func TestConnectRetriesThenSucceeds(t *testing.T) {
	cfg := testConfig()
	cfg.MaxRetries = 2
	cfg.InitialRetryDelayMs = 5
	ctrl, err := NewController(cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	attempts := 0
	ctrl.dial = func(string, int, *transport.TLSConfig, time.Duration) (transport.Transport, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("refused")
		}
		client, hostSide := net.Pipe()
		go runFakeHost(hostSide)
		return transport.NewConn(client), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ctrl.Connect(ctx); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer ctrl.Disconnect()

	if ctrl.ConnectAttempts() != 3 {
		t.Errorf("ConnectAttempts() = %d, want 3", ctrl.ConnectAttempts())
	}
}

func TestConnectBreakerOpensAfterThreshold(t *testing.T) {
	cfg := testConfig()
	cfg.BreakerThreshold = 2
	cfg.BreakerCooloffMs = 10_000
	ctrl, err := NewController(cfg)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}

	dialCalls := 0
	ctrl.dial = func(string, int, *transport.TLSConfig, time.Duration) (transport.Transport, error) {
		dialCalls++
		return nil, errors.New("refused")
	}

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := ctrl.Connect(ctx); err == nil {
			t.Fatalf("attempt %d: expected ConnectFailed", i)
		}
	}

	before := dialCalls
	if err := ctrl.Connect(ctx); !errors.Is(err, ErrBreakerOpen) {
		t.Fatalf("Connect after threshold = %v, want ErrBreakerOpen", err)
	}
	if dialCalls != before {
		t.Errorf("dial called %d more times, want 0 (breaker should short-circuit)", dialCalls-before)
	}
}
