package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"
)

var ErrAlreadyStarted = errors.New("server already started")

// Repeated accept failures back off from minAcceptDelay, doubling up to
// maxAcceptDelay, so a persistent error such as EMFILE does not spin.
const (
	minAcceptDelay = 5 * time.Millisecond
	maxAcceptDelay = time.Second
)

type State int

const (
	StateCreated State = iota + 1
	StateListening
	StateStopped
)

var StateName = map[State]string{
	StateCreated:   "created",
	StateListening: "listening",
	StateStopped:   "stopped",
}

func (s State) String() string { return StateName[s] }

// Server serves files out of a webroot over raw TCP, one goroutine per
// connection. Every accepted connection is tracked until it is closed,
// either by its handler or by Stop.
type Server struct {
	cfg      Config
	listener net.Listener
	done     chan struct{}

	mu     sync.Mutex
	state  State
	nextID uint64
	conns  map[uint64]net.Conn
}

func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Server{
		cfg:   cfg.withDefaults(),
		state: StateCreated,
		conns: make(map[uint64]net.Conn),
	}, nil
}

// Serve is New followed by Start.
func Serve(cfg Config) (*Server, error) {
	s, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if err := s.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

// Start binds the port and runs the accept loop in its own goroutine.
// A bind failure is returned as is; the server stays in StateCreated.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCreated {
		return fmt.Errorf("%w (%s)", ErrAlreadyStarted, s.state)
	}

	l, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("bind port %d: %w", s.cfg.Port, err)
	}

	s.listener = l
	s.done = make(chan struct{})
	s.state = StateListening
	go s.listen()
	return nil
}

// Stop closes the listener, waits for the accept loop to exit, then
// force-closes every tracked connection. Calling it again is a no-op.
// It must not be called concurrently with itself.
func (s *Server) Stop() error {
	s.mu.Lock()
	if s.state != StateListening {
		s.state = StateStopped
		s.mu.Unlock()
		return nil
	}
	s.state = StateStopped
	s.mu.Unlock()

	err := s.listener.Close()
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, conn := range s.conns {
		_ = conn.Close()
		delete(s.conns, id)
	}
	return err
}

func (s *Server) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Addr is the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ActiveConnections reports how many accepted connections are still open.
func (s *Server) ActiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

func (s *Server) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateListening
}

func (s *Server) listen() {
	defer close(s.done)
	var delay time.Duration
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.running() || errors.Is(err, net.ErrClosed) {
				return
			}
			delay = nextAcceptDelay(delay)
			s.cfg.Logger.Printf("accept: %v; retrying in %v", err, delay)
			time.Sleep(delay)
			continue
		}
		delay = 0

		if tc, ok := conn.(*net.TCPConn); ok {
			_ = tc.SetReadBuffer(s.cfg.ReadBufferSize)
		}

		id, ok := s.track(conn)
		if !ok {
			_ = conn.Close()
			return
		}
		go s.handle(id, conn)
	}
}

func nextAcceptDelay(d time.Duration) time.Duration {
	if d == 0 {
		return minAcceptDelay
	}
	return min(2*d, maxAcceptDelay)
}

// track registers conn. It refuses once Stop has begun so a connection
// accepted in the closing window is not leaked past the bulk close.
func (s *Server) track(conn net.Conn) (uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateListening {
		return 0, false
	}
	s.nextID++
	s.conns[s.nextID] = conn
	return s.nextID, true
}

// release closes the connection registered under id unless Stop already
// did. Whoever removes the entry closes the socket, so it is closed once.
func (s *Server) release(id uint64) {
	s.mu.Lock()
	conn, ok := s.conns[id]
	delete(s.conns, id)
	s.mu.Unlock()

	if ok {
		_ = conn.Close()
	}
}
