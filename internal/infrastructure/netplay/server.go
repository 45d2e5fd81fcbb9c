package netplay

import (
	"errors"
	"fmt"
	"log"
	"net"
	"sort"
	"sync"
)

// Handler receives decoded payloads. It runs on the network goroutine.
type Handler func(data any, from *net.UDPAddr)

// Server accepts clients over UDP and relays payloads to them.
type Server struct {
	conn *net.UDPConn

	mu      sync.Mutex
	clients map[string]*net.UDPAddr
	handler Handler

	closed chan struct{}
	wg     sync.WaitGroup
}

// Listen starts a server on addr ("host:port"; port 0 picks a free one).
func Listen(addr string) (*Server, error) {
	udpAddr, err := net.ResolveUDPAddr("udp4", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", addr, err)
	}
	conn, err := net.ListenUDP("udp4", udpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := &Server{
		conn:    conn,
		clients: make(map[string]*net.UDPAddr),
		closed:  make(chan struct{}),
	}
	log.Printf("Netplay server: listening on %s", conn.LocalAddr())

	s.wg.Add(1)
	go s.readLoop()
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() *net.UDPAddr {
	return s.conn.LocalAddr().(*net.UDPAddr)
}

// OnData sets the handler for payloads sent by clients.
func (s *Server) OnData(h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = h
}

// Clients returns the known client addresses sorted by string form.
func (s *Server) Clients() []*net.UDPAddr {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*net.UDPAddr, 0, len(s.clients))
	for _, a := range s.clients {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Send sends v to one client.
func (s *Server) Send(to *net.UDPAddr, v any) error {
	data, err := encode(kindData, v)
	if err != nil {
		return err
	}
	if _, err := s.conn.WriteToUDP(data, to); err != nil {
		return fmt.Errorf("failed to send to %s: %w", to, err)
	}
	return nil
}

// Broadcast sends v to every known client.
func (s *Server) Broadcast(v any) error {
	data, err := encode(kindData, v)
	if err != nil {
		return err
	}

	var errs []error
	for _, to := range s.Clients() {
		if _, err := s.conn.WriteToUDP(data, to); err != nil {
			errs = append(errs, fmt.Errorf("failed to send to %s: %w", to, err))
		}
	}
	return errors.Join(errs...)
}

// Close stops the server.
func (s *Server) Close() error {
	select {
	case <-s.closed:
		return nil
	default:
	}
	close(s.closed)
	err := s.conn.Close()
	s.wg.Wait()
	log.Printf("Netplay server: closed")
	return err
}

func (s *Server) readLoop() {
	defer s.wg.Done()

	buf := make([]byte, maxDatagram)
	for {
		n, from, err := s.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-s.closed:
				return
			default:
			}
			log.Printf("Netplay server: read error: %v", err)
			continue
		}

		kind, v, err := decode(buf[:n])
		if err != nil {
			log.Printf("Netplay server: dropping datagram from %s: %v", from, err)
			continue
		}
		s.handle(kind, v, from)
	}
}

func (s *Server) handle(kind string, v any, from *net.UDPAddr) {
	key := from.String()

	s.mu.Lock()
	_, known := s.clients[key]
	switch kind {
	case kindLeave:
		delete(s.clients, key)
	default:
		s.clients[key] = from
	}
	handler := s.handler
	s.mu.Unlock()

	switch kind {
	case kindJoin:
		if !known {
			log.Printf("Netplay server: client %s connected", key)
		}
	case kindLeave:
		if known {
			log.Printf("Netplay server: client %s disconnected", key)
		}
	case kindData:
		if handler != nil {
			handler(v, from)
		}
	}
}
