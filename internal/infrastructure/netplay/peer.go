package netplay

import (
	"errors"
	"log"
	"net"
)

// Peer is one end of a session. A Client is a Peer; a Server becomes one
// through Host.
type Peer interface {
	Send(v any) error
	OnData(h func(data any))
	Close() error
}

var _ Peer = (*Client)(nil)

// Host adapts a server to a Peer: Send broadcasts to every client and
// payloads from one client are relayed to the others before h sees them.
func Host(s *Server) Peer {
	return &host{Server: s}
}

type host struct {
	*Server
}

func (h *host) Send(v any) error {
	return h.Broadcast(v)
}

func (h *host) OnData(fn func(data any)) {
	h.Server.OnData(func(data any, from *net.UDPAddr) {
		h.relay(data, from)
		if fn != nil {
			fn(data)
		}
	})
}

func (h *host) relay(data any, from *net.UDPAddr) {
	var errs []error
	for _, to := range h.Clients() {
		if to.String() == from.String() {
			continue
		}
		errs = append(errs, h.Server.Send(to, data))
	}
	if err := errors.Join(errs...); err != nil {
		log.Printf("Netplay server: relay failed: %v", err)
	}
}
