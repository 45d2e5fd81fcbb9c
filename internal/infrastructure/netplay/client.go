package netplay

import (
	"errors"
	"fmt"
	"log"
	"net"
	"sync"
	"time"
)

// ErrNotConnected is returned by Send while the client has no connection.
var ErrNotConnected = errors.New("not connected")

// DefaultRetryInterval is the pause between reconnect attempts.
const DefaultRetryInterval = time.Second

// Client is a connection to a Server that reconnects when it is lost.
type Client struct {
	addr  string
	retry time.Duration

	mu      sync.Mutex
	conn    *net.UDPConn
	handler func(data any)

	closed chan struct{}
	wg     sync.WaitGroup
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRetryInterval sets the pause between reconnect attempts.
func WithRetryInterval(d time.Duration) ClientOption {
	return func(c *Client) { c.retry = d }
}

// Dial connects to the server at addr.
func Dial(addr string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		addr:   addr,
		retry:  DefaultRetryInterval,
		closed: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	conn, err := c.connect()
	if err != nil {
		return nil, err
	}
	c.conn = conn

	c.wg.Add(1)
	go c.readLoop()
	return c, nil
}

func (c *Client) connect() (*net.UDPConn, error) {
	raddr, err := net.ResolveUDPAddr("udp4", c.addr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", c.addr, err)
	}
	conn, err := net.DialUDP("udp4", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", c.addr, err)
	}

	hello, err := encode(kindJoin, nil)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := conn.Write(hello); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to join %s: %w", c.addr, err)
	}
	log.Printf("Netplay client: connected to %s from %s", c.addr, conn.LocalAddr())
	return conn, nil
}

// OnData sets the handler for payloads sent by the server. It runs on the
// network goroutine.
func (c *Client) OnData(h func(data any)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// Send sends v to the server.
func (c *Client) Send(v any) error {
	data, err := encode(kindData, v)
	if err != nil {
		return err
	}

	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("failed to send to %s: %w", c.addr, err)
	}
	return nil
}

// Close leaves the server and stops reconnecting.
func (c *Client) Close() error {
	select {
	case <-c.closed:
		return nil
	default:
	}
	close(c.closed)

	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	var err error
	if conn != nil {
		if bye, encErr := encode(kindLeave, nil); encErr == nil {
			_, _ = conn.Write(bye)
		}
		err = conn.Close()
	}
	c.wg.Wait()
	log.Printf("Netplay client: closed")
	return err
}

func (c *Client) readLoop() {
	defer c.wg.Done()

	buf := make([]byte, maxDatagram)
	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn == nil {
			return
		}

		n, err := conn.Read(buf)
		if err != nil {
			select {
			case <-c.closed:
				return
			default:
			}
			log.Printf("Netplay client: lost connection (%v), trying to reconnect...", err)
			if !c.reconnect(conn) {
				return
			}
			continue
		}

		kind, v, err := decode(buf[:n])
		if err != nil {
			log.Printf("Netplay client: dropping datagram: %v", err)
			continue
		}
		if kind != kindData {
			continue
		}

		c.mu.Lock()
		handler := c.handler
		c.mu.Unlock()
		if handler != nil {
			handler(v)
		}
	}
}

// reconnect replaces old with a fresh connection, retrying until it succeeds
// or the client is closed.
func (c *Client) reconnect(old *net.UDPConn) bool {
	c.mu.Lock()
	if c.conn == old {
		c.conn = nil
	}
	c.mu.Unlock()
	_ = old.Close()

	for {
		select {
		case <-c.closed:
			return false
		case <-time.After(c.retry):
		}

		conn, err := c.connect()
		if err != nil {
			log.Printf("Netplay client: reconnect failed: %v", err)
			continue
		}

		c.mu.Lock()
		select {
		case <-c.closed:
			c.mu.Unlock()
			_ = conn.Close()
			return false
		default:
		}
		c.conn = conn
		c.mu.Unlock()
		return true
	}
}
