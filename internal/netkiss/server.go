// Package netkiss exposes the KISS byte protocol over TCP, as an
// alternative to a serial attachment, and advertises it on the local
// network via mDNS/DNS-SD — following dns_sd.go and kissutil.go's
// TCP/serial duality.
package netkiss

import (
	"context"
	"fmt"
	"net"

	"github.com/brutella/dnssd"
	"github.com/charmbracelet/log"
)

const ServiceType = "_kiss-tnc._tcp"

// Server accepts TCP KISS clients and fans every received byte out to
// OnByte, while Broadcast lets a caller push outbound KISS frames
// back to every connected client.
type Server struct {
	ln      net.Listener
	clients map[net.Conn]struct{}
	OnByte  func(b byte)
}

func Listen(addr string, onByte func(byte)) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	return &Server{ln: ln, clients: map[net.Conn]struct{}{}, OnByte: onByte}, nil
}

func (s *Server) Addr() net.Addr { return s.ln.Addr() }

// Serve blocks accepting connections until the listener is closed.
func (s *Server) Serve() error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return err
		}
		s.clients[conn] = struct{}{}
		go s.readLoop(conn)
	}
}

func (s *Server) readLoop(conn net.Conn) {
	defer func() {
		delete(s.clients, conn)
		conn.Close()
	}()
	buf := make([]byte, 1)
	for {
		n, err := conn.Read(buf)
		if n == 1 && s.OnByte != nil {
			s.OnByte(buf[0])
		}
		if err != nil {
			return
		}
	}
}

// Broadcast writes an already-KISS-framed payload to every connected
// client.
func (s *Server) Broadcast(frame []byte) {
	for conn := range s.clients {
		_, _ = conn.Write(frame)
	}
}

func (s *Server) Close() error {
	return s.ln.Close()
}

// Announce advertises the listening port on the local network via
// mDNS/DNS-SD, returning the running responder's stop function.
func Announce(name string, port int) (func(), error) {
	cfg := dnssd.Config{
		Name: name,
		Type: ServiceType,
		Port: port,
	}
	sv, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("create dns-sd service: %w", err)
	}
	rp, err := dnssd.NewResponder()
	if err != nil {
		return nil, fmt.Errorf("create dns-sd responder: %w", err)
	}
	if _, err := rp.Add(sv); err != nil {
		return nil, fmt.Errorf("add dns-sd service: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := rp.Respond(ctx); err != nil {
			log.Error("dns-sd responder stopped", "err", err)
		}
	}()

	log.Info("announcing KISS TCP service", "port", port, "name", name)
	return cancel, nil
}
