package server

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/sadopc/diskview/internal/protocol"
)

// wsConn is the slice of *websocket.Conn the publisher writes through.
// Narrowed so tests can drive the publisher without a live socket.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Publisher serializes outbound messages onto one connection and delivers
// them only while the connection is open. Once the connection is marked
// closed every send is silently dropped: the client is gone, the task
// still gets cleaned up by its own goroutine.
type Publisher struct {
	logger *log.Logger

	mu     sync.Mutex
	conn   wsConn
	closed bool
}

// NewPublisher wraps an open connection.
func NewPublisher(conn wsConn, logger *log.Logger) *Publisher {
	return &Publisher{conn: conn, logger: logger}
}

// Send marshals {type, payload} and writes it if the connection is still
// open. A write failure marks the connection closed; it never propagates
// to the caller.
func (p *Publisher) Send(msgType string, payload any) {
	frame, err := protocol.Encode(msgType, payload)
	if err != nil {
		p.logger.Printf("[ws] marshal %s: %v", msgType, err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if err := p.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		p.closed = true
	}
}

// Open reports whether sends still reach the client.
func (p *Publisher) Open() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.closed
}

// Close marks the connection dead and closes the socket. Safe to call
// more than once.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	conn := p.conn
	p.mu.Unlock()
	_ = conn.Close()
}
