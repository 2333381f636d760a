package tui

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gorilla/websocket"

	"github.com/sadopc/diskview/internal/protocol"
)

// ServerMsg wraps one decoded server payload for the update loop.
type ServerMsg struct {
	Payload any
}

// DisconnectMsg reports that the server connection is gone.
type DisconnectMsg struct {
	Err error
}

// Client is the WebSocket connection to a diskview server. A background
// reader decodes frames into a channel the tea program drains one Cmd at
// a time.
type Client struct {
	conn *websocket.Conn
	msgs chan tea.Msg

	writeMu sync.Mutex
}

// Dial connects to the server's /ws endpoint.
func Dial(url string, timeout time.Duration) (*Client, error) {
	dialer := websocket.Dialer{HandshakeTimeout: timeout}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to %s: %w", url, err)
	}

	c := &Client{conn: conn, msgs: make(chan tea.Msg, 16)}
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.msgs <- DisconnectMsg{Err: err}
			close(c.msgs)
			return
		}
		payload, err := protocol.DecodeOutbound(data)
		if err != nil {
			// Skip frames we do not understand; a newer server may send
			// message kinds this client predates.
			continue
		}
		c.msgs <- ServerMsg{Payload: payload}
	}
}

// Recv returns a Cmd that delivers the next server message.
func (c *Client) Recv() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-c.msgs
		if !ok {
			return nil
		}
		return msg
	}
}

// StartScan asks the server to begin a scan.
func (c *Client) StartScan(path string, depth int) error {
	return c.send(protocol.TypeStartScan, &protocol.StartScanRequest{
		DrivePath: path,
		ScanDepth: depth,
	})
}

// StopScan asks the server to cancel a running task.
func (c *Client) StopScan(taskID string) error {
	return c.send(protocol.TypeStopScan, &protocol.StopScanRequest{TaskID: taskID})
}

// ListDrives asks for the candidate scan roots.
func (c *Client) ListDrives() error {
	return c.send(protocol.TypeListDrives, &protocol.ListDrivesRequest{})
}

func (c *Client) send(msgType string, payload any) error {
	frame, err := protocol.Encode(msgType, payload)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, frame)
}

// Close tears down the connection. The read loop exits on its own.
func (c *Client) Close() error {
	return c.conn.Close()
}
