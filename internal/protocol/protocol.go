// Package protocol defines the JSON message envelopes exchanged between
// the diskview server and its clients.
package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/sadopc/diskview/internal/drives"
	"github.com/sadopc/diskview/internal/stats"
)

// Message type tags. Inbound kinds form a closed union; anything else is
// rejected explicitly.
const (
	// inbound
	TypeStartScan  = "start_scan"
	TypeStopScan   = "stop_scan"
	TypeListDrives = "list_drives"

	// outbound
	TypeScanStarted  = "scan_started"
	TypeScanProgress = "scan_progress"
	TypeScanComplete = "scan_complete"
	TypeScanError    = "scan_error"
	TypeScanStopped  = "scan_stopped"
	TypeDrives       = "drives"
)

// Envelope is the wire shape of every message in both directions.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// StartScanRequest begins a new scan task.
type StartScanRequest struct {
	DrivePath string `json:"drivePath"`
	ScanDepth int    `json:"scanDepth"`
}

// StopScanRequest asks for cancellation of a running task.
type StopScanRequest struct {
	TaskID string `json:"taskId"`
}

// ListDrivesRequest asks for the candidate scan roots.
type ListDrivesRequest struct{}

// ScanStarted acknowledges a started task.
type ScanStarted struct {
	TaskID string `json:"taskId"`
}

// ScanProgress is a throttled snapshot of a running scan.
type ScanProgress struct {
	TaskID       string `json:"taskId"`
	ScannedCount int64  `json:"scannedCount"`
	TotalSize    int64  `json:"totalSize"`
	ErrorCount   int64  `json:"errorCount"`
	CurrentPath  string `json:"currentPath"`
	Percentage   int    `json:"percentage"`
}

// ScanComplete carries the formatted result. Duration is whole seconds.
type ScanComplete struct {
	TaskID   string        `json:"taskId"`
	Stats    *stats.Result `json:"stats"`
	Duration int64         `json:"duration"`
}

// ScanError reports an invalid root or an unrecoverable failure.
type ScanError struct {
	TaskID string `json:"taskId,omitempty"`
	Error  string `json:"error"`
}

// ScanStopped acknowledges a stop request, independent of where the
// engine currently is in the tree.
type ScanStopped struct {
	TaskID string `json:"taskId"`
}

// DrivesPayload answers list_drives.
type DrivesPayload struct {
	Drives []drives.Drive `json:"drives"`
}

// UnknownTypeError marks an inbound message kind outside the union.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown message type %q", e.Type)
}

// Encode wraps a payload in its envelope.
func Encode(msgType string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Type: msgType, Payload: data})
}

// DecodeInbound parses one client-to-server frame into its concrete
// request type.
func DecodeInbound(data []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed message: %w", err)
	}

	switch env.Type {
	case TypeStartScan:
		var req StartScanRequest
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, &req); err != nil {
				return nil, fmt.Errorf("malformed %s payload: %w", TypeStartScan, err)
			}
		}
		return &req, nil
	case TypeStopScan:
		var req StopScanRequest
		if len(env.Payload) > 0 {
			if err := json.Unmarshal(env.Payload, &req); err != nil {
				return nil, fmt.Errorf("malformed %s payload: %w", TypeStopScan, err)
			}
		}
		return &req, nil
	case TypeListDrives:
		return &ListDrivesRequest{}, nil
	default:
		return nil, &UnknownTypeError{Type: env.Type}
	}
}

// DecodeOutbound parses one server-to-client frame into its concrete
// payload type. Clients use it; the server only encodes these.
func DecodeOutbound(data []byte) (any, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("malformed message: %w", err)
	}

	var payload any
	switch env.Type {
	case TypeScanStarted:
		payload = &ScanStarted{}
	case TypeScanProgress:
		payload = &ScanProgress{}
	case TypeScanComplete:
		payload = &ScanComplete{}
	case TypeScanError:
		payload = &ScanError{}
	case TypeScanStopped:
		payload = &ScanStopped{}
	case TypeDrives:
		payload = &DrivesPayload{}
	default:
		return nil, &UnknownTypeError{Type: env.Type}
	}

	if len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, payload); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
		}
	}
	return payload, nil
}
