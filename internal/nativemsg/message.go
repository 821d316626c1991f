package nativemsg

import (
	"encoding/json"
	"fmt"
)

// Message type tags exchanged with the browser extension.
const (
	TypeTabActivity    = "tab_activity"
	TypePageLoad       = "page_load"
	TypeURLChange      = "url_change"
	TypePageVisibility = "page_visibility"
	TypeActivityCheck  = "activity_check"
	TypeConnection     = "connection"
	TypeGetStatus      = "get_status"
	TypeOpenApp        = "open_app"
	TypeOpenReports    = "open_reports"

	TypeReady          = "ready"
	TypeConnectionAck  = "connection_ack"
	TypeStatusResponse = "status_response"
	TypeAppOpened      = "app_opened"
	TypeReportsData    = "reports_data"
)

// Message is one decoded inbound frame. Each type tag maps to its own
// variant so required fields are checked once, at decode time; a frame
// failing validation is a decode fault for that frame only.
type Message interface {
	MessageType() string
}

// TabActivityMessage covers tab_activity, page_load, and url_change,
// which all carry a URL observation with a millisecond timestamp.
type TabActivityMessage struct {
	Type        string
	URL         string
	Title       string
	TimestampMS int64
}

func (m *TabActivityMessage) MessageType() string { return m.Type }

// PageVisibilityMessage reports the page becoming visible or hidden.
type PageVisibilityMessage struct {
	Visible bool
}

func (m *PageVisibilityMessage) MessageType() string { return TypePageVisibility }

// ActivityCheckMessage reports in-tab user activity.
type ActivityCheckMessage struct {
	IsActive bool
}

func (m *ActivityCheckMessage) MessageType() string { return TypeActivityCheck }

// ControlMessage covers the field-less request types: connection,
// get_status, open_app, open_reports.
type ControlMessage struct {
	Type string
}

func (m *ControlMessage) MessageType() string { return m.Type }

// UnknownMessage carries an unrecognized type tag. It is not a decode
// error; the host logs and ignores it.
type UnknownMessage struct {
	Type string
}

func (m *UnknownMessage) MessageType() string { return m.Type }

// Decode parses one frame payload into its message variant. Pointer
// fields in the wire structs distinguish a missing key from a zero
// value so required fields are genuinely required.
func Decode(payload []byte) (Message, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("malformed payload: %w", err)
	}
	if probe.Type == "" {
		return nil, fmt.Errorf("payload has no type field")
	}

	switch probe.Type {
	case TypeTabActivity, TypePageLoad, TypeURLChange:
		var wire struct {
			URL       *string `json:"url"`
			Title     *string `json:"title"`
			Timestamp *int64  `json:"timestamp"`
		}
		if err := json.Unmarshal(payload, &wire); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", probe.Type, err)
		}
		if wire.URL == nil || wire.Title == nil || wire.Timestamp == nil {
			return nil, fmt.Errorf("%s payload missing url, title, or timestamp", probe.Type)
		}
		return &TabActivityMessage{
			Type:        probe.Type,
			URL:         *wire.URL,
			Title:       *wire.Title,
			TimestampMS: *wire.Timestamp,
		}, nil

	case TypePageVisibility:
		var wire struct {
			Visible *bool `json:"visible"`
		}
		if err := json.Unmarshal(payload, &wire); err != nil {
			return nil, fmt.Errorf("malformed page_visibility payload: %w", err)
		}
		if wire.Visible == nil {
			return nil, fmt.Errorf("page_visibility payload missing visible")
		}
		return &PageVisibilityMessage{Visible: *wire.Visible}, nil

	case TypeActivityCheck:
		var wire struct {
			IsActive *bool `json:"isActive"`
		}
		if err := json.Unmarshal(payload, &wire); err != nil {
			return nil, fmt.Errorf("malformed activity_check payload: %w", err)
		}
		if wire.IsActive == nil {
			return nil, fmt.Errorf("activity_check payload missing isActive")
		}
		return &ActivityCheckMessage{IsActive: *wire.IsActive}, nil

	case TypeConnection, TypeGetStatus, TypeOpenApp, TypeOpenReports:
		return &ControlMessage{Type: probe.Type}, nil

	default:
		return &UnknownMessage{Type: probe.Type}, nil
	}
}

// Response is one outbound frame. Every response carries its type tag,
// a human-readable message, and a millisecond timestamp.
type Response struct {
	Type      string       `json:"type"`
	Message   string       `json:"message"`
	Timestamp int64        `json:"timestamp"`
	Connected *bool        `json:"connected,omitempty"`
	Data      *ReportsData `json:"data,omitempty"`
}

// ReportsData is the open_reports summary payload.
type ReportsData struct {
	Date         string `json:"date"`
	TotalMinutes int64  `json:"totalMinutes"`
	AppCount     int    `json:"appCount"`
}
