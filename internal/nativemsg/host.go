package nativemsg

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chronoguard/chronoguard/internal/models"

	"github.com/google/uuid"
)

// Synthetic identity for browser-sourced samples.
const (
	BrowserBundleID = "com.google.Chrome"
	BrowserAppName  = "Google Chrome"
)

// Store is the slice of the event store the host needs.
type Store interface {
	Insert(sample *models.ActivitySample) (bool, error)
	DailySummary(day string) ([]models.AppUsage, error)
	Count() (int64, error)
}

// Host is the framed stdio request/response server the browser
// extension talks to. One peer at a time; the read loop blocks on the
// input stream, so it normally runs on its own goroutine next to the
// capture engine.
type Host struct {
	store Store
	in    io.Reader
	out   io.Writer

	running   atomic.Bool
	writeMu   sync.Mutex
	sessionID string
}

// NewHost wires a host to its byte streams. For real use the streams
// are os.Stdin and os.Stdout; tests substitute buffers and pipes.
func NewHost(store Store, in io.Reader, out io.Writer) *Host {
	return &Host{
		store: store,
		in:    in,
		out:   out,
	}
}

// Run emits the ready banner, then reads frames until the peer
// disconnects or Stop is called. A short read ends the session cleanly;
// a malformed payload is logged and the loop keeps reading since the
// framing itself is still intact.
func (h *Host) Run() error {
	if !h.running.CompareAndSwap(false, true) {
		return errors.New("host is already running")
	}
	defer h.running.Store(false)

	h.sessionID = uuid.NewString()
	log.Printf("Starting native messaging host (session %s)", h.sessionID)

	h.send(&Response{
		Type:      TypeReady,
		Message:   "ChronoGuard native host ready",
		Timestamp: nowMillis(),
	})

	for h.running.Load() {
		payload, err := ReadFrame(h.in)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				log.Printf("Peer disconnected (session %s)", h.sessionID)
			} else {
				log.Printf("Frame read failed: %v", err)
			}
			break
		}

		msg, err := Decode(payload)
		if err != nil {
			log.Printf("Dropping malformed frame: %v", err)
			continue
		}

		h.dispatch(msg)
	}

	log.Println("Native messaging host stopped")
	return nil
}

// Stop ends the read loop cooperatively and closes the input stream so
// a blocked read returns promptly.
func (h *Host) Stop() {
	h.running.Store(false)
	if closer, ok := h.in.(io.Closer); ok {
		closer.Close()
	}
}

// IsRunning reports whether the read loop is active.
func (h *Host) IsRunning() bool {
	return h.running.Load()
}

func (h *Host) dispatch(msg Message) {
	switch m := msg.(type) {
	case *TabActivityMessage:
		h.handleTabActivity(m)

	case *PageVisibilityMessage:
		// Informational; could feed AFK classification later.
		log.Printf("Page visibility changed: visible=%v", m.Visible)

	case *ActivityCheckMessage:
		if !m.IsActive {
			log.Println("User inactive in browser tab")
		}

	case *ControlMessage:
		h.handleControl(m)

	case *UnknownMessage:
		log.Printf("Unknown message type: %s", m.Type)
	}
}

// handleTabActivity persists one browser-sourced sample. The extension
// timestamps in milliseconds; the store keys on seconds, which also
// collapses message replays onto the existing row.
func (h *Host) handleTabActivity(m *TabActivityMessage) {
	title := m.Title
	url := m.URL

	sample := &models.ActivitySample{
		Timestamp:   m.TimestampMS / 1000,
		AppBundleID: BrowserBundleID,
		AppName:     BrowserAppName,
		WindowTitle: &title,
		URL:         &url,
		IsAfk:       false,
	}

	newRow, err := h.store.Insert(sample)
	if err != nil {
		log.Printf("Failed to store browser activity: %v", err)
		return
	}
	if newRow {
		log.Printf("Logged browser activity: %s", m.Title)
	}
}

func (h *Host) handleControl(m *ControlMessage) {
	switch m.Type {
	case TypeConnection:
		log.Println("Browser extension connected")
		h.send(&Response{
			Type:      TypeConnectionAck,
			Message:   "Connection established",
			Timestamp: nowMillis(),
		})

	case TypeGetStatus:
		connected := true
		h.send(&Response{
			Type:      TypeStatusResponse,
			Message:   "ChronoGuard is running",
			Timestamp: nowMillis(),
			Connected: &connected,
		})

	case TypeOpenApp:
		log.Println("Request to open app received")
		h.send(&Response{
			Type:      TypeAppOpened,
			Message:   "App brought to foreground",
			Timestamp: nowMillis(),
		})

	case TypeOpenReports:
		h.handleOpenReports()
	}
}

func (h *Host) handleOpenReports() {
	today := time.Now().Format("2006-01-02")

	usages, err := h.store.DailySummary(today)
	if err != nil {
		log.Printf("Failed to build reports summary: %v", err)
		usages = nil
	}

	var totalSeconds int64
	for _, u := range usages {
		totalSeconds += u.SecondsActive
	}

	h.send(&Response{
		Type:      TypeReportsData,
		Message:   "Reports generated",
		Timestamp: nowMillis(),
		Data: &ReportsData{
			Date:         today,
			TotalMinutes: totalSeconds / 60,
			AppCount:     len(usages),
		},
	})
}

func (h *Host) send(resp *Response) {
	payload, err := json.Marshal(resp)
	if err != nil {
		log.Printf("Failed to encode %s response: %v", resp.Type, err)
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	if err := WriteFrame(h.out, payload); err != nil {
		log.Printf("Failed to send %s response: %v", resp.Type, err)
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
