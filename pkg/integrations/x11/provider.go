package x11

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chronoguard/chronoguard/pkg/capability"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/screensaver"
	"github.com/jezek/xgb/xproto"
)

// Provider implements capability.Provider for X11 using a direct XCB
// connection. Window identity comes from WM_CLASS, the title from
// _NET_WM_NAME with a WM_NAME fallback, and idle time from the
// MIT-SCREEN-SAVER extension.
type Provider struct {
	conn       *xgb.Conn
	root       xproto.Window
	atoms      map[string]xproto.Atom
	hasScrnsvr bool
}

// NewProvider connects to the X server and caches the atoms used for
// property lookups.
func NewProvider() (*Provider, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	setup := xproto.Setup(conn)
	root := setup.DefaultScreen(conn).Root

	p := &Provider{
		conn:  conn,
		root:  root,
		atoms: make(map[string]xproto.Atom),
	}

	atomNames := []string{
		"_NET_ACTIVE_WINDOW",
		"_NET_WM_NAME",
		"WM_NAME",
		"WM_CLASS",
		"UTF8_STRING",
	}

	for _, name := range atomNames {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to intern atom %s: %w", name, err)
		}
		p.atoms[name] = reply.Atom
	}

	if err := screensaver.Init(conn); err == nil {
		p.hasScrnsvr = true
	}

	return p, nil
}

// IsAvailable reports whether an X display is reachable.
func (p *Provider) IsAvailable() bool {
	return os.Getenv("DISPLAY") != "" && p.conn != nil
}

// GetFrontmostApp returns the focused window's identity. The WM_CLASS
// class name doubles as the stable identifier since X11 has no bundle
// identifiers; the title is best-effort and may be empty.
func (p *Provider) GetFrontmostApp() (*capability.FrontmostApp, error) {
	windowID, err := p.getActiveWindow()
	if err != nil {
		return nil, err
	}

	instance, class := p.getWindowClass(windowID)

	name := class
	if name == "" {
		name = instance
	}
	if name == "" {
		return nil, fmt.Errorf("focused window 0x%x has no WM_CLASS", windowID)
	}

	return &capability.FrontmostApp{
		BundleID:    strings.ToLower(name),
		Name:        name,
		WindowTitle: p.getWindowName(windowID),
	}, nil
}

// GetIdleSeconds returns seconds since last input via the screensaver
// extension, or 0 when the extension is missing (the user is then never
// classified idle, which errs on the side of counting activity).
func (p *Provider) GetIdleSeconds() (int64, error) {
	if !p.hasScrnsvr {
		return 0, nil
	}

	reply, err := screensaver.QueryInfo(p.conn, xproto.Drawable(p.root)).Reply()
	if err != nil {
		return 0, fmt.Errorf("failed to query idle time: %w", err)
	}

	return int64(reply.MsSinceUserInput) / 1000, nil
}

// Close shuts down the X connection.
func (p *Provider) Close() error {
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
	return nil
}

func (p *Provider) getProperty(window xproto.Window, atom, atomType xproto.Atom, length uint32) ([]byte, error) {
	reply, err := xproto.GetProperty(p.conn, false, window, atom, atomType, 0, length).Reply()
	if err != nil {
		return nil, err
	}
	return reply.Value, nil
}

func (p *Provider) getActiveWindowFromProperty() xproto.Window {
	data, err := p.getProperty(p.root, p.atoms["_NET_ACTIVE_WINDOW"], xproto.AtomWindow, 1)
	if err != nil || len(data) < 4 {
		return 0
	}
	return xproto.Window(binary.LittleEndian.Uint32(data))
}

func (p *Provider) getActiveWindowFromInputFocus() xproto.Window {
	reply, err := xproto.GetInputFocus(p.conn).Reply()
	if err != nil {
		return 0
	}
	return reply.Focus
}

func (p *Provider) getTopLevelParent(window xproto.Window) xproto.Window {
	for {
		reply, err := xproto.QueryTree(p.conn, window).Reply()
		if err != nil || reply.Parent == p.root || reply.Parent == 0 {
			return window
		}
		window = reply.Parent
	}
}

func (p *Provider) hasValidName(window xproto.Window) bool {
	data, _ := p.getProperty(window, p.atoms["_NET_WM_NAME"], p.atoms["UTF8_STRING"], 1)
	if len(data) > 0 {
		return true
	}
	data, _ = p.getProperty(window, p.atoms["WM_NAME"], xproto.AtomString, 1)
	return len(data) > 0
}

// getActiveWindow retries briefly because _NET_ACTIVE_WINDOW lags the
// actual focus change on some window managers.
func (p *Provider) getActiveWindow() (xproto.Window, error) {
	for i := 0; i < 5; i++ {
		windowID := p.getActiveWindowFromProperty()
		if windowID != 0 && p.hasValidName(windowID) {
			return windowID, nil
		}

		windowID = p.getActiveWindowFromInputFocus()
		if windowID != 0 && windowID != p.root {
			topLevel := p.getTopLevelParent(windowID)
			if topLevel != 0 && p.hasValidName(topLevel) {
				return topLevel, nil
			}
		}

		time.Sleep(20 * time.Millisecond)
	}

	return 0, fmt.Errorf("no active window found")
}

func (p *Provider) getWindowName(window xproto.Window) string {
	data, err := p.getProperty(window, p.atoms["_NET_WM_NAME"], p.atoms["UTF8_STRING"], 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	data, err = p.getProperty(window, p.atoms["WM_NAME"], xproto.AtomString, 256)
	if err == nil && len(data) > 0 {
		return strings.TrimRight(string(data), "\x00")
	}

	return ""
}

func (p *Provider) getWindowClass(window xproto.Window) (instance, class string) {
	data, err := p.getProperty(window, p.atoms["WM_CLASS"], xproto.AtomString, 256)
	if err != nil || len(data) == 0 {
		return "", ""
	}

	parts := strings.Split(strings.TrimRight(string(data), "\x00"), "\x00")
	if len(parts) >= 1 {
		instance = parts[0]
	}
	if len(parts) >= 2 {
		class = parts[1]
	}
	return instance, class
}
