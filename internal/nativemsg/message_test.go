package nativemsg

import "testing"

func TestDecodeTabActivity(t *testing.T) {
	payload := []byte(`{"type":"tab_activity","url":"https://example.com","title":"Example","timestamp":1756000000000}`)

	msg, err := Decode(payload)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}

	tab, ok := msg.(*TabActivityMessage)
	if !ok {
		t.Fatalf("Decode() returned %T, want *TabActivityMessage", msg)
	}
	if tab.URL != "https://example.com" {
		t.Errorf("URL = %q", tab.URL)
	}
	if tab.Title != "Example" {
		t.Errorf("Title = %q", tab.Title)
	}
	if tab.TimestampMS != 1756000000000 {
		t.Errorf("TimestampMS = %d", tab.TimestampMS)
	}
}

func TestDecodeURLVariantsShareShape(t *testing.T) {
	for _, typ := range []string{TypeTabActivity, TypePageLoad, TypeURLChange} {
		payload := []byte(`{"type":"` + typ + `","url":"https://example.com","title":"T","timestamp":1}`)
		msg, err := Decode(payload)
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", typ, err)
		}
		if msg.MessageType() != typ {
			t.Errorf("MessageType() = %s, want %s", msg.MessageType(), typ)
		}
	}
}

func TestDecodeRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"tab_activity missing url", `{"type":"tab_activity","title":"T","timestamp":1}`},
		{"tab_activity missing title", `{"type":"tab_activity","url":"u","timestamp":1}`},
		{"tab_activity missing timestamp", `{"type":"tab_activity","url":"u","title":"T"}`},
		{"page_visibility missing visible", `{"type":"page_visibility"}`},
		{"activity_check missing isActive", `{"type":"activity_check"}`},
		{"no type field", `{"url":"u"}`},
		{"not json", `{{{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode([]byte(tt.payload)); err == nil {
				t.Errorf("Decode(%s) should fail", tt.payload)
			}
		})
	}
}

func TestDecodeControlMessages(t *testing.T) {
	for _, typ := range []string{TypeConnection, TypeGetStatus, TypeOpenApp, TypeOpenReports} {
		msg, err := Decode([]byte(`{"type":"` + typ + `"}`))
		if err != nil {
			t.Fatalf("Decode(%s) error: %v", typ, err)
		}
		if _, ok := msg.(*ControlMessage); !ok {
			t.Errorf("Decode(%s) returned %T, want *ControlMessage", typ, msg)
		}
		if msg.MessageType() != typ {
			t.Errorf("MessageType() = %s, want %s", msg.MessageType(), typ)
		}
	}
}

func TestDecodeUnknownTypeIsNotAnError(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"future_extension"}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	unknown, ok := msg.(*UnknownMessage)
	if !ok {
		t.Fatalf("Decode() returned %T, want *UnknownMessage", msg)
	}
	if unknown.Type != "future_extension" {
		t.Errorf("Type = %q", unknown.Type)
	}
}

func TestDecodePageVisibility(t *testing.T) {
	msg, err := Decode([]byte(`{"type":"page_visibility","visible":false}`))
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	vis, ok := msg.(*PageVisibilityMessage)
	if !ok {
		t.Fatalf("Decode() returned %T", msg)
	}
	if vis.Visible {
		t.Error("Visible = true, want false")
	}
}
