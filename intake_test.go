package intake

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cliniccare/go-intake/pkg/client"
	"github.com/cliniccare/go-intake/pkg/renderers/tui"
)

// scriptDriver replays canned answers for a whole session walk.
type scriptDriver struct {
	t        *testing.T
	inputs   []string
	confirms []bool
	selects  []int
	areas    []string
	infos    []string
}

func (d *scriptDriver) Input(_ context.Context, _ tui.InputConfig) (string, error) {
	if len(d.inputs) == 0 {
		d.t.Fatalf("input prompt with empty script")
	}
	out := d.inputs[0]
	d.inputs = d.inputs[1:]
	return out, nil
}

func (d *scriptDriver) Confirm(_ context.Context, _ tui.ConfirmConfig) (bool, error) {
	if len(d.confirms) == 0 {
		d.t.Fatalf("confirm prompt with empty script")
	}
	out := d.confirms[0]
	d.confirms = d.confirms[1:]
	return out, nil
}

func (d *scriptDriver) Select(_ context.Context, _ tui.SelectConfig) (int, error) {
	if len(d.selects) == 0 {
		d.t.Fatalf("select prompt with empty script")
	}
	out := d.selects[0]
	d.selects = d.selects[1:]
	return out, nil
}

func (d *scriptDriver) TextArea(_ context.Context, _ tui.TextAreaConfig) (string, error) {
	if len(d.areas) == 0 {
		d.t.Fatalf("textarea prompt with empty script")
	}
	out := d.areas[0]
	d.areas = d.areas[1:]
	return out, nil
}

func (d *scriptDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func fullWalk(t *testing.T) *scriptDriver {
	return &scriptDriver{
		t: t,
		inputs: []string{
			"Jane Doe",
			"jane@x.com",
			"+1 (555) 123-4567",
			"1990-01-01",
			"14th Street, New York",
			"Software Engineer",
			"John Doe",
			"+1 555-123-4568",
			"BlueCross",
			"ABC1235332",
			"1234SLDKFE",
			"", // skip the document
		},
		selects:  []int{1, 1, 5},
		areas:    []string{"Penicillin", "", "", ""},
		confirms: []bool{true, true, true},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRegister_EndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/users/user-1":
			_, _ = w.Write([]byte(`{"id":"user-1","name":"Jane Doe","email":"jane@x.com","phone":"+15551234567"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/v1/patients":
			_, _ = w.Write([]byte(`{"id":"pat-1","userId":"user-1"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	driver := fullWalk(t)
	session := NewSession(client.New(server.URL),
		WithRenderer(tui.New(tui.WithPromptDriver(driver))),
		WithLogger(quietLogger()))

	outcome, err := session.Register(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !outcome.Succeeded() {
		t.Fatalf("expected success, got %+v", outcome)
	}
	if outcome.Target != "/patients/user-1/new-appointment" {
		t.Fatalf("target: %q", outcome.Target)
	}
	if outcome.Ref == nil || outcome.Ref.ID != "pat-1" {
		t.Fatalf("ref: %+v", outcome.Ref)
	}
	if len(driver.infos) == 0 {
		t.Fatalf("expected the welcome message and section headings")
	}
}

func TestRegister_UnknownIdentity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	session := NewSession(client.New(server.URL), WithLogger(quietLogger()))
	_, err := session.Register(context.Background(), "ghost")
	if !errors.Is(err, ErrIdentityNotFound) {
		t.Fatalf("got %v, want ErrIdentityNotFound", err)
	}
}

func TestRegister_FailureThenDecline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"user-1","name":"Jane Doe"}`))
		default:
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		}
	}))
	defer server.Close()

	driver := fullWalk(t)
	// Consents, then "no" to the review-and-retry question.
	driver.confirms = append(driver.confirms, false)

	session := NewSession(client.New(server.URL),
		WithRenderer(tui.New(tui.WithPromptDriver(driver))),
		WithLogger(quietLogger()))

	outcome, err := session.Register(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if outcome.Succeeded() {
		t.Fatalf("expected failure outcome")
	}
	if outcome.Notice == "" {
		t.Fatalf("failure outcome carries no notice")
	}

	var noticed bool
	for _, info := range driver.infos {
		if info == outcome.Notice {
			noticed = true
		}
	}
	if !noticed {
		t.Fatalf("notice was never presented: %v", driver.infos)
	}
}
