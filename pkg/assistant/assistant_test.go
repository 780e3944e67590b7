package assistant

import (
	"net/url"
	"sync"
	"testing"
)

func TestDefault_WebhookURLIsExact(t *testing.T) {
	want := "https://n8n.ai4eg.com/webhook/6e23aba0-815f-4909-8f46-1c6e19b15b57"
	if got := Default().WebhookURL(); got != want {
		t.Fatalf("expected webhook %q, got %q", want, got)
	}
}

func TestDefault_ErrorMessageIsExact(t *testing.T) {
	want := "Sorry, there was an issue processing the response."
	if got := Default().Messages().ErrorMessage; got != want {
		t.Fatalf("expected error message %q, got %q", want, got)
	}
}

func TestDefault_AllFieldsPresent(t *testing.T) {
	cfg := Default()
	for _, name := range Fields() {
		value, ok := cfg.Lookup(name)
		if !ok {
			t.Fatalf("field %q not readable by name", name)
		}
		if value == "" {
			t.Fatalf("field %q is empty", name)
		}
	}
}

func TestDefault_WebhookURLIsAbsolute(t *testing.T) {
	u, err := url.Parse(Default().WebhookURL())
	if err != nil {
		t.Fatalf("parse webhook url: %v", err)
	}
	if !u.IsAbs() || u.Host == "" {
		t.Fatalf("expected absolute url, got %q", u.String())
	}
}

func TestDefault_ReferentiallyStable(t *testing.T) {
	first := Default()

	var wg sync.WaitGroup
	results := make([]*Config, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Default()
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != first {
			t.Fatalf("call %d returned a different record", i)
		}
	}
	if first.BotName() != Default().BotName() {
		t.Fatalf("repeated reads returned different values")
	}
}

func TestNew_SameSourceIsEqual(t *testing.T) {
	a, err := New(DefaultSpec())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	b, err := New(DefaultSpec())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if a == b {
		t.Fatalf("expected two distinct records")
	}
	if !a.Equal(b) {
		t.Fatalf("expected records built from the same source to be equal")
	}
	if !a.Equal(Default()) {
		t.Fatalf("expected record to equal the built-in one")
	}
}

func TestEqual_DetectsDifference(t *testing.T) {
	spec := DefaultSpec()
	spec.Messages.ActionResponse = "Opening it now."

	changed, err := New(spec)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if changed.Equal(Default()) {
		t.Fatalf("expected records with different messages to differ")
	}

	var nilCfg *Config
	if nilCfg.Equal(Default()) {
		t.Fatalf("nil record must not equal a real one")
	}
}

func TestMessages_ReturnsCopy(t *testing.T) {
	cfg := Default()
	msgs := cfg.Messages()
	msgs.ErrorMessage = "tampered"

	if cfg.Messages().ErrorMessage != DefaultErrorMessage {
		t.Fatalf("mutating the returned messages changed the record")
	}

	spec := cfg.Spec()
	spec.BotName = "tampered"
	if cfg.BotName() != DefaultBotName {
		t.Fatalf("mutating the returned spec changed the record")
	}
}

func TestLookup(t *testing.T) {
	cfg := Default()

	tests := []struct {
		name string
		want string
	}{
		{FieldWebhookURL, DefaultWebhookURL},
		{FieldBotName, "Blade Properties Assistant"},
		{FieldWelcomeMessage, `Hello! Ask me to show you "The Downtown Skyscraper" or "The Seaside Villa".`},
		{FieldActionResponse, "Of course! I'll open the page for that project."},
		{FieldModalActionResponse, "Of course! Opening the project gallery for you."},
		{FieldUnexpectedFormat, "I received a response, but it had an unexpected format."},
		{FieldErrorMessage, "Sorry, there was an issue processing the response."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cfg.Lookup(tt.name)
			if !ok {
				t.Fatalf("expected field %q to exist", tt.name)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}

	if _, ok := cfg.Lookup("messages"); ok {
		t.Fatalf("expected non-leaf name to be rejected")
	}
	if _, ok := cfg.Lookup("webhookURL"); ok {
		t.Fatalf("expected lookup to be case sensitive")
	}
}

func TestFields_ReturnsCopy(t *testing.T) {
	fields := Fields()
	if len(fields) != 7 {
		t.Fatalf("expected 7 fields, got %d", len(fields))
	}
	fields[0] = "changed"
	if Fields()[0] != FieldWebhookURL {
		t.Fatalf("mutating the returned slice changed the field order")
	}
}

func TestMessageFor(t *testing.T) {
	cfg := Default()

	tests := []struct {
		outcome Outcome
		want    string
	}{
		{OutcomeAction, DefaultActionResponse},
		{OutcomeModalAction, DefaultModalActionResponse},
		{OutcomeUnexpectedFormat, DefaultUnexpectedFormat},
		{OutcomeError, DefaultErrorMessage},
		{Outcome(42), DefaultErrorMessage},
	}

	for _, tt := range tests {
		t.Run(tt.outcome.String(), func(t *testing.T) {
			if got := cfg.MessageFor(tt.outcome); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseOutcome(t *testing.T) {
	for _, o := range []Outcome{OutcomeAction, OutcomeModalAction, OutcomeUnexpectedFormat, OutcomeError} {
		got, err := ParseOutcome(o.String())
		if err != nil {
			t.Fatalf("parse %q: %v", o.String(), err)
		}
		if got != o {
			t.Fatalf("expected %v, got %v", o, got)
		}
	}

	if _, err := ParseOutcome("redirect"); err == nil {
		t.Fatalf("expected error for unknown outcome")
	}
}
