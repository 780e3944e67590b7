// Package assistant holds the chat-widget configuration record for the
// Blade Properties assistant: the webhook the widget posts to, the bot's
// display strings and the canned replies it picks from.
//
// A Config is immutable once built. The built-in record returned by Default
// is created once per process and shared by every reader.
package assistant

import (
	"fmt"
	"sync"
)

// Built-in values of the assistant record.
const (
	DefaultWebhookURL     = "https://n8n.ai4eg.com/webhook/6e23aba0-815f-4909-8f46-1c6e19b15b57"
	DefaultBotName        = "Blade Properties Assistant"
	DefaultWelcomeMessage = `Hello! Ask me to show you "The Downtown Skyscraper" or "The Seaside Villa".`

	DefaultActionResponse      = "Of course! I'll open the page for that project."
	DefaultModalActionResponse = "Of course! Opening the project gallery for you."
	DefaultUnexpectedFormat    = "I received a response, but it had an unexpected format."
	DefaultErrorMessage        = "Sorry, there was an issue processing the response."
)

// Wire names of the record fields, as the widget script reads them.
const (
	FieldWebhookURL          = "webhookUrl"
	FieldBotName             = "botName"
	FieldWelcomeMessage      = "welcomeMessage"
	FieldActionResponse      = "messages.actionResponse"
	FieldModalActionResponse = "messages.modalActionResponse"
	FieldUnexpectedFormat    = "messages.unexpectedFormat"
	FieldErrorMessage        = "messages.errorMessage"
)

var fieldOrder = []string{
	FieldWebhookURL,
	FieldBotName,
	FieldWelcomeMessage,
	FieldActionResponse,
	FieldModalActionResponse,
	FieldUnexpectedFormat,
	FieldErrorMessage,
}

// Messages are the canned replies the widget shows depending on how a
// webhook response was handled.
type Messages struct {
	ActionResponse      string `mapstructure:"actionResponse" json:"actionResponse" yaml:"actionResponse" validate:"required"`
	ModalActionResponse string `mapstructure:"modalActionResponse" json:"modalActionResponse" yaml:"modalActionResponse" validate:"required"`
	UnexpectedFormat    string `mapstructure:"unexpectedFormat" json:"unexpectedFormat" yaml:"unexpectedFormat" validate:"required"`
	ErrorMessage        string `mapstructure:"errorMessage" json:"errorMessage" yaml:"errorMessage" validate:"required"`
}

// Spec is the authoring form of the record. Files and environment variables
// decode into a Spec, which New then freezes into a Config.
type Spec struct {
	WebhookURL     string   `mapstructure:"webhookUrl" json:"webhookUrl" yaml:"webhookUrl" validate:"required,absurl"`
	BotName        string   `mapstructure:"botName" json:"botName" yaml:"botName" validate:"required"`
	WelcomeMessage string   `mapstructure:"welcomeMessage" json:"welcomeMessage" yaml:"welcomeMessage" validate:"required"`
	Messages       Messages `mapstructure:"messages" json:"messages" yaml:"messages"`
}

// DefaultSpec returns the built-in record values.
func DefaultSpec() Spec {
	return Spec{
		WebhookURL:     DefaultWebhookURL,
		BotName:        DefaultBotName,
		WelcomeMessage: DefaultWelcomeMessage,
		Messages: Messages{
			ActionResponse:      DefaultActionResponse,
			ModalActionResponse: DefaultModalActionResponse,
			UnexpectedFormat:    DefaultUnexpectedFormat,
			ErrorMessage:        DefaultErrorMessage,
		},
	}
}

// Config is the immutable assistant record. It has no mutating methods and
// is safe to share between goroutines.
type Config struct {
	webhookURL     string
	botName        string
	welcomeMessage string
	messages       Messages
}

// New validates spec and freezes it into a Config.
func New(spec Spec) (*Config, error) {
	if err := Validate(spec); err != nil {
		return nil, err
	}
	return &Config{
		webhookURL:     spec.WebhookURL,
		botName:        spec.BotName,
		welcomeMessage: spec.WelcomeMessage,
		messages:       spec.Messages,
	}, nil
}

var (
	defaultOnce   sync.Once
	defaultConfig *Config
)

// Default returns the process-wide built-in record. Every call returns the
// same pointer.
func Default() *Config {
	defaultOnce.Do(func() {
		cfg, err := New(DefaultSpec())
		if err != nil {
			panic(fmt.Sprintf("assistant: built-in record is invalid: %v", err))
		}
		defaultConfig = cfg
	})
	return defaultConfig
}

// WebhookURL is where the widget sends chat requests.
func (c *Config) WebhookURL() string { return c.webhookURL }

// BotName is the display name shown in the widget header.
func (c *Config) BotName() string { return c.botName }

// WelcomeMessage is shown when a chat session starts.
func (c *Config) WelcomeMessage() string { return c.welcomeMessage }

// Messages returns a copy of the canned replies.
func (c *Config) Messages() Messages { return c.messages }

// Spec returns the record in authoring form.
func (c *Config) Spec() Spec {
	return Spec{
		WebhookURL:     c.webhookURL,
		BotName:        c.botName,
		WelcomeMessage: c.welcomeMessage,
		Messages:       c.messages,
	}
}

// Equal reports whether both records hold the same values.
func (c *Config) Equal(other *Config) bool {
	if c == nil || other == nil {
		return c == other
	}
	return *c == *other
}

// Fields returns the wire names of all record fields in declaration order.
func Fields() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// Lookup returns the value of the field with the given wire name.
func (c *Config) Lookup(name string) (string, bool) {
	switch name {
	case FieldWebhookURL:
		return c.webhookURL, true
	case FieldBotName:
		return c.botName, true
	case FieldWelcomeMessage:
		return c.welcomeMessage, true
	case FieldActionResponse:
		return c.messages.ActionResponse, true
	case FieldModalActionResponse:
		return c.messages.ModalActionResponse, true
	case FieldUnexpectedFormat:
		return c.messages.UnexpectedFormat, true
	case FieldErrorMessage:
		return c.messages.ErrorMessage, true
	default:
		return "", false
	}
}
