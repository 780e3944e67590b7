package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"bladeassist/pkg/assistant"
)

// script renders the record as the `const CONFIG = {...};` file the widget
// includes with a <script> tag.
func script(cfg *assistant.Config) ([]byte, error) {
	msgs := cfg.Messages()

	var b strings.Builder
	b.WriteString("/**\n")
	fmt.Fprintf(&b, " * Configuration file for %s\n", commentSafe(cfg.BotName()))
	b.WriteString(" * Generated by bladeassist; edit the source configuration instead of this file.\n")
	b.WriteString(" */\n\n")
	b.WriteString("const CONFIG = {\n")

	b.WriteString("    // n8n webhook receiving chat requests\n")
	if err := property(&b, 1, "webhookUrl", cfg.WebhookURL(), true); err != nil {
		return nil, err
	}
	b.WriteString("\n    // Bot settings\n")
	if err := property(&b, 1, "botName", cfg.BotName(), true); err != nil {
		return nil, err
	}
	if err := property(&b, 1, "welcomeMessage", cfg.WelcomeMessage(), true); err != nil {
		return nil, err
	}

	b.WriteString("\n    // Messages\n")
	b.WriteString("    messages: {\n")
	entries := []struct {
		key, value string
	}{
		{"actionResponse", msgs.ActionResponse},
		{"modalActionResponse", msgs.ModalActionResponse},
		{"unexpectedFormat", msgs.UnexpectedFormat},
		{"errorMessage", msgs.ErrorMessage},
	}
	for i, e := range entries {
		if err := property(&b, 2, e.key, e.value, i < len(entries)-1); err != nil {
			return nil, err
		}
	}
	b.WriteString("    }\n")
	b.WriteString("};\n")

	return []byte(b.String()), nil
}

// property writes one `key: "value"` line. Values are encoded as JSON
// strings, which escapes quotes, </script> sequences and line separators.
func property(b *strings.Builder, depth int, key, value string, trailingComma bool) error {
	literal, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	b.WriteString(strings.Repeat("    ", depth))
	b.WriteString(key)
	b.WriteString(": ")
	b.Write(literal)
	if trailingComma {
		b.WriteByte(',')
	}
	b.WriteByte('\n')
	return nil
}

func commentSafe(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}
