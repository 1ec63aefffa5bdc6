package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseChatRequest(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"text message", `{"message":"Oi, quero um orçamento"}`, "Oi, quero um orçamento"},
		{"whitespace kept for the relay to trim", `{"message":"  oi  "}`, "  oi  "},
		{"extra fields ignored", `{"message":"oi","session_id":"abc"}`, "oi"},
		{"missing field", `{}`, ""},
		{"null field", `{"message":null}`, ""},
		{"number field", `{"message":42}`, ""},
		{"object field", `{"message":{"text":"oi"}}`, ""},
		{"array body", `["oi"]`, ""},
		{"malformed json", `{"message":`, ""},
		{"empty body", ``, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ParseChatRequest([]byte(tc.body)).Message)
		})
	}
}
