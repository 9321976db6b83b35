package telegram

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBotServer(t *testing.T, sendMessage http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Scanner","username":"scanner_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			sendMessage(w, r)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SendMessage(t *testing.T) {
	var form map[string]string
	srv := newBotServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = map[string]string{
			"chat_id":                  r.FormValue("chat_id"),
			"text":                     r.FormValue("text"),
			"parse_mode":               r.FormValue("parse_mode"),
			"disable_web_page_preview": r.FormValue("disable_web_page_preview"),
		}
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"},"text":"ok"}}`))
	})

	n, err := NewClient("token", 42, WithAPIEndpoint(srv.URL+"/bot%s/%s"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	require.NoError(t, n.SendMessage("*AAPL* matched"))

	assert.Equal(t, "42", form["chat_id"])
	assert.Equal(t, "*AAPL* matched", form["text"])
	assert.Equal(t, "Markdown", form["parse_mode"])
	assert.Equal(t, "true", form["disable_web_page_preview"])
}

func TestClient_SendMessageFailure(t *testing.T) {
	srv := newBotServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	})

	n, err := NewClient("token", 42, WithAPIEndpoint(srv.URL+"/bot%s/%s"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	err = n.SendMessage("hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat 42")
	assert.Contains(t, err.Error(), "chat not found")
}

func TestNewClient_RejectsIncompleteConfig(t *testing.T) {
	_, err := NewClient("", 42)
	assert.EqualError(t, err, "telegram bot token is empty")

	_, err = NewClient("token", 0)
	assert.EqualError(t, err, "telegram chat id is not set")
}
