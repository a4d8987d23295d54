package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPHelper_BuildHeaders(t *testing.T) {
	h := NewHTTPHelper()

	headers := h.BuildHeaders(map[string]string{"Content-Type": "application/json", "Accept": "text/plain"})

	assert.Equal(t, UserAgent, headers.Get("User-Agent"))
	assert.Equal(t, "text/plain", headers.Get("Accept"))
	assert.Len(t, headers.Values("Accept"), 1)
	assert.Equal(t, "application/json", headers.Get("Content-Type"))
}

func TestHTTPHelper_IsValidURL(t *testing.T) {
	h := NewHTTPHelper()

	assert.True(t, h.IsValidURL("http://127.0.0.1:1337"))
	assert.True(t, h.IsValidURL("https://cms.example.com/api"))
	assert.False(t, h.IsValidURL("not a url"))
	assert.False(t, h.IsValidURL(""))
}

func TestStringHelper(t *testing.T) {
	s := NewStringHelper()

	assert.Equal(t, "a b", s.TrimWhitespace("  a b \n"))
	assert.Equal(t, "Kent C. Dodds", s.NormalizeWhitespace(" Kent \t C.\n Dodds "))
	assert.Equal(t, "short", s.TruncateString("short", 10))
	assert.Equal(t, "héll...", s.TruncateString("héllo world", 4))
	assert.Equal(t, "...", s.TruncateString("abc", -1))
}
