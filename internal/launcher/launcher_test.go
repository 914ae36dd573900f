// ABOUTME: Tests for app resolution, search URL rendering, and per-platform command lines
// ABOUTME: A recording runner stands in for process spawning
package launcher

import (
	"errors"
	"testing"

	"github.com/harper/vegra/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type recorder struct {
	calls []call
	err   error
}

func (r *recorder) run(name string, args ...string) error {
	r.calls = append(r.calls, call{name, args})
	return r.err
}

func TestOpenApp_Commands(t *testing.T) {
	tests := []struct {
		goos string
		key  string
		want call
	}{
		{"windows", "блокнот", call{"cmd", []string{"/c", "notepad"}}},
		{"windows", "настройки", call{"cmd", []string{"/c", "start", "", "ms-settings:"}}},
		{"windows", "гугл хром", call{"cmd", []string{"/c", "start", "", "chrome"}}},
		{"linux", "калькулятор", call{"calc", []string{}}},
		{"linux", "firefox", call{"xdg-open", []string{"firefox"}}},
		{"darwin", "калькулятор", call{"open", []string{"-a", "calc"}}},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.key, func(t *testing.T) {
			rec := &recorder{}
			l := New(nil, "", WithRunner(rec.run), WithOS(tt.goos))

			require.True(t, l.OpenApp(tt.key))
			require.Len(t, rec.calls, 1)
			assert.Equal(t, tt.want.name, rec.calls[0].name)
			assert.Equal(t, tt.want.args, rec.calls[0].args)
		})
	}
}

func TestOpenApp_PartialKey(t *testing.T) {
	rec := &recorder{}
	l := New(nil, "", WithRunner(rec.run), WithOS("windows"))

	assert.True(t, l.OpenApp("мой блокнот"))
	require.Len(t, rec.calls, 1)
	assert.Equal(t, []string{"/c", "notepad"}, rec.calls[0].args)
}

func TestOpenApp_Unknown(t *testing.T) {
	rec := &recorder{}
	l := New([]models.App{{Key: "блокнот", Command: "notepad"}}, "", WithRunner(rec.run))

	assert.False(t, l.OpenApp("фотошоп"))
	assert.False(t, l.OpenApp("  "))
	assert.Empty(t, rec.calls)
}

func TestOpenApp_SpawnFailure(t *testing.T) {
	rec := &recorder{err: errors.New("exec: not found")}
	l := New(nil, "", WithRunner(rec.run), WithOS("linux"))

	assert.False(t, l.OpenApp("блокнот"))
}

func TestSearchInBrowser(t *testing.T) {
	rec := &recorder{}
	l := New(nil, "", WithRunner(rec.run), WithOS("linux"))

	require.True(t, l.SearchInBrowser(" рецепт борща "))
	require.Len(t, rec.calls, 1)
	assert.Equal(t, "xdg-open", rec.calls[0].name)
	assert.Equal(t, []string{"https://www.google.com/search?q=%D1%80%D0%B5%D1%86%D0%B5%D0%BF%D1%82+%D0%B1%D0%BE%D1%80%D1%89%D0%B0"}, rec.calls[0].args)
}

func TestSearchInBrowser_EmptyNeverSpawns(t *testing.T) {
	rec := &recorder{}
	l := New(nil, "", WithRunner(rec.run))

	assert.False(t, l.SearchInBrowser(""))
	assert.False(t, l.SearchInBrowser("   "))
	assert.Empty(t, rec.calls)
}

func TestSearchURL_CustomTemplate(t *testing.T) {
	l := New(nil, "https://yandex.ru/search/?text={query}")
	assert.Equal(t, "https://yandex.ru/search/?text=go+%26+rust", l.SearchURL("go & rust"))
}
