package demo

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvisser/scrollto"
	"github.com/kvisser/scrollto/internal/config"
)

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Items = 200
	cfg.Scroll.DurationMS = 0
	return cfg
}

func newTestModel(t *testing.T, cfg config.Config) *Model {
	t.Helper()
	m, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestLoadFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("alpha\nbeta\n\ngamma\n"), 0o644))

	items, err := LoadFeed(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "", "gamma"}, items)
}

func TestLoadFeed_MissingFile(t *testing.T) {
	_, err := LoadFeed(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}

func TestGenerateItems(t *testing.T) {
	items := GenerateItems(100)
	require.Len(t, items, 100)

	assert.True(t, strings.Contains(items[0], "section"), "section markers every 25 items")
	assert.True(t, strings.Contains(items[7], "\n"), "some items span multiple lines")
	assert.Equal(t, "entry 1", items[1])

	assert.Empty(t, GenerateItems(-1))
}

func TestNew_FeedBacked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.txt")
	require.NoError(t, os.WriteFile(path, []byte("one\ntwo\nthree\n"), 0o644))

	cfg := testConfig()
	cfg.Feed = path
	m := newTestModel(t, cfg)

	assert.Equal(t, 3, m.list.Count())
	assert.NotNil(t, m.watch, "auto reload starts a feed watcher")
}

func TestNew_FeedMissingFails(t *testing.T) {
	cfg := testConfig()
	cfg.Feed = filepath.Join(t.TempDir(), "absent.txt")
	_, err := New(cfg)
	require.Error(t, err)
}

func TestRenderItem_GutterAlignment(t *testing.T) {
	m := newTestModel(t, testConfig())

	first := m.renderItem(3, 80)
	last := m.renderItem(199, 80)
	assert.Contains(t, first, "  3 ")
	assert.Contains(t, last, "199 ")

	multi := m.renderItem(7, 80)
	lines := strings.Split(multi, "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "     "), "continuation lines indent past the gutter")

	assert.Empty(t, m.renderItem(-1, 80))
	assert.Empty(t, m.renderItem(500, 80))
}

func TestUpdate_FeedReloadAdjustsCount(t *testing.T) {
	m := newTestModel(t, testConfig())

	model, _ := m.Update(feedLoadedMsg{items: []string{"a", "b"}})
	m = model.(*Model)

	assert.Equal(t, 2, m.list.Count())
	assert.Contains(t, m.status, "2 items")
}

func TestUpdate_FeedReloadErrorKeepsItems(t *testing.T) {
	m := newTestModel(t, testConfig())

	model, _ := m.Update(feedLoadedMsg{err: os.ErrPermission})
	m = model.(*Model)

	assert.Equal(t, 200, m.list.Count())
}

func TestUpdate_ArrivalUpdatesStatus(t *testing.T) {
	m := newTestModel(t, testConfig())

	model, cmd := m.Update(scrollto.ScrolledToEvent{Index: 42, Version: 3})
	m = model.(*Model)

	assert.Contains(t, m.status, "arrived at 42")
	assert.NotNil(t, cmd, "keeps listening for the next arrival")
}

func TestUpdate_GotoFlowStartsScroll(t *testing.T) {
	m := newTestModel(t, testConfig())
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	m = model.(*Model)
	require.True(t, m.entering)

	for _, r := range "42" {
		model, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = model.(*Model)
	}
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(*Model)

	assert.False(t, m.entering)
	assert.Contains(t, m.status, "scrolling to 42")
	assert.NotNil(t, cmd, "the frame tick must be dispatched")
}

func TestView_HasChromeAroundList(t *testing.T) {
	m := newTestModel(t, testConfig())
	m.Update(tea.WindowSizeMsg{Width: 60, Height: 12})

	view := m.View()
	assert.Contains(t, view, "scrollto demo")
	assert.Contains(t, view, "entry 1")
	assert.Contains(t, view, "%")
}

func TestDemo_EndToEndScroll(t *testing.T) {
	m := newTestModel(t, testConfig())
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("entry 1"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":")})
	tm.Type("120")
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("arrived at 120"))
	}, teatest.WithDuration(5*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))
}
