package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func topicFS() fstest.MapFS {
	return fstest.MapFS{
		"patterns.md":      {Data: []byte("# Patterns\n\nHow rules match")},
		"templates.txt":    {Data: []byte("Placeholders: {} {.}")},
		"option-tag.md":    {Data: []byte("# --tag\n\nFilter by tag")},
		"notes.txxt":       {Data: []byte("custom extension")},
		"ignore.json":      {Data: []byte("{}")},
		"nested/sweep.txt": {Data: []byte("Sweeping the store")},
	}
}

func TestScanTopics(t *testing.T) {
	t.Run("default_extensions", func(t *testing.T) {
		tm := New(topicFS())
		require.NoError(t, tm.scanTopics())

		assert.Equal(t, []string{"option-tag", "patterns", "sweep", "templates"}, tm.ListTopics())

		topic, ok := tm.GetTopic("templates")
		require.True(t, ok)
		assert.Equal(t, "Placeholders: {} {.}", topic.Content)
		assert.Equal(t, "templates.txt", topic.FilePath)
	})

	t.Run("custom_extensions", func(t *testing.T) {
		tm := NewWithOptions(topicFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})

	t.Run("nil_fs", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestGetTopicFlagStyle(t *testing.T) {
	tm := New(topicFS())
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"tag", "-tag", "--tag", "option-tag"} {
		topic, ok := tm.GetTopic(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-tag", topic.Name)
	}

	_, ok := tm.GetTopic("missing")
	assert.False(t, ok)
}

type upperRenderer struct{ formats []string }

func (r *upperRenderer) Render(content, format string) string {
	r.formats = append(r.formats, format)
	return "RENDERED:" + content
}

func newRoot(t *testing.T, renderer Renderer) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	root := &cobra.Command{Use: "maidsweep", Run: func(*cobra.Command, []string) {}}
	root.AddCommand(&cobra.Command{Use: "list", Short: "List records", Run: func(*cobra.Command, []string) {}})

	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)

	require.NoError(t, InitializeWithOptions(root, topicFS(), Options{Renderer: renderer}))
	return root, out
}

func TestHelpCommand(t *testing.T) {
	t.Run("topic", func(t *testing.T) {
		r := &upperRenderer{}
		root, out := newRoot(t, r)
		root.SetArgs([]string{"help", "patterns"})
		require.NoError(t, root.Execute())

		assert.Equal(t, "RENDERED:# Patterns\n\nHow rules match", out.String())
		assert.Equal(t, []string{".md"}, r.formats)
	})

	t.Run("flag_topic", func(t *testing.T) {
		root, out := newRoot(t, nil)
		root.SetArgs([]string{"help", "--", "--tag"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "Filter by tag")
	})

	t.Run("topic_list", func(t *testing.T) {
		root, out := newRoot(t, nil)
		root.SetArgs([]string{"help", "topics"})
		require.NoError(t, root.Execute())

		s := out.String()
		assert.Contains(t, s, "General topics:")
		assert.Contains(t, s, "  patterns")
		assert.Contains(t, s, "Option topics:")
		assert.Contains(t, s, "  --tag")
		assert.Contains(t, s, "Use 'maidsweep help <topic>'")
	})

	t.Run("command_falls_back", func(t *testing.T) {
		root, out := newRoot(t, nil)
		root.SetArgs([]string{"help", "list"})
		require.NoError(t, root.Execute())
		assert.Contains(t, out.String(), "List records")
	})
}

func TestPlainRenderer(t *testing.T) {
	assert.Equal(t, "x", (&PlainRenderer{}).Render("x", ".md"))
}

func TestGlamourRendererPassesThroughText(t *testing.T) {
	assert.Equal(t, "plain", NewGlamourRenderer().Render("plain", ".txt"))
}
