package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplate_HasPlaceholderOnce(t *testing.T) {
	t.Parallel()

	tmpl := DefaultTemplate()
	assert.Equal(t, 1, strings.Count(tmpl, Placeholder))
	assert.Contains(t, tmpl, `<ul class="cards">`)
}

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	t.Run("empty path selects embedded", func(t *testing.T) {
		t.Parallel()
		got, err := LoadTemplate("")
		require.NoError(t, err)
		assert.Equal(t, DefaultTemplate(), got)
	})

	t.Run("reads file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<ul>"+Placeholder+"</ul>"), 0o644))

		got, err := LoadTemplate(path)
		require.NoError(t, err)
		assert.Equal(t, "<ul>"+Placeholder+"</ul>", got)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadTemplate(filepath.Join(t.TempDir(), "nope.html"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestSubstitute(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tmpl     string
		fragment string
		want     string
		wantErr  error
	}{
		{
			name:     "single placeholder",
			tmpl:     "<ul>" + Placeholder + "</ul>",
			fragment: "<li>x</li>",
			want:     "<ul><li>x</li></ul>",
		},
		{
			name:     "every occurrence",
			tmpl:     Placeholder + "|" + Placeholder,
			fragment: "A",
			want:     "A|A",
		},
		{
			name:     "empty fragment",
			tmpl:     "[" + Placeholder + "]",
			fragment: "",
			want:     "[]",
		},
		{
			name:     "placeholder missing",
			tmpl:     "<ul></ul>",
			fragment: "<li>x</li>",
			wantErr:  ErrPlaceholderMissing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Substitute(tt.tmpl, tt.fragment)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstitute_DefaultTemplateKeepsSurroundings(t *testing.T) {
	t.Parallel()

	tmpl := DefaultTemplate()
	before, after, found := strings.Cut(tmpl, Placeholder)
	require.True(t, found)

	page, err := Substitute(tmpl, "<li>card</li>")
	require.NoError(t, err)
	assert.Equal(t, before+"<li>card</li>"+after, page)
	assert.NotContains(t, page, Placeholder)
}

func TestWritePage(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "public", "nested", "animals.html")

		require.NoError(t, WritePage(path, "<html></html>"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", string(data))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "animals.html")
		require.NoError(t, os.WriteFile(path, []byte("old content that is longer"), 0o644))

		require.NoError(t, WritePage(path, "new"))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("unwritable destination", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		// A regular file where a directory is expected.
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		err := WritePage(filepath.Join(blocker, "animals.html"), "page")
		assert.Error(t, err)
	})
}
