package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gobrackets/pkg/config"
)

func TestLevelColor(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Palette: []string{"a", "b", "c"}}

	tests := []struct {
		level int
		want  string
	}{
		{0, "a"},
		{2, "c"},
		{3, "a"},
		{7, "b"},
		{-1, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cfg.LevelColor(tt.level), "level %d", tt.level)
	}

	assert.Empty(t, (&config.Config{}).LevelColor(0))
}

func TestLanguageForExtension(t *testing.T) {
	t.Parallel()

	cfg := &config.Config{Extensions: map[string]string{".TMPL": "html", "pas": "pascal"}}

	lang, ok := cfg.LanguageForExtension(".tmpl")
	assert.True(t, ok)
	assert.Equal(t, "html", lang)

	lang, ok = cfg.LanguageForExtension(".pas")
	assert.True(t, ok)
	assert.Equal(t, "pascal", lang)

	_, ok = cfg.LanguageForExtension(".go")
	assert.False(t, ok)
}

func TestClassificationIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, config.ClassificationAuto.IsValid())
	assert.True(t, config.ClassificationNone.IsValid())
	assert.False(t, config.Classification("sometimes").IsValid())
}
