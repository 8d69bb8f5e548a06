package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMarkdown(t *testing.T) {
	res, err := FormatMarkdown("**hello**")
	require.NoError(t, err)
	assert.Contains(t, res, "hello")
}

func TestFormatMarkdownWidth(t *testing.T) {
	text := strings.Repeat("take a slow breath ", 10)

	res, err := FormatMarkdownWidth(text, 30)
	require.NoError(t, err)

	wide, err := FormatMarkdownWidth(text, 200)
	require.NoError(t, err)

	assert.Contains(t, res, "breath")
	assert.Greater(t, strings.Count(strings.TrimSpace(res), "\n"), strings.Count(strings.TrimSpace(wide), "\n"))
}

func TestFormatMarkdownWidth_ZeroWidth(t *testing.T) {
	res, err := FormatMarkdownWidth("**hello**", 0)
	require.NoError(t, err)
	assert.Contains(t, res, "hello")
}
