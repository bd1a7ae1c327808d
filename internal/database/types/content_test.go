package types_test

import (
	"strings"
	"testing"
	"time"

	"github.com/arbiterhq/arbiter/internal/database/types"
	"github.com/stretchr/testify/assert"
)

func TestSnippet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "short body unchanged",
			body: "hello world",
			want: "hello world",
		},
		{
			name: "exactly at limit unchanged",
			body: strings.Repeat("a", types.SnippetLength),
			want: strings.Repeat("a", types.SnippetLength),
		},
		{
			name: "over limit truncated with ellipsis",
			body: strings.Repeat("a", types.SnippetLength+1),
			want: strings.Repeat("a", types.SnippetLength) + "...",
		},
		{
			name: "empty body",
			body: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, types.Snippet(tt.body))
		})
	}
}

func TestSnippetMultibyte(t *testing.T) {
	t.Parallel()

	// Truncation counts characters, not bytes.
	body := strings.Repeat("héllo", 20)
	snippet := types.Snippet(body)

	assert.Equal(t, types.SnippetLength+3, len([]rune(snippet)))
	assert.True(t, strings.HasSuffix(snippet, "..."))
}

func TestFlaggedContentReviewed(t *testing.T) {
	t.Parallel()

	content := &types.FlaggedContent{}
	assert.False(t, content.Reviewed())

	content.ReviewedAt = time.Now()
	assert.True(t, content.Reviewed())
}
