package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_Empty(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Ledger{}).Empty())
	assert.False(t, (&Ledger{Commits: []*Commit{{}}}).Empty())
}

func TestLedger_Now_NewestTimestamp(t *testing.T) {
	t.Parallel()

	newest := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	ledger := &Ledger{Commits: []*Commit{
		{When: newest.AddDate(0, 0, -3)},
		{When: newest},
		{When: newest.AddDate(0, -1, 0)},
	}}

	assert.Equal(t, newest, ledger.Now())
}

func TestLedger_Now_Empty(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Ledger{}).Now().IsZero())
}

func TestIsRevertMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		subject string
		message string
		want    bool
	}{
		{
			name:    "revert subject prefix",
			subject: `Revert "feat: add cache"`,
			message: `Revert "feat: add cache"`,
			want:    true,
		},
		{
			name:    "revert trailer in body",
			subject: "undo cache",
			message: "undo cache\n\nThis reverts commit abc123.",
			want:    true,
		},
		{
			name:    "plain commit",
			subject: "feat: add cache",
			message: "feat: add cache",
			want:    false,
		},
		{
			name:    "mentions reverting without marker",
			subject: "docs: explain how to revert",
			message: "docs: explain how to revert",
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, IsRevertMessage(tt.subject, tt.message))
		})
	}
}

func TestMessageBody(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "subject only", message: "fix: typo", want: ""},
		{name: "subject and body", message: "fix: typo\n\nThe body.", want: "The body."},
		{name: "trailing whitespace trimmed", message: "fix: typo\n\nThe body.\n\n", want: "The body."},
		{name: "single newline is not a body separator", message: "fix: typo\nmore subject", want: ""},
		{name: "empty message", message: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, messageBody(tt.message))
		})
	}
}

func TestMessageBody_MultiParagraph(t *testing.T) {
	t.Parallel()

	message := "feat: add thing\n\nFirst paragraph.\n\nSecond paragraph."
	require.Equal(t, "First paragraph.\n\nSecond paragraph.", messageBody(message))
}
