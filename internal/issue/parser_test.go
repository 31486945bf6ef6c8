package issue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreate(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		body := "**Company name:** Acme Ltd\n**Website:** https://acme.com\n**Tone:** Playful"
		req, err := ParseCreate(body)
		require.NoError(t, err)
		assert.Equal(t, "Acme Ltd", req.Name)
		assert.Equal(t, "https://acme.com", req.Website)
		assert.Equal(t, "Playful", req.Tone)
	})

	t.Run("tone defaults", func(t *testing.T) {
		req, err := ParseCreate("**Company name:** Acme\n**Website:** acme.com")
		require.NoError(t, err)
		assert.Equal(t, DefaultTone, req.Tone)
	})

	t.Run("dash website means absent", func(t *testing.T) {
		req, err := ParseCreate("**Company name:** Acme\n**Website:** -")
		require.NoError(t, err)
		assert.Empty(t, req.Website)
	})

	t.Run("label case is irrelevant", func(t *testing.T) {
		req, err := ParseCreate("**company NAME:** Acme")
		require.NoError(t, err)
		assert.Equal(t, "Acme", req.Name)
	})

	t.Run("missing name fails", func(t *testing.T) {
		_, err := ParseCreate("**Website:** acme.com")
		assert.Error(t, err)
	})

	t.Run("value whitespace trimmed", func(t *testing.T) {
		req, err := ParseCreate("**Company name:**    Acme & Co   ")
		require.NoError(t, err)
		assert.Equal(t, "Acme & Co", req.Name)
	})
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		body    string
		want    Action
		wantID  string
		wantErr bool
	}{
		{
			name:   "archive",
			title:  "Archive company: Acme",
			body:   "**Company id:** acme-ltd",
			want:   ActionArchive,
			wantID: "acme-ltd",
		},
		{
			name:   "restore",
			title:  "Restore company: Acme",
			body:   "**Company id:** acme",
			want:   ActionRestore,
			wantID: "acme",
		},
		{
			name:   "title case insensitive",
			title:  "ARCHIVE COMPANY: whatever",
			body:   "**company id:** acme",
			want:   ActionArchive,
			wantID: "acme",
		},
		{
			name:    "unknown title prefix",
			title:   "Delete company: Acme",
			body:    "**Company id:** acme",
			wantErr: true,
		},
		{
			name:    "missing id",
			title:   "Archive company: Acme",
			body:    "please archive it",
			wantErr: true,
		},
		{
			name:    "empty everything",
			title:   "",
			body:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, id, err := ParseAction(tt.title, tt.body)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrNoAction))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, action)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
