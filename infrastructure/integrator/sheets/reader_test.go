package sheets

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/agent-performance-api/internal/config"
	"github.com/vfg2006/agent-performance-api/pkg/retry"
)

func TestToStrings(t *testing.T) {
	values := [][]any{
		{"Agent", "Tarih", "Gelen Data"},
		{"Adviye", "2024-05-07", float64(120), nil},
		{},
	}

	assert.Equal(t, [][]string{
		{"Agent", "Tarih", "Gelen Data"},
		{"Adviye", "2024-05-07", "120", ""},
		{},
	}, toStrings(values))
}

func TestNewGoogleReader_MissingCredentials(t *testing.T) {
	_, err := NewGoogleReader(context.Background(), config.Sheets{}, retry.DefaultPolicy())

	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestLoadCredentials_FromFile(t *testing.T) {
	_, err := loadCredentials(config.Sheets{CredentialsFile: "/nonexistent/credentials.json"})

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingCredentials)
}
