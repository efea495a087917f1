package services

import (
	"testing"

	"github.com/MassBabyGeek/StudyHub-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCloudinaryServiceRequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryService(&config.Config{CloudinaryCloudName: "demo"})
	require.ErrorIs(t, err, ErrCloudinaryNotConfigured)
}

func TestNewCloudinaryService(t *testing.T) {
	svc, err := NewCloudinaryService(&config.Config{
		CloudinaryCloudName: "demo",
		CloudinaryAPIKey:    "key",
		CloudinaryAPISecret: "secret",
	})
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestPublicID(t *testing.T) {
	assert.Equal(t, "studyhub/avatars/u1", PublicID("avatars", "u1"))
	assert.Equal(t, "studyhub/posts/p1", PublicID("posts", "p1"))
}
