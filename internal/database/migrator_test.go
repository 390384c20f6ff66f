package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-space-backend/internal/database"
)

func TestPending_OrderedAndEmbedded(t *testing.T) {
	names, err := database.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_create_documents.sql", "002_documents_notify.sql"}, names)
}
