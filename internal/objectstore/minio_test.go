package objectstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-space-backend/internal/objectstore"
)

func TestNewMinioStore_RequiresEndpointAndBucket(t *testing.T) {
	_, err := objectstore.NewMinioStore(objectstore.WithBucket("b"))
	assert.Error(t, err)

	_, err = objectstore.NewMinioStore(objectstore.WithEndpoint("localhost:9000"))
	assert.Error(t, err)
}

func TestMinioStore_ObjectURL(t *testing.T) {
	s, err := objectstore.NewMinioStore(
		objectstore.WithEndpoint("localhost:9000"),
		objectstore.WithBucket("genai-space"),
		objectstore.WithAccessKey("minio"),
		objectstore.WithSecretKey("minio123"),
	)
	require.NoError(t, err)
	assert.Equal(t, "minio", s.Type())
	assert.Equal(t, "http://localhost:9000/genai-space/generated/abc/out.png", s.ObjectURL("generated/abc/out.png"))

	secure, err := objectstore.NewMinioStore(
		objectstore.WithEndpoint("s3.example.com"),
		objectstore.WithBucket("assets"),
		objectstore.WithSSL(true),
	)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.example.com/assets/users/u1/x.jpg", secure.ObjectURL("/users/u1/x.jpg"))
}
