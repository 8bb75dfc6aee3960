package minio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectURLWithPublicBase(t *testing.T) {
	storage, err := NewStorage(StorageConfig{
		Endpoint:    "minio:9000",
		AccessKey:   "minioadmin",
		SecretKey:   "minioadmin",
		ImageBucket: "frames",
		PublicURL:   "https://cdn.example.com/",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"https://cdn.example.com/frames/r1/happy_0.jpg",
		storage.objectURL("r1/happy_0.jpg"),
	)
}

func TestObjectURLFallsBackToEndpoint(t *testing.T) {
	storage, err := NewStorage(StorageConfig{
		Endpoint:    "localhost:9000",
		AccessKey:   "minioadmin",
		SecretKey:   "minioadmin",
		ImageBucket: "frames",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"http://localhost:9000/frames/r1/happy_0.jpg",
		storage.objectURL("r1/happy_0.jpg"),
	)
}

func TestObjectURLSecureEndpoint(t *testing.T) {
	storage, err := NewStorage(StorageConfig{
		Endpoint:    "s3.example.com",
		AccessKey:   "minioadmin",
		SecretKey:   "minioadmin",
		UseSSL:      true,
		ImageBucket: "frames",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"https://s3.example.com/frames/r1/happy_0.jpg",
		storage.objectURL("r1/happy_0.jpg"),
	)
}
