package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"genai-space-backend/internal/models"
	"genai-space-backend/internal/services"
	"genai-space-backend/internal/store"
)

var now = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func TestPaths(t *testing.T) {
	assert.Equal(t, "users/u1/submissions/3/area/img-1-room.jpg",
		services.DraftImagePath("u1", 3, models.ImageKindArea, "img-1", "room.jpg"))
	assert.Equal(t, "users/u1/submissions/3/inspiration/img-2-evil.jpg",
		services.DraftImagePath("u1", 3, models.ImageKindInspiration, "img-2", "../../evil.jpg"))
	assert.Equal(t, "generated/17-abc/out.png", services.GeneratedImagePath("17-abc", "out.png"))
}

func TestUploadDraftImages(t *testing.T) {
	blobs := store.NewMemoryBlobStore("https://blobs.test")
	svc := services.NewStorageService(blobs, testingclock.NewFakeClock(now), nil)

	images, err := svc.UploadDraftImages(context.Background(), "u1", 2, models.ImageKindInspiration, []services.File{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("aaa")},
		{Name: "b.jpg", Data: []byte("bb")},
	})
	require.NoError(t, err)
	require.Len(t, images, 2)

	assert.Equal(t, "a.jpg", images[0].Name)
	assert.Equal(t, int64(3), images[0].Size)
	assert.Equal(t, "https://blobs.test/users/u1/submissions/2/inspiration/"+images[0].ID+"-a.jpg", images[0].URL)
	assert.True(t, now.Equal(images[0].UploadedAt))
	assert.NotEqual(t, images[0].ID, images[1].ID)
	assert.Equal(t, 2, blobs.Len())
}

func TestUploadDraftImages_FailureReturnsUploadError(t *testing.T) {
	blobs := store.NewMemoryBlobStore("https://blobs.test")
	blobs.FailWrites(errors.New("quota exceeded"))
	svc := services.NewStorageService(blobs, testingclock.NewFakeClock(now), nil)

	images, err := svc.UploadDraftImages(context.Background(), "u1", 2, models.ImageKindArea, []services.File{
		{Name: "a.jpg", Data: []byte("a")},
	})
	assert.Nil(t, images)
	var uploadErr *store.UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Regexp(t, `^users/u1/submissions/2/area/[0-9a-f-]{36}-a\.jpg$`, uploadErr.Path)
}

func TestUploadDraftImages_SameNameGetsDistinctBlobs(t *testing.T) {
	blobs := store.NewMemoryBlobStore("https://blobs.test")
	svc := services.NewStorageService(blobs, testingclock.NewFakeClock(now), nil)
	ctx := context.Background()

	first, err := svc.UploadDraftImages(ctx, "u1", 1, models.ImageKindInspiration, []services.File{{Name: "photo.jpg", Data: []byte("v1")}})
	require.NoError(t, err)
	second, err := svc.UploadDraftImages(ctx, "u1", 1, models.ImageKindInspiration, []services.File{{Name: "photo.jpg", Data: []byte("v2")}})
	require.NoError(t, err)

	assert.NotEqual(t, first[0].URL, second[0].URL)
	assert.Equal(t, 2, blobs.Len())
}

func TestUploadGeneratedImage(t *testing.T) {
	blobs := store.NewMemoryBlobStore("https://blobs.test")
	svc := services.NewStorageService(blobs, testingclock.NewFakeClock(now), nil)

	url, err := svc.UploadGeneratedImage(context.Background(), "sub-1", services.File{Name: "result.jpg", Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, "https://blobs.test/generated/sub-1/result.jpg", url)
}
