package submissions_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"genai-space-backend/internal/models"
	"genai-space-backend/internal/store"
	"genai-space-backend/internal/submissions"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func images(prefix string, n int) []models.UploadedImage {
	out := make([]models.UploadedImage, n)
	for i := range out {
		out[i] = models.UploadedImage{
			ID:         prefix + "-" + string(rune('a'+i)),
			Name:       prefix + string(rune('a'+i)) + ".jpg",
			Size:       int64(100 + i),
			URL:        "https://blobs.test/" + prefix + string(rune('a'+i)),
			UploadedAt: epoch.Add(time.Duration(i) * time.Second),
		}
	}
	return out
}

func newRepo(t *testing.T) (*submissions.Repository, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return submissions.NewRepository(s, testingclock.NewFakeClock(epoch), nil), s
}

func subscribe(t *testing.T, repo *submissions.Repository) *[]models.Submission {
	t.Helper()
	var latest []models.Submission
	cancel, err := repo.Subscribe(context.Background(), func(subs []models.Submission) {
		latest = subs
	}, nil)
	require.NoError(t, err)
	t.Cleanup(cancel)
	return &latest
}

func TestCreate_AssignsIDAndRoundTripsImages(t *testing.T) {
	repo, _ := newRepo(t)
	latest := subscribe(t, repo)

	created, err := repo.Create(context.Background(), models.NewSubmission{
		UserID:            "user-1",
		UserName:          "John Doe",
		UserEmail:         "john@example.com",
		RowID:             3,
		InspirationImages: images("insp", 3),
		AreaImages:        images("area", 2),
		Status:            models.StatusPending,
		Priority:          models.PriorityMedium,
		Progress:          models.InitialProgress,
		SubmittedAt:       epoch,
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^\d+-[0-9a-z]{9}$`), created.ID)

	require.Len(t, *latest, 1)
	got := (*latest)[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, images("insp", 3), got.InspirationImages)
	assert.Equal(t, images("area", 2), got.AreaImages)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, models.InitialProgress, got.Progress)
	assert.True(t, epoch.Equal(got.SubmittedAt))
	assert.Nil(t, got.CompletedAt)
}

func TestCreate_DefaultsStatusAndPriority(t *testing.T) {
	repo, _ := newRepo(t)
	created, err := repo.Create(context.Background(), models.NewSubmission{UserID: "u", RowID: 1})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, models.PriorityMedium, created.Priority)
	assert.True(t, epoch.Equal(created.SubmittedAt))
}

func TestCreate_IDsAreUnique(t *testing.T) {
	repo, _ := newRepo(t)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		sub, err := repo.Create(context.Background(), models.NewSubmission{UserID: "u", RowID: 1})
		require.NoError(t, err)
		assert.False(t, seen[sub.ID], "duplicate id %s", sub.ID)
		seen[sub.ID] = true
	}
}

func TestCreate_RejectedWriteIsStoreWriteError(t *testing.T) {
	repo, s := newRepo(t)
	s.FailWrites(errors.New("permission denied"))

	_, err := repo.Create(context.Background(), models.NewSubmission{UserID: "u", RowID: 1})
	var writeErr *store.StoreWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "create", writeErr.Op)
}

func writeErrors(t *testing.T, op string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "genai_space_store_write_errors_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "op" && l.GetValue() == op {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestRejectedWritesAreCountedOncePerOperation(t *testing.T) {
	repo, s := newRepo(t)
	ctx := context.Background()
	created, err := repo.Create(ctx, models.NewSubmission{UserID: "u", RowID: 1})
	require.NoError(t, err)

	beforeCreate := writeErrors(t, "create")
	beforeUpdate := writeErrors(t, "update")
	beforeDelete := writeErrors(t, "delete")

	s.FailWrites(errors.New("permission denied"))
	_, err = repo.Create(ctx, models.NewSubmission{UserID: "u", RowID: 2})
	require.Error(t, err)
	notes := "x"
	require.Error(t, repo.Update(ctx, created.ID, models.SubmissionUpdate{AdminNotes: &notes}))
	require.Error(t, repo.Update(ctx, created.ID, models.SubmissionUpdate{AdminNotes: &notes}))
	require.Error(t, repo.Delete(ctx, created.ID))

	assert.Equal(t, beforeCreate+1, writeErrors(t, "create"))
	assert.Equal(t, beforeUpdate+2, writeErrors(t, "update"))
	assert.Equal(t, beforeDelete+1, writeErrors(t, "delete"))

	s.FailWrites(nil)
	require.NoError(t, repo.Update(ctx, created.ID, models.SubmissionUpdate{AdminNotes: &notes}))
	assert.Equal(t, beforeUpdate+2, writeErrors(t, "update"))
}

func TestUpdate_MergesOnlyGivenFields(t *testing.T) {
	repo, _ := newRepo(t)
	latest := subscribe(t, repo)

	created, err := repo.Create(context.Background(), models.NewSubmission{
		UserID: "u", RowID: 1, AreaImages: images("area", 1), Progress: models.InitialProgress,
	})
	require.NoError(t, err)

	status := models.StatusInProgress
	progress := 25
	started := epoch.Add(time.Minute)
	require.NoError(t, repo.Update(context.Background(), created.ID, models.SubmissionUpdate{
		Status:              &status,
		Progress:            &progress,
		ProcessingStartedAt: &started,
	}))

	got := (*latest)[0]
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, 25, got.Progress)
	require.NotNil(t, got.ProcessingStartedAt)
	assert.True(t, started.Equal(*got.ProcessingStartedAt))
	assert.Equal(t, models.PriorityMedium, got.Priority)
	assert.Len(t, got.AreaImages, 1)
}

func TestUpdate_UnknownIDIsStoreWriteError(t *testing.T) {
	repo, _ := newRepo(t)
	notes := "x"
	err := repo.Update(context.Background(), "missing", models.SubmissionUpdate{AdminNotes: &notes})

	var writeErr *store.StoreWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, "update", writeErr.Op)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete_RemovesFromNextSnapshotAndIsIdempotent(t *testing.T) {
	repo, _ := newRepo(t)
	latest := subscribe(t, repo)

	created, err := repo.Create(context.Background(), models.NewSubmission{UserID: "u", RowID: 1})
	require.NoError(t, err)
	require.Len(t, *latest, 1)

	require.NoError(t, repo.Delete(context.Background(), created.ID))
	assert.Empty(t, *latest)
	assert.NoError(t, repo.Delete(context.Background(), created.ID))
}

func TestSubscribe_SkipsMalformedDocuments(t *testing.T) {
	repo, s := newRepo(t)
	require.NoError(t, s.Set(context.Background(), submissions.Collection, "bad", store.Fields{"status": "exploded"}))

	var errs []error
	var latest []models.Submission
	cancel, err := repo.Subscribe(context.Background(), func(subs []models.Submission) {
		latest = subs
	}, func(err error) {
		errs = append(errs, err)
	})
	require.NoError(t, err)
	defer cancel()

	assert.Empty(t, latest)
	require.Len(t, errs, 1)
	var readErr *store.StoreReadError
	assert.ErrorAs(t, errs[0], &readErr)
}

func TestSubscribe_FailureIsStoreReadError(t *testing.T) {
	repo, s := newRepo(t)
	s.FailWatch(errors.New("offline"))

	_, err := repo.Subscribe(context.Background(), func([]models.Submission) {}, nil)
	var readErr *store.StoreReadError
	assert.ErrorAs(t, err, &readErr)
}
