package admin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	testingclock "k8s.io/utils/clock/testing"

	"genai-space-backend/internal/admin"
	"genai-space-backend/internal/cache"
	"genai-space-backend/internal/models"
	"genai-space-backend/internal/services"
	"genai-space-backend/internal/store"
	"genai-space-backend/internal/submissions"
)

var t0 = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

const step = 2 * time.Second

type fixture struct {
	svc   *admin.Service
	cache *cache.Cache
	clock *testingclock.FakeClock
	docs  *store.MemoryStore
	blobs *store.MemoryBlobStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := testingclock.NewFakeClock(t0)
	docs := store.NewMemoryStore()
	blobs := store.NewMemoryBlobStore("https://blobs.test")
	c := cache.New(submissions.NewRepository(docs, clk, nil), nil)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(c.Close)

	svc := admin.NewService(c, services.NewStorageService(blobs, clk, nil), clk, step, nil)
	t.Cleanup(svc.Close)
	return &fixture{svc: svc, cache: c, clock: clk, docs: docs, blobs: blobs}
}

func (f *fixture) create(t *testing.T, in models.NewSubmission) models.Submission {
	t.Helper()
	if in.UserID == "" {
		in.UserID = "u1"
	}
	if in.RowID == 0 {
		in.RowID = 1
	}
	if in.Progress == 0 {
		in.Progress = models.InitialProgress
	}
	if in.InspirationImages == nil {
		in.InspirationImages = []models.UploadedImage{{ID: "i1", Name: "insp.jpg", URL: "https://blobs.test/i1"}}
	}
	if in.AreaImages == nil {
		in.AreaImages = []models.UploadedImage{{ID: "a1", Name: "area.jpg", URL: "https://blobs.test/a1"}}
	}
	sub, err := f.cache.Create(context.Background(), in)
	require.NoError(t, err)
	return sub
}

func (f *fixture) get(t *testing.T, id string) models.Submission {
	t.Helper()
	sub, ok := f.cache.Get(id)
	require.True(t, ok)
	return sub
}

func (f *fixture) progressEventually(t *testing.T, id string, want int) {
	t.Helper()
	require.Eventually(t, func() bool {
		sub, ok := f.cache.Get(id)
		return ok && sub.Progress == want
	}, time.Second, 5*time.Millisecond)
}

func TestCanTransition(t *testing.T) {
	all := []models.Status{models.StatusPending, models.StatusInProgress, models.StatusCompleted, models.StatusFailed}
	allowed := map[[2]models.Status]bool{
		{models.StatusPending, models.StatusInProgress}:   true,
		{models.StatusInProgress, models.StatusCompleted}: true,
		{models.StatusInProgress, models.StatusFailed}:    true,
		{models.StatusFailed, models.StatusPending}:       true,
	}
	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]models.Status{from, to}], admin.CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestSetStatus_InProgressSimulatesProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})

	f.clock.Step(time.Minute)
	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress))

	got := f.get(t, sub.ID)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Equal(t, 25, got.Progress)
	require.NotNil(t, got.ProcessingStartedAt)
	assert.True(t, t0.Add(time.Minute).Equal(*got.ProcessingStartedAt))

	f.clock.Step(step)
	f.progressEventually(t, sub.ID, 50)
	f.clock.Step(step)
	f.progressEventually(t, sub.ID, 75)
	assert.False(t, f.clock.HasWaiters())
}

func TestSetStatus_CompletedCancelsBumps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})

	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress))
	f.clock.Step(step)
	f.progressEventually(t, sub.ID, 50)

	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusCompleted))
	assert.False(t, f.clock.HasWaiters())

	f.clock.Step(step)
	got := f.get(t, sub.ID)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, 100, got.Progress)
	require.NotNil(t, got.CompletedAt)
}

func TestSetStatus_BumpDroppedWhenStatusChangedElsewhere(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})
	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress))

	failed := models.StatusFailed
	zero := 0
	require.NoError(t, f.cache.Update(ctx, sub.ID, models.SubmissionUpdate{Status: &failed, Progress: &zero}))

	f.clock.Step(2 * step)
	got := f.get(t, sub.ID)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.Equal(t, 0, got.Progress)
}

func TestSetStatus_FailedThenResetToPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})

	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress))
	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusFailed))
	got := f.get(t, sub.ID)
	assert.Equal(t, models.StatusFailed, got.Status)
	assert.Equal(t, 0, got.Progress)

	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusPending))
	got = f.get(t, sub.ID)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, models.InitialProgress, got.Progress)
	assert.Equal(t, sub.ID, got.ID)
	assert.Equal(t, sub.InspirationImages, got.InspirationImages)
	assert.Equal(t, sub.AreaImages, got.AreaImages)
}

func TestSetStatus_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})

	assert.ErrorIs(t, f.svc.SetStatus(ctx, sub.ID, models.StatusCompleted), admin.ErrInvalidTransition)
	assert.ErrorIs(t, f.svc.SetStatus(ctx, sub.ID, models.StatusPending), admin.ErrInvalidTransition)
	assert.ErrorIs(t, f.svc.SetStatus(ctx, sub.ID, models.Status("archived")), admin.ErrInvalidStatus)
	assert.ErrorIs(t, f.svc.SetStatus(ctx, "missing", models.StatusInProgress), admin.ErrNotFound)

	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress))
	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusCompleted))
	for _, to := range []models.Status{models.StatusPending, models.StatusInProgress, models.StatusFailed} {
		assert.ErrorIs(t, f.svc.SetStatus(ctx, sub.ID, to), admin.ErrInvalidTransition)
	}
}

func TestSetStatus_WriteFailureKeepsCachedStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})

	f.docs.FailWrites(errors.New("permission denied"))
	err := f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress)
	var writeErr *store.StoreWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, models.StatusPending, f.get(t, sub.ID).Status)
	assert.False(t, f.clock.HasWaiters())
}

func TestSetStatus_FailedCompleteKeepsProgressBumps(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})

	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress))

	f.docs.FailWrites(errors.New("permission denied"))
	err := f.svc.SetStatus(ctx, sub.ID, models.StatusCompleted)
	var writeErr *store.StoreWriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, models.StatusInProgress, f.get(t, sub.ID).Status)
	assert.True(t, f.clock.HasWaiters())

	f.docs.FailWrites(nil)
	f.clock.Step(step)
	f.progressEventually(t, sub.ID, 50)
}

func updateWriteErrors(t *testing.T) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "genai_space_store_write_errors_total" {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "op" && l.GetValue() == "update" {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestProgressBump_RejectedWriteIsCounted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})
	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress))

	before := updateWriteErrors(t)
	f.docs.FailWrites(errors.New("permission denied"))
	f.clock.Step(step)

	require.Eventually(t, func() bool {
		return updateWriteErrors(t) == before+1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 25, f.get(t, sub.ID).Progress)
}

func TestZeroStepDisablesSimulation(t *testing.T) {
	clk := testingclock.NewFakeClock(t0)
	docs := store.NewMemoryStore()
	c := cache.New(submissions.NewRepository(docs, clk, nil), nil)
	require.NoError(t, c.Start(context.Background()))
	defer c.Close()
	svc := admin.NewService(c, nil, clk, 0, nil)

	sub, err := c.Create(context.Background(), models.NewSubmission{UserID: "u1", RowID: 1})
	require.NoError(t, err)
	require.NoError(t, svc.SetStatus(context.Background(), sub.ID, models.StatusInProgress))
	assert.False(t, clk.HasWaiters())
}

func TestSetPriorityAndNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})

	require.NoError(t, f.svc.SetPriority(ctx, sub.ID, models.PriorityHigh))
	require.NoError(t, f.svc.SetNotes(ctx, sub.ID, "warm lighting please"))
	got := f.get(t, sub.ID)
	assert.Equal(t, models.PriorityHigh, got.Priority)
	assert.Equal(t, "warm lighting please", got.AdminNotes)

	assert.ErrorIs(t, f.svc.SetPriority(ctx, sub.ID, models.Priority("urgent")), admin.ErrInvalidPriority)
	assert.ErrorIs(t, f.svc.SetNotes(ctx, "missing", "x"), admin.ErrNotFound)
}

func TestUploadResult(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})
	file := services.File{Name: "render.jpg", ContentType: "image/jpeg", Data: []byte("jpeg")}

	_, err := f.svc.UploadResult(ctx, sub.ID, file)
	assert.ErrorIs(t, err, admin.ErrNotInProgress)
	assert.Equal(t, 0, f.blobs.Len())

	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress))
	url, err := f.svc.UploadResult(ctx, sub.ID, file)
	require.NoError(t, err)
	assert.Equal(t, "https://blobs.test/generated/"+sub.ID+"/render.jpg", url)

	got := f.get(t, sub.ID)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, url, got.GeneratedImage)
	assert.Equal(t, 100, got.Progress)
	require.NotNil(t, got.CompletedAt)
	assert.False(t, f.clock.HasWaiters())
}

func TestUploadResult_BlobFailureLeavesRecordUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})
	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress))

	f.blobs.FailWrites(errors.New("quota"))
	_, err := f.svc.UploadResult(ctx, sub.ID, services.File{Name: "r.jpg", Data: []byte("x")})
	var uploadErr *store.UploadError
	require.ErrorAs(t, err, &uploadErr)

	got := f.get(t, sub.ID)
	assert.Equal(t, models.StatusInProgress, got.Status)
	assert.Empty(t, got.GeneratedImage)
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{})
	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress))

	require.NoError(t, f.svc.Delete(ctx, sub.ID))
	assert.Empty(t, f.cache.Submissions())
	assert.False(t, f.clock.HasWaiters())
	assert.ErrorIs(t, f.svc.Delete(ctx, sub.ID), admin.ErrNotFound)
}

func TestListAndStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, models.NewSubmission{UserName: "John Doe", UserEmail: "john@example.com"})
	b := f.create(t, models.NewSubmission{UserName: "Mary Major", UserEmail: "mary@studio.io", RowID: 2})
	f.create(t, models.NewSubmission{UserName: "Sam", RowID: 3})

	require.NoError(t, f.svc.SetStatus(ctx, b.ID, models.StatusInProgress))
	require.NoError(t, f.svc.SetPriority(ctx, a.ID, models.PriorityHigh))

	assert.Len(t, f.svc.List(admin.Filter{}), 3)
	assert.Equal(t, []string{a.ID}, idsOf(f.svc.List(admin.Filter{Query: "JOHN"})))
	assert.Equal(t, []string{b.ID}, idsOf(f.svc.List(admin.Filter{Query: "studio.io"})))
	assert.Equal(t, []string{b.ID}, idsOf(f.svc.List(admin.Filter{Query: b.ID[len(b.ID)-5:]})))
	assert.Equal(t, []string{b.ID}, idsOf(f.svc.List(admin.Filter{Status: models.StatusInProgress})))
	assert.Equal(t, []string{a.ID}, idsOf(f.svc.List(admin.Filter{Priority: models.PriorityHigh})))
	assert.Empty(t, f.svc.List(admin.Filter{Status: models.StatusPending, Priority: models.PriorityLow}))

	assert.Equal(t, models.SubmissionStats{Total: 3, Pending: 2, InProgress: 1}, f.svc.Stats())
}

func TestAssets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sub := f.create(t, models.NewSubmission{
		RowID: 4,
		InspirationImages: []models.UploadedImage{
			{ID: "i1", Name: "sofa.jpg", URL: "u/i1"},
			{ID: "i2", URL: "u/i2"},
		},
		AreaImages: []models.UploadedImage{{ID: "a1", Name: "room.png", URL: "u/a1"}},
	})
	require.NoError(t, f.svc.SetStatus(ctx, sub.ID, models.StatusInProgress))
	url, err := f.svc.UploadResult(ctx, sub.ID, services.File{Name: "out.jpg", Data: []byte("x")})
	require.NoError(t, err)

	got, err := f.svc.Assets(sub.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Asset{
		{FileName: "inspiration_1_sofa.jpg", URL: "u/i1"},
		{FileName: "inspiration_2_image.jpg", URL: "u/i2"},
		{FileName: "area_1_room.png", URL: "u/a1"},
		{FileName: "generated_result_row_4.jpg", URL: url},
	}, got.Assets)

	_, err = f.svc.Assets("missing")
	assert.ErrorIs(t, err, admin.ErrNotFound)
}

func idsOf(subs []models.Submission) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.ID
	}
	return out
}
