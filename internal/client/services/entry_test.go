package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dmitrijs2005/zatyshok/internal/client/client"
	"github.com/dmitrijs2005/zatyshok/internal/client/models"
	"github.com/dmitrijs2005/zatyshok/internal/client/session"
	"github.com/dmitrijs2005/zatyshok/internal/common"
	"github.com/dmitrijs2005/zatyshok/internal/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var june1 = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func scenarioEntries() []models.Entry {
	return []models.Entry{
		{ID: i64(1), Text: "past event", Category: models.CategoryEvent, Date: strPtr("2024-01-01")},
		{ID: i64(2), Text: "undated note", Category: models.CategoryNote},
		{ID: i64(3), Text: "far goal", Category: models.CategoryGoal, Date: strPtr("2099-01-01")},
	}
}

func TestReload_Scenario(t *testing.T) {
	freezeNow(t, june1)
	fc := &fakeClient{CalendarRet: scenarioEntries()}
	svc := NewEntryService(fc, time.UTC, nil)

	b := svc.Reload(context.Background())
	require.Equal(t, []int64{3}, entryIDs(b.Schedule))
	require.Equal(t, []int64{2}, entryIDs(b.Notes))
	require.Equal(t, b, svc.Buckets())
	require.Equal(t, []int64{3}, entryIDs(svc.Schedule()))
	require.Equal(t, []int64{2}, entryIDs(svc.Notes()))
}

func TestBuckets_EmptyBeforeReload(t *testing.T) {
	svc := NewEntryService(&fakeClient{}, nil, nil)
	require.NotNil(t, svc.Schedule())
	require.NotNil(t, svc.Notes())
	require.Empty(t, svc.Today())
}

func TestToday_UsesCachedEntries(t *testing.T) {
	freezeNow(t, june1)
	fc := &fakeClient{CalendarRet: []models.Entry{
		{ID: i64(1), Category: models.CategoryEvent, Date: strPtr("2024-06-01T18:00:00Z")},
		{ID: i64(2), Category: models.CategoryNote, Date: strPtr("2024-06-01")},
		{ID: i64(3), Category: models.CategoryGoal, Date: strPtr("2024-06-01")},
		{ID: i64(4), Category: models.CategoryGoal, Date: strPtr("2024-06-02")},
	}}
	svc := NewEntryService(fc, time.UTC, nil)
	svc.Reload(context.Background())

	require.Equal(t, []int64{1, 3}, entryIDs(svc.Today()))
	require.Equal(t, []int64{4}, entryIDs(svc.DueOn("2024-06-02")))
	require.Equal(t, 1, fc.CalendarCalls, "lookups do not refetch")
}

func TestAddEntry_Shaping(t *testing.T) {
	freezeNow(t, june1)

	tests := []struct {
		name      string
		draft     models.EntryDraft
		timeOfDay string
		want      models.EntryDraft
	}{
		{
			name:      "time prefix",
			draft:     models.EntryDraft{Text: "Doctor", Date: strPtr("2024-06-03"), Moment: models.MomentAfternoon, Category: models.CategoryEvent},
			timeOfDay: "14:30",
			want:      models.EntryDraft{Text: "[14:30] Doctor", Date: strPtr("2024-06-03"), Moment: models.MomentAfternoon, Category: models.CategoryEvent},
		},
		{
			name:  "undated note gets today",
			draft: models.EntryDraft{Text: "thought", Moment: models.MomentEvening, Category: models.CategoryNote},
			want:  models.EntryDraft{Text: "thought", Date: strPtr("2024-06-01"), Moment: models.MomentEvening, Category: models.CategoryNote},
		},
		{
			name:  "undated goal gets today",
			draft: models.EntryDraft{Text: "someday", Date: strPtr(""), Moment: models.MomentMorning, Category: models.CategoryGoal},
			want:  models.EntryDraft{Text: "someday", Date: strPtr("2024-06-01"), Moment: models.MomentMorning, Category: models.CategoryGoal},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeClient{}
			svc := NewEntryService(fc, time.UTC, nil)

			require.NoError(t, svc.AddEntry(context.Background(), tt.draft, tt.timeOfDay))
			if diff := cmp.Diff(tt.want, fc.LastDraft); diff != "" {
				t.Fatalf("draft mismatch (-want +got):\n%s", diff)
			}
			require.Equal(t, 1, fc.CalendarCalls, "reload after write")
		})
	}
}

func TestAddEntry_Invalid(t *testing.T) {
	fc := &fakeClient{}
	svc := NewEntryService(fc, time.UTC, nil)
	ctx := context.Background()

	err := svc.AddEntry(ctx, models.EntryDraft{Text: "x", Moment: models.MomentMorning, Category: models.CategoryGoal}, "25:99")
	require.ErrorIs(t, err, common.ErrInvalidDraft)

	err = svc.AddEntry(ctx, models.EntryDraft{Text: "   ", Moment: models.MomentMorning, Category: models.CategoryGoal}, "")
	require.ErrorIs(t, err, common.ErrInvalidDraft)

	err = svc.AddEntry(ctx, models.EntryDraft{Text: "x", Moment: "night", Category: models.CategoryGoal}, "")
	require.ErrorIs(t, err, common.ErrInvalidDraft)

	require.Equal(t, 0, fc.CalendarCalls)
}

func TestAddEntry_ClientError(t *testing.T) {
	fc := &fakeClient{AddEntryErr: &client.Error{Kind: client.KindUnexpectedStatus, Status: 500}}
	svc := NewEntryService(fc, time.UTC, nil)

	err := svc.AddEntry(context.Background(), models.EntryDraft{Text: "x", Moment: models.MomentMorning, Category: models.CategoryGoal}, "")
	require.ErrorIs(t, err, client.ErrUnexpectedStatus)
	require.Equal(t, 0, fc.CalendarCalls)
}

func TestDeleteEntry_Declined(t *testing.T) {
	var prompt string
	fc := &fakeClient{}
	svc := NewEntryService(fc, time.UTC, func(_ context.Context, p string) bool {
		prompt = p
		return false
	})

	deleted, err := svc.DeleteEntry(context.Background(), 5, models.CategoryNote)
	require.NoError(t, err)
	require.False(t, deleted)
	require.Equal(t, "Delete this note?", prompt)
	require.Zero(t, fc.DeleteCalls)
	require.Zero(t, fc.CalendarCalls)
}

func TestDeleteEntry_SuccessReloads(t *testing.T) {
	freezeNow(t, june1)
	fc := &fakeClient{CalendarRet: scenarioEntries()}
	svc := NewEntryService(fc, time.UTC, nil)
	svc.Reload(context.Background())

	fc.CalendarRet = fc.CalendarRet[:2]
	deleted, err := svc.DeleteEntry(context.Background(), 3, models.CategoryGoal)
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, int64(3), fc.LastDeleted)
	require.Empty(t, svc.Schedule())
	require.Equal(t, 2, fc.CalendarCalls)
}

func TestDeleteEntry_PlainErrorIsTaggedDeleteFailed(t *testing.T) {
	fc := &fakeClient{DeleteEntryErr: context.DeadlineExceeded}
	svc := NewEntryService(fc, time.UTC, nil)

	_, err := svc.DeleteEntry(context.Background(), 1, models.CategoryEvent)
	require.ErrorIs(t, err, client.ErrDeleteFailed)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func newLiveEntryService(t *testing.T) (EntryService, *testutil.FakeAPI) {
	t.Helper()
	api := testutil.NewFakeAPI(t)
	store := session.NewMemoryStore()
	token := api.AddUser("anna", "secret")
	require.NoError(t, store.Set(context.Background(), models.Session{Token: token, Username: "anna"}))

	c, err := client.NewHTTPClient(client.Options{BaseURL: api.URL(), AppToken: api.AppToken, Store: store})
	require.NoError(t, err)
	return NewEntryService(c, time.UTC, nil), api
}

func TestDeleteEntry_NotFoundLeavesBucketsUnchanged(t *testing.T) {
	freezeNow(t, june1)
	svc, api := newLiveEntryService(t)
	api.SeedEntries(scenarioEntries()...)

	before := svc.Reload(context.Background())
	requestsBefore := len(api.Requests())

	deleted, err := svc.DeleteEntry(context.Background(), 5, models.CategoryEvent)
	require.ErrorIs(t, err, client.ErrDeleteFailed)
	require.False(t, deleted)

	var ce *client.Error
	require.ErrorAs(t, err, &ce)
	require.Equal(t, http.StatusNotFound, ce.Status)

	if diff := cmp.Diff(before, svc.Buckets()); diff != "" {
		t.Fatalf("buckets changed (-before +after):\n%s", diff)
	}
	require.Len(t, api.Requests(), requestsBefore+1, "no reload after a failed delete")
}

func TestEntryService_RoundTripAgainstFakeAPI(t *testing.T) {
	freezeNow(t, june1)
	svc, api := newLiveEntryService(t)
	ctx := context.Background()

	require.NoError(t, svc.AddEntry(ctx, models.EntryDraft{Text: "picnic", Date: strPtr("2024-06-08"), Moment: models.MomentAfternoon, Category: models.CategoryEvent}, "12:00"))
	require.NoError(t, svc.AddEntry(ctx, models.EntryDraft{Text: "miss you", Moment: models.MomentEvening, Category: models.CategoryNote}, ""))

	require.Len(t, svc.Schedule(), 1)
	require.Equal(t, "[12:00] picnic", svc.Schedule()[0].Text)
	require.Len(t, svc.Notes(), 1)
	require.Equal(t, "2024-06-01", svc.Notes()[0].DateOrEmpty())

	id := svc.Schedule()[0].IDOrZero()
	deleted, err := svc.DeleteEntry(ctx, id, models.CategoryEvent)
	require.NoError(t, err)
	require.True(t, deleted)
	require.Empty(t, svc.Schedule())
	require.Len(t, api.Entries(), 1)
}
