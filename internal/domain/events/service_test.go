package events_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gatherline/server/internal/bus"
	"github.com/gatherline/server/internal/domain/events"
	"github.com/gatherline/server/internal/storage/memory"
)

func newService(t *testing.T) (*events.Service, *bus.Bus) {
	t.Helper()
	b := bus.New()
	t.Cleanup(b.Close)
	svc := events.NewService(memory.NewStore().Events(), b, zerolog.Nop())
	return svc, b
}

func validParams() events.CreateParams {
	return events.CreateParams{
		Title:       "Meetup",
		Description: "Monthly meetup",
		Date:        "2026-09-10",
		StartTime:   "18:00",
		EndTime:     "20:00",
		OwnerID:     "01HVXK3S7M9QZJ4W8Y2B6N0DC1",
		LocationID:  "01HVXK3S7M9QZJ4W8Y2B6N0DC3",
	}
}

func receive(t *testing.T, sub *bus.Subscription) events.Event {
	t.Helper()
	select {
	case payload, ok := <-sub.C():
		require.True(t, ok, "subscription closed unexpectedly")
		ev, isEvent := payload.(events.Event)
		require.True(t, isEvent, "unexpected payload type %T", payload)
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for payload")
		return events.Event{}
	}
}

func TestCreateStoresReferencesVerbatim(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	params := validParams()
	params.OwnerID = "dangling-owner"
	params.LocationID = "dangling-location"

	ev, err := svc.Create(ctx, params)
	require.NoError(t, err)
	require.Equal(t, "dangling-owner", ev.OwnerID)
	require.Equal(t, "dangling-location", ev.LocationID)
}

func TestCreateRequiresFullPayload(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	params := validParams()
	params.Title = ""
	_, err := svc.Create(ctx, params)
	require.Error(t, err)
}

func TestUpdateMergeCorrectness(t *testing.T) {
	ctx := context.Background()
	svc, b := newService(t)

	ev, err := svc.Create(ctx, validParams())
	require.NoError(t, err)

	updatedSub := b.Subscribe(events.TopicUpdated)
	defer updatedSub.Close()

	title := "Renamed"
	end := "21:00"
	updated, err := svc.Update(ctx, ev.ID, events.UpdateParams{Title: &title, EndTime: &end})
	require.NoError(t, err)

	require.Equal(t, "Renamed", updated.Title)
	require.Equal(t, "21:00", updated.EndTime)
	// Every field absent from the partial keeps its prior value.
	require.Equal(t, ev.Description, updated.Description)
	require.Equal(t, ev.Date, updated.Date)
	require.Equal(t, ev.StartTime, updated.StartTime)
	require.Equal(t, ev.OwnerID, updated.OwnerID)
	require.Equal(t, ev.LocationID, updated.LocationID)

	require.Equal(t, *updated, receive(t, updatedSub))
}

func TestUpdateMissPublishesNothing(t *testing.T) {
	ctx := context.Background()
	svc, b := newService(t)

	updatedSub := b.Subscribe(events.TopicUpdated)
	defer updatedSub.Close()

	title := "x"
	_, err := svc.Update(ctx, "01HVXK3S7M9QZJ4W8Y2B6N0DCE", events.UpdateParams{Title: &title})
	require.ErrorIs(t, err, events.ErrNotFound)

	select {
	case payload := <-updatedSub.C():
		t.Fatalf("unexpected payload %v", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeleteAllBulkOrderPreservation(t *testing.T) {
	ctx := context.Background()
	svc, b := newService(t)

	var want []string
	for _, title := range []string{"one", "two", "three", "four"} {
		params := validParams()
		params.Title = title
		ev, err := svc.Create(ctx, params)
		require.NoError(t, err)
		want = append(want, ev.ID)
	}

	deletedSub := b.Subscribe(events.TopicDeleted)
	defer deletedSub.Close()

	removed := svc.DeleteAll(ctx)
	require.Len(t, removed, 4)
	for i, ev := range removed {
		require.Equal(t, want[i], ev.ID)
		require.Equal(t, ev, receive(t, deletedSub))
	}

	require.Empty(t, svc.List(ctx))
}
