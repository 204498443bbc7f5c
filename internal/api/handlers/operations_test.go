package handlers

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/gatherline/server/internal/bus"
	"github.com/gatherline/server/internal/domain/accounts"
	"github.com/gatherline/server/internal/domain/events"
	"github.com/gatherline/server/internal/domain/locations"
	"github.com/gatherline/server/internal/domain/participations"
	"github.com/gatherline/server/internal/domain/relations"
	"github.com/gatherline/server/internal/live"
	"github.com/gatherline/server/internal/storage/memory"
)

type fixture struct {
	handler  *OperationsHandler
	bus      *bus.Bus
	accounts *accounts.Service
	events   *events.Service
}

func newFixture(t *testing.T, family live.Family) *fixture {
	t.Helper()

	store := memory.NewStore()
	b := bus.New()
	t.Cleanup(b.Close)

	var pub bus.Publisher = b
	if family == live.FamilyCounter {
		pub = bus.NopPublisher{}
	}

	logger := zerolog.Nop()
	accountsSvc := accounts.NewService(store.Accounts(), pub, logger)
	eventsSvc := events.NewService(store.Events(), pub, logger)
	locationsSvc := locations.NewService(store.Locations(), logger)
	participationsSvc := participations.NewService(store.Participations(), pub, logger)
	resolver := relations.NewResolver(store.Accounts(), store.Events(), store.Locations(), store.Participations())
	mux := live.NewMultiplexer(b, family, 5*time.Millisecond, logger)

	return &fixture{
		handler:  NewOperationsHandler(accountsSvc, eventsSvc, locationsSvc, participationsSvc, resolver, mux, "test", logger),
		bus:      b,
		accounts: accountsSvc,
		events:   eventsSvc,
	}
}

func (f *fixture) do(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestAccountMutationRoundTrip(t *testing.T) {
	f := newFixture(t, live.FamilyChanges)

	rec := f.do(t, `{"type":"mutation","operation":"addAccount","data":{"username":"ana","email":"ana@example.com"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created accounts.Account
	decodeData(t, rec, &created)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "ana", created.Username)

	rec = f.do(t, fmt.Sprintf(`{"type":"query","operation":"getAccount","id":%q}`, created.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, fmt.Sprintf(`{"type":"mutation","operation":"updateAccount","id":%q,"data":{"email":"new@example.com"}}`, created.ID))
	require.Equal(t, http.StatusOK, rec.Code)
	var updated accounts.Account
	decodeData(t, rec, &updated)
	require.Equal(t, "ana", updated.Username)
	require.Equal(t, "new@example.com", updated.Email)

	rec = f.do(t, fmt.Sprintf(`{"type":"mutation","operation":"deleteAccount","id":%q}`, created.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, fmt.Sprintf(`{"type":"query","operation":"getAccount","id":%q}`, created.ID))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestMutationValidationFails(t *testing.T) {
	f := newFixture(t, live.FamilyChanges)

	rec := f.do(t, `{"type":"mutation","operation":"addAccount","data":{"username":"ana","email":"not-an-email"}}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Body.String(), "Email")
}

func TestUnsupportedOperation(t *testing.T) {
	f := newFixture(t, live.FamilyChanges)

	rec := f.do(t, `{"type":"query","operation":"listUnicorns"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "unsupported-operation")
}

func TestMalformedRequestBody(t *testing.T) {
	f := newFixture(t, live.FamilyChanges)

	rec := f.do(t, `{"type":`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, `{"type":"teleport","operation":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryWithExpandResolvesRelations(t *testing.T) {
	f := newFixture(t, live.FamilyChanges)
	ctx := context.Background()

	owner, err := f.accounts.Create(ctx, accounts.CreateParams{Username: "owner", Email: "owner@example.com"})
	require.NoError(t, err)

	ev, err := f.events.Create(ctx, events.CreateParams{
		Title: "Market", Description: "weekly", Date: "2026-09-01",
		StartTime: "09:00", EndTime: "12:00",
		OwnerID: owner.ID, LocationID: "01MISSINGLOCATION000000000",
	})
	require.NoError(t, err)

	rec := f.do(t, fmt.Sprintf(`{"type":"query","operation":"getEvent","id":%q,"expand":["owner","location","participations"]}`, ev.ID))
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		events.Event
		Owner          *accounts.Account              `json:"owner"`
		Location       *locations.Location            `json:"location"`
		Participations []participations.Participation `json:"participations"`
	}
	decodeData(t, rec, &got)
	require.NotNil(t, got.Owner)
	require.Equal(t, owner.ID, got.Owner.ID)
	// dangling reference resolves to absent, not an error
	require.Nil(t, got.Location)
	require.Empty(t, got.Participations)
}

func TestDeleteAllReturnsRemovedInOrder(t *testing.T) {
	f := newFixture(t, live.FamilyChanges)
	ctx := context.Background()

	first, err := f.accounts.Create(ctx, accounts.CreateParams{Username: "a", Email: "a@example.com"})
	require.NoError(t, err)
	second, err := f.accounts.Create(ctx, accounts.CreateParams{Username: "b", Email: "b@example.com"})
	require.NoError(t, err)

	rec := f.do(t, `{"type":"mutation","operation":"deleteAllAccounts"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var removed []accounts.Account
	decodeData(t, rec, &removed)
	require.Len(t, removed, 2)
	require.Equal(t, first.ID, removed[0].ID)
	require.Equal(t, second.ID, removed[1].ID)
}

func TestSubscriptionUnknownChannel(t *testing.T) {
	f := newFixture(t, live.FamilyChanges)

	rec := f.do(t, `{"type":"subscription","operation":"locationCreated"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Unknown channel")
}

func TestSubscriptionStreamsChangeEvents(t *testing.T) {
	f := newFixture(t, live.FamilyChanges)

	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		srv.URL+"/api/v1/operations?type=subscription&operation=accountCreated", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	_, err = f.accounts.Create(context.Background(), accounts.CreateParams{Username: "live", Email: "live@example.com"})
	require.NoError(t, err)

	reader := bufio.NewReader(resp.Body)
	var eventLine, dataLine string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if strings.HasPrefix(line, "event: ") {
			eventLine = line
		}
		if strings.HasPrefix(line, "data: ") {
			dataLine = line
			break
		}
	}
	require.Equal(t, "event: accountCreated", eventLine)

	var env live.Envelope
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(dataLine, "data: ")), &env))
	require.Equal(t, "accountCreated", env.Channel)
	require.Equal(t, uint64(1), env.Seq)
}

func TestCounterFamilySubscription(t *testing.T) {
	f := newFixture(t, live.FamilyCounter)

	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		srv.URL+"/api/v1/operations?type=subscription&operation=counter", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	var dataLine string
	for {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		if strings.HasPrefix(line, "data: ") {
			dataLine = line
			break
		}
	}

	var env live.Envelope
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(dataLine, "data: ")), &env))
	require.Equal(t, "counter", env.Channel)
	require.Equal(t, uint64(1), env.Seq)
}

func TestCounterFamilyMutationsPublishNothing(t *testing.T) {
	f := newFixture(t, live.FamilyCounter)

	// Mutations still succeed even though nothing is observable.
	rec := f.do(t, `{"type":"mutation","operation":"addAccount","data":{"username":"q","email":"q@example.com"}}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, `{"type":"subscription","operation":"accountCreated"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
