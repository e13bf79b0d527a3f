package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/scorepool/go/internal/outbox"
	"github.com/mcdev12/scorepool/go/internal/rpc"
)

type fakeMembers map[uuid.UUID]map[uuid.UUID]bool

func (f fakeMembers) IsMember(_ context.Context, leagueID, userID uuid.UUID) (bool, error) {
	return f[leagueID][userID], nil
}

type recorder struct {
	got []Routed
}

func (r *recorder) BroadcastToLeague(leagueID uuid.UUID, n *Notification) {
	r.got = append(r.got, Routed{LeagueID: leagueID, Notification: n})
}

func envelope(t *testing.T, eventType string, aggregate uuid.UUID, payload any) outbox.Envelope {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return outbox.Envelope{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		AggregateID: aggregate.String(),
		Timestamp:   time.Date(2026, 5, 10, 21, 0, 0, 0, time.UTC),
		Payload:     raw,
	}
}

func TestTranslateMatchFinalizedFansOut(t *testing.T) {
	matchID := uuid.New()
	a, b := uuid.New(), uuid.New()
	env := envelope(t, outbox.EventMatchFinalized, matchID, outbox.MatchFinalizedPayload{
		MatchID:   matchID,
		Round:     7,
		LeagueIDs: []uuid.UUID{a, b},
	})

	got, err := Translate(env)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, a, got[0].LeagueID)
	assert.Equal(t, b, got[1].LeagueID)
	for _, r := range got {
		assert.Equal(t, NotificationStandingsChanged, r.Notification.Type)
		assert.Equal(t, env.EventID, r.Notification.ID)
		assert.JSONEq(t, `{"match_id":"`+matchID.String()+`","round":7}`, string(r.Notification.Data))
	}
}

func TestTranslateLeagueEvents(t *testing.T) {
	leagueID := uuid.New()

	tests := []struct {
		eventType string
		want      NotificationType
	}{
		{outbox.EventMemberJoined, NotificationMembersChanged},
		{outbox.EventMemberLeft, NotificationMembersChanged},
		{outbox.EventMemberRemoved, NotificationMembersChanged},
		{outbox.EventMemberRoleChanged, NotificationMembersChanged},
		{outbox.EventOwnershipTransferred, NotificationMembersChanged},
		{outbox.EventLeagueDeleted, NotificationLeagueDeleted},
	}
	for _, tt := range tests {
		t.Run(tt.eventType, func(t *testing.T) {
			got, err := Translate(envelope(t, tt.eventType, leagueID, map[string]string{"league_id": leagueID.String()}))
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, leagueID, got[0].LeagueID)
			assert.Equal(t, tt.want, got[0].Notification.Type)
			assert.Equal(t, tt.eventType, got[0].Notification.EventType)
		})
	}

	got, err := Translate(envelope(t, outbox.EventLeagueCreated, leagueID, struct{}{}))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDispatch(t *testing.T) {
	leagueID := uuid.New()
	rec := &recorder{}

	data, err := json.Marshal(envelope(t, outbox.EventMemberJoined, leagueID, struct{}{}))
	require.NoError(t, err)
	require.NoError(t, Dispatch(rec, data))
	require.Len(t, rec.got, 1)
	assert.Equal(t, leagueID, rec.got[0].LeagueID)

	assert.Error(t, Dispatch(rec, []byte("{not json")))

	bad := envelope(t, outbox.EventMemberLeft, leagueID, struct{}{})
	bad.AggregateID = "nope"
	data, err = json.Marshal(bad)
	require.NoError(t, err)
	assert.Error(t, Dispatch(rec, data))
	assert.Len(t, rec.got, 1)
}

type gatewayFixture struct {
	cm       *ConnectionManager
	srv      *httptest.Server
	leagueID uuid.UUID
	member   uuid.UUID
}

func newGatewayFixture(t *testing.T) *gatewayFixture {
	t.Helper()
	leagueID, member := uuid.New(), uuid.New()

	cm := NewConnectionManager(DefaultConnectionConfig(), clockwork.NewRealClock())
	ctx, cancel := context.WithCancel(context.Background())
	go cm.Start(ctx)

	mux := http.NewServeMux()
	NewWebSocketHandler(cm, fakeMembers{leagueID: {member: true}}).RegisterRoutes(mux)
	srv := httptest.NewServer(mux)

	t.Cleanup(func() {
		cancel()
		srv.Close()
	})
	return &gatewayFixture{cm: cm, srv: srv, leagueID: leagueID, member: member}
}

func (f *gatewayFixture) wsURL(leagueID uuid.UUID) string {
	return "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws/league?league_id=" + leagueID.String()
}

func TestLeagueSubscriptionReceivesNotifications(t *testing.T) {
	f := newGatewayFixture(t)

	header := http.Header{}
	header.Set(rpc.UserIDHeader, f.member.String())
	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL(f.leagueID), header)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool {
		return f.cm.Stats().LeagueConnections[f.leagueID.String()] == 1
	}, 2*time.Second, 10*time.Millisecond)

	f.cm.BroadcastToLeague(uuid.New(), &Notification{ID: "elsewhere", Type: NotificationMembersChanged})
	f.cm.BroadcastToLeague(f.leagueID, &Notification{
		ID:       "evt-1",
		LeagueID: f.leagueID.String(),
		Type:     NotificationStandingsChanged,
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var got Notification
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "evt-1", got.ID)
	assert.Equal(t, NotificationStandingsChanged, got.Type)

	res, err := http.Get(f.srv.URL + "/ws/stats")
	require.NoError(t, err)
	defer res.Body.Close()
	var stats ConnectionStats
	require.NoError(t, json.NewDecoder(res.Body).Decode(&stats))
	assert.Equal(t, 1, stats.TotalConnections)
	assert.Equal(t, 1, stats.ActiveLeagues)

	conn.Close()
	assert.Eventually(t, func() bool {
		return f.cm.Stats().TotalConnections == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestLeagueSubscriptionRejections(t *testing.T) {
	f := newGatewayFixture(t)

	tests := []struct {
		name   string
		url    string
		userID string
		status int
	}{
		{"missing league", "ws" + strings.TrimPrefix(f.srv.URL, "http") + "/ws/league", f.member.String(), http.StatusBadRequest},
		{"anonymous", f.wsURL(f.leagueID), "", http.StatusUnauthorized},
		{"outsider", f.wsURL(f.leagueID), uuid.NewString(), http.StatusForbidden},
		{"other league", f.wsURL(uuid.New()), f.member.String(), http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			if tt.userID != "" {
				header.Set(rpc.UserIDHeader, tt.userID)
			}
			conn, res, err := websocket.DefaultDialer.Dial(tt.url, header)
			if conn != nil {
				conn.Close()
			}
			require.ErrorIs(t, err, websocket.ErrBadHandshake)
			require.NotNil(t, res)
			assert.Equal(t, tt.status, res.StatusCode)
		})
	}
}

func TestUserIDQueryParameter(t *testing.T) {
	f := newGatewayFixture(t)

	conn, _, err := websocket.DefaultDialer.Dial(f.wsURL(f.leagueID)+"&user_id="+f.member.String(), nil)
	require.NoError(t, err)
	conn.Close()
}
