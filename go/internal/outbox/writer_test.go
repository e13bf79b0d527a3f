package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/outbox/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingInserter struct {
	rows []db.InsertOutboxEventParams
	err  error
}

func (r *recordingInserter) InsertOutboxEvent(_ context.Context, arg db.InsertOutboxEventParams) error {
	if r.err != nil {
		return r.err
	}
	r.rows = append(r.rows, arg)
	return nil
}

func TestWriter_Append(t *testing.T) {
	ins := &recordingInserter{}
	w := NewWriter(ins)

	leagueID, actor := uuid.New(), uuid.New()
	payload := MembershipPayload{LeagueID: leagueID, UserID: actor, Role: "MEMBER"}
	require.NoError(t, w.Append(context.Background(), leagueID, EventMemberJoined, payload, actor))

	require.Len(t, ins.rows, 1)
	row := ins.rows[0]
	assert.NotEqual(t, uuid.Nil, row.ID)
	assert.Equal(t, leagueID, row.AggregateID)
	assert.Equal(t, EventMemberJoined, row.EventType)

	var decoded MembershipPayload
	require.NoError(t, json.Unmarshal(row.Payload, &decoded))
	assert.Equal(t, payload, decoded)

	require.True(t, row.Metadata.Valid)
	var meta Metadata
	require.NoError(t, json.Unmarshal(row.Metadata.RawMessage, &meta))
	assert.Equal(t, actor, meta.ActorID)
}

func TestWriter_Append_NoActor(t *testing.T) {
	ins := &recordingInserter{}
	require.NoError(t, NewWriter(ins).Append(context.Background(), uuid.New(), EventMatchFinalized, MatchFinalizedPayload{}, uuid.Nil))
	require.Len(t, ins.rows, 1)
	assert.False(t, ins.rows[0].Metadata.Valid)
}

func TestWriter_Append_InsertError(t *testing.T) {
	ins := &recordingInserter{err: errors.New("tx aborted")}
	err := NewWriter(ins).Append(context.Background(), uuid.New(), EventLeagueCreated, LeagueCreatedPayload{}, uuid.Nil)
	assert.ErrorContains(t, err, "league.created")
}

func TestNewEnvelope(t *testing.T) {
	event := newEvent(EventOwnershipTransferred)
	env := NewEnvelope(event, event.CreatedAt)
	assert.Equal(t, event.ID.String(), env.EventID)
	assert.Equal(t, event.AggregateID.String(), env.AggregateID)
	assert.Nil(t, env.Metadata)

	assert.Equal(t, "scorepool.events.match.finalized", DefaultJetStreamConfig().Subject(EventMatchFinalized))
}
