package ranking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/mcdev12/scorepool/go/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverallStandingsOverConnect(t *testing.T) {
	f := newStandingsFixture()

	path, handler := NewRankingServiceHandler(NewService(f.app))
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := connect.NewClient[OverallStandingsRequest, StandingsResponse](
		srv.Client(),
		srv.URL+path+"OverallStandings",
		connect.WithCodec(rpc.JSONCodec{}),
		connect.WithInterceptors(rpc.NewIdentityInterceptor()),
	)
	msg := &OverallStandingsRequest{LeagueID: f.leagueID.String()}

	res, err := client.CallUnary(rpc.WithCaller(context.Background(), ana.UserID), connect.NewRequest(msg))
	require.NoError(t, err)
	require.Len(t, res.Msg.Standings, 3)
	assert.Equal(t, bruno.UserID.String(), res.Msg.Standings[0].UserID)
	require.NotNil(t, res.Msg.Standings[0].Efficiency)
	assert.InDelta(t, 0.7, *res.Msg.Standings[0].Efficiency, 1e-9)

	_, err = client.CallUnary(rpc.WithCaller(context.Background(), f.outsider), connect.NewRequest(msg))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
}
