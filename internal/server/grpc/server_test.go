package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/common"
	"github.com/dmitrijs2005/planningpoker/internal/logging"
	pb "github.com/dmitrijs2005/planningpoker/internal/proto"
	"github.com/dmitrijs2005/planningpoker/internal/server/auth"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	srv := newServer(&fakeDevelopers{}, &fakeTables{}, &fakeStories{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error on graceful stop: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	t.Parallel()

	srv := NewGRPCServer("127.0.0.1:99999", logging.Nop(), &fakeDevelopers{}, &fakeTables{}, &fakeStories{}, "secret")

	if err := srv.Run(context.Background()); err == nil {
		t.Fatal("expected error from Run on bad address, got nil")
	}
}

// startBufconn serves s over an in-memory listener with the production
// interceptor chain and returns a connected client.
func startBufconn(t *testing.T, s *GRPCServer) pb.PlanningPokerClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = s.serve(ctx, lis)
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		<-done
	})
	return pb.NewPlanningPokerClient(conn)
}

func TestBufconn_EndToEnd(t *testing.T) {
	ft := &fakeTables{
		table: &models.PokerTable{ID: 1, Name: "Table 1"},
		devs:  []*models.Developer{{ID: 10, Name: "A", Vote: common.Int32Ptr(5)}},
	}
	s := newServer(&fakeDevelopers{}, ft, &fakeStories{})
	c := startBufconn(t, s)

	ping, err := c.Ping(context.Background(), &pb.PingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "OK", ping.Status)

	_, err = c.JoinTable(context.Background(), &pb.JoinTableRequest{TableId: 1})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	token, err := auth.GenerateToken(10, []byte("k"), time.Hour)
	require.NoError(t, err)
	ctx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, token)

	var header metadata.MD
	joined, err := c.JoinTable(ctx, &pb.JoinTableRequest{TableId: 1}, grpc.Header(&header))
	require.NoError(t, err)
	assert.Equal(t, int64(10), joined.Developer.Id)
	assert.Equal(t, int64(10), ft.caller)
	assert.NotEmpty(t, header.Get(common.RequestIDHeaderName))

	_, err = c.CastVote(ctx, &pb.CastVoteRequest{DeveloperId: 10, TableId: 1, Value: 5})
	require.NoError(t, err)

	devs, err := c.ListDevelopers(ctx, &pb.ListDevelopersRequest{TableId: 1})
	require.NoError(t, err)
	require.Len(t, devs.Developers, 1)
	assert.Equal(t, int32(5), *devs.Developers[0].Vote)

	ft.err = common.ErrTableClosed
	_, err = c.JoinTable(ctx, &pb.JoinTableRequest{TableId: 1})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}
