package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/voicememo/internal/api"
	"github.com/dmitrijs2005/voicememo/internal/common"
	"github.com/dmitrijs2005/voicememo/internal/logging"
	"github.com/dmitrijs2005/voicememo/internal/server/auth"
	"github.com/dmitrijs2005/voicememo/internal/server/models"
	"github.com/dmitrijs2005/voicememo/internal/server/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func TestServe_EndToEnd(t *testing.T) {
	token, err := auth.GenerateToken("u1", "alice", []byte("k"), time.Hour)
	require.NoError(t, err)

	u := &fakeUsers{loginResp: &services.LoginResult{AccessToken: token, User: &models.User{ID: "u1", UserName: "alice"}}}
	tr := &fakeTranscriptions{result: &services.TranscribeResult{Text: "bonjour", Language: "fr"}}
	s := newServer(u, tr)

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	c := api.NewVoiceMemoClient(conn)

	_, err = c.Transcribe(context.Background(), &api.TranscribeRequest{AudioKey: "audio/u1/a"})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	login, err := c.Login(context.Background(), &api.LoginRequest{Username: "alice", Verifier: []byte("v")})
	require.NoError(t, err)
	assert.Equal(t, "u1", login.User.ID)

	authCtx := metadata.AppendToOutgoingContext(context.Background(), common.AccessTokenHeaderName, login.AccessToken)
	resp, err := c.Transcribe(authCtx, &api.TranscribeRequest{AudioKey: "audio/u1/a", Language: "fr"})
	require.NoError(t, err)
	assert.Equal(t, "bonjour", resp.Text)
	assert.Equal(t, "u1", tr.lastUser)
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	s := NewGRPCServer("127.0.0.1:99999", logging.Nop(), &fakeUsers{}, &fakeTranscriptions{}, "k")
	err := s.Run(context.Background())
	assert.Error(t, err)
}
