// Package grpc exposes the user and transcription services over gRPC using
// the JSON codec registered by package api.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/voicememo/internal/api"
	"github.com/dmitrijs2005/voicememo/internal/logging"
	"github.com/dmitrijs2005/voicememo/internal/server/models"
	"github.com/dmitrijs2005/voicememo/internal/server/services"
	"google.golang.org/grpc"
)

type userService interface {
	Register(ctx context.Context, username string, salt, verifier []byte) (*models.User, error)
	GetSalt(ctx context.Context, username string) ([]byte, error)
	Login(ctx context.Context, username string, verifierCandidate []byte) (*services.LoginResult, error)
}

type transcriptionService interface {
	RequestUpload(ctx context.Context, userID, contentType string) (string, string, error)
	Transcribe(ctx context.Context, userID, audioKey, language, prompt string) (*services.TranscribeResult, error)
	List(ctx context.Context, userID string, limit int) ([]*models.Transcription, error)
}

type GRPCServer struct {
	api.UnimplementedVoiceMemoServer
	address        string
	users          userService
	transcriptions transcriptionService
	logger         logging.Logger
	jwtSecret      []byte
}

func NewGRPCServer(a string, l logging.Logger, us userService, ts transcriptionService, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		users:          us,
		transcriptions: ts,
		jwtSecret:      []byte(secretKey),
	}
}

// NewServer builds the grpc.Server with the access token interceptor and the
// service registered, without binding a listener.
func (s *GRPCServer) NewServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.accessTokenInterceptor))
	api.RegisterVoiceMemoServer(srv, s)
	return srv
}

// Run serves on the configured address until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.NewServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	return nil
}
