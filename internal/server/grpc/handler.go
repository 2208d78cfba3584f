package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/voicememo/internal/api"
	"github.com/dmitrijs2005/voicememo/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.RegisterResponse, error) {
	s.logger.Info(ctx, "Registration request")

	u, err := s.users.Register(ctx, req.Username, req.Salt, req.Verifier)
	if err != nil {
		s.logger.Error(ctx, "registration failed", "error", err)
		return nil, toStatus(err)
	}

	s.logger.Info(ctx, "Registered", "username", u.UserName)
	return &api.RegisterResponse{UserID: u.ID}, nil
}

func (s *GRPCServer) GetSalt(ctx context.Context, req *api.GetSaltRequest) (*api.GetSaltResponse, error) {
	salt, err := s.users.GetSalt(ctx, req.Username)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.GetSaltResponse{Salt: salt}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.LoginResponse, error) {
	res, err := s.users.Login(ctx, req.Username, req.Verifier)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.LoginResponse{
		AccessToken: res.AccessToken,
		User:        api.UserInfo{ID: res.User.ID, Username: res.User.UserName},
	}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {
	return &api.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) RequestUpload(ctx context.Context, req *api.RequestUploadRequest) (*api.RequestUploadResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Internal, "internal error")
	}

	key, url, err := s.transcriptions.RequestUpload(ctx, userID, req.ContentType)
	if err != nil {
		return nil, toStatus(err)
	}
	return &api.RequestUploadResponse{Key: key, URL: url}, nil
}

func (s *GRPCServer) Transcribe(ctx context.Context, req *api.TranscribeRequest) (*api.TranscribeResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Internal, "internal error")
	}
	if req.AudioKey == "" {
		return nil, status.Error(codes.InvalidArgument, "audio key is required")
	}

	res, err := s.transcriptions.Transcribe(ctx, userID, req.AudioKey, req.Language, req.Prompt)
	if err != nil {
		s.logger.Warn(ctx, "transcription failed", "key", req.AudioKey, "error", err)
		return nil, toStatus(err)
	}
	return &api.TranscribeResponse{Text: res.Text, Language: res.Language, Cached: res.Cached}, nil
}

func (s *GRPCServer) ListTranscriptions(ctx context.Context, req *api.ListTranscriptionsRequest) (*api.ListTranscriptionsResponse, error) {
	userID, ok := userIDFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Internal, "internal error")
	}

	items, err := s.transcriptions.List(ctx, userID, req.Limit)
	if err != nil {
		return nil, toStatus(err)
	}

	out := make([]api.Transcription, 0, len(items))
	for _, t := range items {
		out = append(out, api.Transcription{
			ID:        t.ID,
			AudioKey:  t.AudioKey,
			Language:  t.Language,
			Text:      t.Text,
			CreatedAt: t.CreatedAt,
		})
	}
	return &api.ListTranscriptionsResponse{Items: out}, nil
}

// toStatus maps domain errors to gRPC codes. Transcription failures keep
// their message so the client can show it.
func toStatus(err error) error {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, common.ErrConflict):
		return status.Error(codes.AlreadyExists, "already exists")
	case errors.Is(err, common.ErrNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, "invalid argument")
	case errors.Is(err, common.ErrTranscriptionFailed):
		return status.Error(codes.Internal, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
