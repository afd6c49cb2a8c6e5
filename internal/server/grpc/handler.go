package grpc

import (
	"context"

	pb "github.com/dmitrijs2005/planningpoker/internal/proto"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) caller(ctx context.Context) (int64, error) {
	id, ok := DeveloperIDFromContext(ctx)
	if !ok {
		return 0, status.Error(codes.Unauthenticated, "missing token")
	}
	return id, nil
}

func (s *GRPCServer) Register(ctx context.Context, req *pb.RegisterRequest) (*pb.RegisterResponse, error) {
	d, err := s.developers.Register(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return nil, mapError(err)
	}

	s.logger.Info(ctx, "Registered", "developer_id", d.ID)
	return &pb.RegisterResponse{Developer: developerToPB(d, true)}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *pb.LoginRequest) (*pb.LoginResponse, error) {
	tokens, d, err := s.developers.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, mapError(err)
	}

	return &pb.LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		Developer:    developerToPB(d, true),
	}, nil
}

func (s *GRPCServer) RefreshToken(ctx context.Context, req *pb.RefreshTokenRequest) (*pb.RefreshTokenResponse, error) {
	tokens, err := s.developers.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.RefreshTokenResponse{AccessToken: tokens.AccessToken, RefreshToken: tokens.RefreshToken}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *pb.LogoutRequest) (*pb.LogoutResponse, error) {
	if err := s.developers.Logout(ctx, req.RefreshToken); err != nil {
		return nil, mapError(err)
	}
	return &pb.LogoutResponse{}, nil
}

func (s *GRPCServer) Me(ctx context.Context, _ *pb.MeRequest) (*pb.MeResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	d, err := s.developers.Me(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.MeResponse{Developer: developerToPB(d, true)}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, _ *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Status: "OK"}, nil
}

func (s *GRPCServer) CreateTable(ctx context.Context, _ *pb.CreateTableRequest) (*pb.CreateTableResponse, error) {
	t, err := s.tables.CreateTable(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.CreateTableResponse{Table: tableToPB(t)}, nil
}

func (s *GRPCServer) GetTable(ctx context.Context, req *pb.GetTableRequest) (*pb.GetTableResponse, error) {
	t, err := s.tables.GetTable(ctx, req.TableId)
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.GetTableResponse{Table: tableToPB(t)}, nil
}

func (s *GRPCServer) ListActiveTables(ctx context.Context, _ *pb.ListActiveTablesRequest) (*pb.ListTablesResponse, error) {
	ts, err := s.tables.ListActiveTables(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.ListTablesResponse{Tables: tablesToPB(ts)}, nil
}

func (s *GRPCServer) ListMyClosedTables(ctx context.Context, req *pb.ListMyClosedTablesRequest) (*pb.ListTablesResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	ts, err := s.tables.ListMyClosedTables(ctx, id, req.DeveloperId)
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.ListTablesResponse{Tables: tablesToPB(ts)}, nil
}

func (s *GRPCServer) CloseTable(ctx context.Context, req *pb.CloseTableRequest) (*pb.CloseTableResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.tables.CloseTable(ctx, id, req.TableId); err != nil {
		return nil, mapError(err)
	}
	return &pb.CloseTableResponse{}, nil
}

func (s *GRPCServer) ResetAllVotes(ctx context.Context, req *pb.ResetAllVotesRequest) (*pb.ResetAllVotesResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.tables.ResetAllVotes(ctx, id, req.TableId); err != nil {
		return nil, mapError(err)
	}
	return &pb.ResetAllVotesResponse{}, nil
}

func (s *GRPCServer) JoinTable(ctx context.Context, req *pb.JoinTableRequest) (*pb.JoinTableResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	d, t, err := s.tables.JoinTable(ctx, id, req.TableId)
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.JoinTableResponse{Developer: developerToPB(d, true), Table: tableToPB(t)}, nil
}

func (s *GRPCServer) ListDevelopers(ctx context.Context, req *pb.ListDevelopersRequest) (*pb.ListDevelopersResponse, error) {
	devs, err := s.tables.ListDevelopers(ctx, req.TableId)
	if err != nil {
		return nil, mapError(err)
	}

	out := make([]*pb.Developer, 0, len(devs))
	for _, d := range devs {
		out = append(out, developerToPB(d, false))
	}
	return &pb.ListDevelopersResponse{Developers: out}, nil
}

func (s *GRPCServer) CastVote(ctx context.Context, req *pb.CastVoteRequest) (*pb.CastVoteResponse, error) {
	id, err := s.caller(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.tables.CastVote(ctx, id, req.DeveloperId, req.TableId, req.Value); err != nil {
		return nil, mapError(err)
	}
	return &pb.CastVoteResponse{}, nil
}

func (s *GRPCServer) HasVoted(ctx context.Context, req *pb.HasVotedRequest) (*pb.HasVotedResponse, error) {
	voted, err := s.tables.HasVoted(ctx, req.DeveloperId)
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.HasVotedResponse{HasVoted: voted}, nil
}

func (s *GRPCServer) ListStories(ctx context.Context, req *pb.ListStoriesRequest) (*pb.ListStoriesResponse, error) {
	stories, err := s.stories.List(ctx, req.TableId)
	if err != nil {
		return nil, mapError(err)
	}

	out := make([]*pb.UserStory, 0, len(stories))
	for _, st := range stories {
		out = append(out, storyToPB(st))
	}
	return &pb.ListStoriesResponse{Stories: out}, nil
}

func (s *GRPCServer) CreateStory(ctx context.Context, req *pb.CreateStoryRequest) (*pb.CreateStoryResponse, error) {
	st, err := s.stories.Create(ctx, req.TableId, req.Title, req.Description, req.EstimatedPoints)
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.CreateStoryResponse{Story: storyToPB(st)}, nil
}

func (s *GRPCServer) UpdateStory(ctx context.Context, req *pb.UpdateStoryRequest) (*pb.UpdateStoryResponse, error) {
	st, err := s.stories.Update(ctx, req.Id, models.StoryPatch{
		Title:           req.Title,
		Description:     req.Description,
		EstimatedPoints: req.EstimatedPoints,
		ClearEstimate:   req.ClearEstimate,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.UpdateStoryResponse{Story: storyToPB(st)}, nil
}

func (s *GRPCServer) DeleteStory(ctx context.Context, req *pb.DeleteStoryRequest) (*pb.DeleteStoryResponse, error) {
	if err := s.stories.Delete(ctx, req.Id); err != nil {
		return nil, mapError(err)
	}
	return &pb.DeleteStoryResponse{}, nil
}

func (s *GRPCServer) ExportStoriesCsv(ctx context.Context, req *pb.ExportStoriesCsvRequest) (*pb.ExportStoriesCsvResponse, error) {
	name, body, err := s.stories.ExportCSV(ctx, req.TableId)
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.ExportStoriesCsvResponse{Filename: name, Content: body}, nil
}

func (s *GRPCServer) GetExportURL(ctx context.Context, req *pb.GetExportURLRequest) (*pb.GetExportURLResponse, error) {
	url, key, expiresAt, err := s.tables.GetExportURL(ctx, req.TableId)
	if err != nil {
		return nil, mapError(err)
	}
	return &pb.GetExportURLResponse{Url: url, Key: key, ExpiresAt: expiresAt}, nil
}
