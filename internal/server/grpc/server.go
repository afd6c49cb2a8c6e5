// Package grpc exposes the planning poker services over gRPC.
package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/logging"
	pb "github.com/dmitrijs2005/planningpoker/internal/proto"
	"github.com/dmitrijs2005/planningpoker/internal/server/models"
	"github.com/dmitrijs2005/planningpoker/internal/server/services"
	"google.golang.org/grpc"
)

type developerSvc interface {
	Register(ctx context.Context, name, email, password string) (*models.Developer, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, *models.Developer, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context, developerID int64) (*models.Developer, error)
}

type tableSvc interface {
	CreateTable(ctx context.Context) (*models.PokerTable, error)
	GetTable(ctx context.Context, id int64) (*models.PokerTable, error)
	ListActiveTables(ctx context.Context) ([]*models.PokerTable, error)
	ListMyClosedTables(ctx context.Context, callerID, developerID int64) ([]*models.PokerTable, error)
	JoinTable(ctx context.Context, callerID, tableID int64) (*models.Developer, *models.PokerTable, error)
	ListDevelopers(ctx context.Context, tableID int64) ([]*models.Developer, error)
	CastVote(ctx context.Context, callerID, developerID, tableID int64, value int32) error
	HasVoted(ctx context.Context, developerID int64) (bool, error)
	ResetAllVotes(ctx context.Context, callerID, tableID int64) error
	CloseTable(ctx context.Context, callerID, tableID int64) error
	GetExportURL(ctx context.Context, tableID int64) (string, string, time.Time, error)
}

type storySvc interface {
	List(ctx context.Context, tableID int64) ([]*models.UserStory, error)
	Create(ctx context.Context, tableID int64, title, description string, points *int32) (*models.UserStory, error)
	Update(ctx context.Context, id int64, patch models.StoryPatch) (*models.UserStory, error)
	Delete(ctx context.Context, id int64) error
	ExportCSV(ctx context.Context, tableID int64) (string, []byte, error)
}

type GRPCServer struct {
	pb.UnimplementedPlanningPokerServer
	address    string
	developers developerSvc
	tables     tableSvc
	stories    storySvc
	logger     logging.Logger
	jwtSecret  []byte
}

func NewGRPCServer(a string, l logging.Logger, ds developerSvc, ts tableSvc, ss storySvc, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:    a,
		logger:     l.With("module", "grpc_server"),
		developers: ds,
		tables:     ts,
		stories:    ss,
		jwtSecret:  []byte(secretKey),
	}
}

func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor))
	pb.RegisterPlanningPokerServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *GRPCServer) serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil {
		return err
	}
	return nil
}
