package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/client/models"
	"github.com/dmitrijs2005/planningpoker/internal/common"
	pb "github.com/dmitrijs2005/planningpoker/internal/proto"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// publicMethods are sent without an access token and never trigger a refresh.
var publicMethods = map[string]bool{
	pb.PlanningPoker_Register_FullMethodName:     true,
	pb.PlanningPoker_Login_FullMethodName:        true,
	pb.PlanningPoker_RefreshToken_FullMethodName: true,
	pb.PlanningPoker_Ping_FullMethodName:         true,
}

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	dialOpts    []grpc.DialOption
	conn        *grpc.ClientConn
	client      pb.PlanningPokerClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	onRefresh    func(models.Tokens)

	// refreshMu serializes rotations so concurrent expired calls refresh once.
	refreshMu sync.Mutex
}

// NewGRPCClient connects to endpointURL. Every call is bounded by timeout
// when it is positive. Extra dial options are appended to the defaults.
func NewGRPCClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout, dialOpts: opts}
	if err := c.InitGRPCClient(); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient() error {
	opts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(s.accessTokenInterceptor),
	}, s.dialOpts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.client = pb.NewPlanningPokerClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

// OnTokensRefreshed registers fn to be called after every successful
// background token rotation, so the new pair can be persisted.
func (s *GRPCClient) OnTokensRefreshed(fn func(models.Tokens)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

func (s *GRPCClient) SetTokens(t models.Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = t.AccessToken
	s.refreshToken = t.RefreshToken
}

func (s *GRPCClient) Tokens() models.Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Tokens{AccessToken: s.accessToken, RefreshToken: s.refreshToken}
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Delete(common.AccessTokenHeaderName)
	md.Set(common.AccessTokenHeaderName, token)

	return metadata.NewOutgoingContext(ctx, md)
}

func isTokenExpired(err error) bool {
	st, ok := status.FromError(err)
	return ok && st.Code() == codes.Unauthenticated && st.Message() == common.ErrTokenExpired.Error()
}

func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if publicMethods[method] {
		return invoker(ctx, method, req, reply, cc, opts...)
	}

	tokens := s.Tokens()
	err := invoker(withAccessToken(ctx, tokens.AccessToken), method, req, reply, cc, opts...)
	if err == nil || !isTokenExpired(err) {
		return err
	}

	if tokens.RefreshToken == "" {
		return err
	}

	fresh, err := s.refresh(ctx, tokens.AccessToken)
	if err != nil {
		return err
	}

	return invoker(withAccessToken(ctx, fresh), method, req, reply, cc, opts...)
}

// refresh rotates the token pair unless another call already replaced the
// stale access token, in which case the current one is returned.
func (s *GRPCClient) refresh(ctx context.Context, stale string) (string, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	current := s.Tokens()
	if current.AccessToken != stale && current.AccessToken != "" {
		return current.AccessToken, nil
	}

	resp, err := s.client.RefreshToken(ctx, &pb.RefreshTokenRequest{RefreshToken: current.RefreshToken})
	if err != nil {
		return "", err
	}

	fresh := models.Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.SetTokens(fresh)

	s.mu.RLock()
	notify := s.onRefresh
	s.mu.RUnlock()
	if notify != nil {
		notify(fresh)
	}

	return fresh.AccessToken, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return ErrUnauthorized
	case codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrForbidden, st.Message())
	case codes.NotFound:
		return ErrNotFound
	case codes.FailedPrecondition:
		if pb.HasReason(err, pb.ReasonTableClosed) {
			return ErrClosedTable
		}
		return fmt.Errorf("%w: %s", ErrConflict, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", ErrConflict, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidArgument, st.Message())
	case codes.ResourceExhausted:
		return ErrThrottled
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}

func (s *GRPCClient) Register(ctx context.Context, name, email, password string) (*models.Developer, error) {
	resp, err := s.client.Register(ctx, &pb.RegisterRequest{Name: name, Email: email, Password: password})
	if err != nil {
		return nil, mapError(err)
	}
	return developerFromPB(resp.Developer), nil
}

func (s *GRPCClient) Login(ctx context.Context, email, password string) (models.Tokens, *models.Developer, error) {
	resp, err := s.client.Login(ctx, &pb.LoginRequest{Email: email, Password: password})
	if err != nil {
		return models.Tokens{}, nil, mapError(err)
	}

	tokens := models.Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.SetTokens(tokens)

	return tokens, developerFromPB(resp.Developer), nil
}

// Logout revokes the refresh token on the server. Local tokens are dropped
// even when the server call fails.
func (s *GRPCClient) Logout(ctx context.Context) error {
	refresh := s.Tokens().RefreshToken
	defer s.SetTokens(models.Tokens{})

	if refresh == "" {
		return nil
	}
	_, err := s.client.Logout(ctx, &pb.LogoutRequest{RefreshToken: refresh})
	return mapError(err)
}

func (s *GRPCClient) Me(ctx context.Context) (*models.Developer, error) {
	resp, err := s.client.Me(ctx, &pb.MeRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return developerFromPB(resp.Developer), nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &pb.PingRequest{})
	if err != nil {
		return mapError(err)
	}

	if resp.Status != "OK" {
		return ErrUnavailable
	}

	return nil
}

func (s *GRPCClient) CreateTable(ctx context.Context) (*models.PokerTable, error) {
	resp, err := s.client.CreateTable(ctx, &pb.CreateTableRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return tableFromPB(resp.Table), nil
}

func (s *GRPCClient) GetTable(ctx context.Context, tableID int64) (*models.PokerTable, error) {
	resp, err := s.client.GetTable(ctx, &pb.GetTableRequest{TableId: tableID})
	if err != nil {
		return nil, mapError(err)
	}
	return tableFromPB(resp.Table), nil
}

func (s *GRPCClient) ListActiveTables(ctx context.Context) ([]models.PokerTable, error) {
	resp, err := s.client.ListActiveTables(ctx, &pb.ListActiveTablesRequest{})
	if err != nil {
		return nil, mapError(err)
	}
	return tablesFromPB(resp.Tables), nil
}

func (s *GRPCClient) ListMyClosedTables(ctx context.Context, developerID int64) ([]models.PokerTable, error) {
	resp, err := s.client.ListMyClosedTables(ctx, &pb.ListMyClosedTablesRequest{DeveloperId: developerID})
	if err != nil {
		return nil, mapError(err)
	}
	return tablesFromPB(resp.Tables), nil
}

func (s *GRPCClient) CloseTable(ctx context.Context, tableID int64) error {
	_, err := s.client.CloseTable(ctx, &pb.CloseTableRequest{TableId: tableID})
	return mapError(err)
}

func (s *GRPCClient) ResetAllVotes(ctx context.Context, tableID int64) error {
	_, err := s.client.ResetAllVotes(ctx, &pb.ResetAllVotesRequest{TableId: tableID})
	return mapError(err)
}

func (s *GRPCClient) JoinTable(ctx context.Context, tableID int64) (*models.Developer, *models.PokerTable, error) {
	resp, err := s.client.JoinTable(ctx, &pb.JoinTableRequest{TableId: tableID})
	if err != nil {
		return nil, nil, mapError(err)
	}
	return developerFromPB(resp.Developer), tableFromPB(resp.Table), nil
}

func (s *GRPCClient) ListDevelopers(ctx context.Context, tableID int64) ([]models.Developer, error) {
	resp, err := s.client.ListDevelopers(ctx, &pb.ListDevelopersRequest{TableId: tableID})
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]models.Developer, 0, len(resp.Developers))
	for _, d := range resp.Developers {
		if d != nil {
			out = append(out, *developerFromPB(d))
		}
	}
	return out, nil
}

func (s *GRPCClient) CastVote(ctx context.Context, developerID, tableID int64, value int32) error {
	_, err := s.client.CastVote(ctx, &pb.CastVoteRequest{DeveloperId: developerID, TableId: tableID, Value: value})
	return mapError(err)
}

func (s *GRPCClient) HasVoted(ctx context.Context, developerID int64) (bool, error) {
	resp, err := s.client.HasVoted(ctx, &pb.HasVotedRequest{DeveloperId: developerID})
	if err != nil {
		return false, mapError(err)
	}
	return resp.HasVoted, nil
}

func (s *GRPCClient) ListStories(ctx context.Context, tableID int64) ([]models.UserStory, error) {
	resp, err := s.client.ListStories(ctx, &pb.ListStoriesRequest{TableId: tableID})
	if err != nil {
		return nil, mapError(err)
	}
	out := make([]models.UserStory, 0, len(resp.Stories))
	for _, st := range resp.Stories {
		if st != nil {
			out = append(out, *storyFromPB(st))
		}
	}
	return out, nil
}

func (s *GRPCClient) CreateStory(ctx context.Context, tableID int64, in models.StoryInput) (*models.UserStory, error) {
	req := &pb.CreateStoryRequest{
		TableId:         tableID,
		Title:           in.Title,
		Description:     in.Description,
		EstimatedPoints: in.EstimatedPoints,
	}
	resp, err := s.client.CreateStory(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return storyFromPB(resp.Story), nil
}

func (s *GRPCClient) UpdateStory(ctx context.Context, storyID int64, patch models.StoryPatch) (*models.UserStory, error) {
	req := &pb.UpdateStoryRequest{
		Id:              storyID,
		Title:           patch.Title,
		Description:     patch.Description,
		EstimatedPoints: patch.EstimatedPoints,
		ClearEstimate:   patch.ClearEstimate,
	}
	resp, err := s.client.UpdateStory(ctx, req)
	if err != nil {
		return nil, mapError(err)
	}
	return storyFromPB(resp.Story), nil
}

func (s *GRPCClient) DeleteStory(ctx context.Context, storyID int64) error {
	_, err := s.client.DeleteStory(ctx, &pb.DeleteStoryRequest{Id: storyID})
	return mapError(err)
}

func (s *GRPCClient) ExportStoriesCsv(ctx context.Context, tableID int64) (*models.Export, error) {
	resp, err := s.client.ExportStoriesCsv(ctx, &pb.ExportStoriesCsvRequest{TableId: tableID})
	if err != nil {
		return nil, mapError(err)
	}
	return &models.Export{Filename: resp.Filename, Content: resp.Content}, nil
}

func (s *GRPCClient) GetExportURL(ctx context.Context, tableID int64) (*models.ArchiveLink, error) {
	resp, err := s.client.GetExportURL(ctx, &pb.GetExportURLRequest{TableId: tableID})
	if err != nil {
		return nil, mapError(err)
	}
	return &models.ArchiveLink{URL: resp.Url, Key: resp.Key, ExpiresAt: resp.ExpiresAt}, nil
}
