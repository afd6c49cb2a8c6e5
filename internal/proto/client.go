package proto

import (
	"context"

	"google.golang.org/grpc"
)

// PlanningPokerClient is the typed client of the service.
type PlanningPokerClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
	CreateTable(ctx context.Context, in *CreateTableRequest, opts ...grpc.CallOption) (*CreateTableResponse, error)
	GetTable(ctx context.Context, in *GetTableRequest, opts ...grpc.CallOption) (*GetTableResponse, error)
	ListActiveTables(ctx context.Context, in *ListActiveTablesRequest, opts ...grpc.CallOption) (*ListTablesResponse, error)
	ListMyClosedTables(ctx context.Context, in *ListMyClosedTablesRequest, opts ...grpc.CallOption) (*ListTablesResponse, error)
	CloseTable(ctx context.Context, in *CloseTableRequest, opts ...grpc.CallOption) (*CloseTableResponse, error)
	ResetAllVotes(ctx context.Context, in *ResetAllVotesRequest, opts ...grpc.CallOption) (*ResetAllVotesResponse, error)
	JoinTable(ctx context.Context, in *JoinTableRequest, opts ...grpc.CallOption) (*JoinTableResponse, error)
	ListDevelopers(ctx context.Context, in *ListDevelopersRequest, opts ...grpc.CallOption) (*ListDevelopersResponse, error)
	CastVote(ctx context.Context, in *CastVoteRequest, opts ...grpc.CallOption) (*CastVoteResponse, error)
	HasVoted(ctx context.Context, in *HasVotedRequest, opts ...grpc.CallOption) (*HasVotedResponse, error)
	ListStories(ctx context.Context, in *ListStoriesRequest, opts ...grpc.CallOption) (*ListStoriesResponse, error)
	CreateStory(ctx context.Context, in *CreateStoryRequest, opts ...grpc.CallOption) (*CreateStoryResponse, error)
	UpdateStory(ctx context.Context, in *UpdateStoryRequest, opts ...grpc.CallOption) (*UpdateStoryResponse, error)
	DeleteStory(ctx context.Context, in *DeleteStoryRequest, opts ...grpc.CallOption) (*DeleteStoryResponse, error)
	ExportStoriesCsv(ctx context.Context, in *ExportStoriesCsvRequest, opts ...grpc.CallOption) (*ExportStoriesCsvResponse, error)
	GetExportURL(ctx context.Context, in *GetExportURLRequest, opts ...grpc.CallOption) (*GetExportURLResponse, error)
}

type planningPokerClient struct {
	cc grpc.ClientConnInterface
}

func NewPlanningPokerClient(cc grpc.ClientConnInterface) PlanningPokerClient {
	return &planningPokerClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *planningPokerClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, PlanningPoker_Register_FullMethodName, in, opts)
}

func (c *planningPokerClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return invoke[LoginResponse](ctx, c.cc, PlanningPoker_Login_FullMethodName, in, opts)
}

func (c *planningPokerClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*RefreshTokenResponse, error) {
	return invoke[RefreshTokenResponse](ctx, c.cc, PlanningPoker_RefreshToken_FullMethodName, in, opts)
}

func (c *planningPokerClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, PlanningPoker_Logout_FullMethodName, in, opts)
}

func (c *planningPokerClient) Me(ctx context.Context, in *MeRequest, opts ...grpc.CallOption) (*MeResponse, error) {
	return invoke[MeResponse](ctx, c.cc, PlanningPoker_Me_FullMethodName, in, opts)
}

func (c *planningPokerClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, PlanningPoker_Ping_FullMethodName, in, opts)
}

func (c *planningPokerClient) CreateTable(ctx context.Context, in *CreateTableRequest, opts ...grpc.CallOption) (*CreateTableResponse, error) {
	return invoke[CreateTableResponse](ctx, c.cc, PlanningPoker_CreateTable_FullMethodName, in, opts)
}

func (c *planningPokerClient) GetTable(ctx context.Context, in *GetTableRequest, opts ...grpc.CallOption) (*GetTableResponse, error) {
	return invoke[GetTableResponse](ctx, c.cc, PlanningPoker_GetTable_FullMethodName, in, opts)
}

func (c *planningPokerClient) ListActiveTables(ctx context.Context, in *ListActiveTablesRequest, opts ...grpc.CallOption) (*ListTablesResponse, error) {
	return invoke[ListTablesResponse](ctx, c.cc, PlanningPoker_ListActiveTables_FullMethodName, in, opts)
}

func (c *planningPokerClient) ListMyClosedTables(ctx context.Context, in *ListMyClosedTablesRequest, opts ...grpc.CallOption) (*ListTablesResponse, error) {
	return invoke[ListTablesResponse](ctx, c.cc, PlanningPoker_ListMyClosedTables_FullMethodName, in, opts)
}

func (c *planningPokerClient) CloseTable(ctx context.Context, in *CloseTableRequest, opts ...grpc.CallOption) (*CloseTableResponse, error) {
	return invoke[CloseTableResponse](ctx, c.cc, PlanningPoker_CloseTable_FullMethodName, in, opts)
}

func (c *planningPokerClient) ResetAllVotes(ctx context.Context, in *ResetAllVotesRequest, opts ...grpc.CallOption) (*ResetAllVotesResponse, error) {
	return invoke[ResetAllVotesResponse](ctx, c.cc, PlanningPoker_ResetAllVotes_FullMethodName, in, opts)
}

func (c *planningPokerClient) JoinTable(ctx context.Context, in *JoinTableRequest, opts ...grpc.CallOption) (*JoinTableResponse, error) {
	return invoke[JoinTableResponse](ctx, c.cc, PlanningPoker_JoinTable_FullMethodName, in, opts)
}

func (c *planningPokerClient) ListDevelopers(ctx context.Context, in *ListDevelopersRequest, opts ...grpc.CallOption) (*ListDevelopersResponse, error) {
	return invoke[ListDevelopersResponse](ctx, c.cc, PlanningPoker_ListDevelopers_FullMethodName, in, opts)
}

func (c *planningPokerClient) CastVote(ctx context.Context, in *CastVoteRequest, opts ...grpc.CallOption) (*CastVoteResponse, error) {
	return invoke[CastVoteResponse](ctx, c.cc, PlanningPoker_CastVote_FullMethodName, in, opts)
}

func (c *planningPokerClient) HasVoted(ctx context.Context, in *HasVotedRequest, opts ...grpc.CallOption) (*HasVotedResponse, error) {
	return invoke[HasVotedResponse](ctx, c.cc, PlanningPoker_HasVoted_FullMethodName, in, opts)
}

func (c *planningPokerClient) ListStories(ctx context.Context, in *ListStoriesRequest, opts ...grpc.CallOption) (*ListStoriesResponse, error) {
	return invoke[ListStoriesResponse](ctx, c.cc, PlanningPoker_ListStories_FullMethodName, in, opts)
}

func (c *planningPokerClient) CreateStory(ctx context.Context, in *CreateStoryRequest, opts ...grpc.CallOption) (*CreateStoryResponse, error) {
	return invoke[CreateStoryResponse](ctx, c.cc, PlanningPoker_CreateStory_FullMethodName, in, opts)
}

func (c *planningPokerClient) UpdateStory(ctx context.Context, in *UpdateStoryRequest, opts ...grpc.CallOption) (*UpdateStoryResponse, error) {
	return invoke[UpdateStoryResponse](ctx, c.cc, PlanningPoker_UpdateStory_FullMethodName, in, opts)
}

func (c *planningPokerClient) DeleteStory(ctx context.Context, in *DeleteStoryRequest, opts ...grpc.CallOption) (*DeleteStoryResponse, error) {
	return invoke[DeleteStoryResponse](ctx, c.cc, PlanningPoker_DeleteStory_FullMethodName, in, opts)
}

func (c *planningPokerClient) ExportStoriesCsv(ctx context.Context, in *ExportStoriesCsvRequest, opts ...grpc.CallOption) (*ExportStoriesCsvResponse, error) {
	return invoke[ExportStoriesCsvResponse](ctx, c.cc, PlanningPoker_ExportStoriesCsv_FullMethodName, in, opts)
}

func (c *planningPokerClient) GetExportURL(ctx context.Context, in *GetExportURLRequest, opts ...grpc.CallOption) (*GetExportURLResponse, error) {
	return invoke[GetExportURLResponse](ctx, c.cc, PlanningPoker_GetExportURL_FullMethodName, in, opts)
}
