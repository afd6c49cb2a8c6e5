package proto

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "poker.v1.PlanningPoker"

// Full method names, as seen by interceptors in UnaryServerInfo.FullMethod.
const (
	PlanningPoker_Register_FullMethodName           = "/" + ServiceName + "/Register"
	PlanningPoker_Login_FullMethodName              = "/" + ServiceName + "/Login"
	PlanningPoker_RefreshToken_FullMethodName       = "/" + ServiceName + "/RefreshToken"
	PlanningPoker_Logout_FullMethodName             = "/" + ServiceName + "/Logout"
	PlanningPoker_Me_FullMethodName                 = "/" + ServiceName + "/Me"
	PlanningPoker_Ping_FullMethodName               = "/" + ServiceName + "/Ping"
	PlanningPoker_CreateTable_FullMethodName        = "/" + ServiceName + "/CreateTable"
	PlanningPoker_GetTable_FullMethodName           = "/" + ServiceName + "/GetTable"
	PlanningPoker_ListActiveTables_FullMethodName   = "/" + ServiceName + "/ListActiveTables"
	PlanningPoker_ListMyClosedTables_FullMethodName = "/" + ServiceName + "/ListMyClosedTables"
	PlanningPoker_CloseTable_FullMethodName         = "/" + ServiceName + "/CloseTable"
	PlanningPoker_ResetAllVotes_FullMethodName      = "/" + ServiceName + "/ResetAllVotes"
	PlanningPoker_JoinTable_FullMethodName          = "/" + ServiceName + "/JoinTable"
	PlanningPoker_ListDevelopers_FullMethodName     = "/" + ServiceName + "/ListDevelopers"
	PlanningPoker_CastVote_FullMethodName           = "/" + ServiceName + "/CastVote"
	PlanningPoker_HasVoted_FullMethodName           = "/" + ServiceName + "/HasVoted"
	PlanningPoker_ListStories_FullMethodName        = "/" + ServiceName + "/ListStories"
	PlanningPoker_CreateStory_FullMethodName        = "/" + ServiceName + "/CreateStory"
	PlanningPoker_UpdateStory_FullMethodName        = "/" + ServiceName + "/UpdateStory"
	PlanningPoker_DeleteStory_FullMethodName        = "/" + ServiceName + "/DeleteStory"
	PlanningPoker_ExportStoriesCsv_FullMethodName   = "/" + ServiceName + "/ExportStoriesCsv"
	PlanningPoker_GetExportURL_FullMethodName       = "/" + ServiceName + "/GetExportURL"
)

// PlanningPokerServer is implemented by the server side of the service.
type PlanningPokerServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	Me(context.Context, *MeRequest) (*MeResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
	CreateTable(context.Context, *CreateTableRequest) (*CreateTableResponse, error)
	GetTable(context.Context, *GetTableRequest) (*GetTableResponse, error)
	ListActiveTables(context.Context, *ListActiveTablesRequest) (*ListTablesResponse, error)
	ListMyClosedTables(context.Context, *ListMyClosedTablesRequest) (*ListTablesResponse, error)
	CloseTable(context.Context, *CloseTableRequest) (*CloseTableResponse, error)
	ResetAllVotes(context.Context, *ResetAllVotesRequest) (*ResetAllVotesResponse, error)
	JoinTable(context.Context, *JoinTableRequest) (*JoinTableResponse, error)
	ListDevelopers(context.Context, *ListDevelopersRequest) (*ListDevelopersResponse, error)
	CastVote(context.Context, *CastVoteRequest) (*CastVoteResponse, error)
	HasVoted(context.Context, *HasVotedRequest) (*HasVotedResponse, error)
	ListStories(context.Context, *ListStoriesRequest) (*ListStoriesResponse, error)
	CreateStory(context.Context, *CreateStoryRequest) (*CreateStoryResponse, error)
	UpdateStory(context.Context, *UpdateStoryRequest) (*UpdateStoryResponse, error)
	DeleteStory(context.Context, *DeleteStoryRequest) (*DeleteStoryResponse, error)
	ExportStoriesCsv(context.Context, *ExportStoriesCsvRequest) (*ExportStoriesCsvResponse, error)
	GetExportURL(context.Context, *GetExportURLRequest) (*GetExportURLResponse, error)
}

// UnimplementedPlanningPokerServer can be embedded to get forward-compatible
// implementations; every method returns codes.Unimplemented.
type UnimplementedPlanningPokerServer struct{}

func (UnimplementedPlanningPokerServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedPlanningPokerServer) Login(context.Context, *LoginRequest) (*LoginResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedPlanningPokerServer) RefreshToken(context.Context, *RefreshTokenRequest) (*RefreshTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RefreshToken not implemented")
}
func (UnimplementedPlanningPokerServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedPlanningPokerServer) Me(context.Context, *MeRequest) (*MeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Me not implemented")
}
func (UnimplementedPlanningPokerServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedPlanningPokerServer) CreateTable(context.Context, *CreateTableRequest) (*CreateTableResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateTable not implemented")
}
func (UnimplementedPlanningPokerServer) GetTable(context.Context, *GetTableRequest) (*GetTableResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetTable not implemented")
}
func (UnimplementedPlanningPokerServer) ListActiveTables(context.Context, *ListActiveTablesRequest) (*ListTablesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListActiveTables not implemented")
}
func (UnimplementedPlanningPokerServer) ListMyClosedTables(context.Context, *ListMyClosedTablesRequest) (*ListTablesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMyClosedTables not implemented")
}
func (UnimplementedPlanningPokerServer) CloseTable(context.Context, *CloseTableRequest) (*CloseTableResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CloseTable not implemented")
}
func (UnimplementedPlanningPokerServer) ResetAllVotes(context.Context, *ResetAllVotesRequest) (*ResetAllVotesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ResetAllVotes not implemented")
}
func (UnimplementedPlanningPokerServer) JoinTable(context.Context, *JoinTableRequest) (*JoinTableResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method JoinTable not implemented")
}
func (UnimplementedPlanningPokerServer) ListDevelopers(context.Context, *ListDevelopersRequest) (*ListDevelopersResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListDevelopers not implemented")
}
func (UnimplementedPlanningPokerServer) CastVote(context.Context, *CastVoteRequest) (*CastVoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CastVote not implemented")
}
func (UnimplementedPlanningPokerServer) HasVoted(context.Context, *HasVotedRequest) (*HasVotedResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method HasVoted not implemented")
}
func (UnimplementedPlanningPokerServer) ListStories(context.Context, *ListStoriesRequest) (*ListStoriesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListStories not implemented")
}
func (UnimplementedPlanningPokerServer) CreateStory(context.Context, *CreateStoryRequest) (*CreateStoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateStory not implemented")
}
func (UnimplementedPlanningPokerServer) UpdateStory(context.Context, *UpdateStoryRequest) (*UpdateStoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateStory not implemented")
}
func (UnimplementedPlanningPokerServer) DeleteStory(context.Context, *DeleteStoryRequest) (*DeleteStoryResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteStory not implemented")
}
func (UnimplementedPlanningPokerServer) ExportStoriesCsv(context.Context, *ExportStoriesCsvRequest) (*ExportStoriesCsvResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportStoriesCsv not implemented")
}
func (UnimplementedPlanningPokerServer) GetExportURL(context.Context, *GetExportURLRequest) (*GetExportURLResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetExportURL not implemented")
}

// unary adapts a typed server method to grpc.MethodHandler.
func unary[Req, Resp any](fullMethod string, call func(PlanningPokerServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(PlanningPokerServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(PlanningPokerServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// PlanningPoker_ServiceDesc describes the service for grpc.ServiceRegistrar.
var PlanningPoker_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*PlanningPokerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: unary(PlanningPoker_Register_FullMethodName, PlanningPokerServer.Register)},
		{MethodName: "Login", Handler: unary(PlanningPoker_Login_FullMethodName, PlanningPokerServer.Login)},
		{MethodName: "RefreshToken", Handler: unary(PlanningPoker_RefreshToken_FullMethodName, PlanningPokerServer.RefreshToken)},
		{MethodName: "Logout", Handler: unary(PlanningPoker_Logout_FullMethodName, PlanningPokerServer.Logout)},
		{MethodName: "Me", Handler: unary(PlanningPoker_Me_FullMethodName, PlanningPokerServer.Me)},
		{MethodName: "Ping", Handler: unary(PlanningPoker_Ping_FullMethodName, PlanningPokerServer.Ping)},
		{MethodName: "CreateTable", Handler: unary(PlanningPoker_CreateTable_FullMethodName, PlanningPokerServer.CreateTable)},
		{MethodName: "GetTable", Handler: unary(PlanningPoker_GetTable_FullMethodName, PlanningPokerServer.GetTable)},
		{MethodName: "ListActiveTables", Handler: unary(PlanningPoker_ListActiveTables_FullMethodName, PlanningPokerServer.ListActiveTables)},
		{MethodName: "ListMyClosedTables", Handler: unary(PlanningPoker_ListMyClosedTables_FullMethodName, PlanningPokerServer.ListMyClosedTables)},
		{MethodName: "CloseTable", Handler: unary(PlanningPoker_CloseTable_FullMethodName, PlanningPokerServer.CloseTable)},
		{MethodName: "ResetAllVotes", Handler: unary(PlanningPoker_ResetAllVotes_FullMethodName, PlanningPokerServer.ResetAllVotes)},
		{MethodName: "JoinTable", Handler: unary(PlanningPoker_JoinTable_FullMethodName, PlanningPokerServer.JoinTable)},
		{MethodName: "ListDevelopers", Handler: unary(PlanningPoker_ListDevelopers_FullMethodName, PlanningPokerServer.ListDevelopers)},
		{MethodName: "CastVote", Handler: unary(PlanningPoker_CastVote_FullMethodName, PlanningPokerServer.CastVote)},
		{MethodName: "HasVoted", Handler: unary(PlanningPoker_HasVoted_FullMethodName, PlanningPokerServer.HasVoted)},
		{MethodName: "ListStories", Handler: unary(PlanningPoker_ListStories_FullMethodName, PlanningPokerServer.ListStories)},
		{MethodName: "CreateStory", Handler: unary(PlanningPoker_CreateStory_FullMethodName, PlanningPokerServer.CreateStory)},
		{MethodName: "UpdateStory", Handler: unary(PlanningPoker_UpdateStory_FullMethodName, PlanningPokerServer.UpdateStory)},
		{MethodName: "DeleteStory", Handler: unary(PlanningPoker_DeleteStory_FullMethodName, PlanningPokerServer.DeleteStory)},
		{MethodName: "ExportStoriesCsv", Handler: unary(PlanningPoker_ExportStoriesCsv_FullMethodName, PlanningPokerServer.ExportStoriesCsv)},
		{MethodName: "GetExportURL", Handler: unary(PlanningPoker_GetExportURL_FullMethodName, PlanningPokerServer.GetExportURL)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "poker/v1/poker.proto",
}

func RegisterPlanningPokerServer(s grpc.ServiceRegistrar, srv PlanningPokerServer) {
	s.RegisterService(&PlanningPoker_ServiceDesc, srv)
}
