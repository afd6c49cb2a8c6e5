package proto

import "time"

type Developer struct {
	Id    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	// Vote is nil until the developer votes in the current round.
	Vote *int32 `json:"vote"`
}

type PokerTable struct {
	Id        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	IsClosed  bool      `json:"isClosed"`
}

type UserStory struct {
	Id              int64  `json:"id"`
	PokerTableId    int64  `json:"pokerTableId"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	EstimatedPoints *int32 `json:"estimatedPoints"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Developer *Developer `json:"developer"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	Developer    *Developer `json:"developer"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type LogoutResponse struct{}

type MeRequest struct{}

type MeResponse struct {
	Developer *Developer `json:"developer"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type CreateTableRequest struct{}

type CreateTableResponse struct {
	Table *PokerTable `json:"table"`
}

type GetTableRequest struct {
	TableId int64 `json:"tableId"`
}

type GetTableResponse struct {
	Table *PokerTable `json:"table"`
}

type ListActiveTablesRequest struct{}

type ListMyClosedTablesRequest struct {
	DeveloperId int64 `json:"developerId"`
}

type ListTablesResponse struct {
	Tables []*PokerTable `json:"tables"`
}

type CloseTableRequest struct {
	TableId int64 `json:"tableId"`
}

type CloseTableResponse struct{}

type ResetAllVotesRequest struct {
	TableId int64 `json:"tableId"`
}

type ResetAllVotesResponse struct{}

type JoinTableRequest struct {
	TableId int64 `json:"tableId"`
}

type JoinTableResponse struct {
	Developer *Developer  `json:"developer"`
	Table     *PokerTable `json:"table"`
}

type ListDevelopersRequest struct {
	TableId int64 `json:"tableId"`
}

type ListDevelopersResponse struct {
	Developers []*Developer `json:"developers"`
}

type CastVoteRequest struct {
	DeveloperId int64 `json:"developerId"`
	TableId     int64 `json:"tableId"`
	Value       int32 `json:"value"`
}

type CastVoteResponse struct{}

type HasVotedRequest struct {
	DeveloperId int64 `json:"developerId"`
}

type HasVotedResponse struct {
	HasVoted bool `json:"hasVoted"`
}

type ListStoriesRequest struct {
	TableId int64 `json:"tableId"`
}

type ListStoriesResponse struct {
	Stories []*UserStory `json:"stories"`
}

type CreateStoryRequest struct {
	TableId         int64  `json:"tableId"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	EstimatedPoints *int32 `json:"estimatedPoints,omitempty"`
}

type CreateStoryResponse struct {
	Story *UserStory `json:"story"`
}

// UpdateStoryRequest is a partial update: nil fields are left unchanged.
// ClearEstimate sets the estimate back to null and wins over EstimatedPoints.
type UpdateStoryRequest struct {
	Id              int64   `json:"id"`
	Title           *string `json:"title,omitempty"`
	Description     *string `json:"description,omitempty"`
	EstimatedPoints *int32  `json:"estimatedPoints,omitempty"`
	ClearEstimate   bool    `json:"clearEstimate,omitempty"`
}

type UpdateStoryResponse struct {
	Story *UserStory `json:"story"`
}

type DeleteStoryRequest struct {
	Id int64 `json:"id"`
}

type DeleteStoryResponse struct{}

type ExportStoriesCsvRequest struct {
	TableId int64 `json:"tableId"`
}

type ExportStoriesCsvResponse struct {
	Filename string `json:"filename"`
	Content  []byte `json:"content"`
}

type GetExportURLRequest struct {
	TableId int64 `json:"tableId"`
}

type GetExportURLResponse struct {
	Url       string    `json:"url"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expiresAt"`
}
