// Package common contains shared constants and sentinel errors used across
// planning poker components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// RequestIDHeaderName is the gRPC metadata key echoed back with the id the
// server assigned to a request.
const RequestIDHeaderName = "x-request-id"

// VoteDeck lists the values a developer may cast. Zero is a legitimate vote.
var VoteDeck = []int32{0, 1, 2, 3, 5, 8, 13}

// IsValidVote reports whether v belongs to VoteDeck.
func IsValidVote(v int32) bool {
	for _, d := range VoteDeck {
		if d == v {
			return true
		}
	}
	return false
}
