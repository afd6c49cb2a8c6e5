package proto

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestStatusWithReason(t *testing.T) {
	err := StatusWithReason(codes.FailedPrecondition, "table closed", ReasonTableClosed)

	st := status.Convert(err)
	assert.Equal(t, codes.FailedPrecondition, st.Code())
	assert.Equal(t, "table closed", st.Message())
	assert.True(t, HasReason(err, ReasonTableClosed))
	assert.False(t, HasReason(err, "OTHER"))
}

func TestHasReason_WithoutDetails(t *testing.T) {
	assert.False(t, HasReason(status.Error(codes.FailedPrecondition, "table closed"), ReasonTableClosed))
	assert.False(t, HasReason(errors.New("table closed"), ReasonTableClosed))
	assert.False(t, HasReason(nil, ReasonTableClosed))
	assert.False(t, HasReason(fmt.Errorf("call: %w", errors.New("x")), ReasonTableClosed))
}
