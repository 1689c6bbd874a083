package service

import (
	"context"
	"testing"

	"chms-be/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeRPC records calls and fails the configured functions
type fakeRPC struct {
	calls   []map[string]interface{}
	failFor map[string]error
}

func (f *fakeRPC) RPC(ctx context.Context, fn string, params map[string]interface{}, result interface{}) error {
	call := map[string]interface{}{"fn": fn}
	for k, v := range params {
		call[k] = v
	}
	f.calls = append(f.calls, call)
	if f.failFor != nil {
		return f.failFor[params["user_id"].(string)]
	}
	return nil
}

func TestMemberService_RemoveMembers_OneCallPerID(t *testing.T) {
	rpc := &fakeRPC{}
	svc := NewMemberService(nil, rpc, NewCacheService(nil, zap.NewNop()), zap.NewNop())

	outcomes := svc.RemoveMembers(context.Background(), "c1", []string{"u1", "u2", "u3"})

	assert.Len(t, rpc.calls, 3, "each id should be removed with an independent call")
	for i, call := range rpc.calls {
		assert.Equal(t, "remove_church_member", call["fn"])
		assert.Equal(t, "c1", call["church_id"])
		assert.Equal(t, outcomes[i].UserID, call["user_id"])
	}
	for _, o := range outcomes {
		assert.True(t, o.Removed)
		assert.Empty(t, o.Message)
	}
}

func TestMemberService_RemoveMembers_FailureDoesNotStopSequence(t *testing.T) {
	rpc := &fakeRPC{
		failFor: map[string]error{
			"u2": apperrors.NewAuthorizationError("Cannot remove the last admin"),
		},
	}
	svc := NewMemberService(nil, rpc, NewCacheService(nil, zap.NewNop()), zap.NewNop())

	outcomes := svc.RemoveMembers(context.Background(), "c1", []string{"u1", "u2", "u3"})

	assert.Len(t, rpc.calls, 3, "a mid-sequence failure should not stop later removals")

	assert.True(t, outcomes[0].Removed)
	assert.False(t, outcomes[1].Removed)
	assert.Equal(t, "Cannot remove the last admin", outcomes[1].Message)
	assert.True(t, outcomes[2].Removed)
}

func TestMemberService_RemoveMembers_PlainErrorFallsBackToItsMessage(t *testing.T) {
	rpc := &fakeRPC{
		failFor: map[string]error{
			"u1": assert.AnError,
		},
	}
	svc := NewMemberService(nil, rpc, NewCacheService(nil, zap.NewNop()), zap.NewNop())

	outcomes := svc.RemoveMembers(context.Background(), "c1", []string{"u1"})

	assert.False(t, outcomes[0].Removed)
	assert.Equal(t, assert.AnError.Error(), outcomes[0].Message)
}
