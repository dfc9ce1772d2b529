package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Adilzhan2201/Friendship_Manager/internal/models"
	"github.com/Adilzhan2201/Friendship_Manager/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(graph *fakeGraph, notifier Notifier) *FriendService {
	return NewFriendService(graph, graph, notifier)
}

func seedUsers(ids ...string) *fakeGraph {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, models.User{ID: id, Email: id + "@example.com"})
	}
	return newFakeGraph(users...)
}

func TestSendFriendRequest(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)

	request, err := svc.SendFriendRequest(context.Background(), "alice", "bob")
	require.NoError(t, err)

	assert.NotEmpty(t, request.ID)
	assert.Equal(t, "alice", request.SenderID)
	assert.Equal(t, "bob", request.ReceiverID)
	assert.Equal(t, models.StatusPending, request.Status)
	assert.False(t, request.CreatedAt.IsZero())
	assert.Nil(t, request.UpdatedAt)
}

func TestSendFriendRequestToSelf(t *testing.T) {
	graph := seedUsers("alice")
	svc := newTestService(graph, nil)

	_, err := svc.SendFriendRequest(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	assert.Zero(t, graph.createCalls, "self-request must never reach the store")
}

func TestSendFriendRequestUnknownUser(t *testing.T) {
	graph := seedUsers("alice")
	svc := newTestService(graph, nil)

	_, err := svc.SendFriendRequest(context.Background(), "alice", "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestSendFriendRequestDuplicate(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)

	_, err := svc.SendFriendRequest(context.Background(), "alice", "bob")
	require.NoError(t, err)

	_, err = svc.SendFriendRequest(context.Background(), "alice", "bob")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSendFriendRequestOppositeDirectionBlocked(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)

	_, err := svc.SendFriendRequest(context.Background(), "alice", "bob")
	require.NoError(t, err)

	// Duplicate detection is direction-symmetric: bob's counter-request is
	// rejected while alice's is pending.
	_, err = svc.SendFriendRequest(context.Background(), "bob", "alice")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestSendFriendRequestAlreadyFriends(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)

	request, err := svc.SendFriendRequest(context.Background(), "alice", "bob")
	require.NoError(t, err)
	_, err = svc.RespondToRequest(context.Background(), "bob", request.ID, "accepted")
	require.NoError(t, err)

	_, err = svc.SendFriendRequest(context.Background(), "alice", "bob")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestConcurrentSendOneWinner(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SendFriendRequest(context.Background(), "alice", "bob")
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, apperr.ErrConflict)
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, conflicts)
}

func TestRespondInvalidDecision(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)

	_, err := svc.RespondToRequest(context.Background(), "bob", "some-id", "maybe")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestRespondUnknownRequest(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)

	_, err := svc.RespondToRequest(context.Background(), "bob", "missing", "accepted")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRespondOnlyReceiverMayResolve(t *testing.T) {
	graph := seedUsers("alice", "bob", "carol")
	svc := newTestService(graph, nil)

	request, err := svc.SendFriendRequest(context.Background(), "alice", "bob")
	require.NoError(t, err)

	// Neither the sender nor a third party may resolve.
	_, err = svc.RespondToRequest(context.Background(), "alice", request.ID, "accepted")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	_, err = svc.RespondToRequest(context.Background(), "carol", request.ID, "accepted")
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}

func TestAcceptCreatesSymmetricFriendship(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	resolved, err := svc.RespondToRequest(ctx, "bob", request.ID, "accepted")
	require.NoError(t, err)
	assert.Equal(t, models.StatusAccepted, resolved.Status)
	assert.Equal(t, request.CreatedAt, resolved.CreatedAt)
	require.NotNil(t, resolved.UpdatedAt)

	aliceFriends, err := svc.GetFriends(ctx, "alice")
	require.NoError(t, err)
	bobFriends, err := svc.GetFriends(ctx, "bob")
	require.NoError(t, err)

	require.Len(t, aliceFriends, 1)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, "bob", aliceFriends[0].ID)
	assert.Equal(t, "alice", bobFriends[0].ID)

	// The resolved request is immutable: re-resolving in any direction
	// conflicts.
	_, err = svc.RespondToRequest(ctx, "bob", request.ID, "accepted")
	assert.ErrorIs(t, err, apperr.ErrConflict)
	_, err = svc.RespondToRequest(ctx, "bob", request.ID, "rejected")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRejectCreatesNoFriendship(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	resolved, err := svc.RespondToRequest(ctx, "bob", request.ID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, resolved.Status)

	aliceFriends, err := svc.GetFriends(ctx, "alice")
	require.NoError(t, err)
	bobFriends, err := svc.GetFriends(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, aliceFriends)
	assert.Empty(t, bobFriends)
}

func TestConcurrentResolveOneWinner(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decision := "accepted"
			if i%2 == 1 {
				decision = "rejected"
			}
			_, errs[i] = svc.RespondToRequest(ctx, "bob", request.ID, decision)
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			require.ErrorIs(t, err, apperr.ErrConflict)
		}
	}
	assert.Equal(t, 1, successes)
}

func TestRemoveFriendLifecycle(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)
	ctx := context.Background()

	// Not friends yet.
	_, err := svc.RemoveFriend(ctx, "alice", "bob")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = svc.RespondToRequest(ctx, "bob", request.ID, "accepted")
	require.NoError(t, err)

	deleted, err := svc.RemoveFriend(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted, "both directed edges must go together")

	aliceFriends, err := svc.GetFriends(ctx, "alice")
	require.NoError(t, err)
	bobFriends, err := svc.GetFriends(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, aliceFriends)
	assert.Empty(t, bobFriends)

	// No lingering single-direction edge.
	_, err = svc.RemoveFriend(ctx, "alice", "bob")
	assert.ErrorIs(t, err, apperr.ErrConflict)

	// The old request stays terminal after the friendship is gone.
	_, err = svc.RespondToRequest(ctx, "bob", request.ID, "accepted")
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestRemoveFriendSelf(t *testing.T) {
	graph := seedUsers("alice")
	svc := newTestService(graph, nil)

	_, err := svc.RemoveFriend(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestCancelRequest(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)

	// Only the sender may cancel.
	err = svc.CancelRequest(ctx, "bob", request.ID)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	err = svc.CancelRequest(ctx, "alice", request.ID)
	require.NoError(t, err)

	// Cancellation deletes the edge, so a repeat cancel finds nothing.
	err = svc.CancelRequest(ctx, "alice", request.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	// After cancellation the pair can start over.
	_, err = svc.SendFriendRequest(ctx, "alice", "bob")
	assert.NoError(t, err)
}

func TestCancelResolvedRequestConflicts(t *testing.T) {
	graph := seedUsers("alice", "bob")
	svc := newTestService(graph, nil)
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = svc.RespondToRequest(ctx, "bob", request.ID, "rejected")
	require.NoError(t, err)

	err = svc.CancelRequest(ctx, "alice", request.ID)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestIncomingRequestsDefaultToPending(t *testing.T) {
	graph := seedUsers("alice", "bob", "carol")
	svc := newTestService(graph, nil)
	ctx := context.Background()

	first, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	second, err := svc.SendFriendRequest(ctx, "carol", "bob")
	require.NoError(t, err)
	_, err = svc.RespondToRequest(ctx, "bob", second.ID, "rejected")
	require.NoError(t, err)

	pending, err := svc.GetIncomingRequests(ctx, "bob", "")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, "alice@example.com", pending[0].SenderEmail)

	rejected, err := svc.GetIncomingRequests(ctx, "bob", "rejected")
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.Equal(t, second.ID, rejected[0].ID)

	_, err = svc.GetIncomingRequests(ctx, "bob", "bogus")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestOutgoingRequestsListAllStatuses(t *testing.T) {
	graph := seedUsers("alice", "bob", "carol")
	svc := newTestService(graph, nil)
	ctx := context.Background()

	_, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	second, err := svc.SendFriendRequest(ctx, "alice", "carol")
	require.NoError(t, err)
	_, err = svc.RespondToRequest(ctx, "carol", second.ID, "accepted")
	require.NoError(t, err)

	outgoing, err := svc.GetOutgoingRequests(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, outgoing, 2)
}

func TestNotifierFailureDoesNotRollBack(t *testing.T) {
	graph := seedUsers("alice", "bob")
	notifier := &recordingNotifier{fail: assert.AnError}
	svc := newTestService(graph, notifier)
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err, "notification failure must not fail the transition")

	_, err = svc.RespondToRequest(ctx, "bob", request.ID, "accepted")
	require.NoError(t, err)

	assert.Equal(t, []string{request.ID}, notifier.received)
	assert.Equal(t, []string{request.ID}, notifier.accepted)
}

func TestNotifierEvents(t *testing.T) {
	graph := seedUsers("alice", "bob")
	notifier := &recordingNotifier{}
	svc := newTestService(graph, notifier)
	ctx := context.Background()

	request, err := svc.SendFriendRequest(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{request.ID}, notifier.received)

	// Rejection is not broadcast to the sender.
	_, err = svc.RespondToRequest(ctx, "bob", request.ID, "rejected")
	require.NoError(t, err)
	assert.Empty(t, notifier.accepted)
}
