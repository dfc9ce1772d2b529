package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEveryOperationIsRegistered(t *testing.T) {
	ops := []string{
		opCreateRequest,
		opFetchRequest,
		opListIncoming,
		opListOutgoing,
		opResolveAccepted,
		opResolveRejected,
		opListFriends,
		opRemoveFriendship,
		opCancelRequest,
		opAreFriends,
		opPendingBetween,
		opUsersExist,
		opEnsureUser,
		opFetchUser,
	}

	for _, op := range ops {
		assert.NotEmpty(t, stmt(op), "operation %s has no cypher", op)
	}
	assert.Len(t, cypher, len(ops), "registry holds statements no operation references")
}

func TestStmtPanicsOnUnknownOperation(t *testing.T) {
	assert.Panics(t, func() { stmt("nope") })
}

func TestConditionalWritesGuardState(t *testing.T) {
	// The creation guard covers friendship and pending requests in either
	// direction: undirected patterns, not sender->receiver only.
	create := stmt(opCreateRequest)
	assert.Contains(t, create, "NOT (s)-[:FRIENDS]-(r)")
	assert.Contains(t, create, "REQUESTED_FRIENDSHIP]-(r)")
	assert.Contains(t, create, "'pending'")

	// Resolution only matches pending edges addressed to the receiver.
	for _, op := range []string{opResolveAccepted, opResolveRejected} {
		q := stmt(op)
		assert.Contains(t, q, "q.status = 'pending'")
		assert.Contains(t, q, "{id: $receiverId}")
	}

	// Accepting creates both directed FRIENDS edges in one statement.
	assert.Equal(t, 2, strings.Count(stmt(opResolveAccepted), "CREATE ("))
	assert.NotContains(t, stmt(opResolveRejected), "FRIENDS")

	// Removal reports the number of deleted edges.
	assert.Contains(t, stmt(opRemoveFriendship), "count(f) AS deleted")
}
