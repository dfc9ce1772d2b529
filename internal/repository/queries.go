package repository

import "fmt"

// Operation names keying the Cypher registry. Repositories never build query
// text from caller input; every statement below is parameterized.
const (
	opCreateRequest    = "createRequest"
	opFetchRequest     = "fetchRequest"
	opListIncoming     = "listIncoming"
	opListOutgoing     = "listOutgoing"
	opResolveAccepted  = "resolveAccepted"
	opResolveRejected  = "resolveRejected"
	opListFriends      = "listFriends"
	opRemoveFriendship = "removeFriendship"
	opCancelRequest    = "cancelRequest"
	opAreFriends       = "areFriends"
	opPendingBetween   = "pendingBetween"
	opUsersExist       = "usersExist"
	opEnsureUser       = "ensureUser"
	opFetchUser        = "fetchUser"
)

var cypher = map[string]string{
	// Conditional create: both nodes must exist, the pair must not already be
	// friends, and no pending request may exist between them in either
	// direction. Zero rows back means one of the guards failed.
	opCreateRequest: `
		MATCH (s:User {id: $senderId}), (r:User {id: $receiverId})
		WHERE NOT (s)-[:FRIENDS]-(r)
		  AND NOT EXISTS {
		    MATCH (s)-[p:REQUESTED_FRIENDSHIP]-(r)
		    WHERE p.status = 'pending'
		  }
		CREATE (s)-[q:REQUESTED_FRIENDSHIP {id: $id, status: 'pending', createdAt: $now}]->(r)
		RETURN q.id AS id`,

	opFetchRequest: `
		MATCH (s:User)-[q:REQUESTED_FRIENDSHIP {id: $requestId}]->(r:User)
		RETURN q.id AS id, q.status AS status, q.createdAt AS createdAt,
		       q.updatedAt AS updatedAt, s.id AS senderId, r.id AS receiverId`,

	opListIncoming: `
		MATCH (s:User)-[q:REQUESTED_FRIENDSHIP]->(r:User {id: $userId})
		WHERE q.status = $status
		RETURN q.id AS id, q.status AS status, q.createdAt AS createdAt,
		       s.id AS senderId, s.email AS senderEmail`,

	opListOutgoing: `
		MATCH (s:User {id: $userId})-[q:REQUESTED_FRIENDSHIP]->(r:User)
		WHERE $status = '' OR q.status = $status
		RETURN q.id AS id, q.status AS status, q.createdAt AS createdAt,
		       r.id AS receiverId, r.email AS receiverEmail`,

	// Conditional resolution: only a pending request addressed to this
	// receiver matches, so a concurrent resolution loses with zero rows.
	// Accepting also creates both directed FRIENDS edges in the same
	// transaction.
	opResolveAccepted: `
		MATCH (s:User)-[q:REQUESTED_FRIENDSHIP {id: $requestId}]->(r:User {id: $receiverId})
		WHERE q.status = 'pending'
		SET q.status = 'accepted', q.updatedAt = $now
		CREATE (s)-[:FRIENDS {since: $now}]->(r)
		CREATE (r)-[:FRIENDS {since: $now}]->(s)
		RETURN q.id AS id, q.status AS status, q.createdAt AS createdAt,
		       q.updatedAt AS updatedAt, s.id AS senderId, r.id AS receiverId`,

	opResolveRejected: `
		MATCH (s:User)-[q:REQUESTED_FRIENDSHIP {id: $requestId}]->(r:User {id: $receiverId})
		WHERE q.status = 'pending'
		SET q.status = 'rejected', q.updatedAt = $now
		RETURN q.id AS id, q.status AS status, q.createdAt AS createdAt,
		       q.updatedAt AS updatedAt, s.id AS senderId, r.id AS receiverId`,

	// Friendships are stored as a symmetric pair of directed edges, so the
	// outgoing direction alone covers the full friend list.
	opListFriends: `
		MATCH (:User {id: $userId})-[:FRIENDS]->(f:User)
		RETURN f.id AS id, f.email AS email`,

	// Conditional delete of both directions at once; the returned count is 2
	// for an intact friendship and 0 when a concurrent removal got there
	// first.
	opRemoveFriendship: `
		MATCH (:User {id: $userId})-[f:FRIENDS]-(:User {id: $friendId})
		DELETE f
		RETURN count(f) AS deleted`,

	opCancelRequest: `
		MATCH (:User {id: $senderId})-[q:REQUESTED_FRIENDSHIP {id: $requestId}]->(:User)
		WHERE q.status = 'pending'
		DELETE q
		RETURN count(q) AS deleted`,

	opAreFriends: `
		MATCH (:User {id: $userId})-[f:FRIENDS]-(:User {id: $otherId})
		RETURN count(f) > 0 AS friends`,

	opPendingBetween: `
		MATCH (:User {id: $userId})-[q:REQUESTED_FRIENDSHIP]-(:User {id: $otherId})
		WHERE q.status = 'pending'
		RETURN count(q) > 0 AS pending`,

	opUsersExist: `
		MATCH (u:User)
		WHERE u.id IN $ids
		RETURN count(DISTINCT u.id) AS found`,

	opEnsureUser: `
		MERGE (u:User {id: $id})
		ON CREATE SET u.email = $email, u.username = $username, u.createdAt = $now
		RETURN u.id AS id, u.email AS email, u.username AS username`,

	opFetchUser: `
		MATCH (u:User {id: $id})
		RETURN u.id AS id, u.email AS email, u.username AS username`,
}

// stmt returns the registered Cypher for an operation. Unknown names are a
// programming error, not a runtime condition.
func stmt(op string) string {
	q, ok := cypher[op]
	if !ok {
		panic(fmt.Sprintf("repository: no cypher registered for operation %q", op))
	}
	return q
}
