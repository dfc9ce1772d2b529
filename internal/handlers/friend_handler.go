package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Adilzhan2201/Friendship_Manager/internal/services"
	"github.com/Adilzhan2201/Friendship_Manager/pkg/logger"
	"github.com/Adilzhan2201/Friendship_Manager/pkg/middleware"
	"github.com/gorilla/mux"
)

// FriendHandler manages HTTP endpoints related to friend requests and
// friendships.
type FriendHandler struct {
	Service *services.FriendService
}

// NewFriendHandler initializes a new FriendHandler.
func NewFriendHandler(service *services.FriendService) *FriendHandler {
	return &FriendHandler{Service: service}
}

// SendFriendRequestHandler allows a user to send a friend request.
// POST /friends/{id}/request
func (h *FriendHandler) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warn("Unauthorized attempt to send friend request")
		return
	}

	receiverID := mux.Vars(r)["id"]

	request, err := h.Service.SendFriendRequest(r.Context(), claims.UserID, receiverID)
	if err != nil {
		logger.Log.Warnf("Failed to send friend request from %s to %s: %v", claims.UserID, receiverID, err)
		respondError(w, err)
		return
	}

	logger.Log.Infof("User %s sent a friend request to %s", claims.UserID, receiverID)
	respondJSON(w, http.StatusCreated, request)
}

// RespondToFriendRequestHandler allows accepting or rejecting a friend
// request. POST /friends/requests/{id}/respond
func (h *FriendHandler) RespondToFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warn("Unauthorized request to respond to a friend request")
		return
	}

	requestID := mux.Vars(r)["id"]

	var body struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		logger.Log.Warnf("Failed to decode response body: %v", err)
		return
	}
	defer r.Body.Close()

	resolved, err := h.Service.RespondToRequest(r.Context(), claims.UserID, requestID, body.Decision)
	if err != nil {
		logger.Log.Warnf("Failed to respond to friend request %s: %v", requestID, err)
		respondError(w, err)
		return
	}

	logger.Log.Infof("User %s responded to friend request %s (%s)", claims.UserID, requestID, resolved.Status)
	respondJSON(w, http.StatusOK, resolved)
}

// CancelFriendRequestHandler allows the sender to withdraw a pending
// request. DELETE /friends/requests/{id}
func (h *FriendHandler) CancelFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warn("Unauthorized attempt to cancel friend request")
		return
	}

	requestID := mux.Vars(r)["id"]

	if err := h.Service.CancelRequest(r.Context(), claims.UserID, requestID); err != nil {
		logger.Log.Warnf("Failed to cancel friend request %s: %v", requestID, err)
		respondError(w, err)
		return
	}

	logger.Log.Infof("User %s cancelled friend request %s", claims.UserID, requestID)
	respondJSON(w, http.StatusOK, map[string]string{"message": "Friend request cancelled"})
}

// GetIncomingRequestsHandler shows friend requests addressed to the caller,
// pending by default. GET /friends/requests?status=
func (h *FriendHandler) GetIncomingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warn("Unauthorized attempt to get incoming requests")
		return
	}

	requests, err := h.Service.GetIncomingRequests(r.Context(), claims.UserID, r.URL.Query().Get("status"))
	if err != nil {
		logger.Log.Errorf("Failed to get incoming requests for user %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"count":    len(requests),
	})
}

// GetOutgoingRequestsHandler shows friend requests the caller has sent.
// GET /friends/requests/sent
func (h *FriendHandler) GetOutgoingRequestsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warn("Unauthorized attempt to get outgoing requests")
		return
	}

	requests, err := h.Service.GetOutgoingRequests(r.Context(), claims.UserID)
	if err != nil {
		logger.Log.Errorf("Failed to get outgoing requests for user %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"requests": requests,
		"count":    len(requests),
	})
}

// GetFriendsHandler returns a list of the caller's friends.
// GET /friends
func (h *FriendHandler) GetFriendsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warn("Unauthorized attempt to get friends")
		return
	}

	friends, err := h.Service.GetFriends(r.Context(), claims.UserID)
	if err != nil {
		logger.Log.Errorf("Failed to fetch friends for user %s: %v", claims.UserID, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"friends": friends,
		"count":   len(friends),
	})
}

// RemoveFriendHandler deletes the friendship between the caller and the
// given user. DELETE /friends/{id}
func (h *FriendHandler) RemoveFriendHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logger.Log.Warn("Unauthorized attempt to remove friend")
		return
	}

	friendID := mux.Vars(r)["id"]

	deleted, err := h.Service.RemoveFriend(r.Context(), claims.UserID, friendID)
	if err != nil {
		logger.Log.Warnf("Failed to remove friendship between %s and %s: %v", claims.UserID, friendID, err)
		respondError(w, err)
		return
	}

	logger.Log.Infof("User %s removed friend %s (%d edges deleted)", claims.UserID, friendID, deleted)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Friend removed",
		"deleted": deleted,
	})
}
