package auth

import "github.com/spec-kit/ticket-board/internal/domain"

// IsOwner reports whether user owns the entity identified by ownerID.
// A nil user or an empty owner id never grants access.
func IsOwner(user *domain.User, ownerID string) bool {
	if user == nil || ownerID == "" {
		return false
	}
	return user.ID == ownerID
}
