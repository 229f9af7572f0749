package entity

// UserRole is the per-identity role record, resolved from the user-role
// collection. Read-only from this service's point of view.
type UserRole struct {
	UID  string `json:"uid" firestore:"uid"`
	Role string `json:"role" firestore:"role"`
}

// Known badge roles. Anything else renders without a badge.
const (
	RoleWebDev  = "web-dev"
	RoleGameDev = "game-dev"
	RoleAdmin   = "admin"
)

// BadgeLabel maps a role to its display label, or "" when the role carries
// no badge.
func BadgeLabel(role string) string {
	switch role {
	case RoleWebDev:
		return "Web Dev"
	case RoleGameDev:
		return "Game Dev"
	default:
		return ""
	}
}
