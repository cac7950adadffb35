package models

// Caller is the authenticated identity performing an operation.
// The zero value is an anonymous caller.
type Caller struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Tier   string `json:"tier"`
}

const (
	RoleAdmin = "admin"

	TierFree   = "free"
	TierMember = "member"
	TierElite  = "elite"
)

func (c Caller) Authenticated() bool { return c.UserID != "" }

func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// IsMember reports whether the caller holds a paid membership tier.
func (c Caller) IsMember() bool { return c.Tier != "" && c.Tier != TierFree }

// TierRank orders membership tiers; unknown tiers rank as free.
func TierRank(tier string) int {
	switch tier {
	case TierMember:
		return 1
	case TierElite:
		return 2
	default:
		return 0
	}
}
