package domain

type UserID string

type MediaID string

type Media struct {
	ID      MediaID
	OwnerID UserID
}

type UserInfo struct {
	ID            UserID
	Username      string
	FollowerCount int
	MediaCount    int
}

// Target is a discovered account snapshot, used once for an engagement
// decision and then discarded.
type Target struct {
	UserInfo
	Topic string
}

type Relationship struct {
	Following  bool
	FollowedBy bool
}

// TargetFilter admits accounts whose follower count lies strictly inside
// (FollowerMin, FollowerMax) and whose media count exceeds MediaMin.
type TargetFilter struct {
	FollowerMin int
	FollowerMax int
	MediaMin    int
}

func DefaultTargetFilter() TargetFilter {
	return TargetFilter{FollowerMin: 1_000, FollowerMax: 50_000, MediaMin: 10}
}

func (f TargetFilter) Admits(info UserInfo) bool {
	return info.FollowerCount > f.FollowerMin &&
		info.FollowerCount < f.FollowerMax &&
		info.MediaCount > f.MediaMin
}
