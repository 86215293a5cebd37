package ports

import (
	"context"

	"github.com/precieux0/instagram-repo2/internal/domain"
)

// Authenticator is the slice of the platform client the session manager owns.
type Authenticator interface {
	ApplyProfile(profile domain.DeviceProfile)
	Login(ctx context.Context, username, password string) error
	LoadSession(blob []byte) error
	DumpSession() ([]byte, error)
	CurrentAccount(ctx context.Context) (domain.UserInfo, error)
}

// Platform is the slice of the platform client the scheduler drives.
type Platform interface {
	TopicMedia(ctx context.Context, topic string, amount int) ([]domain.Media, error)
	UserInfo(ctx context.Context, id domain.UserID) (domain.UserInfo, error)
	UserMedia(ctx context.Context, id domain.UserID, amount int) ([]domain.Media, error)
	UserIDFromUsername(ctx context.Context, username string) (domain.UserID, error)
	Relationship(ctx context.Context, id domain.UserID) (domain.Relationship, error)
	LikeMedia(ctx context.Context, id domain.MediaID) error
	CommentMedia(ctx context.Context, id domain.MediaID, text string) error
	Follow(ctx context.Context, id domain.UserID) error
	Unfollow(ctx context.Context, id domain.UserID) error
	Followers(ctx context.Context, id domain.UserID) ([]domain.UserID, error)
	Following(ctx context.Context, id domain.UserID) ([]domain.UserID, error)
}

type PlatformClient interface {
	Authenticator
	Platform
}
