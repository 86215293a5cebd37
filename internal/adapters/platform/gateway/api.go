package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/precieux0/instagram-repo2/internal/domain"
)

type userSchema struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	FollowerCount int    `json:"follower_count"`
	MediaCount    int    `json:"media_count"`
}

func (u userSchema) toDomain() domain.UserInfo {
	return domain.UserInfo{
		ID:            domain.UserID(u.ID),
		Username:      u.Username,
		FollowerCount: u.FollowerCount,
		MediaCount:    u.MediaCount,
	}
}

type mediaSchema struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

type mediaListResponse struct {
	Items []mediaSchema `json:"items"`
}

type userListResponse struct {
	Users []string `json:"users"`
}

type relationshipResponse struct {
	Following  bool `json:"following"`
	FollowedBy bool `json:"followed_by"`
}

type commentRequest struct {
	Text string `json:"text"`
}

func (c *Client) TopicMedia(ctx context.Context, topic string, amount int) ([]domain.Media, error) {
	var resp mediaListResponse
	if err := c.do(ctx, http.MethodGet, "/v1/tags/"+url.PathEscape(topic)+"/recent", amountQuery(amount), nil, &resp); err != nil {
		return nil, err
	}
	return toMedia(resp.Items), nil
}

func (c *Client) UserInfo(ctx context.Context, id domain.UserID) (domain.UserInfo, error) {
	var user userSchema
	if err := c.do(ctx, http.MethodGet, userPath(id, ""), nil, nil, &user); err != nil {
		return domain.UserInfo{}, err
	}
	return user.toDomain(), nil
}

func (c *Client) UserMedia(ctx context.Context, id domain.UserID, amount int) ([]domain.Media, error) {
	var resp mediaListResponse
	if err := c.do(ctx, http.MethodGet, userPath(id, "/media"), amountQuery(amount), nil, &resp); err != nil {
		return nil, err
	}
	return toMedia(resp.Items), nil
}

func (c *Client) UserIDFromUsername(ctx context.Context, username string) (domain.UserID, error) {
	var user userSchema
	if err := c.do(ctx, http.MethodGet, "/v1/usernames/"+url.PathEscape(username), nil, nil, &user); err != nil {
		return "", err
	}
	return domain.UserID(user.ID), nil
}

func (c *Client) Relationship(ctx context.Context, id domain.UserID) (domain.Relationship, error) {
	var resp relationshipResponse
	if err := c.do(ctx, http.MethodGet, userPath(id, "/relationship"), nil, nil, &resp); err != nil {
		return domain.Relationship{}, err
	}
	return domain.Relationship{Following: resp.Following, FollowedBy: resp.FollowedBy}, nil
}

func (c *Client) LikeMedia(ctx context.Context, id domain.MediaID) error {
	return c.do(ctx, http.MethodPost, mediaPath(id, "/like"), nil, nil, nil)
}

func (c *Client) CommentMedia(ctx context.Context, id domain.MediaID, text string) error {
	return c.do(ctx, http.MethodPost, mediaPath(id, "/comments"), nil, commentRequest{Text: text}, nil)
}

func (c *Client) Follow(ctx context.Context, id domain.UserID) error {
	return c.do(ctx, http.MethodPost, userPath(id, "/follow"), nil, nil, nil)
}

func (c *Client) Unfollow(ctx context.Context, id domain.UserID) error {
	return c.do(ctx, http.MethodPost, userPath(id, "/unfollow"), nil, nil, nil)
}

func (c *Client) Followers(ctx context.Context, id domain.UserID) ([]domain.UserID, error) {
	return c.userList(ctx, userPath(id, "/followers"))
}

func (c *Client) Following(ctx context.Context, id domain.UserID) ([]domain.UserID, error) {
	return c.userList(ctx, userPath(id, "/following"))
}

func (c *Client) userList(ctx context.Context, path string) ([]domain.UserID, error) {
	var resp userListResponse
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}

	ids := make([]domain.UserID, 0, len(resp.Users))
	for _, id := range resp.Users {
		ids = append(ids, domain.UserID(id))
	}
	return ids, nil
}

func userPath(id domain.UserID, suffix string) string {
	return "/v1/users/" + url.PathEscape(string(id)) + suffix
}

func mediaPath(id domain.MediaID, suffix string) string {
	return "/v1/media/" + url.PathEscape(string(id)) + suffix
}

func amountQuery(amount int) url.Values {
	if amount <= 0 {
		return nil
	}
	return url.Values{"amount": []string{strconv.Itoa(amount)}}
}

func toMedia(items []mediaSchema) []domain.Media {
	media := make([]domain.Media, 0, len(items))
	for _, item := range items {
		media = append(media, domain.Media{ID: domain.MediaID(item.ID), OwnerID: domain.UserID(item.OwnerID)})
	}
	return media
}
