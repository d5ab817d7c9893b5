package api

import (
	"context"
	"net/http"

	"github.com/weathersafe/admin-console/internal/core/domain"
	"github.com/weathersafe/admin-console/internal/core/ports"
)

// Login authenticates against the public login endpoint. The call goes out
// without a bearer token; deliveryToken is attached when non-empty.
func (c *Client) Login(ctx context.Context, email, password, deliveryToken string) (string, *domain.User, error) {
	var resp authResponse
	req := loginRequest{Email: email, Password: password, FCMToken: deliveryToken}
	if err := c.post(ctx, "/api/login", req, &resp); err != nil {
		return "", nil, err
	}
	if len(resp.Errors) > 0 {
		return "", nil, &Error{Kind: KindValidation, Status: http.StatusUnprocessableEntity, Fields: resp.Errors}
	}
	return resp.Token, resp.User, nil
}

// Register creates an account through the public registration endpoint.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (string, *domain.User, error) {
	var resp authResponse
	req := registerRequest{
		Name:                 in.Name,
		Email:                in.Email,
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
		UserType:             in.UserType,
	}
	if err := c.post(ctx, "/api/register", req, &resp); err != nil {
		return "", nil, err
	}
	if len(resp.Errors) > 0 {
		return "", nil, &Error{Kind: KindValidation, Status: http.StatusUnprocessableEntity, Fields: resp.Errors}
	}
	return resp.Token, resp.User, nil
}

// Logout revokes the current token server-side.
func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/api/logout", nil, nil)
}

// CurrentUser fetches the profile behind the current token.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "/api/user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteImage asks the server to remove a hosted image by its public ID.
func (c *Client) DeleteImage(ctx context.Context, publicID string) error {
	return c.post(ctx, "/api/delete-image", map[string]string{"publicId": publicID}, nil)
}

// Notifications returns the pending entries of the notifications feed.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var items []Notification
	if err := c.get(ctx, "/api/notifications", &items); err != nil {
		return nil, err
	}
	return items, nil
}
