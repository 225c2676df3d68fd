package gateway

import (
	"context"
	"net/http"

	"github.com/ichaoui56/sonic-courier/internal/entities"
)

// SignIn exchanges credentials for a bearer token and the courier profile.
func (g *Gateway) SignIn(ctx context.Context, email, password string) (entities.Session, error) {
	var out loginResponse
	err := g.do(ctx, call{
		op:     "sign_in",
		method: http.MethodPost,
		path:   "/api/mobile/auth/login",
		body:   loginRequest{Email: email, Password: password},
		out:    &out,
	})
	if err != nil {
		return entities.Session{}, err
	}
	return entities.Session{Token: out.Token, User: userToEntity(out.User)}, nil
}

// Me validates token against the server and returns the profile it belongs to.
func (g *Gateway) Me(ctx context.Context, token string) (entities.User, error) {
	var out meResponse
	err := g.do(ctx, call{
		op:     "me",
		method: http.MethodGet,
		path:   "/api/mobile/auth/me",
		token:  token,
		out:    &out,
	})
	if err != nil {
		return entities.User{}, err
	}
	return userToEntity(out.User), nil
}

// SignOut invalidates token server-side. Callers treat failures as
// best-effort; local sign-out must not depend on this call succeeding.
func (g *Gateway) SignOut(ctx context.Context, token string) error {
	return g.do(ctx, call{
		op:     "sign_out",
		method: http.MethodPost,
		path:   "/api/mobile/auth/logout",
		token:  token,
	})
}

// ProfileUpdate carries the editable profile fields. Nil pointers are
// omitted from the payload so the server keeps their current values.
type ProfileUpdate struct {
	Name                string
	Phone               *string
	VehicleType         *string
	Image               *string
	NotificationEnabled *bool
}

// UpdateProfile replaces the courier profile and returns the updated user.
func (g *Gateway) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (entities.User, error) {
	var out meResponse
	err := g.do(ctx, call{
		op:     "update_profile",
		method: http.MethodPut,
		path:   "/api/mobile/profile",
		token:  token,
		body: profileRequest{
			Name:                update.Name,
			Phone:               update.Phone,
			VehicleType:         update.VehicleType,
			Image:               update.Image,
			NotificationEnabled: update.NotificationEnabled,
		},
		out: &out,
	})
	if err != nil {
		return entities.User{}, err
	}
	return userToEntity(out.User), nil
}
