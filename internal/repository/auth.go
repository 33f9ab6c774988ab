package repository

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/jon4hz/quotevault/internal/avatar"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/gravatar"
	"github.com/jon4hz/quotevault/internal/mapper"
	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/jon4hz/quotevault/internal/stream"
)

// AuthRepository signs users in and out and manages their profile.
type AuthRepository struct {
	remote   remote.Store
	gravatar *gravatar.Resolver
}

// NewAuthRepository creates an AuthRepository. resolver may be nil.
func NewAuthRepository(store remote.Store, resolver *gravatar.Resolver) *AuthRepository {
	return &AuthRepository{remote: store, gravatar: resolver}
}

// CurrentUser streams the signed in user merged with their profile, or nil while signed out.
func (r *AuthRepository) CurrentUser(ctx context.Context) <-chan *domain.User {
	return stream.Map(ctx, r.remote.WatchSession(ctx), func(s remote.SessionStatus) *domain.User {
		if !s.Authenticated || s.User == nil {
			return nil
		}
		return r.user(ctx, *s.User)
	})
}

func (r *AuthRepository) IsLoggedIn(ctx context.Context) <-chan bool {
	return stream.Map(ctx, r.remote.WatchSession(ctx), func(s remote.SessionStatus) bool {
		return s.Authenticated
	})
}

// profile returns nil when the profile cannot be fetched.
func (r *AuthRepository) profile(ctx context.Context, userID string) *remote.ProfileDTO {
	p, err := r.remote.FetchProfile(ctx, userID)
	if err != nil {
		log.Debug("failed to fetch profile", "user", userID, "error", err)
		return nil
	}
	return p
}

func (r *AuthRepository) user(ctx context.Context, auth remote.AuthUser) *domain.User {
	u := mapper.UserFromAuth(auth, r.profile(ctx, auth.ID))
	r.gravatar.Decorate(&u)
	return &u
}

// SignUp registers a new account and creates its profile.
func (r *AuthRepository) SignUp(ctx context.Context, email, password string) (*domain.User, error) {
	if _, err := r.remote.SignUp(ctx, email, password); err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}
	auth := r.remote.CurrentUser()
	if auth == nil {
		return nil, ErrSignUpFailed
	}

	if err := r.remote.InsertProfile(ctx, remote.ProfileInsert{ID: auth.ID}); err != nil {
		log.Debug("failed to create profile", "user", auth.ID, "error", err)
	}
	return r.user(ctx, *auth), nil
}

func (r *AuthRepository) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	if _, err := r.remote.SignIn(ctx, email, password); err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	auth := r.remote.CurrentUser()
	if auth == nil {
		return nil, ErrSignInFailed
	}
	return r.user(ctx, *auth), nil
}

func (r *AuthRepository) SignOut(ctx context.Context) error {
	if err := r.remote.SignOut(ctx); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	return nil
}

func (r *AuthRepository) ResetPassword(ctx context.Context, email string) error {
	if err := r.remote.ResetPasswordForEmail(ctx, email); err != nil {
		return fmt.Errorf("failed to reset password: %w", err)
	}
	return nil
}

// GetCurrentUser returns the signed in user, or nil.
func (r *AuthRepository) GetCurrentUser(ctx context.Context) *domain.User {
	auth := r.remote.CurrentUser()
	if auth == nil {
		return nil
	}
	return r.user(ctx, *auth)
}

// UpdateProfile changes the fields of the profile that are not nil and returns the updated user.
func (r *AuthRepository) UpdateProfile(ctx context.Context, displayName, avatarURL *string) (*domain.User, error) {
	auth := r.remote.CurrentUser()
	if auth == nil {
		return nil, ErrNotLoggedIn
	}
	if err := r.remote.UpdateProfile(ctx, auth.ID, remote.ProfileUpdate{DisplayName: displayName, AvatarURL: avatarURL}); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	u := r.GetCurrentUser(ctx)
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UploadAvatar stores a normalized copy of the image and returns its public URL.
func (r *AuthRepository) UploadAvatar(ctx context.Context, data []byte) (string, error) {
	auth := r.remote.CurrentUser()
	if auth == nil {
		return "", ErrNotLoggedIn
	}

	img, err := avatar.Normalize(data)
	if err != nil {
		return "", err
	}

	path := fmt.Sprintf("avatars/%s/%s%s", auth.ID, uuid.NewString(), avatar.Extension)
	if err := r.remote.UploadAvatar(ctx, path, img, avatar.ContentType); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}
	return r.remote.AvatarURL(path), nil
}
