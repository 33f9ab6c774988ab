package repository

import (
	"context"
	"errors"

	"github.com/jon4hz/quotevault/internal/database"
	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/jon4hz/quotevault/internal/stream"
	"github.com/samber/lo"
)

type favoriteSet = map[string]struct{}

// session holds what every repository shares: the local cache and the backend.
type session struct {
	db     database.DB
	remote remote.Store
}

// userID returns the id of the signed in user, or an empty string.
func (s session) userID() string {
	if u := s.remote.CurrentUser(); u != nil {
		return u.ID
	}
	return ""
}

// favorites streams the favorite quote ids of the current user.
// Without a user it emits a single empty set.
func (s session) favorites(ctx context.Context) <-chan favoriteSet {
	uid := s.userID()
	if uid == "" {
		return stream.Just(favoriteSet{})
	}
	return stream.Query(ctx, s.db, func(ctx context.Context) (favoriteSet, error) {
		return s.favoriteSnapshot(ctx, uid)
	}, database.TableFavorites)
}

func (s session) favoriteSnapshot(ctx context.Context, uid string) (favoriteSet, error) {
	if uid == "" {
		return favoriteSet{}, nil
	}
	ids, err := s.db.FavoriteQuoteIDs(ctx, uid)
	if err != nil {
		return nil, err
	}
	return lo.Keyify(ids), nil
}

func notFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}
