package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jon4hz/quotevault/internal/database"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/mapper"
	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/jon4hz/quotevault/internal/stream"
	"github.com/samber/lo"
)

// FavoriteRepository manages the favorite quotes of the signed in user.
type FavoriteRepository struct {
	session
}

func NewFavoriteRepository(db database.DB, store remote.Store) *FavoriteRepository {
	return &FavoriteRepository{session: session{db: db, remote: store}}
}

// FavoriteQuotes streams the favorite quotes of the current user, most recently favorited first.
func (r *FavoriteRepository) FavoriteQuotes(ctx context.Context) <-chan []domain.Quote {
	uid := r.userID()
	if uid == "" {
		return stream.Just([]domain.Quote{})
	}
	return stream.Query(ctx, r.db, func(ctx context.Context) ([]domain.Quote, error) {
		rows, err := r.db.ListFavoriteQuotes(ctx, uid)
		if err != nil {
			return nil, err
		}
		return favoriteQuotes(rows), nil
	}, database.TableFavorites, database.TableQuotes)
}

func (r *FavoriteRepository) FavoriteQuotesPaginated(ctx context.Context, page, pageSize int) (Page[domain.Quote], error) {
	page, pageSize = normalize(page, pageSize)

	uid := r.userID()
	off, ok := offset(page, pageSize)
	if uid == "" || !ok {
		return newPage([]domain.Quote{}, page, pageSize), nil
	}
	rows, err := r.db.ListFavoriteQuotesPage(ctx, uid, pageSize, off)
	if err != nil {
		return Page[domain.Quote]{}, fmt.Errorf("failed to get favorite quotes: %w", err)
	}
	return newPage(favoriteQuotes(rows), page, pageSize), nil
}

func favoriteQuotes(rows []database.Quote) []domain.Quote {
	return lo.Map(rows, func(row database.Quote, _ int) domain.Quote {
		return mapper.QuoteFromRow(row, true)
	})
}

// IsFavorite streams whether quoteID is a favorite of the current user.
func (r *FavoriteRepository) IsFavorite(ctx context.Context, quoteID string) <-chan bool {
	uid := r.userID()
	if uid == "" {
		return stream.Just(false)
	}
	return stream.Query(ctx, r.db, func(ctx context.Context) (bool, error) {
		return r.db.IsFavorite(ctx, uid, quoteID)
	}, database.TableFavorites)
}

func (r *FavoriteRepository) IsFavoriteNow(ctx context.Context, quoteID string) (bool, error) {
	uid := r.userID()
	if uid == "" {
		return false, nil
	}
	ok, err := r.db.IsFavorite(ctx, uid, quoteID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return ok, nil
}

func (r *FavoriteRepository) FavoriteQuoteIDs(ctx context.Context) <-chan []string {
	uid := r.userID()
	if uid == "" {
		return stream.Just([]string{})
	}
	return stream.Query(ctx, r.db, func(ctx context.Context) ([]string, error) {
		return r.db.FavoriteQuoteIDs(ctx, uid)
	}, database.TableFavorites)
}

func newFavorite(uid, quoteID string) database.Favorite {
	return database.Favorite{
		ID:        uuid.NewString(),
		UserID:    uid,
		QuoteID:   quoteID,
		CreatedAt: lo.ToPtr(time.Now().UTC()),
	}
}

// AddFavorite marks quoteID as favorite. Adding an existing favorite is a no-op locally.
func (r *FavoriteRepository) AddFavorite(ctx context.Context, quoteID string) error {
	uid := r.userID()
	if uid == "" {
		return ErrNotLoggedIn
	}
	fav := newFavorite(uid, quoteID)
	if err := r.db.InsertFavorite(ctx, fav); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	r.pushAdd(ctx, fav)
	return nil
}

func (r *FavoriteRepository) RemoveFavorite(ctx context.Context, quoteID string) error {
	uid := r.userID()
	if uid == "" {
		return ErrNotLoggedIn
	}
	if err := r.db.DeleteFavorite(ctx, uid, quoteID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	r.pushRemove(ctx, uid, quoteID)
	return nil
}

// ToggleFavorite flips the favorite state of quoteID and reports whether it is now a favorite.
// The local flip is a single transaction, so concurrent toggles alternate.
func (r *FavoriteRepository) ToggleFavorite(ctx context.Context, quoteID string) (bool, error) {
	uid := r.userID()
	if uid == "" {
		return false, ErrNotLoggedIn
	}
	fav := newFavorite(uid, quoteID)
	added, err := r.db.ToggleFavorite(ctx, fav)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	if added {
		r.pushAdd(ctx, fav)
	} else {
		r.pushRemove(ctx, uid, quoteID)
	}
	return added, nil
}

func (r *FavoriteRepository) pushAdd(ctx context.Context, fav database.Favorite) {
	bestEffort(ctx, "insert favorite", func(ctx context.Context) error {
		return r.remote.InsertFavorite(ctx, remote.FavoriteInsert{ID: fav.ID, UserID: fav.UserID, QuoteID: fav.QuoteID})
	})
}

func (r *FavoriteRepository) pushRemove(ctx context.Context, uid, quoteID string) {
	bestEffort(ctx, "delete favorite", func(ctx context.Context) error {
		return r.remote.DeleteFavorite(ctx, uid, quoteID)
	})
}

// SyncFavorites replaces the local favorites of the current user with the remote ones.
// A failed fetch leaves the local favorites untouched.
func (r *FavoriteRepository) SyncFavorites(ctx context.Context) error {
	uid := r.userID()
	if uid == "" {
		return ErrNotLoggedIn
	}
	dtos, err := r.remote.FetchFavorites(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to fetch favorites: %w", err)
	}
	if err := r.db.ReplaceFavorites(ctx, uid, mapper.FavoriteRowsFromDTOs(dtos)); err != nil {
		return fmt.Errorf("failed to store favorites: %w", err)
	}
	return nil
}
