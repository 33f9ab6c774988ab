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
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the membership fetches of SyncCollections.
const maxConcurrentFetches = 4

// CollectionRepository manages the quote collections of the signed in user.
type CollectionRepository struct {
	session
}

func NewCollectionRepository(db database.DB, store remote.Store) *CollectionRepository {
	return &CollectionRepository{session: session{db: db, remote: store}}
}

// Collections streams the collections of the current user with their quote counts, newest first.
func (r *CollectionRepository) Collections(ctx context.Context) <-chan []domain.Collection {
	uid := r.userID()
	if uid == "" {
		return stream.Just([]domain.Collection{})
	}
	return stream.Query(ctx, r.db, func(ctx context.Context) ([]domain.Collection, error) {
		return r.listCollections(ctx, uid)
	}, database.TableCollections, database.TableCollectionQuotes)
}

// CollectionsNow returns the current collections of the user. Without a user it returns none.
func (r *CollectionRepository) CollectionsNow(ctx context.Context) ([]domain.Collection, error) {
	uid := r.userID()
	if uid == "" {
		return []domain.Collection{}, nil
	}
	return r.listCollections(ctx, uid)
}

func (r *CollectionRepository) listCollections(ctx context.Context, uid string) ([]domain.Collection, error) {
	rows, err := r.db.ListCollections(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to get collections: %w", err)
	}
	counts, err := r.db.CollectionQuoteCounts(ctx, lo.Map(rows, func(c database.Collection, _ int) string { return c.ID }))
	if err != nil {
		return nil, fmt.Errorf("failed to count collection quotes: %w", err)
	}
	return lo.Map(rows, func(row database.Collection, _ int) domain.Collection {
		return mapper.CollectionFromRow(row, counts[row.ID])
	}), nil
}

// GetCollection returns the collection with id, or nil if it does not exist.
func (r *CollectionRepository) GetCollection(ctx context.Context, id string) (*domain.Collection, error) {
	row, err := r.db.GetCollection(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get collection: %w", err)
	}
	count, err := r.db.CountCollectionQuotes(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count collection quotes: %w", err)
	}
	c := mapper.CollectionFromRow(*row, count)
	return &c, nil
}

// ObserveCollection streams a collection with its quote count. It emits nil while the collection does not exist.
func (r *CollectionRepository) ObserveCollection(ctx context.Context, id string) <-chan *domain.Collection {
	rows := stream.Query(ctx, r.db, func(ctx context.Context) (*database.Collection, error) {
		row, err := r.db.GetCollection(ctx, id)
		if notFound(err) {
			return nil, nil
		}
		return row, err
	}, database.TableCollections)
	counts := stream.Query(ctx, r.db, func(ctx context.Context) (int, error) {
		return r.db.CountCollectionQuotes(ctx, id)
	}, database.TableCollectionQuotes)

	return stream.CombineLatest(ctx, rows, counts, func(row *database.Collection, count int) *domain.Collection {
		if row == nil {
			return nil
		}
		c := mapper.CollectionFromRow(*row, count)
		return &c
	})
}

// QuotesInCollection streams the quotes of a collection, most recently added first.
func (r *CollectionRepository) QuotesInCollection(ctx context.Context, collectionID string) <-chan []domain.Quote {
	rows := stream.Query(ctx, r.db, func(ctx context.Context) ([]database.Quote, error) {
		return r.db.ListCollectionQuotes(ctx, collectionID)
	}, database.TableCollectionQuotes, database.TableQuotes)
	return stream.CombineLatest(ctx, rows, r.favorites(ctx), mapper.QuotesFromRows)
}

func (r *CollectionRepository) QuotesInCollectionPaginated(ctx context.Context, collectionID string, page, pageSize int) (Page[domain.Quote], error) {
	page, pageSize = normalize(page, pageSize)
	off, ok := offset(page, pageSize)
	if !ok {
		return newPage([]domain.Quote{}, page, pageSize), nil
	}

	favs, err := r.favoriteSnapshot(ctx, r.userID())
	if err != nil {
		return Page[domain.Quote]{}, fmt.Errorf("failed to get favorites: %w", err)
	}
	rows, err := r.db.ListCollectionQuotesPage(ctx, collectionID, pageSize, off)
	if err != nil {
		return Page[domain.Quote]{}, fmt.Errorf("failed to get collection quotes: %w", err)
	}
	return newPage(mapper.QuotesFromRows(rows, favs), page, pageSize), nil
}

func (r *CollectionRepository) IsQuoteInCollection(ctx context.Context, collectionID, quoteID string) <-chan bool {
	return stream.Query(ctx, r.db, func(ctx context.Context) (bool, error) {
		return r.db.IsQuoteInCollection(ctx, collectionID, quoteID)
	}, database.TableCollectionQuotes)
}

func (r *CollectionRepository) CollectionIDsForQuote(ctx context.Context, quoteID string) <-chan []string {
	return stream.Query(ctx, r.db, func(ctx context.Context) ([]string, error) {
		return r.db.CollectionIDsForQuote(ctx, quoteID)
	}, database.TableCollectionQuotes)
}

// CreateCollection creates an empty collection owned by the current user.
func (r *CollectionRepository) CreateCollection(ctx context.Context, name string, description *string, coverColor string) (*domain.Collection, error) {
	uid := r.userID()
	if uid == "" {
		return nil, ErrNotLoggedIn
	}
	if coverColor == "" {
		coverColor = domain.DefaultCoverColor
	}

	now := time.Now().UTC()
	row := database.Collection{
		ID:          uuid.NewString(),
		UserID:      uid,
		Name:        name,
		Description: description,
		CoverColor:  coverColor,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	if err := r.db.InsertCollection(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	bestEffort(ctx, "insert collection", func(ctx context.Context) error {
		return r.remote.InsertCollection(ctx, remote.CollectionInsert{
			ID:          row.ID,
			UserID:      uid,
			Name:        name,
			Description: description,
			CoverColor:  coverColor,
		})
	})

	c := mapper.CollectionFromRow(row, 0)
	return &c, nil
}

// UpdateCollection changes name, description and cover color of a collection and returns the updated collection.
func (r *CollectionRepository) UpdateCollection(ctx context.Context, id, name string, description *string, coverColor string) (*domain.Collection, error) {
	if coverColor == "" {
		coverColor = domain.DefaultCoverColor
	}
	if err := r.db.UpdateCollection(ctx, id, name, description, coverColor); err != nil {
		if notFound(err) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to update collection: %w", err)
	}

	bestEffort(ctx, "update collection", func(ctx context.Context) error {
		return r.remote.UpdateCollection(ctx, id, remote.CollectionUpdate{
			Name:        name,
			Description: description,
			CoverColor:  coverColor,
		})
	})

	c, err := r.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCollectionNotFound
	}
	return c, nil
}

// DeleteCollection removes a collection and all of its memberships.
func (r *CollectionRepository) DeleteCollection(ctx context.Context, id string) error {
	if err := r.db.DeleteCollection(ctx, id); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	bestEffort(ctx, "delete collection quotes", func(ctx context.Context) error {
		return r.remote.DeleteCollectionQuotes(ctx, id)
	})
	bestEffort(ctx, "delete collection", func(ctx context.Context) error {
		return r.remote.DeleteCollection(ctx, id)
	})
	return nil
}

func (r *CollectionRepository) AddQuoteToCollection(ctx context.Context, collectionID, quoteID string) error {
	link := database.CollectionQuote{
		ID:           uuid.NewString(),
		CollectionID: collectionID,
		QuoteID:      quoteID,
		AddedAt:      lo.ToPtr(time.Now().UTC()),
	}
	if err := r.db.InsertCollectionQuote(ctx, link); err != nil {
		return fmt.Errorf("failed to add quote to collection: %w", err)
	}
	bestEffort(ctx, "insert collection quote", func(ctx context.Context) error {
		return r.remote.InsertCollectionQuote(ctx, remote.CollectionQuoteInsert{
			ID:           link.ID,
			CollectionID: collectionID,
			QuoteID:      quoteID,
		})
	})
	return nil
}

func (r *CollectionRepository) RemoveQuoteFromCollection(ctx context.Context, collectionID, quoteID string) error {
	if err := r.db.DeleteCollectionQuote(ctx, collectionID, quoteID); err != nil {
		return fmt.Errorf("failed to remove quote from collection: %w", err)
	}
	bestEffort(ctx, "delete collection quote", func(ctx context.Context) error {
		return r.remote.DeleteCollectionQuote(ctx, collectionID, quoteID)
	})
	return nil
}

// SyncCollections replaces the local collections of the current user and their memberships
// with the remote ones. Everything is fetched before the local cache is touched.
func (r *CollectionRepository) SyncCollections(ctx context.Context) error {
	uid := r.userID()
	if uid == "" {
		return ErrNotLoggedIn
	}

	dtos, err := r.remote.FetchCollections(ctx, uid)
	if err != nil {
		return fmt.Errorf("failed to fetch collections: %w", err)
	}

	memberships := make([][]remote.CollectionQuoteDTO, len(dtos))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	for i, dto := range dtos {
		g.Go(func() error {
			links, err := r.remote.FetchCollectionQuotes(gctx, dto.ID)
			if err != nil {
				return fmt.Errorf("failed to fetch quotes of collection %s: %w", dto.ID, err)
			}
			memberships[i] = links
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	links := make(map[string][]database.CollectionQuote, len(dtos))
	for i, dto := range dtos {
		links[dto.ID] = mapper.CollectionQuoteRowsFromDTOs(memberships[i])
	}
	if err := r.db.ReplaceCollections(ctx, uid, mapper.CollectionRowsFromDTOs(dtos), links); err != nil {
		return fmt.Errorf("failed to store collections: %w", err)
	}
	return nil
}
