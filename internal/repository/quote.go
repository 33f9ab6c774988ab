package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/quotevault/internal/database"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/mapper"
	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/jon4hz/quotevault/internal/stream"
)

// QuoteOfDayCache keeps the resolved quote of the day per date key.
type QuoteOfDayCache interface {
	Get(ctx context.Context, date string) (*domain.Quote, bool)
	Set(ctx context.Context, date string, q domain.Quote)
}

// QuoteRepository serves the quote catalog from the local cache and refreshes it from the backend.
type QuoteRepository struct {
	session
	qod QuoteOfDayCache
	loc *time.Location
	now func() time.Time
}

// NewQuoteRepository creates a QuoteRepository. qod may be nil to disable caching of the quote of the day.
// The quote of the day is keyed by the date in loc, or time.Local when loc is nil.
func NewQuoteRepository(db database.DB, store remote.Store, qod QuoteOfDayCache, loc *time.Location) *QuoteRepository {
	if loc == nil {
		loc = time.Local
	}
	return &QuoteRepository{
		session: session{db: db, remote: store},
		qod:     qod,
		loc:     loc,
		now:     time.Now,
	}
}

func (r *QuoteRepository) quotes(ctx context.Context, fetch func(context.Context) ([]database.Quote, error)) <-chan []domain.Quote {
	rows := stream.Query(ctx, r.db, fetch, database.TableQuotes)
	return stream.CombineLatest(ctx, rows, r.favorites(ctx), mapper.QuotesFromRows)
}

// Quotes streams all cached quotes, newest first.
func (r *QuoteRepository) Quotes(ctx context.Context) <-chan []domain.Quote {
	return r.quotes(ctx, r.db.ListQuotes)
}

func (r *QuoteRepository) QuotesByCategory(ctx context.Context, categoryID string) <-chan []domain.Quote {
	return r.quotes(ctx, func(ctx context.Context) ([]database.Quote, error) {
		return r.db.ListQuotesByCategory(ctx, categoryID)
	})
}

// SearchQuotes streams the quotes whose text or author contains query.
func (r *QuoteRepository) SearchQuotes(ctx context.Context, query string) <-chan []domain.Quote {
	return r.quotes(ctx, func(ctx context.Context) ([]database.Quote, error) {
		return r.db.SearchQuotes(ctx, query)
	})
}

func (r *QuoteRepository) QuotesByAuthor(ctx context.Context, author string) <-chan []domain.Quote {
	return r.quotes(ctx, func(ctx context.Context) ([]database.Quote, error) {
		return r.db.ListQuotesByAuthor(ctx, author)
	})
}

// snapshot runs fetch once and flags the rows with the current favorites.
// Unlike the streams it returns local failures to the caller.
func (r *QuoteRepository) snapshot(ctx context.Context, fetch func(context.Context) ([]database.Quote, error)) ([]domain.Quote, error) {
	favs, err := r.favoriteSnapshot(ctx, r.userID())
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	rows, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get quotes: %w", err)
	}
	return mapper.QuotesFromRows(rows, favs), nil
}

// SearchQuotesNow returns the current matches of SearchQuotes.
func (r *QuoteRepository) SearchQuotesNow(ctx context.Context, query string) ([]domain.Quote, error) {
	return r.snapshot(ctx, func(ctx context.Context) ([]database.Quote, error) {
		return r.db.SearchQuotes(ctx, query)
	})
}

func (r *QuoteRepository) QuotesByAuthorNow(ctx context.Context, author string) ([]domain.Quote, error) {
	return r.snapshot(ctx, func(ctx context.Context) ([]database.Quote, error) {
		return r.db.ListQuotesByAuthor(ctx, author)
	})
}

// ObserveQuote streams a single quote. It emits nil while the quote is not cached.
func (r *QuoteRepository) ObserveQuote(ctx context.Context, id string) <-chan *domain.Quote {
	rows := stream.Query(ctx, r.db, func(ctx context.Context) (*database.Quote, error) {
		row, err := r.db.GetQuote(ctx, id)
		if notFound(err) {
			return nil, nil
		}
		return row, err
	}, database.TableQuotes)

	return stream.CombineLatest(ctx, rows, r.favorites(ctx), func(row *database.Quote, favs favoriteSet) *domain.Quote {
		if row == nil {
			return nil
		}
		_, fav := favs[row.ID]
		q := mapper.QuoteFromRow(*row, fav)
		return &q
	})
}

func (r *QuoteRepository) page(ctx context.Context, page, pageSize int, fetch func(ctx context.Context, limit, offset int) ([]database.Quote, error)) (Page[domain.Quote], error) {
	page, pageSize = normalize(page, pageSize)
	off, ok := offset(page, pageSize)
	if !ok {
		return newPage([]domain.Quote{}, page, pageSize), nil
	}

	favs, err := r.favoriteSnapshot(ctx, r.userID())
	if err != nil {
		return Page[domain.Quote]{}, fmt.Errorf("failed to get favorites: %w", err)
	}
	rows, err := fetch(ctx, pageSize, off)
	if err != nil {
		return Page[domain.Quote]{}, fmt.Errorf("failed to get quotes: %w", err)
	}
	return newPage(mapper.QuotesFromRows(rows, favs), page, pageSize), nil
}

// QuotesPaginated returns one page of all quotes. The favorite flags are taken at call time.
func (r *QuoteRepository) QuotesPaginated(ctx context.Context, page, pageSize int) (Page[domain.Quote], error) {
	return r.page(ctx, page, pageSize, r.db.ListQuotesPage)
}

func (r *QuoteRepository) QuotesByCategoryPaginated(ctx context.Context, categoryID string, page, pageSize int) (Page[domain.Quote], error) {
	return r.page(ctx, page, pageSize, func(ctx context.Context, limit, offset int) ([]database.Quote, error) {
		return r.db.ListQuotesByCategoryPage(ctx, categoryID, limit, offset)
	})
}

// flag maps row with the favorite state of the current user.
func (r *QuoteRepository) flag(ctx context.Context, row *database.Quote) (*domain.Quote, error) {
	favs, err := r.favoriteSnapshot(ctx, r.userID())
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}
	_, fav := favs[row.ID]
	q := mapper.QuoteFromRow(*row, fav)
	return &q, nil
}

// GetQuote returns the cached quote with id, or nil if it is not cached.
func (r *QuoteRepository) GetQuote(ctx context.Context, id string) (*domain.Quote, error) {
	row, err := r.db.GetQuote(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quote: %w", err)
	}
	return r.flag(ctx, row)
}

// GetRandomQuote returns a random cached quote, or nil when the cache is empty.
func (r *QuoteRepository) GetRandomQuote(ctx context.Context) (*domain.Quote, error) {
	row, err := r.db.RandomQuote(ctx)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get random quote: %w", err)
	}
	return r.flag(ctx, row)
}

// DateKey returns the quote of the day key for t in the configured location.
func (r *QuoteRepository) DateKey(t time.Time) string {
	return t.In(r.loc).Format(time.DateOnly)
}

// GetQuoteOfDay returns the quote designated for today. When the backend has no
// designation or cannot be reached, a random cached quote is returned instead.
func (r *QuoteRepository) GetQuoteOfDay(ctx context.Context) (*domain.Quote, error) {
	date := r.DateKey(r.now())

	if r.qod != nil {
		if q, ok := r.qod.Get(ctx, date); ok {
			return r.withFavorite(ctx, q), nil
		}
	}

	qod, err := r.remote.FetchQuoteOfDay(ctx, date)
	switch {
	case err != nil:
		log.Debug("failed to fetch quote of the day, using a random quote", "date", date, "error", err)
	case qod == nil || qod.Quote == nil:
		log.Debug("no quote of the day designated, using a random quote", "date", date)
	default:
		q := mapper.QuoteFromDTO(*qod.Quote, false)
		if r.qod != nil {
			r.qod.Set(ctx, date, q)
		}
		return r.withFavorite(ctx, &q), nil
	}

	return r.GetRandomQuote(ctx)
}

func (r *QuoteRepository) withFavorite(ctx context.Context, q *domain.Quote) *domain.Quote {
	favs, err := r.favoriteSnapshot(ctx, r.userID())
	if err != nil {
		log.Error("failed to get favorites", "error", err)
		return q
	}
	_, q.IsFavorite = favs[q.ID]
	return q
}

// Categories streams all categories with their cached quote counts.
func (r *QuoteRepository) Categories(ctx context.Context) <-chan []domain.Category {
	return stream.Query(ctx, r.db, r.listCategories, database.TableCategories, database.TableQuotes)
}

// CategoriesNow returns the current categories with their quote counts.
func (r *QuoteRepository) CategoriesNow(ctx context.Context) ([]domain.Category, error) {
	return r.listCategories(ctx)
}

func (r *QuoteRepository) listCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	counts, err := r.db.QuoteCountsByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}
	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, mapper.CategoryFromRow(row, counts[row.ID]))
	}
	return categories, nil
}

// GetCategory returns the cached category with id, or nil if it is not cached.
func (r *QuoteRepository) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	row, err := r.db.GetCategory(ctx, id)
	if err != nil {
		if notFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	count, err := r.db.CountQuotesByCategory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count quotes: %w", err)
	}
	c := mapper.CategoryFromRow(*row, count)
	return &c, nil
}

// RefreshQuotes pulls all quotes from the backend into the cache.
// Quotes missing remotely are kept.
func (r *QuoteRepository) RefreshQuotes(ctx context.Context) error {
	dtos, err := r.remote.FetchQuotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch quotes: %w", err)
	}
	if err := r.db.UpsertQuotes(ctx, mapper.QuoteRowsFromDTOs(dtos)); err != nil {
		return fmt.Errorf("failed to store quotes: %w", err)
	}
	log.Debug("refreshed quotes", "count", len(dtos))
	return nil
}

func (r *QuoteRepository) RefreshCategories(ctx context.Context) error {
	dtos, err := r.remote.FetchCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch categories: %w", err)
	}
	if err := r.db.UpsertCategories(ctx, mapper.CategoryRowsFromDTOs(dtos)); err != nil {
		return fmt.Errorf("failed to store categories: %w", err)
	}
	log.Debug("refreshed categories", "count", len(dtos))
	return nil
}
