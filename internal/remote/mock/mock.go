package mock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/jon4hz/quotevault/internal/stream"
)

var _ remote.Store = (*MockStore)(nil)

type account struct {
	password string
	user     remote.AuthUser
}

// MockStore is an in-memory implementation of remote.Store for testing.
type MockStore struct {
	mu sync.RWMutex

	// Auth
	accounts map[string]*account
	current  *remote.AuthUser
	status   *stream.Broker

	// Tables
	quotes           []remote.QuoteDTO
	categories       []remote.CategoryDTO
	quoteOfDay       map[string]remote.QuoteOfDayDTO
	favorites        map[string]remote.FavoriteDTO
	collections      map[string]remote.CollectionDTO
	collectionQuotes map[string]remote.CollectionQuoteDTO
	settings         map[string]remote.SettingsDTO
	profiles         map[string]remote.ProfileDTO
	avatars          map[string][]byte

	// Error simulation
	SignUpError                 error
	SignInError                 error
	SignOutError                error
	ResetPasswordError          error
	FetchQuotesError            error
	FetchCategoriesError        error
	FetchQuoteOfDayError        error
	FetchFavoritesError         error
	InsertFavoriteError         error
	DeleteFavoriteError         error
	FetchCollectionsError       error
	FetchCollectionQuotesError  error
	InsertCollectionError       error
	UpdateCollectionError       error
	DeleteCollectionError       error
	InsertCollectionQuoteError  error
	DeleteCollectionQuoteError  error
	DeleteCollectionQuotesError error
	FetchSettingsError          error
	InsertSettingsError         error
	UpdateSettingsError         error
	FetchProfileError           error
	InsertProfileError          error
	UpdateProfileError          error
	UploadAvatarError           error

	// SignUpWithoutSession makes SignUp behave like a backend that requires email confirmation.
	SignUpWithoutSession bool
}

// NewMockStore creates a new MockStore instance.
func NewMockStore() *MockStore {
	m := &MockStore{status: stream.NewBroker()}
	m.reset()
	return m
}

// Reset clears all data and errors from the mock store.
func (m *MockStore) Reset() {
	m.mu.Lock()
	m.reset()
	m.SignUpError = nil
	m.SignInError = nil
	m.SignOutError = nil
	m.ResetPasswordError = nil
	m.FetchQuotesError = nil
	m.FetchCategoriesError = nil
	m.FetchQuoteOfDayError = nil
	m.FetchFavoritesError = nil
	m.InsertFavoriteError = nil
	m.DeleteFavoriteError = nil
	m.FetchCollectionsError = nil
	m.FetchCollectionQuotesError = nil
	m.InsertCollectionError = nil
	m.UpdateCollectionError = nil
	m.DeleteCollectionError = nil
	m.InsertCollectionQuoteError = nil
	m.DeleteCollectionQuoteError = nil
	m.DeleteCollectionQuotesError = nil
	m.FetchSettingsError = nil
	m.InsertSettingsError = nil
	m.UpdateSettingsError = nil
	m.FetchProfileError = nil
	m.InsertProfileError = nil
	m.UpdateProfileError = nil
	m.UploadAvatarError = nil
	m.SignUpWithoutSession = false
	m.mu.Unlock()
	m.status.Publish()
}

func (m *MockStore) reset() {
	m.accounts = make(map[string]*account)
	m.current = nil
	m.quotes = nil
	m.categories = nil
	m.quoteOfDay = make(map[string]remote.QuoteOfDayDTO)
	m.favorites = make(map[string]remote.FavoriteDTO)
	m.collections = make(map[string]remote.CollectionDTO)
	m.collectionQuotes = make(map[string]remote.CollectionQuoteDTO)
	m.settings = make(map[string]remote.SettingsDTO)
	m.profiles = make(map[string]remote.ProfileDTO)
	m.avatars = make(map[string][]byte)
}

// Login makes user the current user without going through SignIn.
func (m *MockStore) Login(user remote.AuthUser) {
	m.mu.Lock()
	m.current = &user
	m.mu.Unlock()
	m.status.Publish()
}

// SetQuotes replaces the remote quotes.
func (m *MockStore) SetQuotes(quotes ...remote.QuoteDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes = quotes
}

// SetCategories replaces the remote categories.
func (m *MockStore) SetCategories(categories ...remote.CategoryDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = categories
}

// SetQuoteOfDay designates qod for its display date.
func (m *MockStore) SetQuoteOfDay(qod remote.QuoteOfDayDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quoteOfDay[qod.DisplayDate] = qod
}

// AddFavorite seeds a remote favorite.
func (m *MockStore) AddFavorite(f remote.FavoriteDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favorites[f.ID] = f
}

// AddCollection seeds a remote collection with its memberships.
func (m *MockStore) AddCollection(c remote.CollectionDTO, links ...remote.CollectionQuoteDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.collections[c.ID] = c
	for _, l := range links {
		m.collectionQuotes[l.ID] = l
	}
}

// SetProfile seeds a remote profile.
func (m *MockStore) SetProfile(p remote.ProfileDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
}

// Favorites returns the remote favorites of a user.
func (m *MockStore) Favorites(userID string) []remote.FavoriteDTO {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []remote.FavoriteDTO
	for _, f := range m.favorites {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	return out
}

// Collection returns a remote collection.
func (m *MockStore) Collection(id string) (remote.CollectionDTO, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[id]
	return c, ok
}

// CollectionQuotes returns the remote memberships of a collection.
func (m *MockStore) CollectionQuotes(collectionID string) []remote.CollectionQuoteDTO {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.linksOf(collectionID)
}

// Settings returns the remote settings of a user.
func (m *MockStore) Settings(userID string) (remote.SettingsDTO, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.settings[userID]
	return s, ok
}

// Avatar returns an uploaded avatar.
func (m *MockStore) Avatar(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.avatars[path]
	return data, ok
}

func (m *MockStore) linksOf(collectionID string) []remote.CollectionQuoteDTO {
	var out []remote.CollectionQuoteDTO
	for _, l := range m.collectionQuotes {
		if l.CollectionID == collectionID {
			out = append(out, l)
		}
	}
	return out
}

// Auth

func (m *MockStore) SignUp(_ context.Context, email, password string) (*remote.AuthUser, error) {
	m.mu.Lock()
	if m.SignUpError != nil {
		m.mu.Unlock()
		return nil, m.SignUpError
	}
	if _, exists := m.accounts[email]; exists {
		m.mu.Unlock()
		return nil, errors.New("user already registered")
	}
	now := time.Now().UTC()
	acc := &account{
		password: password,
		user:     remote.AuthUser{ID: uuid.NewString(), Email: email, CreatedAt: &now},
	}
	m.accounts[email] = acc
	if m.SignUpWithoutSession {
		m.mu.Unlock()
		return nil, nil
	}
	user := acc.user
	m.current = &user
	m.mu.Unlock()

	m.status.Publish()
	return &user, nil
}

func (m *MockStore) SignIn(_ context.Context, email, password string) (*remote.AuthUser, error) {
	m.mu.Lock()
	if m.SignInError != nil {
		m.mu.Unlock()
		return nil, m.SignInError
	}
	acc, ok := m.accounts[email]
	if !ok || acc.password != password {
		m.mu.Unlock()
		return nil, errors.New("invalid login credentials")
	}
	user := acc.user
	m.current = &user
	m.mu.Unlock()

	m.status.Publish()
	return &user, nil
}

func (m *MockStore) SignOut(_ context.Context) error {
	m.mu.Lock()
	m.current = nil
	err := m.SignOutError
	m.mu.Unlock()

	m.status.Publish()
	return err
}

func (m *MockStore) ResetPasswordForEmail(_ context.Context, _ string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.ResetPasswordError
}

func (m *MockStore) CurrentUser() *remote.AuthUser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return nil
	}
	u := *m.current
	return &u
}

func (m *MockStore) WatchSession(ctx context.Context) <-chan remote.SessionStatus {
	out := make(chan remote.SessionStatus)
	signals, cancel := m.status.Watch()
	go func() {
		defer close(out)
		defer cancel()
		for {
			u := m.CurrentUser()
			select {
			case out <- remote.SessionStatus{Authenticated: u != nil, User: u}:
			case <-ctx.Done():
				return
			}
			select {
			case <-signals:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Catalog

func (m *MockStore) FetchQuotes(_ context.Context) ([]remote.QuoteDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FetchQuotesError != nil {
		return nil, m.FetchQuotesError
	}
	return append([]remote.QuoteDTO(nil), m.quotes...), nil
}

func (m *MockStore) FetchCategories(_ context.Context) ([]remote.CategoryDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FetchCategoriesError != nil {
		return nil, m.FetchCategoriesError
	}
	return append([]remote.CategoryDTO(nil), m.categories...), nil
}

func (m *MockStore) FetchQuoteOfDay(_ context.Context, date string) (*remote.QuoteOfDayDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FetchQuoteOfDayError != nil {
		return nil, m.FetchQuoteOfDayError
	}
	qod, ok := m.quoteOfDay[date]
	if !ok {
		return nil, nil
	}
	return &qod, nil
}

// Favorites

func (m *MockStore) FetchFavorites(_ context.Context, userID string) ([]remote.FavoriteDTO, error) {
	m.mu.RLock()
	fail := m.FetchFavoritesError
	m.mu.RUnlock()
	if fail != nil {
		return nil, fail
	}
	return m.Favorites(userID), nil
}

func (m *MockStore) InsertFavorite(_ context.Context, f remote.FavoriteInsert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertFavoriteError != nil {
		return m.InsertFavoriteError
	}
	for _, existing := range m.favorites {
		if existing.UserID == f.UserID && existing.QuoteID == f.QuoteID {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	id := f.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	m.favorites[id] = remote.FavoriteDTO{ID: id, UserID: f.UserID, QuoteID: f.QuoteID, CreatedAt: &now}
	return nil
}

func (m *MockStore) DeleteFavorite(_ context.Context, userID, quoteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteFavoriteError != nil {
		return m.DeleteFavoriteError
	}
	for id, f := range m.favorites {
		if f.UserID == userID && f.QuoteID == quoteID {
			delete(m.favorites, id)
		}
	}
	return nil
}

// Collections

func (m *MockStore) FetchCollections(_ context.Context, userID string) ([]remote.CollectionDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FetchCollectionsError != nil {
		return nil, m.FetchCollectionsError
	}
	var out []remote.CollectionDTO
	for _, c := range m.collections {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockStore) FetchCollectionQuotes(_ context.Context, collectionID string) ([]remote.CollectionQuoteDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FetchCollectionQuotesError != nil {
		return nil, m.FetchCollectionQuotesError
	}
	return m.linksOf(collectionID), nil
}

func (m *MockStore) InsertCollection(_ context.Context, c remote.CollectionInsert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertCollectionError != nil {
		return m.InsertCollectionError
	}
	id := c.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	m.collections[id] = remote.CollectionDTO{
		ID:          id,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		CoverColor:  c.CoverColor,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	return nil
}

func (m *MockStore) UpdateCollection(_ context.Context, id string, u remote.CollectionUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateCollectionError != nil {
		return m.UpdateCollectionError
	}
	c, ok := m.collections[id]
	if !ok {
		return nil
	}
	now := time.Now().UTC()
	c.Name, c.Description, c.CoverColor, c.UpdatedAt = u.Name, u.Description, u.CoverColor, &now
	m.collections[id] = c
	return nil
}

func (m *MockStore) DeleteCollection(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteCollectionError != nil {
		return m.DeleteCollectionError
	}
	delete(m.collections, id)
	return nil
}

func (m *MockStore) InsertCollectionQuote(_ context.Context, l remote.CollectionQuoteInsert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertCollectionQuoteError != nil {
		return m.InsertCollectionQuoteError
	}
	id := l.ID
	if id == "" {
		id = uuid.NewString()
	}
	now := time.Now().UTC()
	m.collectionQuotes[id] = remote.CollectionQuoteDTO{ID: id, CollectionID: l.CollectionID, QuoteID: l.QuoteID, AddedAt: &now}
	return nil
}

func (m *MockStore) DeleteCollectionQuote(_ context.Context, collectionID, quoteID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteCollectionQuoteError != nil {
		return m.DeleteCollectionQuoteError
	}
	for id, l := range m.collectionQuotes {
		if l.CollectionID == collectionID && l.QuoteID == quoteID {
			delete(m.collectionQuotes, id)
		}
	}
	return nil
}

func (m *MockStore) DeleteCollectionQuotes(_ context.Context, collectionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteCollectionQuotesError != nil {
		return m.DeleteCollectionQuotesError
	}
	for id, l := range m.collectionQuotes {
		if l.CollectionID == collectionID {
			delete(m.collectionQuotes, id)
		}
	}
	return nil
}

// Settings

func (m *MockStore) FetchSettings(_ context.Context, userID string) (*remote.SettingsDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FetchSettingsError != nil {
		return nil, m.FetchSettingsError
	}
	s, ok := m.settings[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MockStore) InsertSettings(_ context.Context, s remote.SettingsInsert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertSettingsError != nil {
		return m.InsertSettingsError
	}
	m.settings[s.UserID] = remote.SettingsDTO{
		ID:                  uuid.NewString(),
		UserID:              s.UserID,
		ThemeMode:           s.ThemeMode,
		AccentColor:         s.AccentColor,
		FontSize:            s.FontSize,
		NotificationEnabled: s.NotificationEnabled,
		NotificationTime:    s.NotificationTime,
	}
	return nil
}

func (m *MockStore) UpdateSettings(_ context.Context, userID string, u remote.SettingsUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateSettingsError != nil {
		return m.UpdateSettingsError
	}
	s, ok := m.settings[userID]
	if !ok {
		return nil
	}
	s.ThemeMode, s.AccentColor, s.FontSize = u.ThemeMode, u.AccentColor, u.FontSize
	s.NotificationEnabled, s.NotificationTime = u.NotificationEnabled, u.NotificationTime
	m.settings[userID] = s
	return nil
}

// SetSettings seeds remote settings.
func (m *MockStore) SetSettings(s remote.SettingsDTO) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings[s.UserID] = s
}

// Profiles

func (m *MockStore) FetchProfile(_ context.Context, userID string) (*remote.ProfileDTO, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FetchProfileError != nil {
		return nil, m.FetchProfileError
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *MockStore) InsertProfile(_ context.Context, p remote.ProfileInsert) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.InsertProfileError != nil {
		return m.InsertProfileError
	}
	if _, exists := m.profiles[p.ID]; exists {
		return errors.New("duplicate key value violates unique constraint")
	}
	now := time.Now().UTC()
	m.profiles[p.ID] = remote.ProfileDTO{ID: p.ID, DisplayName: p.DisplayName, CreatedAt: &now, UpdatedAt: &now}
	return nil
}

func (m *MockStore) UpdateProfile(_ context.Context, userID string, u remote.ProfileUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpdateProfileError != nil {
		return m.UpdateProfileError
	}
	p, ok := m.profiles[userID]
	if !ok {
		return nil
	}
	if u.DisplayName != nil {
		p.DisplayName = u.DisplayName
	}
	if u.AvatarURL != nil {
		p.AvatarURL = u.AvatarURL
	}
	m.profiles[userID] = p
	return nil
}

// Storage

func (m *MockStore) UploadAvatar(_ context.Context, path string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UploadAvatarError != nil {
		return m.UploadAvatarError
	}
	m.avatars[path] = append([]byte(nil), data...)
	return nil
}

func (m *MockStore) AvatarURL(path string) string {
	return "https://storage.test/avatars/" + path
}
