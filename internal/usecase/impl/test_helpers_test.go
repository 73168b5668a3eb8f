package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"diner/internal/domain/entity"
	"diner/internal/domain/repository"
	"diner/internal/domain/service"
	"diner/internal/usecase"

	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMenu() entity.Menu {
	return entity.Menu{
		{ID: uuid.New(), Name: "Hamburger", Description: "Classic beef patty", Price: 3.45, Available: true},
		{ID: uuid.New(), Name: "Cheeseburger", Description: "With cheddar", Price: 3.95, Available: true},
		{ID: uuid.New(), Name: "Fries", Description: "Crispy golden fries", Price: 1.80, Available: true},
	}
}

// --- repository fakes ---

type fakeMenuRepo struct {
	menu entity.Menu
	err  error
}

func (f *fakeMenuRepo) ListAvailable(context.Context) (entity.Menu, error) {
	return f.menu, f.err
}

func (f *fakeMenuRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, item := range f.menu {
		if item.ID == id {
			return item, nil
		}
	}

	return nil, repository.ErrMenuItemNotFound
}

func (f *fakeMenuRepo) FindByName(_ context.Context, name string) (*entity.MenuItem, error) {
	if f.err != nil {
		return nil, f.err
	}
	if item := f.menu.FindByName(name); item != nil {
		return item, nil
	}

	return nil, repository.ErrMenuItemNotFound
}

// fakeSessionRepo is an in-memory SessionRepository good enough for usecase
// tests: one mutex for everything, sessions created on first touch.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (f *fakeSessionRepo) WithSession(_ context.Context, id uuid.UUID, userID uuid.UUID, fn func(s *entity.Session) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sess, ok := f.sessions[id]
	if !ok {
		sess = &entity.Session{
			ID:        id,
			Cart:      entity.NewCart(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		f.sessions[id] = sess
	}
	if userID != uuid.Nil {
		sess.UserID = userID
	}

	return fn(sess)
}

func (f *fakeSessionRepo) ViewSession(_ context.Context, id uuid.UUID, fn func(s *entity.Session) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sess, ok := f.sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}

	return fn(sess)
}

func (f *fakeSessionRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.SessionSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.SessionSummary
	for _, sess := range f.sessions {
		if sess.UserID == userID {
			out = append(out, &entity.SessionSummary{ID: sess.ID, Title: sess.Title, MessageCount: len(sess.Messages), UpdatedAt: sess.UpdatedAt})
		}
	}

	return out, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(f.sessions, id)

	return nil
}

// snapshot returns a deep-enough copy of a session for assertions.
func (f *fakeSessionRepo) snapshot(id uuid.UUID) *entity.Session {
	f.mu.Lock()
	defer f.mu.Unlock()

	sess, ok := f.sessions[id]
	if !ok {
		return nil
	}
	copied := *sess
	copied.Messages = append([]entity.Message(nil), sess.Messages...)
	copied.Cart = sess.Cart.Clone()

	return &copied
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if user, ok := f.users[id]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user

	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[user.ID] = user

	return nil
}

type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entity.RefreshToken
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*entity.RefreshToken)}
}

func (f *fakeRefreshTokenRepo) Store(_ context.Context, token *entity.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	f.tokens[token.TokenHash] = token

	return nil
}

func (f *fakeRefreshTokenRepo) FindByHash(_ context.Context, tokenHash string) (*entity.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if token, ok := f.tokens[tokenHash]; ok {
		return token, nil
	}

	return nil, repository.ErrRefreshTokenNotFound
}

func (f *fakeRefreshTokenRepo) CountActiveByUser(_ context.Context, userID uuid.UUID, now time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, token := range f.tokens {
		if token.UserID == userID && !token.Expired(now) {
			count++
		}
	}

	return count, nil
}

func (f *fakeRefreshTokenRepo) DeleteOldestByUser(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var oldestHash string
	var oldestAt time.Time
	for hash, token := range f.tokens {
		if token.UserID != userID {
			continue
		}
		if oldestHash == "" || token.CreatedAt.Before(oldestAt) {
			oldestHash = hash
			oldestAt = token.CreatedAt
		}
	}
	delete(f.tokens, oldestHash)

	return nil
}

func (f *fakeRefreshTokenRepo) Delete(_ context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.tokens, tokenHash)

	return nil
}

type fakeOrderRepo struct {
	mu        sync.Mutex
	orders    map[uuid.UUID]*entity.Order
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return f.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	order.CreatedAt = time.Now()
	f.orders[order.ID] = order

	return nil
}

func (f *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if order, ok := f.orders[id]; ok {
		return order, nil
	}

	return nil, repository.ErrOrderNotFound
}

func (f *fakeOrderRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entity.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			out = append(out, order)
		}
	}

	return out, nil
}

// fakeTxManager runs the unit of work directly against the shared fakes.
type fakeTxManager struct {
	factory *fakeRepoFactory
}

type fakeRepoFactory struct {
	userRepo    *fakeUserRepo
	refreshRepo *fakeRefreshTokenRepo
	orderRepo   *fakeOrderRepo
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository { return f.userRepo }

func (f *fakeRepoFactory) RefreshTokenRepo() repository.RefreshTokenRepository {
	return f.refreshRepo
}

func (f *fakeRepoFactory) OrderRepo() repository.OrderRepository { return f.orderRepo }

func (f *fakeTxManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	return fn(f.factory)
}

// --- service fakes ---

type fakeChatModel struct {
	chunks []string
	err    error
}

func (f *fakeChatModel) StreamCompletion(ctx context.Context, _ []service.ChatMessage, onDelta func(delta string) error) error {
	for _, chunk := range f.chunks {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := onDelta(chunk); err != nil {
			return err
		}
	}

	return f.err
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*service.OrderPlacedEvent
	err    error
}

func (f *fakePublisher) PublishOrderPlaced(_ context.Context, event *service.OrderPlacedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)

	return nil
}

func (f *fakePublisher) Close() error { return nil }

type fakeQRService struct {
	png []byte
	err error
}

func (f *fakeQRService) GeneratePickupQR(uuid.UUID) ([]byte, error) { return f.png, f.err }

func (f *fakeQRService) ParsePickupQR(string) (uuid.UUID, error) { return uuid.Nil, f.err }

// fakeOrderUsecase records order placements for dispatcher and cart tests.
type fakeOrderUsecase struct {
	mu     sync.Mutex
	placed []*usecase.PlaceOrderInput
	order  *entity.Order
	err    error
}

func (f *fakeOrderUsecase) PlaceOrder(_ context.Context, input *usecase.PlaceOrderInput) (*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	f.placed = append(f.placed, input)
	if f.order != nil {
		return f.order, nil
	}

	return &entity.Order{
		ID:       uuid.New(),
		UserID:   input.UserID,
		Lines:    input.Lines,
		Subtotal: input.Subtotal,
		Total:    input.Subtotal * (1 + entity.TaxRate),
		Status:   entity.StatusPending,
	}, nil
}

func (f *fakeOrderUsecase) ListOrders(context.Context, uuid.UUID) ([]*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderUsecase) GetOrder(context.Context, uuid.UUID, uuid.UUID) (*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderUsecase) PickupQR(context.Context, uuid.UUID, uuid.UUID) ([]byte, error) {
	return nil, nil
}
