package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users map[string]*domain.User // keyed by ID
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	stored := cloneUser(user)
	stored.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

type stubCategoryRepo struct {
	items     map[string]*domain.Category
	seq       int
	listCalls int
	// onList runs inside List after the snapshot is taken.
	onList func()
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{items: make(map[string]*domain.Category)}
}

func (r *stubCategoryRepo) List(context.Context) ([]*domain.Category, error) {
	r.listCalls++
	out := make([]*domain.Category, 0, len(r.items))
	for _, c := range r.items {
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if r.onList != nil {
		r.onList()
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id string) (*domain.Category, error) {
	c, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCategoryRepo) FindBySlug(_ context.Context, slug string) (*domain.Category, error) {
	for _, c := range r.items {
		if c.Slug == slug {
			clone := *c
			return &clone, nil
		}
	}
	return nil, domain.ErrCategoryNotFound
}

func (r *stubCategoryRepo) Create(_ context.Context, c *domain.Category) (*domain.Category, error) {
	r.seq++
	stored := *c
	stored.ID = fmt.Sprintf("cat-%02d", r.seq)
	r.items[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *domain.Category) (*domain.Category, error) {
	if _, ok := r.items[c.ID]; !ok {
		return nil, domain.ErrCategoryNotFound
	}
	stored := *c
	r.items[c.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.items, id)
	return nil
}

type stubProductRepo struct {
	items      map[string]*domain.Product
	seq        int
	lastFilter ports.ProductFilter
	lastLimit  int
	createErr  error
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{items: make(map[string]*domain.Product)}
}

func summarize(p *domain.Product) domain.ProductSummary {
	return domain.ProductSummary{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Price:       p.Price,
		Images:      p.Images,
		StockStatus: p.StockStatus,
	}
}

func (r *stubProductRepo) sorted() []*domain.Product {
	out := make([]*domain.Product, 0, len(r.items))
	for _, p := range r.items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (r *stubProductRepo) List(_ context.Context, f ports.ProductFilter) ([]domain.ProductSummary, int64, error) {
	r.lastFilter = f
	var matched []domain.ProductSummary
	for _, p := range r.sorted() {
		if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
			continue
		}
		matched = append(matched, summarize(p))
	}
	total := int64(len(matched))
	if f.Skip >= len(matched) {
		return nil, total, nil
	}
	matched = matched[f.Skip:]
	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (r *stubProductRepo) Search(_ context.Context, q string, limit int) ([]domain.ProductSummary, error) {
	r.lastLimit = limit
	q = strings.ToLower(q)
	var out []domain.ProductSummary
	for _, p := range r.sorted() {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, summarize(p))
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubProductRepo) FindBySlug(_ context.Context, slug string) (*domain.Product, error) {
	for _, p := range r.items {
		if p.Slug == slug {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) Create(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	stored := *p
	stored.ID = fmt.Sprintf("prod-%02d", r.seq)
	r.items[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *domain.Product) (*domain.Product, error) {
	if _, ok := r.items[p.ID]; !ok {
		return nil, domain.ErrProductNotFound
	}
	stored := *p
	r.items[p.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	delete(r.items, id)
	return p, nil
}

func (r *stubProductRepo) Count(context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

type stubOrderRepo struct {
	items     map[string]*domain.Order
	seq       int
	createErr error
	// casMiss forces UpdateStatus to report a lost race.
	casMiss bool
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{items: make(map[string]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, o *domain.Order) (*domain.Order, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	stored := *o
	stored.ID = fmt.Sprintf("order-%02d", r.seq)
	r.items[stored.ID] = &stored
	clone := stored
	return &clone, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := r.items[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (r *stubOrderRepo) ListByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	var out []*domain.Order
	for _, o := range r.items {
		if o.UserID == userID {
			clone := *o
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubOrderRepo) ListWithOwners(context.Context) ([]*domain.OrderWithOwner, error) {
	var out []*domain.OrderWithOwner
	for _, o := range r.items {
		out = append(out, &domain.OrderWithOwner{Order: *o, Owner: domain.UnknownOwner})
	}
	return out, nil
}

func (r *stubOrderRepo) Recent(_ context.Context, limit int) ([]domain.RecentOrder, error) {
	var out []domain.RecentOrder
	for _, o := range r.items {
		out = append(out, domain.RecentOrder{ID: o.ID, Total: o.Total, Status: o.Status, CreatedAt: o.CreatedAt})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	o, ok := r.items[id]
	if !ok || r.casMiss || o.Status != from {
		return false, nil
	}
	o.Status = to
	return true, nil
}

func (r *stubOrderRepo) Count(context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

// ---------------------------------------------------------------------------
// Adapter stubs
// ---------------------------------------------------------------------------

type stubImageStore struct {
	mu      sync.Mutex
	saved   map[string]string // path -> content
	deleted []string
	seq     int
	saveErr error
}

func newStubImageStore() *stubImageStore {
	return &stubImageStore{saved: make(map[string]string)}
}

func (s *stubImageStore) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	path := fmt.Sprintf("/uploads/img-%d-%s", s.seq, filename)
	s.saved[path] = string(b)
	return path, nil
}

func (s *stubImageStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, path)
	if _, ok := s.saved[path]; !ok {
		return domain.ErrImageNotFound
	}
	delete(s.saved, path)
	return nil
}

type stubRegistry struct {
	claimed  map[string]bool
	paid     map[string]bool
	claimErr error
}

func newStubRegistry() *stubRegistry {
	return &stubRegistry{claimed: make(map[string]bool), paid: make(map[string]bool)}
}

func (r *stubRegistry) Claim(_ context.Context, id string) (bool, error) {
	if r.claimErr != nil {
		return false, r.claimErr
	}
	if r.claimed[id] {
		return false, nil
	}
	r.claimed[id] = true
	return true, nil
}

func (r *stubRegistry) Release(_ context.Context, id string) error {
	delete(r.claimed, id)
	return nil
}

func (r *stubRegistry) MarkPaid(_ context.Context, id string) error {
	r.paid[id] = true
	return nil
}

type stubCategoryCache struct {
	data        []*domain.Category
	set         bool
	generation  int64
	invalidated int
}

func (c *stubCategoryCache) Get(context.Context) ([]*domain.Category, int64, bool) {
	return c.data, c.generation, c.set
}

func (c *stubCategoryCache) Set(_ context.Context, generation int64, categories []*domain.Category) (bool, error) {
	if generation != c.generation {
		return false, nil
	}
	c.data = categories
	c.set = true
	return true, nil
}

func (c *stubCategoryCache) Invalidate(context.Context) error {
	c.data = nil
	c.set = false
	c.generation++
	c.invalidated++
	return nil
}

type stubGateway struct {
	calls int
	lines []ports.PaymentLineItem
	err   error
}

func (g *stubGateway) CreateCheckoutSession(_ context.Context, lines []ports.PaymentLineItem) (*ports.CheckoutSession, error) {
	g.calls++
	g.lines = lines
	if g.err != nil {
		return nil, g.err
	}
	return &ports.CheckoutSession{ID: "cs_test_1", URL: "https://pay.example/cs_test_1"}, nil
}

type stubVerifier struct {
	event *ports.WebhookEvent
	err   error
}

func (v *stubVerifier) ParseWebhook([]byte, string) (*ports.WebhookEvent, error) {
	return v.event, v.err
}
