package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/freshacres/go-farmstore/app/models"
)

type mockProductRepo struct {
	products map[string]*models.Product
	err      error
}

func newMockProductRepo(products ...*models.Product) *mockProductRepo {
	m := &mockProductRepo{products: make(map[string]*models.Product)}
	for _, p := range products {
		m.products[p.ID] = p
	}
	return m
}

func (m *mockProductRepo) GetPaginated(ctx context.Context, limit, offset int) ([]models.Product, int64, error) {
	var out []models.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), m.err
}

func (m *mockProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	for _, p := range m.products {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, m.err
}

func (m *mockProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.products[id], nil
}

func (m *mockProductRepo) GetOnSale(ctx context.Context) ([]models.Product, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.Product
	for _, p := range m.products {
		if p.IsOnSale && p.DiscountPercent.IsPositive() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockProductRepo) Create(ctx context.Context, product *models.Product) error {
	m.products[product.ID] = product
	return m.err
}

func (m *mockProductRepo) Update(ctx context.Context, product *models.Product) error {
	m.products[product.ID] = product
	return m.err
}

func (m *mockProductRepo) Delete(ctx context.Context, id string) error {
	delete(m.products, id)
	return m.err
}

type mockCartItemRepo struct {
	items    []models.CartItem
	clearErr error
	cleared  []string
}

func (m *mockCartItemRepo) Add(ctx context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	m.items = append(m.items, *item)
	return nil
}

func (m *mockCartItemRepo) Update(ctx context.Context, item *models.CartItem) error {
	for i := range m.items {
		if m.items[i].ID == item.ID {
			m.items[i] = *item
			return nil
		}
	}
	return fmt.Errorf("cart item %s not found", item.ID)
}

func (m *mockCartItemRepo) Delete(ctx context.Context, cartID, productID string) error {
	kept := m.items[:0]
	for _, item := range m.items {
		if item.CartID == cartID && item.ProductID == productID {
			continue
		}
		kept = append(kept, item)
	}
	m.items = kept
	return nil
}

func (m *mockCartItemRepo) GetByCartID(ctx context.Context, cartID string) ([]models.CartItem, error) {
	var out []models.CartItem
	for _, item := range m.items {
		if item.CartID == cartID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockCartItemRepo) GetCartAndProduct(ctx context.Context, cartID, productID string) (*models.CartItem, error) {
	for i := range m.items {
		if m.items[i].CartID == cartID && m.items[i].ProductID == productID {
			item := m.items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (m *mockCartItemRepo) ClearCartItems(ctx context.Context, cartID string) error {
	if m.clearErr != nil {
		return m.clearErr
	}
	m.cleared = append(m.cleared, cartID)
	kept := m.items[:0]
	for _, item := range m.items {
		if item.CartID != cartID {
			kept = append(kept, item)
		}
	}
	m.items = kept
	return nil
}

type mockCartRepo struct {
	carts     map[string]*models.Cart
	itemRepo  *mockCartItemRepo
	summaries []string
	deleted   []string
}

func newMockCartRepo(itemRepo *mockCartItemRepo) *mockCartRepo {
	return &mockCartRepo{
		carts:    make(map[string]*models.Cart),
		itemRepo: itemRepo,
	}
}

func (m *mockCartRepo) GetCartWithItems(ctx context.Context, cartID string) (*models.Cart, error) {
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, nil
	}
	items, _ := m.itemRepo.GetByCartID(ctx, cartID)
	out := *cart
	out.CartItems = items
	return &out, nil
}

func (m *mockCartRepo) GetOrCreateCart(ctx context.Context, cartID, userID string) (*models.Cart, error) {
	if cart, ok := m.carts[cartID]; ok {
		return cart, nil
	}
	cart := &models.Cart{ID: cartID, UserID: userID}
	m.carts[cartID] = cart
	return cart, nil
}

func (m *mockCartRepo) GetOrCreateCartByUserID(ctx context.Context, userID string) (*models.Cart, error) {
	for _, cart := range m.carts {
		if cart.UserID == userID {
			return cart, nil
		}
	}
	cart := &models.Cart{ID: uuid.New().String(), UserID: userID}
	m.carts[cart.ID] = cart
	return cart, nil
}

func (m *mockCartRepo) UpdateCartSummary(ctx context.Context, cartID string) error {
	m.summaries = append(m.summaries, cartID)
	return nil
}

func (m *mockCartRepo) GetCartItemCount(ctx context.Context, cartID string) (int, error) {
	items, _ := m.itemRepo.GetByCartID(ctx, cartID)
	return len(items), nil
}

func (m *mockCartRepo) DeleteCart(ctx context.Context, cartID string) error {
	delete(m.carts, cartID)
	m.deleted = append(m.deleted, cartID)
	return m.itemRepo.ClearCartItems(ctx, cartID)
}

type mockOrderRepo struct {
	created   *models.Order
	createErr error
}

func (m *mockOrderRepo) CreateWithItems(ctx context.Context, order *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	saved := *order
	m.created = &saved
	return nil
}

func (m *mockOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	if m.created != nil && m.created.ID == id {
		return m.created, nil
	}
	return nil, nil
}

func (m *mockOrderRepo) FindByCode(ctx context.Context, orderCode string) (*models.Order, error) {
	if m.created != nil && m.created.OrderCode == orderCode {
		return m.created, nil
	}
	return nil, nil
}

func (m *mockOrderRepo) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	if m.created != nil && m.created.UserID == userID {
		return []models.Order{*m.created}, nil
	}
	return nil, nil
}

func (m *mockOrderRepo) UpdateStatus(ctx context.Context, orderID string, status int) error {
	if m.created != nil && m.created.ID == orderID {
		m.created.Status = status
	}
	return nil
}

type mockUserRepo struct {
	users []models.User
	err   error
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	m.users = append(m.users, *user)
	return m.err
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	for i := range m.users {
		if m.users[i].ID == id {
			return &m.users[i], nil
		}
	}
	return nil, m.err
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for i := range m.users {
		if m.users[i].Email == email {
			return &m.users[i], nil
		}
	}
	return nil, m.err
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	for i := range m.users {
		if m.users[i].ID == user.ID {
			m.users[i] = *user
			return nil
		}
	}
	return m.err
}

func (m *mockUserRepo) FindDealSubscribers(ctx context.Context) ([]models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []models.User
	for _, u := range m.users {
		if u.SubscribedToDeals {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockMailer struct {
	sentTo  []string
	failFor map[string]bool
	lastSub string
	lastMsg string
}

func (m *mockMailer) SendHTMLEmail(to, subject, htmlBody string) error {
	if m.failFor[to] {
		return fmt.Errorf("mailbox %s unavailable", to)
	}
	m.sentTo = append(m.sentTo, to)
	m.lastSub = subject
	m.lastMsg = htmlBody
	return nil
}
