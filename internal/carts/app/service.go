package app

import (
	"context"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/dejobratic/storefront/internal/apperr"
	"github.com/dejobratic/storefront/internal/carts/domain"
	"github.com/dejobratic/storefront/internal/carts/ports"
	"github.com/dejobratic/storefront/internal/money"
	"golang.org/x/sync/singleflight"
)

// View is the cart shape returned upward: the persisted cart plus fields
// derived server-side on every read.
type View struct {
	Cart         domain.Cart `json:"cart"`
	ItemCount    int         `json:"item_count"`
	Tax          money.Cents `json:"tax"`
	ShippingCost money.Cents `json:"shipping_cost"`
	Total        money.Cents `json:"total"`
}

// lockStripes bounds the lock table regardless of how many distinct users
// the process ever sees. Two users hashing to the same stripe just contend.
const lockStripes = 64

// Service owns cart mutations. Reads for the same user are collapsed with
// singleflight; mutations are serialized per user so concurrent requests
// cannot lose subtotal updates.
type Service struct {
	repo     ports.CartRepository
	products ports.ProductReader
	logger   *slog.Logger

	readGroup singleflight.Group
	locks     [lockStripes]sync.Mutex
}

func NewService(repo ports.CartRepository, products ports.ProductReader, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		products: products,
		logger:   logger,
	}
}

// userLock returns the stripe serializing mutations for one user's cart.
func (s *Service) userLock(userID string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return &s.locks[h.Sum32()%lockStripes]
}

// Get returns the user's cart, presenting an empty cart when none exists yet;
// the document itself is created lazily on first mutation.
func (s *Service) Get(ctx context.Context, userID string) (*View, error) {
	v, err, _ := s.readGroup.Do(userID, func() (any, error) {
		cart, err := s.loadOrEmpty(ctx, userID)
		if err != nil {
			return nil, err
		}
		return view(cart), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*View), nil
}

// AddItem snapshots the product's current effective price into a new line, or
// merges quantities into an existing line without refreshing the snapshot.
func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, apperr.InvalidArgument("quantity must be at least 1, got %d", quantity)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, apperr.InvalidArgument("insufficient stock for %s", product.Name)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.loadOrEmpty(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(domain.CartItem{
		ProductID:   product.ID,
		ProductName: product.Name,
		ImageURL:    product.PrimaryImageURL(),
		Unit:        product.Unit,
		Price:       product.EffectivePrice(),
		Quantity:    quantity,
	})

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart item added",
		"user_id", userID,
		"product_id", productID,
		"quantity", quantity,
	)

	return view(cart), nil
}

// SetQuantity replaces the quantity of an existing line. Zero is rejected;
// removal is an explicit operation.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, apperr.InvalidArgument("quantity must be at least 1, got %d; use remove to delete a line", quantity)
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.Stock < quantity {
		return nil, apperr.InvalidArgument("insufficient stock for %s", product.Name)
	}

	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !cart.SetItemQuantity(productID, quantity) {
		return nil, apperr.NotFound("cart has no line for product %q", productID)
	}

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, err
	}

	return view(cart), nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*View, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.RemoveItem(productID)

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, err
	}

	return view(cart), nil
}

// Clear empties the cart but keeps the document, as checkout does after a
// successful order.
func (s *Service) Clear(ctx context.Context, userID string) (*View, error) {
	lock := s.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	cart.Clear()

	if err := s.repo.Upsert(ctx, cart); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "cart cleared", "user_id", userID)

	return view(cart), nil
}

func (s *Service) loadOrEmpty(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return &domain.Cart{UserID: userID}, nil
		}
		return nil, err
	}
	return cart, nil
}

func view(cart *domain.Cart) *View {
	tax := cart.Subtotal.ApplyRate(money.TaxRate)
	shipping := money.ShippingCost(cart.Subtotal)

	return &View{
		Cart:         *cart,
		ItemCount:    cart.ItemCount(),
		Tax:          tax,
		ShippingCost: shipping,
		Total:        cart.Subtotal + tax + shipping,
	}
}
