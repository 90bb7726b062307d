// Package checkout converts a cart snapshot into an immutable order.
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kindle/domain"
	"kindle/events"
	"kindle/log"
	"kindle/repository"

	"github.com/google/uuid"
)

const orderNumberAttempts = 3

// userLocks hands out one mutex per user id so two checkouts for the
// same user can never read the same cart snapshot.
type userLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func (u *userLocks) get(userID uint) *sync.Mutex {
	u.mu.Lock()
	defer u.mu.Unlock()
	l, ok := u.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		u.locks[userID] = l
	}
	return l
}

type Coordinator struct {
	cart      repository.CartRepository
	orders    repository.OrderRepository
	publisher events.Publisher // may be nil
	locks     userLocks
}

func NewCoordinator(
	cart repository.CartRepository,
	orders repository.OrderRepository,
	publisher events.Publisher,
) *Coordinator {
	return &Coordinator{
		cart:      cart,
		orders:    orders,
		publisher: publisher,
		locks:     userLocks{locks: make(map[uint]*sync.Mutex)},
	}
}

// Run executes the checkout pipeline: snapshot the cart, price it,
// persist order + items + cart clear in one transaction, then announce
// the order. Per-user serialization means the snapshot a checkout bills
// is the cart it empties.
func (c *Coordinator) Run(ctx context.Context, userID uint, paymentMethod, shippingAddress string) (repository.Order, error) {
	logger := log.GetLogger(ctx)

	lock := c.locks.get(userID)
	lock.Lock()
	defer lock.Unlock()

	items, err := c.cart.GetForUser(ctx, userID)
	if err != nil {
		return repository.Order{}, err
	}
	if len(items) == 0 {
		return repository.Order{}, fmt.Errorf("cart is empty: %w", domain.ErrInvalidState)
	}

	totalAmount := repository.CartTotal(items)

	orderNumber, err := c.uniqueOrderNumber(ctx)
	if err != nil {
		return repository.Order{}, err
	}

	order := repository.Order{
		OrderNumber:     orderNumber,
		TotalAmount:     totalAmount,
		Status:          repository.OrderStatusProcessing,
		PaymentMethod:   paymentMethod,
		PaymentStatus:   repository.PaymentStatusCompleted, // no payment gateway behind this
		ShippingAddress: shippingAddress,
		UserID:          userID,
	}
	orderItems := make([]repository.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, repository.OrderItem{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Book.Price, // snapshot, immune to later edits
		})
	}

	if err := c.orders.CreateFromCart(ctx, &order, orderItems); err != nil {
		logger.WithError(err).Errorf("checkout failed for user %d", userID)
		return repository.Order{}, err
	}

	logger.WithField("order_number", order.OrderNumber).
		Infof("order placed for user %d, total %.2f", userID, order.TotalAmount)

	if c.publisher != nil {
		event := domain.OrderCreatedEvent{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			UserID:      userID,
			TotalAmount: order.TotalAmount,
			Items:       len(orderItems),
		}
		if err := c.publisher.PublishOrderCreated(ctx, event); err != nil {
			// the order is committed; the event is best-effort
			logger.WithError(err).Warn("order created event not published")
		}
	}

	return order, nil
}

// uniqueOrderNumber generates a timestamp+random token and verifies it
// against existing orders. Collisions are close to impossible, but the
// retry loop makes uniqueness a guarantee rather than a probability.
func (c *Coordinator) uniqueOrderNumber(ctx context.Context) (string, error) {
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		candidate := fmt.Sprintf("ORD-%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
		exists, err := c.orders.ExistsByNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("order number collision: %w", domain.ErrConflict)
}
