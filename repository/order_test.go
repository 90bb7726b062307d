package repository

import (
	"context"
	"testing"
	"time"

	"kindle/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func orderFixture(t *testing.T) (*gorm.DB, OrderRepository, User, Book, context.Context) {
	db := newTestDB(t)
	user := seedUser(t, db, "alice")
	book := seedBook(t, db, Book{Title: "1984", Author: "George Orwell", Price: 10.99, Language: "English"})
	return db, NewOrderRepo(db), user, book, context.Background()
}

func TestCreateFromCart_PersistsOrderItemsAndClearsCart(t *testing.T) {
	db, orders, user, book, ctx := orderFixture(t)
	cart := NewCartRepo(db)
	require.NoError(t, cart.Add(ctx, user.ID, book.ID, 2))

	order := Order{
		OrderNumber:   "ORD-1",
		TotalAmount:   21.98,
		Status:        OrderStatusProcessing,
		PaymentMethod: "card",
		PaymentStatus: PaymentStatusCompleted,
		UserID:        user.ID,
	}
	items := []OrderItem{{BookID: book.ID, Quantity: 2, Price: book.Price}}
	require.NoError(t, orders.CreateFromCart(ctx, &order, items))

	assert.NotZero(t, order.ID)
	require.Len(t, order.Items, 1)
	assert.Equal(t, order.ID, order.Items[0].OrderID)

	cartItems, err := cart.GetForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Empty(t, cartItems)
}

func TestCreateFromCart_RollsBackOnFailure(t *testing.T) {
	db, orders, user, book, ctx := orderFixture(t)
	cart := NewCartRepo(db)
	require.NoError(t, cart.Add(ctx, user.ID, book.ID, 1))

	first := Order{OrderNumber: "ORD-DUP", TotalAmount: 1, PaymentMethod: "card", UserID: user.ID}
	require.NoError(t, orders.CreateFromCart(ctx, &first, []OrderItem{{BookID: book.ID, Quantity: 1, Price: 1}}))

	// re-add and collide on the unique order number
	require.NoError(t, cart.Add(ctx, user.ID, book.ID, 1))
	dup := Order{OrderNumber: "ORD-DUP", TotalAmount: 1, PaymentMethod: "card", UserID: user.ID}
	err := orders.CreateFromCart(ctx, &dup, []OrderItem{{BookID: book.ID, Quantity: 1, Price: 1}})
	require.Error(t, err)

	// nothing from the failed attempt persisted, cart untouched
	count, err := orders.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
	cartItems, err := cart.GetForUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, cartItems, 1)
}

func TestOrdersScopedToOwner(t *testing.T) {
	db, orders, alice, book, ctx := orderFixture(t)
	bob := seedUser(t, db, "bob")

	order := Order{OrderNumber: "ORD-A", TotalAmount: 10.99, PaymentMethod: "card", UserID: alice.ID}
	require.NoError(t, orders.CreateFromCart(ctx, &order, []OrderItem{{BookID: book.ID, Quantity: 1, Price: 10.99}}))

	mine, err := orders.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := orders.ListForUser(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	_, err = orders.GetForUser(ctx, bob.ID, order.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	_, orders, user, book, ctx := orderFixture(t)
	order := Order{OrderNumber: "ORD-S", TotalAmount: 10.99, PaymentMethod: "card", UserID: user.ID}
	require.NoError(t, orders.CreateFromCart(ctx, &order, []OrderItem{{BookID: book.ID, Quantity: 1, Price: 10.99}}))

	require.NoError(t, orders.UpdateStatus(ctx, order.ID, OrderStatusCompleted))
	got, err := orders.GetForUser(ctx, user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCompleted, got.Status)

	assert.ErrorIs(t, orders.UpdateStatus(ctx, order.ID, "shipped-to-mars"), domain.ErrInvalidInput)
	assert.ErrorIs(t, orders.UpdateStatus(ctx, 9999, OrderStatusPending), domain.ErrNotFound)
}

func TestRevenueCountsOnlyCompletedPayments(t *testing.T) {
	db, orders, user, book, ctx := orderFixture(t)

	paid := Order{OrderNumber: "ORD-P", TotalAmount: 20, PaymentMethod: "card", PaymentStatus: PaymentStatusCompleted, UserID: user.ID}
	require.NoError(t, orders.CreateFromCart(ctx, &paid, []OrderItem{{BookID: book.ID, Quantity: 1, Price: 20}}))
	failed := Order{OrderNumber: "ORD-F", TotalAmount: 99, PaymentMethod: "card", PaymentStatus: PaymentStatusFailed, UserID: user.ID}
	require.NoError(t, orders.CreateFromCart(ctx, &failed, []OrderItem{{BookID: book.ID, Quantity: 1, Price: 99}}))

	revenue, err := orders.Revenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20.0, revenue)

	// empty-table revenue is 0, not NULL
	require.NoError(t, db.Where("1 = 1").Delete(&Order{}).Error)
	revenue, err = orders.Revenue(ctx)
	require.NoError(t, err)
	assert.Zero(t, revenue)
}

func TestCountForUserSince(t *testing.T) {
	_, orders, user, book, ctx := orderFixture(t)
	order := Order{OrderNumber: "ORD-R", TotalAmount: 10.99, PaymentMethod: "card", UserID: user.ID}
	require.NoError(t, orders.CreateFromCart(ctx, &order, []OrderItem{{BookID: book.ID, Quantity: 1, Price: 10.99}}))

	n, err := orders.CountForUser(ctx, user.ID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	n, err = orders.CountForUser(ctx, user.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, n)
}
