package orderControllers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	cartControllers "github.com/rakibtweets/booknest-sub000/controllers/cart"
	"github.com/rakibtweets/booknest-sub000/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Author{}, &models.Publisher{}, &models.Book{},
		&models.Cart{}, &models.CartItem{}, &models.WishlistItem{},
		&models.Order{}, &models.OrderItem{}, &models.TimelineEntry{},
	))
	return db
}

func seedBook(t *testing.T, db *gorm.DB, title string, priceCents int64, stock int) models.Book {
	t.Helper()
	author := models.Author{Name: "Author of " + title}
	require.NoError(t, db.Create(&author).Error)
	publisher := models.Publisher{Name: "Publisher of " + title}
	require.NoError(t, db.Create(&publisher).Error)

	book := models.Book{
		Title:       title,
		ISBN:        "isbn-" + title,
		PriceCents:  priceCents,
		Stock:       stock,
		AuthorID:    author.ID,
		PublisherID: publisher.ID,
	}
	require.NoError(t, db.Create(&book).Error)
	return book
}

func seedUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	user := models.User{ID: id, Email: id + "@example.com", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	return user
}

var testAddr = models.Address{
	Country: "US", State: "NY", City: "New York",
	Street: "1 Main St", PostalCode: "10001",
}

func TestPlaceOrderSnapshotsCartAndClearsIt(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")
	book := seedBook(t, db, "The Hobbit", 2000, 10)

	_, err := cartControllers.AddItem(db, user.ID, book.ID, 2)
	require.NoError(t, err)

	order, err := PlaceOrder(db, user.ID, models.PaymentStatusPending, testAddr, testAddr)
	require.NoError(t, err)
	require.NotEmpty(t, order.OrderRef)
	require.Equal(t, models.OrderStatusProcessing, order.Status)

	// Totals match the line items: 4000 + 499 shipping + 320 tax.
	require.Equal(t, int64(4000), order.SubtotalCents)
	require.Equal(t, int64(499), order.ShippingCents)
	require.Equal(t, int64(320), order.TaxCents)
	require.Equal(t, int64(4819), order.TotalCents)

	var itemSum int64
	for _, item := range order.Items {
		itemSum += item.PriceCents * int64(item.Quantity)
	}
	require.Equal(t, order.SubtotalCents, itemSum)

	// Stock was decremented at order creation.
	var fresh models.Book
	require.NoError(t, db.First(&fresh, book.ID).Error)
	require.Equal(t, 8, fresh.Stock)

	// Cart is empty afterwards.
	view, err := cartControllers.View(db, user.ID)
	require.NoError(t, err)
	require.Empty(t, view.Items)

	// First timeline entry records the placement.
	var entries []models.TimelineEntry
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	require.Equal(t, string(models.OrderStatusProcessing), entries[0].Status)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")
	require.NoError(t, db.Create(&models.Cart{UserID: user.ID}).Error)

	_, err := PlaceOrder(db, user.ID, models.PaymentStatusPending, testAddr, testAddr)
	require.ErrorIs(t, err, models.ErrEmptyCart)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")
	first := seedBook(t, db, "Book One", 1000, 10)
	second := seedBook(t, db, "Book Two", 1000, 5)

	_, err := cartControllers.AddItem(db, user.ID, first.ID, 3)
	require.NoError(t, err)
	_, err = cartControllers.AddItem(db, user.ID, second.ID, 5)
	require.NoError(t, err)

	// Sell out the second book behind the cart's back.
	require.NoError(t, db.Model(&models.Book{}).Where("id = ?", second.ID).Update("stock", 2).Error)

	_, err = PlaceOrder(db, user.ID, models.PaymentStatusPending, testAddr, testAddr)
	require.ErrorIs(t, err, models.ErrInsufficientStock)

	// Nothing was applied: no order, cart intact, first book's stock
	// untouched despite being processed before the failure.
	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.Equal(t, int64(0), orders)

	view, err := cartControllers.View(db, user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	var fresh models.Book
	require.NoError(t, db.First(&fresh, first.ID).Error)
	require.Equal(t, 10, fresh.Stock)
}

func TestOrderTotalsSurviveBookPriceChange(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")
	book := seedBook(t, db, "Price Drift", 2500, 10)

	_, err := cartControllers.AddItem(db, user.ID, book.ID, 2)
	require.NoError(t, err)
	order, err := PlaceOrder(db, user.ID, models.PaymentStatusPending, testAddr, testAddr)
	require.NoError(t, err)

	// Repricing the book must not touch the historical order.
	require.NoError(t, db.Model(&models.Book{}).Where("id = ?", book.ID).Update("price_cents", 9900).Error)

	var stored models.Order
	require.NoError(t, db.Preload("Items").First(&stored, order.ID).Error)
	require.Equal(t, int64(5000), stored.SubtotalCents)
	require.Equal(t, int64(2500), stored.Items[0].PriceCents)

	var itemSum int64
	for _, item := range stored.Items {
		itemSum += item.PriceCents * int64(item.Quantity)
	}
	require.Equal(t, stored.SubtotalCents, itemSum)
}

func TestCancelRestoresStockExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")
	book := seedBook(t, db, "Cancel Me", 1500, 10)

	_, err := cartControllers.AddItem(db, user.ID, book.ID, 3)
	require.NoError(t, err)
	order, err := PlaceOrder(db, user.ID, models.PaymentStatusPending, testAddr, testAddr)
	require.NoError(t, err)

	var fresh models.Book
	require.NoError(t, db.First(&fresh, book.ID).Error)
	require.Equal(t, 7, fresh.Stock)

	_, err = TransitionStatus(db, order.OrderRef, models.OrderStatusCancelled, "")
	require.NoError(t, err)

	require.NoError(t, db.First(&fresh, book.ID).Error)
	require.Equal(t, 10, fresh.Stock)

	// Cancelling again is an invalid transition and must not restore
	// stock a second time.
	_, err = TransitionStatus(db, order.OrderRef, models.OrderStatusCancelled, "")
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	require.NoError(t, db.First(&fresh, book.ID).Error)
	require.Equal(t, 10, fresh.Stock)
}

func TestTransitionTableEnforced(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")
	book := seedBook(t, db, "Ship Me", 1500, 5)

	_, err := cartControllers.AddItem(db, user.ID, book.ID, 1)
	require.NoError(t, err)
	order, err := PlaceOrder(db, user.ID, models.PaymentStatusPending, testAddr, testAddr)
	require.NoError(t, err)

	// processing -> delivered skips shipped.
	_, err = TransitionStatus(db, order.OrderRef, models.OrderStatusDelivered, "")
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	_, err = TransitionStatus(db, order.OrderRef, models.OrderStatusShipped, "on a truck")
	require.NoError(t, err)
	_, err = TransitionStatus(db, order.OrderRef, models.OrderStatusDelivered, "")
	require.NoError(t, err)

	// Delivered is terminal.
	_, err = TransitionStatus(db, order.OrderRef, models.OrderStatusCancelled, "")
	require.ErrorIs(t, err, models.ErrInvalidTransition)

	// Timeline grew append-only: placed, shipped, delivered.
	var entries []models.TimelineEntry
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id").Find(&entries).Error)
	require.Len(t, entries, 3)
	require.Equal(t, "on a truck", entries[1].Description)
}

func TestSetPaymentStatusAppendsTimeline(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")
	book := seedBook(t, db, "Pay Me", 1500, 5)

	_, err := cartControllers.AddItem(db, user.ID, book.ID, 1)
	require.NoError(t, err)
	order, err := PlaceOrder(db, user.ID, models.PaymentStatusPending, testAddr, testAddr)
	require.NoError(t, err)

	updated, err := SetPaymentStatus(db, order.OrderRef, models.PaymentStatusPaid)
	require.NoError(t, err)
	require.Equal(t, models.PaymentStatusPaid, updated.PaymentStatus)

	// Order status is untouched.
	require.Equal(t, models.OrderStatusProcessing, updated.Status)

	var entries []models.TimelineEntry
	require.NoError(t, db.Where("order_id = ?", order.ID).Order("id").Find(&entries).Error)
	require.Len(t, entries, 2)
	require.Equal(t, "Payment paid", entries[1].Description)
}
