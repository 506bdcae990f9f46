package stripeControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	cartControllers "github.com/rakibtweets/booknest-sub000/controllers/cart"
	"github.com/rakibtweets/booknest-sub000/middleware"
	"github.com/rakibtweets/booknest-sub000/models"
)

const webhookSecret = "whsec_test"

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
		&models.Cart{}, &models.CartItem{},
		&models.Order{}, &models.OrderItem{}, &models.TimelineEntry{},
		&models.WebhookEvent{},
	))
	return db
}

func newWebhookRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/checkout/webhook",
		middleware.StripeWebhookAuth(webhookSecret),
		WebhookHandler(db),
	)
	return r
}

func signedRequest(t *testing.T, payload []byte, secret string) *http.Request {
	t.Helper()
	timestamp := time.Now().Unix()

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", timestamp, payload)
	signature := hex.EncodeToString(mac.Sum(nil))

	req := httptest.NewRequest(http.MethodPost, "/checkout/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t="+strconv.FormatInt(timestamp, 10)+",v1="+signature)
	return req
}

func sessionCompletedPayload(t *testing.T, eventID, userID string) []byte {
	t.Helper()
	addr, err := json.Marshal(models.Address{Country: "US", City: "Boston", Street: "2 Oak St", PostalCode: "02101"})
	require.NoError(t, err)

	payload, err := json.Marshal(map[string]interface{}{
		"id":   eventID,
		"type": "checkout.session.completed",
		"data": map[string]interface{}{
			"object": map[string]interface{}{
				"id":     "cs_test_123",
				"status": "complete",
				"metadata": map[string]string{
					"user_id":          userID,
					"shipping_address": string(addr),
					"billing_address":  string(addr),
				},
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func seedCartWithBook(t *testing.T, db *gorm.DB, userID string) models.Book {
	t.Helper()
	user := models.User{ID: userID, Email: userID + "@example.com"}
	require.NoError(t, db.Create(&user).Error)

	author := models.Author{Name: "Webhook Author"}
	require.NoError(t, db.Create(&author).Error)
	publisher := models.Publisher{Name: "Webhook Publisher"}
	require.NoError(t, db.Create(&publisher).Error)
	book := models.Book{
		Title: "Paid For", ISBN: "isbn-paid", PriceCents: 3000, Stock: 4,
		AuthorID: author.ID, PublisherID: publisher.ID,
	}
	require.NoError(t, db.Create(&book).Error)

	_, err := cartControllers.AddItem(db, userID, book.ID, 2)
	require.NoError(t, err)
	return book
}

func TestWebhookInvalidSignatureWritesNothing(t *testing.T) {
	db := newTestDB(t)
	r := newWebhookRouter(db)
	seedCartWithBook(t, db, "u1")

	payload := sessionCompletedPayload(t, "evt_1", "u1")
	req := signedRequest(t, payload, "whsec_wrong")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	// No order, no recorded event, cart untouched.
	var orders, events, items int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.WebhookEvent{}).Count(&events).Error)
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	require.Equal(t, int64(0), orders)
	require.Equal(t, int64(0), events)
	require.Equal(t, int64(1), items)
}

func TestWebhookMissingSignatureHeader(t *testing.T) {
	db := newTestDB(t)
	r := newWebhookRouter(db)

	payload := sessionCompletedPayload(t, "evt_1", "u1")
	req := httptest.NewRequest(http.MethodPost, "/checkout/webhook", bytes.NewReader(payload))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestWebhookStaleTimestampRejected(t *testing.T) {
	db := newTestDB(t)
	r := newWebhookRouter(db)

	payload := sessionCompletedPayload(t, "evt_1", "u1")
	stale := time.Now().Add(-time.Hour).Unix()

	mac := hmac.New(sha256.New, []byte(webhookSecret))
	fmt.Fprintf(mac, "%d.%s", stale, payload)
	signature := hex.EncodeToString(mac.Sum(nil))

	req := httptest.NewRequest(http.MethodPost, "/checkout/webhook", bytes.NewReader(payload))
	req.Header.Set("Stripe-Signature", "t="+strconv.FormatInt(stale, 10)+",v1="+signature)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestWebhookSessionCompletedPlacesPaidOrder(t *testing.T) {
	db := newTestDB(t)
	r := newWebhookRouter(db)
	seedCartWithBook(t, db, "u1")

	payload := sessionCompletedPayload(t, "evt_1", "u1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, payload, webhookSecret))
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	require.NoError(t, db.Preload("Items").First(&order).Error)
	require.Equal(t, models.PaymentStatusPaid, order.PaymentStatus)
	require.Equal(t, models.OrderStatusProcessing, order.Status)
	require.Equal(t, int64(6000), order.SubtotalCents)
	require.Equal(t, "Boston", order.ShippingAddress.City)

	// Cart cleared by the order transaction.
	var items int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&items).Error)
	require.Equal(t, int64(0), items)
}

func TestWebhookRedeliveryIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	r := newWebhookRouter(db)
	seedCartWithBook(t, db, "u1")

	payload := sessionCompletedPayload(t, "evt_1", "u1")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, payload, webhookSecret))
	require.Equal(t, http.StatusOK, w.Code)

	// Same event again: acknowledged, not re-applied.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, payload, webhookSecret))
	require.Equal(t, http.StatusOK, w.Code)

	var orders int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.Equal(t, int64(1), orders)
}

func TestWebhookUnknownEventTypeIgnoredButRecorded(t *testing.T) {
	db := newTestDB(t)
	r := newWebhookRouter(db)

	payload, err := json.Marshal(map[string]interface{}{
		"id":   "evt_other",
		"type": "customer.created",
		"data": map[string]interface{}{"object": map[string]interface{}{}},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, payload, webhookSecret))
	require.Equal(t, http.StatusOK, w.Code)

	var orders, events int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&models.WebhookEvent{}).Count(&events).Error)
	require.Equal(t, int64(0), orders)
	require.Equal(t, int64(1), events)
}
