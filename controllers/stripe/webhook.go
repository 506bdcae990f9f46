package stripeControllers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/rakibtweets/booknest-sub000/controllers/order"
	"github.com/rakibtweets/booknest-sub000/models"
)

// Event is the envelope Stripe posts to the webhook endpoint. The
// signature is verified by middleware before this handler runs.
type Event struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Status   string            `json:"status"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// WebhookHandler dispatches verified payment events. Each event id is
// recorded so a redelivery is acknowledged without being applied twice.
// POST /checkout/webhook
func WebhookHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}

		var event Event
		if err := json.Unmarshal(body, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse event"})
			return
		}
		if event.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event id is missing"})
			return
		}

		var seen int64
		if err := db.Model(&models.WebhookEvent{}).
			Where("event_id = ?", event.ID).Count(&seen).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check event"})
			return
		}
		if seen > 0 {
			c.JSON(http.StatusOK, gin.H{"message": "event already processed"})
			return
		}

		switch event.Type {
		case "checkout.session.completed", "payment_intent.succeeded":
			if err := placePaidOrder(db, event); err != nil {
				log.Printf("webhook %s: failed to place order: %v", event.ID, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to place order"})
				return
			}
		case "payment_intent.payment_failed":
			log.Printf("webhook %s: payment failed for user %s", event.ID, event.Data.Object.Metadata["user_id"])
		default:
			log.Printf("webhook %s: ignoring event type %s", event.ID, event.Type)
		}

		if err := db.Create(&models.WebhookEvent{
			EventID:     event.ID,
			EventType:   event.Type,
			ProcessedAt: time.Now(),
		}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record event"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "event processed"})
	}
}

// placePaidOrder turns the paying user's cart into a paid order, using
// the address snapshots carried in the event metadata.
func placePaidOrder(db *gorm.DB, event Event) error {
	meta := event.Data.Object.Metadata
	userID := meta["user_id"]
	if userID == "" {
		log.Printf("webhook %s: no user_id in metadata, skipping", event.ID)
		return nil
	}

	var shipAddr, billAddr models.Address
	if raw := meta["shipping_address"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &shipAddr); err != nil {
			return err
		}
	}
	if raw := meta["billing_address"]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &billAddr); err != nil {
			return err
		}
	}

	_, err := orderControllers.PlaceOrder(db, userID, models.PaymentStatusPaid, shipAddr, billAddr)
	return err
}
