package stripeControllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/rakibtweets/booknest-sub000/controllers/cart"
	"github.com/rakibtweets/booknest-sub000/models"
	"github.com/rakibtweets/booknest-sub000/pricing"
)

const currency = "usd"

type CheckoutRequest struct {
	ShippingAddress models.Address `json:"shipping_address" binding:"required"`
	BillingAddress  models.Address `json:"billing_address"`
}

// cartLines loads the caller's cart and maps it to session lines plus
// totals. Shipping and tax ride as extra lines so the charged amount
// matches the stored order totals exactly.
func cartLines(db *gorm.DB, userID string) ([]SessionLine, pricing.Totals, error) {
	view, err := cartControllers.View(db, userID)
	if err != nil {
		return nil, pricing.Totals{}, err
	}
	if len(view.Items) == 0 {
		return nil, pricing.Totals{}, models.ErrEmptyCart
	}

	var lines []SessionLine
	for _, item := range view.Items {
		lines = append(lines, SessionLine{
			Name:            item.BookTitle,
			UnitAmountCents: item.PriceCents,
			Quantity:        item.Quantity,
		})
	}
	if view.Totals.ShippingCents > 0 {
		lines = append(lines, SessionLine{Name: "Shipping", UnitAmountCents: view.Totals.ShippingCents, Quantity: 1})
	}
	if view.Totals.TaxCents > 0 {
		lines = append(lines, SessionLine{Name: "Sales tax", UnitAmountCents: view.Totals.TaxCents, Quantity: 1})
	}
	return lines, view.Totals, nil
}

// checkoutMetadata is what the webhook needs to place the order once
// payment is confirmed.
func checkoutMetadata(userID string, req CheckoutRequest) (map[string]string, error) {
	ship, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, err
	}
	bill, err := json.Marshal(req.BillingAddress)
	if err != nil {
		return nil, err
	}
	return map[string]string{
		"user_id":          userID,
		"shipping_address": string(ship),
		"billing_address":  string(bill),
	}, nil
}

// CreateCheckoutSessionHandler builds a hosted checkout session from
// the caller's cart and returns the redirect URL.
// POST /checkout/session
func CreateCheckoutSessionHandler(db *gorm.DB, client *Client, successURL, cancelURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		lines, _, err := cartLines(db, userID)
		if err != nil {
			if err == models.ErrEmptyCart {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}

		metadata, err := checkoutMetadata(userID, req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build checkout metadata"})
			return
		}

		session, err := client.CreateCheckoutSession(c.Request.Context(), lines, currency, successURL, cancelURL, metadata)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"session_id":   session.ID,
			"checkout_url": session.URL,
		})
	}
}

// CreatePaymentIntentHandler creates a client-confirmable payment
// intent for the cart total and returns its client secret.
// POST /checkout/payment-intent
func CreatePaymentIntentHandler(db *gorm.DB, client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		_, totals, err := cartLines(db, userID)
		if err != nil {
			if err == models.ErrEmptyCart {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load cart"})
			return
		}

		metadata, err := checkoutMetadata(userID, req)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build checkout metadata"})
			return
		}

		intent, err := client.CreatePaymentIntent(c.Request.Context(), totals.TotalCents, currency, metadata)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"payment_intent_id": intent.ID,
			"client_secret":     intent.ClientSecret,
		})
	}
}
