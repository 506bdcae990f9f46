package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rakibtweets/booknest-sub000/config"
	stripeControllers "github.com/rakibtweets/booknest-sub000/controllers/stripe"
	"github.com/rakibtweets/booknest-sub000/middleware"
)

func SetupCheckoutRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	client := stripeControllers.NewClient(cfg.Stripe.APIURL, cfg.Stripe.SecretKey)

	checkout := r.Group("/checkout")
	{
		auth := middleware.ValidateToken(cfg.JWT.Secret)

		// Hosted checkout session
		checkout.POST("/session", auth,
			stripeControllers.CreateCheckoutSessionHandler(db, client, cfg.Stripe.SuccessURL, cfg.Stripe.CancelURL))

		// Client-confirmable payment intent
		checkout.POST("/payment-intent", auth,
			stripeControllers.CreatePaymentIntentHandler(db, client))

		// Webhook endpoint: middleware verifies the signature first
		checkout.POST("/webhook",
			middleware.StripeWebhookAuth(cfg.Stripe.WebhookSecret),
			stripeControllers.WebhookHandler(db),
		)
	}
}
