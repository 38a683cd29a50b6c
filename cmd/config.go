package cmd

import "time"

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	StripeSecretKey     string
	StripeWebhookSecret string
	CheckoutSuccessURL  string
	CheckoutCancelURL   string
	CheckoutCurrency    string
	OrderPendingTTL     time.Duration
}
