package email

// Config holds email delivery settings for direct sends.
// Postmark tokens are only needed when delivering through Postmark; the dev
// sender ignores them. SupportEmail becomes the Reply-To address.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"no-reply@portal.local"`
	SupportEmail         string `env:"SUPPORT_EMAIL" envDefault:"secretaria@portal.local"`
	ProductName          string `env:"EMAIL_PRODUCT_NAME" envDefault:"Portal Educacional"`
}
