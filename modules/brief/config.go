package brief

import "time"

type Config struct {
	OperatorEmail  string `env:"OPERATOR_EMAIL,required"`
	ResponseWindow string `env:"BRIEF_RESPONSE_WINDOW" envDefault:"2 business days"`
	SiteName       string `env:"BRIEF_SITE_NAME" envDefault:"Stroom"`
	// FallbackContact is offered to users when a brief cannot be dispatched.
	FallbackContact string `env:"BRIEF_FALLBACK_CONTACT"`

	// IPHashKey keys the client address hash. When empty a random key is
	// generated at startup, so hashes do not survive restarts.
	IPHashKey string `env:"BRIEF_IP_HASH_KEY"`

	SpamRateBurst       int           `env:"BRIEF_SPAM_RATE_BURST" envDefault:"3"`
	SpamRateRefill      time.Duration `env:"BRIEF_SPAM_RATE_REFILL" envDefault:"20m"`
	SpamDuplicateWindow time.Duration `env:"BRIEF_SPAM_DUPLICATE_WINDOW" envDefault:"10m"`
	SpamPolicyFile      string        `env:"BRIEF_SPAM_POLICY_FILE"`
}
