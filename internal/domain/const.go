package domain

import "time"

const (
	// Dividend constants
	DEFAULT_DIVIDEND_RATE       = "0.75"
	DEFAULT_DISTRIBUTION_WINDOW = 24 * time.Hour
	DEFAULT_PAYOUT_TIMEOUT      = 60 * time.Second

	// Equity constants
	KINTSUGI_CREATED_VIA     = "kintsugi-engine"
	DEFAULT_EQUITY_INCREMENT = "1.0"
	DEFAULT_EQUITY_CAP       = "49"
	PLATFORM_MEMBER_ROLE     = "developer"
)
