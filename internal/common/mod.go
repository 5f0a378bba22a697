package common

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var Validate = validator.New()

const (
	REQUEST_TIMEOUT_SECS = 30 * time.Second
	STARTUP_TIMEOUT_SECS = 15 * time.Second

	ProductCollection = "products"
	SessionCollection = "sessions"

	CatalogCacheKey      = "catalog:all"
	PassportCacheKeyBase = "passport:"
)
