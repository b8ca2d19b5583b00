package config

import (
	"time"
)

var JWTSecret []byte
var JWTExpiration time.Duration

// ConfigureJWT publishes the token settings used by the auth middleware.
func ConfigureJWT(cfg JWTConfig) {
	JWTSecret = []byte(cfg.Secret)
	JWTExpiration = cfg.Expiration
}
