// Package config loads typed configuration structs from environment
// variables, optionally seeded from a .env file.
//
// Each configuration type is parsed at most once per process and cached, so
// packages can call Load for their own config without coordinating.
//
// # Usage
//
//	type StoreConfig struct {
//		RedisURL string `env:"EXPKIT_REDIS_URL,required"`
//		TTL      time.Duration `env:"EXPKIT_PROFILE_TTL" envDefault:"24h"`
//	}
//
//	var cfg StoreConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// MustLoad panics on failure and suits configuration the process cannot
// start without.
package config
