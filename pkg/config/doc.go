// Package config loads environment-driven configuration structs.
//
// Components declare their settings as structs tagged for
// github.com/caarlos0/env and call Load once during wiring:
//
//	type MongoConfig struct {
//		URL string `env:"MONGODB_URL,required"`
//	}
//
//	var cfg MongoConfig
//	config.MustLoad(&cfg)
//
// Values are cached per type, so independently wired components that load the
// same struct always agree on its contents.
package config
