// Package config loads typed configuration structs from environment
// variables, with one-time .env loading for local development and struct
// validation on top.
//
// Configuration is read once at process start and passed by value into
// constructors; nothing in this package supports runtime mutation, so policy
// changes always require a restart.
//
//	type HTTPConfig struct {
//		Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg HTTPConfig
//	config.MustLoad(&cfg)
package config
