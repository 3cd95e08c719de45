// Package config loads typed configuration structs from environment
// variables, reading a .env file once per process when present.
//
//	type Config struct {
//	    Addr string `env:"HTTP_ADDR" envDefault:":8080"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// Struct tags follow github.com/caarlos0/env.
package config
