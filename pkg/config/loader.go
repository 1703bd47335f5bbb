package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var (
	dotenvOnce sync.Once

	// validate is shared: validator caches struct metadata internally.
	validate = validator.New(validator.WithRequiredStructEnabled())
)

// Load populates the config struct from environment variables and then runs
// its `validate` tags. A missing .env file is not an error; explicitly set
// environment variables always win over .env contents.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// The .env file is a local development convenience only.
		_ = godotenv.Load()
	})

	if v == nil {
		return ErrNilPointer
	}

	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsing, err)
	}

	if err := validate.Struct(v); err != nil {
		return errors.Join(ErrValidation, err)
	}

	return nil
}

// MustLoad works like Load but panics on failure. Intended for configuration
// the process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}
