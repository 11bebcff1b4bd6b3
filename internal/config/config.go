package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds runtime settings for the botdocs binary.
type Config struct {
	DataDir     string `env:"BOTDOCS_DATA_DIR"     envDefault:"./data"`
	Backend     string `env:"BOTDOCS_BACKEND"      envDefault:"sqlite"       validate:"oneof=sqlite file redis memory"`
	RedisURL    string `env:"BOTDOCS_REDIS_URL"    validate:"required_if=Backend redis"`
	DataKey     string `env:"BOTDOCS_DATA_KEY"     envDefault:"botdocs_data" validate:"required"`
	Transport   string `env:"BOTDOCS_TRANSPORT"    envDefault:"stdio"        validate:"oneof=stdio http"`
	HTTPAddr    string `env:"BOTDOCS_HTTP_ADDR"    envDefault:":8081"`
	BearerToken string `env:"BOTDOCS_BEARER_TOKEN"`
	Environment string `env:"BOTDOCS_ENV"          envDefault:"development"  validate:"oneof=development production"`
}

var validate = validator.New()

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	return parse(env.Options{})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks enum fields and backend requirements.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s (got %q)", e.Field(), e.Param(), e.Value()))
		case "required", "required_if":
			msgs = append(msgs, fmt.Sprintf("%s is required", e.Field()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", e.Field()))
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Production reports whether the production environment is selected.
func (c Config) Production() bool {
	return c.Environment == "production"
}
