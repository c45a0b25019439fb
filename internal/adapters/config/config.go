// Package config provides the configuration loader for veri.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"go.trai.ch/veri/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Config is the structure of the veri.yaml configuration file.
type Config struct {
	ChainID   uint64 `yaml:"chainId" validate:"required"`
	PageSize  int    `yaml:"pageSize" validate:"min=1,max=200"`
	StorePath string `yaml:"storePath"`

	// Demo holds the accounts and defaults the demo flow uses.
	Demo DemoConfig `yaml:"demo"`
}

// DemoConfig seeds the simulated ledger.
type DemoConfig struct {
	Borrower     string   `yaml:"borrower" validate:"required,addr"`
	Lender       string   `yaml:"lender" validate:"required,addr"`
	Scopes       []string `yaml:"scopes" validate:"min=1"`
	DurationDays int      `yaml:"durationDays" validate:"min=1"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ChainID:   31337,
		PageSize:  20,
		StorePath: "",
		Demo: DemoConfig{
			Borrower:     "0x00112233445566778899aabbccddeeff00112233",
			Lender:       "0xffeeddccbbaa99887766554433221100ffeeddcc",
			Scopes:       []string{"credit_score", "income"},
			DurationDays: 30,
		},
	}
}

// BorrowerAddress returns the parsed demo borrower account.
func (c Config) BorrowerAddress() domain.Address {
	return domain.MustParseAddress(c.Demo.Borrower)
}

// LenderAddress returns the parsed demo lender account.
func (c Config) LenderAddress() domain.Address {
	return domain.MustParseAddress(c.Demo.Lender)
}

// ConsentDuration returns the demo grant duration.
func (c Config) ConsentDuration() time.Duration {
	return time.Duration(c.Demo.DurationDays) * 24 * time.Hour
}

// Load reads and validates a configuration file. A missing file yields the
// defaults; a malformed or invalid file is an error, never a silent fallback.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, zerr.Wrap(err, "failed to read config file")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, zerr.Wrap(err, "failed to parse config file")
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the structural constraints of a configuration.
func Validate(cfg Config) error {
	v := validator.New()
	if err := v.RegisterValidation("addr", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseAddress(fl.Field().String())
		return err == nil
	}); err != nil {
		return zerr.Wrap(err, "registering config validators")
	}
	if err := v.Struct(cfg); err != nil {
		return zerr.Wrap(err, "invalid configuration")
	}
	return nil
}
