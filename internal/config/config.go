package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	log "github.com/sirupsen/logrus"

	"github.com/rharkanson/go-ecc-dh/internal/crypto/curves"
	"github.com/rharkanson/go-ecc-dh/internal/protocol/exchange"
	"github.com/rharkanson/go-ecc-dh/pkg/ecdh"
)

// Config holds the command line settings. Numbers are decimal strings so
// that values larger than 64 bits survive the JSON round trip.
type Config struct {
	Group        string `json:"group"`
	A            string `json:"a"`
	B            string `json:"b"`
	P            string `json:"p"`
	Gx           string `json:"gx"`
	Gy           string `json:"gy"`
	AlicePrivate string `json:"alicePrivate"`
	BobPrivate   string `json:"bobPrivate"`
	Fold         bool   `json:"fold"`
	Stepwise     bool   `json:"stepwise"`
	LogLevel     string `json:"logLevel"`
	LogFormat    string `json:"logFormat"`
}

func GetDefaultConfig() *Config {
	return &Config{
		Group:     DefaultGroup,
		A:         DefaultA,
		B:         DefaultB,
		P:         DefaultP,
		Gx:        DefaultGx,
		Gy:        DefaultGy,
		Fold:      true,
		Stepwise:  true,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

func (c *Config) VerifyRequired() error {
	if c.Group == "" {
		return errors.New("required group missing")
	}
	if c.Group != curves.GroupToy {
		return nil
	}
	for name, v := range map[string]string{"a": c.A, "b": c.B, "p": c.P, "gx": c.Gx, "gy": c.Gy} {
		if v == "" {
			return fmt.Errorf("required %s missing", name)
		}
	}
	return nil
}

func ConfigFromFile(configPath string) (*Config, error) {
	config := GetDefaultConfig()
	log.Debugf("ConfigPath=%s", configPath)
	data, err := os.ReadFile(configPath)
	if err != nil {
		log.WithError(err).Error("ReadConfigFile")
		return nil, err
	}

	err = json.Unmarshal(data, config)
	if err != nil {
		log.WithError(err).Error("DecodeConfig")
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return config, nil
}

// ParseInt parses a decimal (or 0x-prefixed hex) integer. Anything else is
// reported as ecdh.ErrMalformedInput.
func ParseInt(name, s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	n, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("%s=%q is not an integer: %w", name, s, ecdh.ErrMalformedInput)
	}
	return n, nil
}

// parseOptional is ParseInt for values that may be left empty.
func parseOptional(name, s string) (*big.Int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return ParseInt(name, s)
}

// CurveParams parses a, b, p and the generator.
func (c *Config) CurveParams() (*curves.Params, curves.Point, error) {
	var vals [5]*big.Int
	for i, f := range []struct{ name, val string }{
		{"a", c.A}, {"b", c.B}, {"p", c.P}, {"gx", c.Gx}, {"gy", c.Gy},
	} {
		n, err := ParseInt(f.name, f.val)
		if err != nil {
			return nil, curves.Point{}, err
		}
		vals[i] = n
	}

	params, err := curves.NewParams(vals[0], vals[1], vals[2])
	if err != nil {
		return nil, curves.Point{}, err
	}
	return params, params.Point(vals[3], vals[4]), nil
}

// SessionConfig turns the settings into an exchange session description.
func (c *Config) SessionConfig() (exchange.SessionConfig, error) {
	if err := c.VerifyRequired(); err != nil {
		return exchange.SessionConfig{}, err
	}

	cfg := exchange.SessionConfig{
		Group:    c.Group,
		Fold:     c.Fold && c.Group == curves.GroupToy,
		Stepwise: c.Stepwise,
	}
	if c.Group == curves.GroupToy {
		params, g, err := c.CurveParams()
		if err != nil {
			return exchange.SessionConfig{}, err
		}
		cfg.A, cfg.B, cfg.P = params.A(), params.B(), params.P()
		cfg.Gx, cfg.Gy = g.X(), g.Y()
	}

	var err error
	if cfg.AlicePrivate, err = parseOptional("alicePrivate", c.AlicePrivate); err != nil {
		return exchange.SessionConfig{}, err
	}
	if cfg.BobPrivate, err = parseOptional("bobPrivate", c.BobPrivate); err != nil {
		return exchange.SessionConfig{}, err
	}
	return cfg, nil
}
