// Package config loads configuration of the donation operator tool.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/spf13/viper"
)

// EnvPrefix is a prefix of environment variables overriding configuration,
// e.g. DONATION_RPC_ENDPOINT.
const EnvPrefix = "DONATION"

// Config is the operator tool configuration.
type Config struct {
	RPC      RPC    `mapstructure:"rpc"`
	Wallet   Wallet `mapstructure:"wallet"`
	Contract string `mapstructure:"contract"`
	Debug    bool   `mapstructure:"debug"`
}

// RPC configures connection to Neo RPC node.
type RPC struct {
	Endpoint       string        `mapstructure:"endpoint"`
	DialTimeout    time.Duration `mapstructure:"dial_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// Wallet configures the account transactions are signed with.
type Wallet struct {
	Path string `mapstructure:"path"`
	// Account address, default wallet account is used if empty.
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
}

// Keys of the settings.
const (
	KeyRPCEndpoint       = "rpc.endpoint"
	KeyRPCDialTimeout    = "rpc.dial_timeout"
	KeyRPCRequestTimeout = "rpc.request_timeout"
	KeyWalletPath        = "wallet.path"
	KeyWalletAddress     = "wallet.address"
	KeyWalletPassword    = "wallet.password"
	KeyContract          = "contract"
	KeyDebug             = "debug"
)

var errMissingEndpoint = errors.New("missing RPC endpoint")

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyRPCEndpoint, "http://localhost:30333")
	v.SetDefault(KeyRPCDialTimeout, 15*time.Second)
	v.SetDefault(KeyRPCRequestTimeout, 15*time.Second)
	v.SetDefault(KeyWalletPath, "")
	v.SetDefault(KeyWalletAddress, "")
	v.SetDefault(KeyWalletPassword, "")
	v.SetDefault(KeyContract, "")
	v.SetDefault(KeyDebug, false)
}

// Load reads configuration in priority order: defaults, configuration file
// (if path is not empty), DONATION_* environment variables and flags already
// bound to v.
func Load(v *viper.Viper, path string) (*Config, error) {
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	if c.RPC.Endpoint == "" {
		return errMissingEndpoint
	}
	if c.RPC.DialTimeout < 0 || c.RPC.RequestTimeout < 0 {
		return errors.New("negative RPC timeout")
	}
	if c.Wallet.Address != "" {
		if _, err := address.StringToUint160(c.Wallet.Address); err != nil {
			return fmt.Errorf("wallet address: %w", err)
		}
	}
	if c.Contract != "" {
		if _, err := ParseHash160(c.Contract); err != nil {
			return fmt.Errorf("contract: %w", err)
		}
	}
	return nil
}

// ContractHash returns configured Donation contract address.
func (c *Config) ContractHash() (util.Uint160, error) {
	if c.Contract == "" {
		return util.Uint160{}, errors.New("contract address is not configured")
	}
	return ParseHash160(c.Contract)
}

// ParseHash160 parses Neo address or hex-encoded LE script hash (with or
// without 0x prefix).
func ParseHash160(s string) (util.Uint160, error) {
	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("neither address nor script hash: %s", s)
	}
	return h, nil
}
