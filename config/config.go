// Package config provides configuration management for the paygate client.
// Configuration can be loaded from YAML files and overridden by environment variables.
package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ModeSandbox = "sandbox"
	ModeLive    = "live"
)

// Environment holds the gateway credentials and endpoints of a single
// environment (sandbox or live).
type Environment struct {
	Username      string `yaml:"username" env:"USERNAME" env-default:""`
	Password      string `yaml:"password" env:"PASSWORD" env-default:""`
	Secret        string `yaml:"secret" env:"SECRET" env-default:""`
	Certificate   string `yaml:"certificate" env:"CERTIFICATE" env-default:""`
	AppId         string `yaml:"app_id" env:"APP_ID" env-default:""`
	PaymentAction string `yaml:"payment_action" env:"PAYMENT_ACTION" env-default:""`
	Locale        string `yaml:"locale" env:"LOCALE" env-default:""`
	ApiUrl        string `yaml:"api_url" env:"API_URL" env-default:""`
	NotifyUrl     string `yaml:"notify_url" env:"NOTIFY_URL" env-default:""`
	GatewayUrl    string `yaml:"gateway_url" env:"GATEWAY_URL" env-default:""`
	IpnUrl        string `yaml:"ipn_url" env:"IPN_URL" env-default:""`
}

// Config holds all configuration for the paygate client.
// Values can be set via YAML configuration file or environment variables.
// Environment variables take precedence over YAML values.
//
// ValidateSSL defaults to false for compatibility with existing deployments;
// this disables certificate verification of the gateway and is insecure.
type Config struct {
	IsDebug     bool          `yaml:"is_debug" env:"DEBUG" env-default:"false"`
	Mode        string        `yaml:"mode" env:"PAYPAL_MODE" env-default:""`
	ValidateSSL bool          `yaml:"validate_ssl" env:"PAYPAL_VALIDATE_SSL" env-default:"false"`
	Currency    string        `yaml:"currency" env:"PAYPAL_CURRENCY" env-default:"USD"`
	Timeout     time.Duration `yaml:"timeout" env:"PAYPAL_TIMEOUT" env-default:"30s"`
	Sandbox     Environment   `yaml:"sandbox" env-prefix:"PAYPAL_SANDBOX_"`
	Live        Environment   `yaml:"live" env-prefix:"PAYPAL_LIVE_"`
	Listen      struct {
		BindIP   string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env:"PORT" env-default:"5100"`
		TLS      bool   `yaml:"tls_enabled" env:"TLS_ENABLED" env-default:"false"`
		CertFile string `yaml:"cert_file" env:"TLS_CERT_FILE" env-default:""`
		KeyFile  string `yaml:"key_file" env:"TLS_KEY_FILE" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"paygate"`
	} `yaml:"mongo"`
}

// ActiveMode returns the configured mode, falling back to live for an empty
// or unknown value.
func (c *Config) ActiveMode() string {
	if c.Mode == ModeSandbox || c.Mode == ModeLive {
		return c.Mode
	}
	return ModeLive
}

// Environment returns the credential block of the active mode.
func (c *Config) Environment() Environment {
	if c.ActiveMode() == ModeSandbox {
		return c.Sandbox
	}
	return c.Live
}

// Load reads a fresh configuration from the YAML file at path, applying
// environment overrides. An empty path reads the environment only.
func Load(path string) (*Config, error) {
	conf := &Config{}
	var err error
	if path == "" {
		err = cleanenv.ReadEnv(conf)
	} else {
		err = cleanenv.ReadConfig(path, conf)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("load config: %w; %s", err, desc)
	}
	return conf, nil
}

var instance *Config
var once sync.Once

// GetConfig loads configuration from the specified YAML file path once and
// returns the same instance on subsequent calls.
//
// Example:
//
//	cfg, err := config.GetConfig("config.yml")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetConfig(path string) (*Config, error) {
	var err error
	once.Do(func() {
		instance, err = Load(path)
	})
	return instance, err
}
