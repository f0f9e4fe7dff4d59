package configloader

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wallet_client/internal/domain/entity"
)

// ServerConfig holds HTTP server specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeoutSeconds"`
	WriteTimeout int    `yaml:"writeTimeoutSeconds"`
	IdleTimeout  int    `yaml:"idleTimeoutSeconds"`
}

// LoggingConfig holds logging specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// HistoryAPIConfig holds the settings for reaching the history collaborator
// service.
type HistoryAPIConfig struct {
	// Port is where the history process itself listens; BaseURL is where the
	// wallet process reaches it.
	Port                 string `yaml:"port"`
	BaseURL              string `yaml:"baseURL"`
	RequestTimeoutMillis int64  `yaml:"requestTimeoutMillis"`
}

// AccountConfig identifies the account the headless provider signs for.
type AccountConfig struct {
	// PrivateKey is a hex-encoded secp256k1 key. In a browser deployment the
	// injected wallet holds the key; the headless provider needs its own.
	PrivateKey string `yaml:"privateKey"`
}

// PerformanceConfig holds timeouts and pacing knobs for provider calls.
type PerformanceConfig struct {
	RPCCallTimeoutSeconds  int     `yaml:"rpc_call_timeout_seconds"`
	ReceiptPollsPerSecond  float64 `yaml:"receipt_polls_per_second"`
	BalanceCacheTTLSeconds int     `yaml:"balance_cache_ttl_seconds"`
	SwaggerEnabled         bool    `yaml:"swagger_enabled"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server        ServerConfig           `yaml:"server"`
	Logging       LoggingConfig          `yaml:"logging"`
	HistoryAPI    HistoryAPIConfig       `yaml:"historyApi"`
	Account       AccountConfig          `yaml:"account"`
	TargetNetwork entity.TargetNetwork   `yaml:"targetNetwork"`
	KnownNetworks []entity.TargetNetwork `yaml:"knownNetworks"`
	Performance   PerformanceConfig      `yaml:"performance"`
}

// Load reads the YAML configuration file from the given path and unmarshals
// it, applying defaults for optional fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.HistoryAPI.Port == "" {
		cfg.HistoryAPI.Port = "8081"
	}
	if cfg.HistoryAPI.BaseURL == "" {
		cfg.HistoryAPI.BaseURL = "http://localhost:8081"
	}
	if cfg.HistoryAPI.RequestTimeoutMillis == 0 {
		cfg.HistoryAPI.RequestTimeoutMillis = 10000
	}

	if cfg.Performance.RPCCallTimeoutSeconds <= 0 {
		cfg.Performance.RPCCallTimeoutSeconds = 10
	}
	if cfg.Performance.ReceiptPollsPerSecond <= 0 {
		// The inclusion wait itself is unbounded; pacing only keeps the poll
		// loop from hammering the RPC node.
		cfg.Performance.ReceiptPollsPerSecond = 0.5
	}
	if cfg.Performance.BalanceCacheTTLSeconds <= 0 {
		cfg.Performance.BalanceCacheTTLSeconds = 5
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.TargetNetwork.ChainID == 0 {
		return fmt.Errorf("targetNetwork.chainId is required")
	}
	if cfg.TargetNetwork.ChainIDHex == "" {
		return fmt.Errorf("targetNetwork.chainIdHex is required")
	}
	if cfg.TargetNetwork.RPCURL == "" {
		return fmt.Errorf("targetNetwork.rpcUrl is required")
	}
	if cfg.TargetNetwork.FriendlyName == "" {
		return fmt.Errorf("targetNetwork.friendlyName is required")
	}
	for i, network := range cfg.KnownNetworks {
		if network.ChainIDHex == "" || network.RPCURL == "" {
			return fmt.Errorf("knownNetworks[%d]: chainIdHex and rpcUrl are required", i)
		}
	}
	return nil
}
