package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pelletier/go-toml/v2"

	"github.com/datalink-global/datalink/linkmon/log"
)

var home = flag.String("home", homeDir(), "request monitor daemon home directory")

var globalConfig configData

type configData struct {
	Chain    chainConfig    `toml:"chain"`
	Consumer consumerConfig `toml:"consumer"`
}

type chainConfig struct {
	ID       string `toml:"id"`
	Endpoint string `toml:"endpoint"`
}

type consumerConfig struct {
	Address               string `toml:"address"`
	StaleThresholdSeconds uint64 `toml:"stale_threshold_seconds"`
}

func Load() {
	flag.Parse()
	path := filepath.Join(Home(), "config.toml")

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := createDefaultConfig(path); err != nil {
			log.Fatalf("Failed to create default config: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Failed to read config file: %v", err)
	}

	if err := toml.Unmarshal(data, &globalConfig); err != nil {
		log.Fatalf("Failed to parse TOML: %v", err)
	}

	if err := validateConfig(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	log.Infof("Loaded config from %s", path)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get user home directory: %v", err)
	}

	return filepath.Join(home, ".linkmond")
}

func createDefaultConfig(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	globalConfig = configData{
		Chain: chainConfig{
			ID:       "datalink_9010-1",
			Endpoint: "http://localhost:26657",
		},
		Consumer: consumerConfig{
			Address:               "0x0000000000000000000000000000000000000000",
			StaleThresholdSeconds: 300,
		},
	}

	data, err := toml.Marshal(globalConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal TOML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func validateConfig() error {
	if globalConfig.Chain.ID == "" {
		return fmt.Errorf("chain ID is required")
	}

	if globalConfig.Chain.Endpoint == "" {
		return fmt.Errorf("chain endpoint is required")
	}

	if !common.IsHexAddress(globalConfig.Consumer.Address) {
		return fmt.Errorf("consumer address %q is not a hex address", globalConfig.Consumer.Address)
	}

	if globalConfig.Consumer.StaleThresholdSeconds == 0 {
		return fmt.Errorf("stale threshold is required")
	}

	return nil
}

func Print() {
	log.Infof("%-15s: %s", "Home", Home())
	log.Infof("%-15s: %s", "Chain ID", ChainID())
	log.Infof("%-15s: %s", "Chain Endpoint", ChainEndpoint())
	log.Infof("%-15s: %s", "Consumer", ConsumerAddress().Hex())
	log.Infof("%-15s: %s", "Stale After", StaleThreshold())
}

func Home() string {
	return *home
}

func ChainID() string {
	return globalConfig.Chain.ID
}

func ChainEndpoint() string {
	return globalConfig.Chain.Endpoint
}

func ConsumerAddress() common.Address {
	return common.HexToAddress(globalConfig.Consumer.Address)
}

func StaleThreshold() time.Duration {
	return time.Duration(globalConfig.Consumer.StaleThresholdSeconds) * time.Second
}

func ChannelSize() int {
	return 1 << 10
}

func SetForTesting(id, endpoint, consumer string, staleSeconds uint64) {
	globalConfig = configData{
		Chain: chainConfig{
			ID:       id,
			Endpoint: endpoint,
		},
		Consumer: consumerConfig{
			Address:               consumer,
			StaleThresholdSeconds: staleSeconds,
		},
	}
}
