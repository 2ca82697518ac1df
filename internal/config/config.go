package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"community_fund/sdk"

	"github.com/gagliardetto/solana-go"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "fund.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

const (
	DefaultProgramId    = "6gE2epaU3z6ySCsnwY9fvWyCCTnUMZ97c4jkzvPg52St"
	DefaultDatabasePath = ".fund"
	DefaultKeyFile      = "fund.key"
)

const (
	StorageBadger = "badger"
	StorageMemory = "memory"
)

// memoryStateFile is the snapshot name the memory backend keeps under
// DatabasePath between invocations.
const memoryStateFile = "state.json"

type Config struct {
	ProgramId         string `yaml:"programId"         envconfig:"PROGRAM_ID"`
	Deployer          string `yaml:"deployer"          envconfig:"DEPLOYER"`
	DatabasePath      string `yaml:"databasePath"      envconfig:"DATABASE_PATH"`
	Storage           string `yaml:"storage"           envconfig:"STORAGE"`
	RequireSignatures bool   `yaml:"requireSignatures" envconfig:"REQUIRE_SIGNATURES"`
	KeyFile           string `yaml:"keyFile"           envconfig:"KEY_FILE"`
	ContractId        string `yaml:"contractId"        envconfig:"CONTRACT_ID"`
}

func DefaultConfig() *Config {
	return &Config{
		ProgramId:         DefaultProgramId,
		DatabasePath:      DefaultDatabasePath,
		Storage:           StorageBadger,
		RequireSignatures: true,
		KeyFile:           DefaultKeyFile,
		ContractId:        "community_fund",
	}
}

// LoadConfig builds the config from defaults, then the YAML file, then
// FUND_* environment variables. When configFile is empty ~/.fund/fund.yaml
// is used if present.
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()
	if configFile == "" {
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".fund", "fund.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}
	}
	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}
	if err := envconfig.Process("fund", cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %+w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := c.ProgramID(); err != nil {
		return err
	}
	if _, err := c.DeployerKey(); err != nil {
		return err
	}
	switch c.Storage {
	case StorageBadger, StorageMemory:
	default:
		return fmt.Errorf(
			"invalid storage: %q (must be '%s' or '%s')",
			c.Storage,
			StorageBadger,
			StorageMemory,
		)
	}
	if c.DatabasePath == "" {
		return errors.New("databasePath must not be empty")
	}
	if c.ContractId == "" {
		return errors.New("contractId must not be empty")
	}
	return nil
}

func (c *Config) ProgramID() (solana.PublicKey, error) {
	pk, err := sdk.ParseAddress(c.ProgramId)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid programId: %w", err)
	}
	return pk, nil
}

// DeployerKey returns the configured deploying authority, or the zero key
// when none is set.
func (c *Config) DeployerKey() (solana.PublicKey, error) {
	if c.Deployer == "" {
		return solana.PublicKey{}, nil
	}
	pk, err := sdk.ParseAddress(c.Deployer)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid deployer: %w", err)
	}
	return pk, nil
}

// MemoryStatePath is where the memory backend snapshots its keyspace.
func (c *Config) MemoryStatePath() string {
	return filepath.Join(c.DatabasePath, memoryStateFile)
}
