// Copyright (c) 2019 IoTeX Foundation
// This is an alpha (internal) release and is not suitable for production. This source code is provided 'as is' and no
// warranties are given as to title or non-infringement, merchantability or fitness for purpose and, to the extent
// permitted by law, all liability for your use of the code is disclaimed. This source code is governed by Apache
// License 2.0 that can be found in the LICENSE file.

package config

import (
	"os"
	"time"

	"github.com/iotexproject/go-pkgs/hash"
	"github.com/iotexproject/iotex-address/address"
	"github.com/pkg/errors"
	uconfig "go.uber.org/config"

	"github.com/iotexproject/iotex-donation/action/protocol/donation"
	"github.com/iotexproject/iotex-donation/actpool"
	"github.com/iotexproject/iotex-donation/db"
	"github.com/iotexproject/iotex-donation/pkg/log"
)

var (
	// Default is the default config
	Default = Config{
		SubLogs: make(map[string]log.GlobalConfig),
		Chain: Chain{
			OwnerAddress:    derivedAddress("owner.donation").String(),
			ContractAddress: derivedAddress("donation").String(),
			Donation:        donation.DefaultConfig,
			LazyInit:        true,
		},
		DB:      db.DefaultConfig,
		ActPool: actpool.DefaultConfig,
		Settlement: Settlement{
			Interval:      10 * time.Second,
			BatchSize:     100,
			MaxRetries:    3,
			RetryInterval: 100 * time.Millisecond,
		},
		Tracer: Tracer{
			ServiceName: "iotex-donation",
		},
	}

	// ErrInvalidCfg indicates the invalid config value
	ErrInvalidCfg = errors.New("invalid config value")

	// Validates is the collection config validation functions
	Validates = []Validate{
		ValidateChain,
		ValidateDB,
		ValidateActPool,
		ValidateSettlement,
	}
)

type (
	// Chain is the config of the contract the ledger runs as
	Chain struct {
		// OwnerAddress is the only caller allowed to construct the contract and change its beneficiary
		OwnerAddress string `yaml:"ownerAddress"`
		// ContractAddress is the account holding donated value
		ContractAddress string          `yaml:"contractAddress"`
		Donation        donation.Config `yaml:"donation"`
		// LazyInit initializes the contract with the default beneficiary on the first call that needs state
		LazyInit bool `yaml:"lazyInit"`
	}

	// Settlement is the config of the rounds forwarding requested transfers
	Settlement struct {
		Interval time.Duration `yaml:"interval"`
		// BatchSize caps the transfers settled per round, zero settles all pending
		BatchSize     int           `yaml:"batchSize"`
		MaxRetries    uint64        `yaml:"maxRetries"`
		RetryInterval time.Duration `yaml:"retryInterval"`
	}

	// Tracer is the config of the jaeger exporter, tracing is off without an endpoint
	Tracer struct {
		ServiceName   string `yaml:"serviceName"`
		EndPoint      string `yaml:"endpoint"`
		InstanceID    string `yaml:"instanceID"`
		SamplingRatio string `yaml:"samplingRatio"`
	}

	// Config is the root config struct, each package's config should be put as its sub struct
	Config struct {
		Chain      Chain                       `yaml:"chain"`
		DB         db.Config                   `yaml:"db"`
		ActPool    actpool.Config              `yaml:"actPool"`
		Settlement Settlement                  `yaml:"settlement"`
		Tracer     Tracer                      `yaml:"tracer"`
		Log        log.GlobalConfig            `yaml:"log"`
		SubLogs    map[string]log.GlobalConfig `yaml:"subLogs"`
	}

	// Validate is the interface of validating the config
	Validate func(Config) error
)

// New creates a config instance. It first loads the default configs. If the config paths are not empty, it will read
// from the files and override the default configs. By default, we will validate the config before returning it.
func New(configPaths []string, validates ...Validate) (Config, error) {
	opts := make([]uconfig.YAMLOption, 0)
	opts = append(opts, uconfig.Static(Default))
	opts = append(opts, uconfig.Expand(os.LookupEnv))
	for _, path := range configPaths {
		if path != "" {
			opts = append(opts, uconfig.File(path))
		}
	}
	yaml, err := uconfig.NewYAML(opts...)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to init config")
	}

	var cfg Config
	if err := yaml.Get(uconfig.Root).Populate(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal YAML config to struct")
	}

	// By default, the config needs to pass all the validation
	if len(validates) == 0 {
		validates = Validates
	}
	for _, validate := range validates {
		if err := validate(cfg); err != nil {
			return Config{}, errors.Wrap(err, "failed to validate config")
		}
	}
	return cfg, nil
}

// Owner returns the address of the contract owner
func (cfg Chain) Owner() address.Address {
	addr, err := address.FromString(cfg.OwnerAddress)
	if err != nil {
		log.S().Panicf("Error when decoding the owner address %s: %v", cfg.OwnerAddress, err)
	}
	return addr
}

// Contract returns the address of the contract account
func (cfg Chain) Contract() address.Address {
	addr, err := address.FromString(cfg.ContractAddress)
	if err != nil {
		log.S().Panicf("Error when decoding the contract address %s: %v", cfg.ContractAddress, err)
	}
	return addr
}

// DoNotValidate validates the given config
func DoNotValidate(cfg Config) error { return nil }

// ValidateChain validates the contract config
func ValidateChain(cfg Config) error {
	if _, err := address.FromString(cfg.Chain.OwnerAddress); err != nil {
		return errors.Wrapf(ErrInvalidCfg, "invalid owner address %s: %v", cfg.Chain.OwnerAddress, err)
	}
	if _, err := address.FromString(cfg.Chain.ContractAddress); err != nil {
		return errors.Wrapf(ErrInvalidCfg, "invalid contract address %s: %v", cfg.Chain.ContractAddress, err)
	}
	if _, _, err := cfg.Chain.Donation.Parse(); err != nil {
		return errors.Wrapf(ErrInvalidCfg, "invalid donation config: %v", err)
	}
	return nil
}

// ValidateDB validates the db configs
func ValidateDB(cfg Config) error {
	switch cfg.DB.DBType {
	case db.DBMemory:
		return nil
	case db.DBBolt, db.DBPebble:
		if cfg.DB.DbPath == "" {
			return errors.Wrap(ErrInvalidCfg, "db path is empty")
		}
		return nil
	default:
		return errors.Wrapf(ErrInvalidCfg, "unsupported db type %s", cfg.DB.DBType)
	}
}

// ValidateActPool validates the given config
func ValidateActPool(cfg Config) error {
	if cfg.ActPool.MaxNumTransfersPerPool == 0 {
		return errors.Wrap(ErrInvalidCfg, "maximum number of transfers per pool cannot be zero")
	}
	return nil
}

// ValidateSettlement validates the settlement configs
func ValidateSettlement(cfg Config) error {
	if cfg.Settlement.Interval <= 0 {
		return errors.Wrap(ErrInvalidCfg, "settlement interval should be greater than 0")
	}
	if cfg.Settlement.BatchSize < 0 {
		return errors.Wrap(ErrInvalidCfg, "settlement batch size should not be less than 0")
	}
	if cfg.Settlement.RetryInterval < 0 {
		return errors.Wrap(ErrInvalidCfg, "settlement retry interval should not be less than 0")
	}
	return nil
}

func derivedAddress(name string) address.Address {
	h := hash.Hash160b([]byte(name))
	addr, err := address.FromBytes(h[:])
	if err != nil {
		log.S().Panicf("Error when deriving address of %s: %v", name, err)
	}
	return addr
}
