package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const appID = "campusstore"

const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"
)

type Config struct {
	ServeHTTPAddress string `envconfig:"serve_http_address" default:":8080"`
	Storage          string `envconfig:"storage" default:"memory"`
	DBDSN            string `envconfig:"db_dsn"`
	DBMaxConnections int    `envconfig:"db_max_connections" default:"10"`
	// ShopStatusFile moves the shop status slot into a JSON file instead of the storage backend.
	ShopStatusFile          string          `envconfig:"shop_status_file"`
	TaxRate                 decimal.Decimal `envconfig:"tax_rate" default:"0"`
	TaxIncludedInOrderTotal bool            `envconfig:"tax_included_in_order_total" default:"false"`
	SeedCatalog             bool            `envconfig:"seed_catalog" default:"true"`
	LogLevel                string          `envconfig:"log_level" default:"info"`
}

func Parse() (*Config, error) {
	c := new(Config)
	if err := envconfig.Process(appID, c); err != nil {
		return nil, errors.Wrap(err, "failed to parse env")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.Storage {
	case StorageMemory:
	case StorageMySQL:
		if c.DBDSN == "" {
			return errors.New("CAMPUSSTORE_DB_DSN is required for mysql storage")
		}
	default:
		return errors.Errorf("unknown storage %q", c.Storage)
	}
	if c.TaxRate.IsNegative() {
		return errors.New("tax rate cannot be negative")
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	return nil
}

func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
