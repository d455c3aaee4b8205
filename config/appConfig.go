package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"shopsync_api/config/values"
)

type Config interface {
}

type MarketplaceConfig interface {
}

// AccountConfig is one Shopify connection: shop credentials plus the sales
// channel used to select per-channel prices.
type AccountConfig struct {
	ID          int               `yaml:"id"`
	Name        string            `yaml:"name"`
	ShopDomain  string            `yaml:"shop_domain"`
	AccessToken string            `yaml:"access_token"`
	ChannelCode string            `yaml:"channel_code"`
	Settings    map[string]string `yaml:"settings"`
}

type ShopifyConfig struct {
	Accounts []AccountConfig      `yaml:"accounts"`
	Values   values.ShopifyValues `yaml:"default_values"`
	Colors   values.ColorConfig   `yaml:"colors"`
}

type AppConfig struct {
	Shopify  ShopifyConfig  `yaml:"shopify"`
	Postgres PostgresConfig `yaml:"postgres"`
}

func LoadConfig(filename string) (*AppConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	config := &AppConfig{}
	if err := decoder.Decode(config); err != nil {
		return nil, err
	}
	config.Shopify.Values.ApplyDefaults()
	config.Shopify.Colors.ApplyDefaults()
	return config, nil
}
