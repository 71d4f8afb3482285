package config

import (
	"github.com/aperture-data/formschema/core/logger"
	"github.com/spf13/viper"
)

type SchemaConfig struct {
	Path string
}

// LoadSchemaConfig reads the directory holding external form schema
// documents. Returns nil when no config file is present, in which case
// only the built-in schemas are available.
func LoadSchemaConfig() *SchemaConfig {
	viper.AutomaticEnv() // enable overwrite envs

	if err := viper.ReadInConfig(); err != nil {
		logger.Error("no config file found: %v", err)
		return nil
	}

	return &SchemaConfig{
		Path: viper.GetString("schema.path"),
	}
}
