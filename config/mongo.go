package config

import (
	"log"

	"github.com/spf13/viper"
)

type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    int
}

func LoadMongoConfig() MongoConfig {
	viper.AutomaticEnv() // enable overwrite envs

	// default
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "labelops")
	viper.SetDefault("mongo.collection", "storage_settings")
	viper.SetDefault("mongo.timeout", 10)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("no config file found, use default configuration: %v", err)
	}

	return MongoConfig{
		URI:        viper.GetString("mongo.uri"),
		Database:   viper.GetString("mongo.database"),
		Collection: viper.GetString("mongo.collection"),
		Timeout:    viper.GetInt("mongo.timeout"),
	}
}
