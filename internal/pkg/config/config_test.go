package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{User: "mip", Password: "pw", Host: "db", Port: "3306", Name: "mip_db"}
	assert.Equal(t, "mip:pw@tcp(db:3306)/mip_db?charset=utf8mb4&parseTime=True&loc=Local", cfg.DSN())
}

func TestCacheAddr(t *testing.T) {
	cfg := CacheConfig{Host: "cache", Port: "6379"}
	assert.Equal(t, "cache:6379", cfg.Addr())
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Nil(t, splitList("   "))
	assert.Equal(t, []string{"a:9092"}, splitList("a:9092"))
	assert.Equal(t, []string{"a:9092", "b:9092"}, splitList(" a:9092 , b:9092 ,"))
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "4000", cfg.App.Port)
	assert.Equal(t, CompletedStrategyPersist, cfg.Gateway.CompletedStrategy)
	assert.Equal(t, "payment.events", cfg.Kafka.Topic)
	assert.NotEmpty(t, cfg.Frontend.UsersLoginURL)
}
