// internal/tools/retention-offer/config.go
package retentionoffer

type Config struct {
	MaxOffers    int
	MaxLowOffers int
}

func LoadConfig() *Config {
	return &Config{
		MaxOffers:    3,
		MaxLowOffers: 2,
	}
}
