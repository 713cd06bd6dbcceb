// internal/tools/churn-lookup/config.go
package churnlookup

type Config struct {
	View string
}

func LoadConfig(view string) *Config {
	if view == "" {
		view = "telco_augmented_vw"
	}
	return &Config{
		View: view,
	}
}
