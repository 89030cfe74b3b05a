package config

type Analysis struct {
	// PreferCustomCode makes product lookup try the seller custom code before
	// the article number.
	PreferCustomCode bool `env:"ANALYSIS_PREFER_CUSTOM_CODE" envDefault:"true"`
}
