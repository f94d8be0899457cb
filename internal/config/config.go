package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"storefront.db"`

	Storefront Storefront `envPrefix:"STOREFRONT_"`
	Identity   Identity   `envPrefix:"IDENTITY_"`
}

type Storefront struct {
	BaseApiURL     string `env:"BASE_API_URL"`
	TimeoutSeconds int    `env:"TIMEOUT_SECONDS" envDefault:"30"`
}

type Identity struct {
	Authority    string `env:"AUTHORITY"`
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`
	Scope        string `env:"SCOPE" envDefault:"openid email profile"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
