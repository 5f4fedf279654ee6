package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		PasswordCost  int      `json:"password_cost"`
		OTPTTL        Duration `json:"otp_ttl"`
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Redis struct {
			Addr     string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		CookieName     string   `json:"cookie_name"`
		CookieSecure   bool     `json:"cookie_secure"`
		AllowedOrigins []string `json:"allowed_origins"`
		TrustedProxies []string `json:"trusted_proxies"`
	} `json:"server,omitempty"`

	Mail struct {
		Host     string   `json:"host"`
		Port     int      `json:"port"`
		Username string   `json:"username"`
		Password string   `json:"password"`
		From     string   `json:"from"`
		Timeout  Duration `json:"timeout"`
	} `json:"mail,omitempty"`

	OAuth struct {
		Google struct {
			ClientID     string `json:"client_id"`
			ClientSecret string `json:"client_secret"`
			RedirectURL  string `json:"redirect_url"`
		} `json:"google,omitempty"`
		SuccessRedirect string `json:"success_redirect"`
		FailureRedirect string `json:"failure_redirect"`
	} `json:"oauth,omitempty"`

	RateLimit struct {
		Backend  string   `json:"backend"`
		Attempts int      `json:"attempts"`
		Window   Duration `json:"window"`
	} `json:"rate_limit,omitempty"`

	Workers struct {
		OTPCleanupInterval Duration `json:"otp_cleanup_interval"`
		OTPRetention       Duration `json:"otp_retention"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			PasswordCost:  jsonCfg.App.PasswordCost,
			OTPTTL:        time.Duration(jsonCfg.App.OTPTTL),
			Version:       jsonCfg.App.Version,
			LogLevel:      jsonCfg.App.LogLevel,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Redis: Redis{
				Addr:     jsonCfg.Storage.Redis.Addr,
				Password: jsonCfg.Storage.Redis.Password,
				DB:       jsonCfg.Storage.Redis.DB,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			CookieName:     jsonCfg.Server.CookieName,
			CookieSecure:   jsonCfg.Server.CookieSecure,
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
			TrustedProxies: jsonCfg.Server.TrustedProxies,
		},
		Mail: Mail{
			Host:     jsonCfg.Mail.Host,
			Port:     jsonCfg.Mail.Port,
			Username: jsonCfg.Mail.Username,
			Password: jsonCfg.Mail.Password,
			From:     jsonCfg.Mail.From,
			Timeout:  time.Duration(jsonCfg.Mail.Timeout),
		},
		OAuth: OAuth{
			Google: Google{
				ClientID:     jsonCfg.OAuth.Google.ClientID,
				ClientSecret: jsonCfg.OAuth.Google.ClientSecret,
				RedirectURL:  jsonCfg.OAuth.Google.RedirectURL,
			},
			SuccessRedirect: jsonCfg.OAuth.SuccessRedirect,
			FailureRedirect: jsonCfg.OAuth.FailureRedirect,
		},
		RateLimit: RateLimit{
			Backend:  jsonCfg.RateLimit.Backend,
			Attempts: jsonCfg.RateLimit.Attempts,
			Window:   time.Duration(jsonCfg.RateLimit.Window),
		},
		Workers: Workers{
			OTPCleanupInterval: time.Duration(jsonCfg.Workers.OTPCleanupInterval),
			OTPRetention:       time.Duration(jsonCfg.Workers.OTPRetention),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
