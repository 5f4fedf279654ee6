package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
)

// NetAddress is a host:port flag value. The host may be empty (all
// interfaces), "localhost", a bracketed IPv6 address or an IP.
type NetAddress struct {
	Host string
	Port int
}

func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return fmt.Errorf("need address in a form host:port: %w", err)
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q", rawPort)
	}
	if host != "" && host != "localhost" && net.ParseIP(host) == nil {
		return errors.New("host must be localhost or an IP address")
	}

	a.Host, a.Port = host, port
	return nil
}

// ParseFlags reads the command line. A parse error exits the process.
func ParseFlags() *StructuredConfig {
	cfg, _ := parseFlags(os.Args[0], os.Args[1:], flag.ExitOnError)
	return cfg
}

func parseFlags(name string, args []string, handling flag.ErrorHandling) (*StructuredConfig, error) {
	var (
		cfg                StructuredConfig
		httpAddr, grpcAddr NetAddress
		origins            string
	)

	fs := flag.NewFlagSet(name, handling)
	fs.Var(&httpAddr, "a", "HTTP listen address host:port")
	fs.Var(&grpcAddr, "grpc-address", "gRPC health listen address host:port")
	fs.StringVar(&cfg.Storage.DB.DSN, "d", "", "PostgreSQL DSN")
	fs.StringVar(&cfg.Storage.Redis.Addr, "redis", "", "Redis address host:port")
	fs.StringVar(&cfg.JSONFilePath, "c", "", "JSON config file path")
	fs.StringVar(&cfg.JSONFilePath, "config", "", "JSON config file path (alias of -c)")
	fs.StringVar(&cfg.App.TokenSignKey, "token-sign-key", "", "JWT signing key")
	fs.StringVar(&cfg.App.TokenIssuer, "token-issuer", "", "JWT issuer")
	fs.DurationVar(&cfg.App.TokenDuration, "token-duration", 0, "session lifetime, e.g. 24h")
	fs.DurationVar(&cfg.App.OTPTTL, "otp-ttl", 0, "one-time code lifetime, e.g. 10m")
	fs.StringVar(&cfg.App.LogLevel, "log-level", "", "debug, info, warn or error")
	fs.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", 0, "per-request timeout, e.g. 30s")
	fs.StringVar(&origins, "allowed-origins", "", "comma separated CORS origins")
	fs.StringVar(&cfg.RateLimit.Backend, "rate-limit-backend", "", "memory or redis")
	fs.DurationVar(&cfg.Workers.OTPCleanupInterval, "otp-cleanup-interval", 0, "stale code purge interval, e.g. 1h")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.HTTPAddress = httpAddr.String()
	cfg.Server.GRPCAddress = grpcAddr.String()
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.Server.AllowedOrigins = append(cfg.Server.AllowedOrigins, origin)
		}
	}

	return &cfg, nil
}
