// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// Flags binds every configuration option to a pflag.FlagSet. The client and
// server mains own their FlagSet; the maintenance CLI registers the same
// options as cobra persistent flags.
type Flags struct {
	serverAddress     NetAddress
	grpcServerAddress NetAddress
	adapterAddress    string
	backend           string
	dsn               string
	prefix            string
	jsonConfigPath    string
	envFile           string
	logFile           string
	hashKey           string
	sensitiveKeys     []string
	noAutoMigrate     bool
	inactivityTimeout time.Duration
	warningDuration   time.Duration
	unlockAttempts    int
	unlockInterval    time.Duration
	requestTimeout    time.Duration
	allowedOrigins    []string
}

// RegisterFlags defines the configuration flags on fs.
//
// Flags:
//
//	-a/--address server address in format [host]:[port]
//	--grpc-address grpc health server address in format [host]:[port]
//	--remote-address remote store server address for the remote backend
//	-s/--storage storage backend (memory|file|sqlite|postgres|bolt|remote)
//	-d/--dsn storage DSN (file path or connection string)
//	--prefix key prefix
//	-c/--config json file path with configs
//	--env-file dotenv file path
//	--log-file client log file path
//	-k/--hash-key request integrity hash key
//	--sensitive-keys keys to encrypt (comma separated)
//	--no-auto-migrate disable encryption of legacy values on read
//	--inactivity-timeout idle time before the lock warning (e.g. "5m")
//	--warning-duration warning length before the lock (e.g. "60s")
//	--unlock-attempts password attempts before throttling
//	--unlock-interval time to regain one unlock attempt
//	--request-timeout request timeout (e.g. "30s", "1m")
//	--allowed-origins CORS origins (comma separated)
func RegisterFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{}

	fs.VarP(&f.serverAddress, "address", "a", "Net address host:port")
	fs.Var(&f.grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&f.adapterAddress, "remote-address", "", "Remote store server address")
	fs.StringVarP(&f.backend, "storage", "s", "", "Storage backend (memory|file|sqlite|postgres|bolt|remote)")
	fs.StringVarP(&f.dsn, "dsn", "d", "", "Storage DSN")
	fs.StringVar(&f.prefix, "prefix", "", "Storage key prefix")
	fs.StringVarP(&f.jsonConfigPath, "config", "c", "", "JSON config file path")
	fs.StringVar(&f.envFile, "env-file", "", "Dotenv file path")
	fs.StringVar(&f.logFile, "log-file", "", "Client log file path")
	fs.StringVarP(&f.hashKey, "hash-key", "k", "", "Security hash key")
	fs.StringSliceVar(&f.sensitiveKeys, "sensitive-keys", nil, "Keys to encrypt")
	fs.BoolVar(&f.noAutoMigrate, "no-auto-migrate", false, "Do not encrypt legacy values on read")
	fs.DurationVar(&f.inactivityTimeout, "inactivity-timeout", 0, "Inactivity timeout (e.g., 5m)")
	fs.DurationVar(&f.warningDuration, "warning-duration", 0, "Lock warning duration (e.g., 60s)")
	fs.IntVar(&f.unlockAttempts, "unlock-attempts", 0, "Unlock attempts before throttling")
	fs.DurationVar(&f.unlockInterval, "unlock-interval", 0, "Time to regain one unlock attempt")
	fs.DurationVar(&f.requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringSliceVar(&f.allowedOrigins, "allowed-origins", nil, "CORS allowed origins")

	return f
}

// ParseFlags registers the configuration flags on a fresh FlagSet named name
// and parses args.
func ParseFlags(name string, args []string) (*Flags, error) {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	f := RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// Config returns the flag values as a partial [StructuredConfig]. Unset
// flags stay zero so that they never override other sources.
func (f *Flags) Config() *StructuredConfig {
	if f == nil {
		return &StructuredConfig{}
	}

	return &StructuredConfig{
		App: App{
			SensitiveKeys:      f.sensitiveKeys,
			DisableAutoMigrate: f.noAutoMigrate,
			InactivityTimeout:  f.inactivityTimeout,
			WarningDuration:    f.warningDuration,
			UnlockAttempts:     f.unlockAttempts,
			UnlockInterval:     f.unlockInterval,
			HashKey:            f.hashKey,
		},
		Storage: Storage{
			Backend: f.backend,
			DSN:     f.dsn,
			Prefix:  f.prefix,
		},
		Server: Server{
			HTTPAddress:    f.serverAddress.String(),
			GRPCAddress:    f.grpcServerAddress.String(),
			RequestTimeout: f.requestTimeout,
			AllowedOrigins: f.allowedOrigins,
		},
		Adapter: Adapter{
			HTTPAddress:    f.adapterAddress,
			RequestTimeout: f.requestTimeout,
		},
		JSONFilePath: f.jsonConfigPath,
		EnvFile:      f.envFile,
		LogFile:      f.logFile,
	}
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "address"
}
