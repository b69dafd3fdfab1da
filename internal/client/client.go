/*
 * Copyright (c) YugabyteDB, Inc.
 */

package client

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dataindataout/yb-day2ops/internal/formatter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	ybaclient "github.com/yugabyte/platform-go-client"
)

var cliVersion = "0.1.0"

const apiTokenHeader = "X-AUTH-YW-API-TOKEN"

// DefaultPollInterval is the delay between two task status checks
const DefaultPollInterval = 2 * time.Second

// Config holds everything needed to reach YugabyteDB Anywhere. It is built
// once at process start and not modified afterwards.
type Config struct {
	Host         *url.URL
	APIToken     string
	CustomerUUID string
	// Insecure disables certificate verification when no CA certificate is given
	Insecure   bool
	CACertPath string
	// RequestTimeout bounds every single HTTP request, 0 means no bound
	RequestTimeout time.Duration
	PollInterval   time.Duration
	// WaitTimeout bounds task polling, 0 means poll until the task is terminal
	WaitTimeout time.Duration
}

// AuthAPIClient contains authenticated api client and customer UUID
type AuthAPIClient struct {
	APIClient    *ybaclient.APIClient
	CustomerUUID string
	PollInterval time.Duration
	WaitTimeout  time.Duration
	// Progress receives poller progress lines. When nil, progress is logged,
	// or shown with a spinner on an interactive terminal.
	Progress io.Writer

	ctx  context.Context
	stop context.CancelFunc
}

// SetVersion assigns the version of the CLI
func SetVersion(version string) {
	if v := strings.TrimSpace(version); v != "" {
		cliVersion = v
	}
}

// GetVersion fetches the version of the CLI
func GetVersion() string {
	return cliVersion
}

// ConfigFromViper builds the client Config from flags, environment and config file
func ConfigFromViper() (Config, error) {
	host := viper.GetString("host")
	if len(host) == 0 {
		return Config{}, errors.New(
			"no valid host detected, set --host, YBA_HOST or \"host\" in the config file")
	}
	u, err := ParseURL(host)
	if err != nil {
		return Config{}, err
	}
	apiToken := viper.GetString("apiToken")
	if len(apiToken) == 0 {
		return Config{}, errors.New(
			"no valid API token detected, set --apiToken, YBA_APITOKEN or " +
				"\"apiToken\" in the config file")
	}
	return Config{
		Host:           u,
		APIToken:       apiToken,
		CustomerUUID:   viper.GetString("customer-uuid"),
		Insecure:       viper.GetBool("insecure"),
		CACertPath:     viper.GetString("ca-cert"),
		RequestTimeout: viper.GetDuration("request-timeout"),
		PollInterval:   viper.GetDuration("poll-interval"),
		WaitTimeout:    viper.GetDuration("timeout"),
	}, nil
}

// NewAuthAPIClient function is returning a new AuthAPIClient Client
func NewAuthAPIClient() (*AuthAPIClient, error) {
	cfg, err := ConfigFromViper()
	if err != nil {
		return nil, err
	}
	return NewAuthAPIClientInitialize(cfg)
}

// NewAuthAPIClientInitialize function is returning a new AuthAPIClient Client
func NewAuthAPIClientInitialize(cfg Config) (*AuthAPIClient, error) {
	if cfg.Host == nil {
		return nil, errors.New("missing YugabyteDB Anywhere host")
	}
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	if cfg.Host.Scheme == "https" {
		tlsConfig := &tls.Config{InsecureSkipVerify: cfg.Insecure}
		if cfg.CACertPath != "" {
			pem, err := os.ReadFile(cfg.CACertPath)
			if err != nil {
				return nil, errors.Wrapf(err, "reading CA certificate %s", cfg.CACertPath)
			}
			certPool := x509.NewCertPool()
			if !certPool.AppendCertsFromPEM(pem) {
				return nil, errors.Errorf("no certificates found in %s", cfg.CACertPath)
			}
			tlsConfig = &tls.Config{RootCAs: certPool}
		}
		httpClient.Transport = &http.Transport{TLSClientConfig: tlsConfig}
	}

	pollInterval := cfg.PollInterval
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}

	apiCfg := ybaclient.NewConfiguration()
	apiCfg.Host = cfg.Host.Host
	apiCfg.Scheme = cfg.Host.Scheme
	apiCfg.HTTPClient = httpClient
	apiCfg.UserAgent = "yb-day2ops/" + GetVersion()
	apiCfg.DefaultHeader = map[string]string{apiTokenHeader: cfg.APIToken}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	return &AuthAPIClient{
		APIClient:    ybaclient.NewAPIClient(apiCfg),
		CustomerUUID: cfg.CustomerUUID,
		PollInterval: pollInterval,
		WaitTimeout:  cfg.WaitTimeout,
		ctx:          ctx,
		stop:         stop,
	}, nil
}

// NewAuthAPIClientAndCustomer before every command to access YBA host
func NewAuthAPIClientAndCustomer() *AuthAPIClient {
	authAPI, err := NewAuthAPIClient()
	if err != nil {
		logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
	}
	if authAPI.CustomerUUID == "" {
		err = authAPI.GetCustomerUUID()
		if err != nil {
			logrus.Fatalf(formatter.Colorize(err.Error()+"\n", formatter.RedColor))
		}
	}
	return authAPI
}

// WithContext replaces the context the client cancels requests and polling on
func (a *AuthAPIClient) WithContext(ctx context.Context) *AuthAPIClient {
	if a.stop != nil {
		a.stop()
	}
	a.ctx = ctx
	a.stop = nil
	return a
}

// Close releases the interrupt handler of the client
func (a *AuthAPIClient) Close() {
	if a.stop != nil {
		a.stop()
	}
}

// ParseURL returns a URL if string is valid, or returns error
func ParseURL(host string) (*url.URL, error) {
	if strings.HasPrefix(strings.ToLower(host), "http://") {
		warning := formatter.Colorize(
			fmt.Sprintf("You are using insecure api endpoint %s\n", host),
			formatter.YellowColor,
		)
		logrus.Debugf(warning)
	} else if !strings.HasPrefix(strings.ToLower(host), "https://") {
		host = "https://" + host
	}

	endpoint, err := url.ParseRequestURI(host)
	if err != nil {
		return nil, fmt.Errorf("could not parse YBA url (%s): %w", host, err)
	}
	return endpoint, err
}
