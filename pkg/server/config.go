// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nutrihelp/nutrihelp-api/pkg/defaults"
	"golang.org/x/time/rate"
)

const (
	// DefaultAllowedOrigin is the frontend origin allowed by CORS when
	// CORS_ORIGIN is not set.
	DefaultAllowedOrigin = "http://localhost:3000"

	// DefaultContentSecurityPolicy allows the API docs UI assets from jsDelivr.
	DefaultContentSecurityPolicy = "default-src 'self'; " +
		"script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
		"style-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
		"object-src 'none'"
)

// Config holds server configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// Additional Handlers to be added to the server
	Handlers map[string]http.HandlerFunc

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration, applied per client IP
	RateLimit      rate.Limit    // tokens per second
	RateLimitBurst int           // bucket size
	RateLimitIdle  time.Duration // idle client limiters are dropped after this
	TrustProxy     bool          // key clients by the last X-Forwarded-For hop

	// Request limits
	MaxBodyBytes int64

	// Browser-facing policy
	AllowedOrigins        []string
	ContentSecurityPolicy string

	// Production hides messages of 5xx responses from clients.
	Production bool

	// Requests slower than this are logged at warn level.
	SlowRequestThreshold time.Duration

	// Timeouts
	ReadTimeout       time.Duration
	ReadHeaderTimeout time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
}

// NewConfig returns a new Config with sensible defaults.
// Use this when you want to customize config programmatically.
func NewConfig() *Config {
	return parseConfig()
}

// parseConfig returns defaults overridden by environment variables.
func parseConfig() *Config {
	cfg := &Config{
		Name:                  "server",
		Version:               "undefined",
		Address:               "",
		Port:                  8080,
		RateLimit:             rate.Every(defaults.RateLimitWindow / defaults.RateLimitRequests),
		RateLimitBurst:        defaults.RateLimitRequests,
		RateLimitIdle:         defaults.RateLimitClientIdle,
		TrustProxy:            true,
		MaxBodyBytes:          defaults.MaxRequestBodyBytes,
		AllowedOrigins:        []string{DefaultAllowedOrigin},
		ContentSecurityPolicy: DefaultContentSecurityPolicy,
		SlowRequestThreshold:  defaults.SlowRequestThreshold,
		ReadTimeout:           defaults.ServerReadTimeout,
		ReadHeaderTimeout:     defaults.ServerReadHeaderTimeout,
		WriteTimeout:          defaults.ServerWriteTimeout,
		IdleTimeout:           defaults.ServerIdleTimeout,
		ShutdownTimeout:       defaults.ServerShutdownTimeout,
	}

	// Override with environment variables if set
	if portStr := os.Getenv("PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil && port >= 0 && port <= 65535 {
			cfg.Port = port
		}
	}

	// Allow customization of shutdown timeout to match the supervisor's stop grace period
	if shutdownStr := os.Getenv("SHUTDOWN_TIMEOUT_SECONDS"); shutdownStr != "" {
		var seconds int
		if _, err := fmt.Sscanf(shutdownStr, "%d", &seconds); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}

	if origins := os.Getenv("CORS_ORIGIN"); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}

	cfg.Production = isProduction(os.Getenv("APP_ENV")) || isProduction(os.Getenv("NODE_ENV"))

	return cfg
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}

func isProduction(env string) bool {
	return strings.EqualFold(strings.TrimSpace(env), "production")
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
