package fable

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// BaseURLFunc resolves the backend's base URL. It is invoked on every
// request, never cached, so a backend restart on a new port is picked up by
// the next call.
type BaseURLFunc func() (string, error)

// StaticBaseURL returns a resolver that always yields the given URL.
func StaticBaseURL(url string) BaseURLFunc {
	url = strings.TrimRight(url, "/")
	return func() (string, error) {
		return url, nil
	}
}

// EnvBaseURL returns a resolver that reads the URL from an environment
// variable, falling back to the given URL when unset.
func EnvBaseURL(key, fallback string) BaseURLFunc {
	return func() (string, error) {
		if v := os.Getenv(key); v != "" {
			return strings.TrimRight(v, "/"), nil
		}
		if fallback == "" {
			return "", fmt.Errorf("environment variable %s is not set", key)
		}
		return strings.TrimRight(fallback, "/"), nil
	}
}

// PortFile returns a resolver that reads the backend's current listening
// port from a file written by the launcher and targets it on loopback.
func PortFile(path string) BaseURLFunc {
	return func() (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read port file: %w", err)
		}
		port, err := strconv.Atoi(strings.TrimSpace(string(data)))
		if err != nil || port <= 0 || port > 65535 {
			return "", fmt.Errorf("port file %s holds an invalid port %q", path, strings.TrimSpace(string(data)))
		}
		return fmt.Sprintf("http://127.0.0.1:%d", port), nil
	}
}
