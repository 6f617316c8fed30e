package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	healthTimeout   = 5 * time.Second
	slowHealthCheck = time.Second
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check a running server's liveness and readiness (default http://localhost:8080)"
}

func (c *HealthCheckCommand) Run(ctx context.Context, args []string) error {
	base := "http://localhost:" + getEnv("PORT", "8080")
	if len(args) > 0 {
		base = args[0]
	}
	base = strings.TrimRight(base, "/")

	PrintHeader(fmt.Sprintf("Health Check (%s)", base))

	client := &http.Client{Timeout: healthTimeout}
	for _, path := range []string{"/healthz", "/readyz"} {
		duration, err := checkEndpoint(ctx, client, base+path)
		if err != nil {
			PrintError("%s failed: %v", path, err)
			return err
		}
		if duration > slowHealthCheck {
			PrintWarning("%s slow response time (%v)", path, duration)
		} else {
			PrintSuccess("%s passed (response time: %v)", path, duration)
		}
	}
	return nil
}

func checkEndpoint(ctx context.Context, client *http.Client, url string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		return duration, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return duration, nil
}
