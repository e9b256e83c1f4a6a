package api

import (
	"context"
	"time"

	"github.com/hellofresh/health-go/v5"
	"github.com/labstack/echo/v4"
)

type HealthChecker interface {
	HealthCheck() echo.HandlerFunc
}

type healthChecker struct {
	health *health.Health
}

// MustNewHealthChecker panics if a check cannot be registered.
func MustNewHealthChecker(version string, checks ...health.Config) HealthChecker {
	h, err := health.New(health.WithComponent(health.Component{Name: "club-api", Version: version}))
	if err != nil {
		panic(err)
	}

	for _, check := range checks {
		if err = h.Register(check); err != nil {
			panic(err)
		}
	}

	return &healthChecker{
		health: h,
	}
}

// PingCheck wraps a ping function, such as a store's, as a health check.
func PingCheck(name string, ping func(ctx context.Context) error) health.Config {
	return health.Config{
		Name:    name,
		Timeout: 2 * time.Second,
		Check:   ping,
	}
}

func (h *healthChecker) HealthCheck() echo.HandlerFunc {
	return echo.WrapHandler(h.health.Handler())
}
