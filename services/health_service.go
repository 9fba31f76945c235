package services

import (
	"context"
	"time"

	"feesmanagement_go/config"
	"feesmanagement_go/database"
)

const (
	overallStatusOK       = "ok"
	overallStatusDegraded = "degraded"
	overallStatusCritical = "critical"

	dependencyStatusUp       = "up"
	dependencyStatusDown     = "down"
	dependencyStatusDisabled = "disabled"

	healthCheckTimeout = 1500 * time.Millisecond
)

// HealthService aggregates application health for the liveness endpoint.
type HealthService struct {
	serviceName string
	version     string
	startTime   time.Time
}

// HealthReport is the JSON response of the health endpoint.
type HealthReport struct {
	Status        string             `json:"status"`
	Service       string             `json:"service"`
	Version       string             `json:"version"`
	Environment   string             `json:"environment"`
	Time          time.Time          `json:"time"`
	UptimeSeconds float64            `json:"uptime_seconds"`
	Dependencies  []DependencyStatus `json:"dependencies"`
}

// DependencyStatus captures the health of a single external dependency.
type DependencyStatus struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

func NewHealthService(serviceName, version string) *HealthService {
	return &HealthService{
		serviceName: serviceName,
		version:     version,
		startTime:   time.Now(),
	}
}

// GetHealthReport probes the database and Redis and classifies the overall
// status: critical without the database, degraded without Redis (sessions
// fall back to memory).
func (s *HealthService) GetHealthReport() HealthReport {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()

	now := time.Now()
	report := HealthReport{
		Status:        overallStatusOK,
		Service:       s.serviceName,
		Version:       s.version,
		Environment:   config.AppConfig.AppEnv,
		Time:          now,
		UptimeSeconds: now.Sub(s.startTime).Seconds(),
	}

	report.Dependencies = append(report.Dependencies, s.checkDatabase(ctx))
	report.Dependencies = append(report.Dependencies, s.checkRedis(ctx))

	for _, dep := range report.Dependencies {
		if dep.Status != dependencyStatusDown {
			continue
		}
		if dep.Name == "database" {
			report.Status = overallStatusCritical
		} else if report.Status == overallStatusOK {
			report.Status = overallStatusDegraded
		}
	}
	return report
}

// HTTPStatusForOverall maps an overall status to an HTTP status code.
func (s *HealthService) HTTPStatusForOverall(status string) int {
	if status == overallStatusCritical {
		return 503
	}
	return 200
}

func (s *HealthService) checkDatabase(ctx context.Context) DependencyStatus {
	dep := DependencyStatus{Name: "database", Status: dependencyStatusUp}
	if database.DB == nil {
		dep.Status = dependencyStatusDown
		dep.Error = "not connected"
		return dep
	}
	sqlDB, err := database.DB.DB()
	if err != nil {
		dep.Status = dependencyStatusDown
		dep.Error = err.Error()
		return dep
	}
	start := time.Now()
	if err := sqlDB.PingContext(ctx); err != nil {
		dep.Status = dependencyStatusDown
		dep.Error = err.Error()
	}
	dep.LatencyMs = time.Since(start).Milliseconds()
	return dep
}

func (s *HealthService) checkRedis(ctx context.Context) DependencyStatus {
	dep := DependencyStatus{Name: "redis", Status: dependencyStatusUp}
	rc := database.GetRedisClient()
	if rc == nil {
		dep.Status = dependencyStatusDisabled
		return dep
	}
	start := time.Now()
	if err := rc.Ping(ctx).Err(); err != nil {
		dep.Status = dependencyStatusDown
		dep.Error = err.Error()
	}
	dep.LatencyMs = time.Since(start).Milliseconds()
	return dep
}
