// cmd/worker/startup.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"artstore-backend/pkg/container"
)

// startServices performs startup health checks and exposes the probe
// endpoints Kubernetes polls.
func startServices(c *container.Container) error {
	log.Println("============================================")
	log.Println("🎨 Artstore Worker Starting...")
	log.Println("============================================")

	checks := []struct {
		name string
		fn   func(ctx context.Context) error
	}{
		{"Redis Connection", c.Cache.Ping},
		{"Database Connection", c.DB.HealthCheck},
	}

	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := check.fn(ctx)
		cancel()

		if err != nil {
			log.Printf("❌ %s: %v\n", check.name, err)
			return fmt.Errorf("%s failed: %w", check.name, err)
		}
		log.Printf("✓ %s: OK\n", check.name)
	}

	go startHealthCheckServer()

	return nil
}

// startHealthCheckServer starts the HTTP server for health checks
func startHealthCheckServer() {
	http.HandleFunc("/health", healthCheckProbe)
	http.HandleFunc("/ready", readyCheckProbe)

	log.Println("[Health] Starting health check server on :9999")
	if err := http.ListenAndServe(":9999", nil); err != nil {
		log.Printf("[Health] Failed to start: %v\n", err)
	}
}

func healthCheckProbe(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"UP","service":"artstore-worker"}`))
}

func readyCheckProbe(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"READY"}`))
}
