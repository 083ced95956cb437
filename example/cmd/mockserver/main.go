// Standalone mock robot server for trying the CLI.
//
// Usage:
//
//	go run ./example/cmd/mockserver
//
// Then in another terminal:
//
//	go run ./cmd/cellremote serve -c example/config.yaml
//	go run ./cmd/cellremote send --server http://localhost:9999 --robot robot1 forward
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jpalmerr/cellremote/example/mockrobots"
)

func main() {
	fmt.Println("Mock robot server starting on :9999")
	fmt.Println("Robots: robot1, robot2, robot3, robot4; one toggles every 30s")
	fmt.Println("Press Ctrl+C to stop")
	fmt.Println()

	robots := mockrobots.New(slog.Default(), "robot1", "robot2", "robot3", "robot4").WithRandomLatency()

	go func() {
		for range time.Tick(30 * time.Second) {
			robots.Toggle()
		}
	}()

	if err := http.ListenAndServe(":9999", robots.Handler()); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
