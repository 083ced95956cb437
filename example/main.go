package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/cellremote"
	"github.com/jpalmerr/cellremote/example/mockrobots"
)

func main() {
	logger := slog.Default()

	// mock robot server (see mockrobots)
	robots := mockrobots.New(logger, "robot1", "robot2", "robot3").WithRandomLatency()
	go func() {
		if err := http.ListenAndServe(":9999", robots.Handler()); err != nil {
			logger.Error("mock robot server error", "error", err)
		}
	}()
	time.Sleep(100 * time.Millisecond)

	rs, err := cellremote.NewRobotServer("http://localhost:9999",
		cellremote.WithTimeout(5*time.Second),
	)
	if err != nil {
		slog.Error("failed to create robot server", "error", err)
		os.Exit(1)
	}

	remote, err := cellremote.New(
		cellremote.WithRobotServer(rs),
		cellremote.WithPollingInterval(5*time.Second),
		cellremote.WithPort(8080),
		cellremote.WithResponseCallback(func(r cellremote.Response) {
			if r.Kind == cellremote.KindCommand && !r.Rendered {
				slog.Warn("command not acknowledged", "robot", r.Robot, "message", r.Message, "status_code", r.StatusCode)
			}
		}),
	)
	if err != nil {
		slog.Error("failed to create remote", "error", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("  ╔═══════════════════════════════════════════════════════╗")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Cellbot Remote Demo                                 ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Open http://localhost:8080 in your browser          ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Robots: robot1, robot2, robot3 (mock, :9999)        ║")
	fmt.Println("  ║   One robot goes on or offline every 20s              ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ║   Press Ctrl+C to stop                                ║")
	fmt.Println("  ║                                                       ║")
	fmt.Println("  ╚═══════════════════════════════════════════════════════╝")
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		ticker := time.NewTicker(20 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				robots.Toggle()
			}
		}
	}()

	if err := remote.Start(ctx); err != nil {
		slog.Error("cellremote error", "error", err)
		os.Exit(1)
	}
}
