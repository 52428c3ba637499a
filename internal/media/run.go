package media

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/manjotbrar/katha/internal/config"
	"github.com/manjotbrar/katha/internal/logger"
)

// runTool executes a resolved tool and returns its combined output. A tool
// that was never resolved fails up front with its resolution error message.
func runTool(ctx context.Context, log *logger.Logger, tool config.Tool, args ...string) ([]byte, error) {
	if !tool.Found() {
		return nil, fmt.Errorf("%s is not available; ensure it is installed and on PATH", tool.Name)
	}
	log = log.With("command", tool.String(), "args", strings.Join(args, " "))
	log.Debug("executing command")

	start := time.Now()
	out, err := tool.Command(ctx, args...).CombinedOutput()
	if err != nil {
		log.Error("command failed", "duration", time.Since(start), "error", err, "output", string(out))
		return nil, fmt.Errorf("%s failed: %w\noutput: %s", tool.Name, err, string(out))
	}
	log.Debug("command finished", "duration", time.Since(start))
	return out, nil
}
