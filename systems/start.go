package systems

import (
	"errors"
	"fmt"

	cfg "github.com/envtester/chaos-invaders/config"
	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/shared/netconfig"
)

// ErrInvalidStart is returned for a match setup the server would refuse.
var ErrInvalidStart = errors.New("invalid match setup")

// ValidateStartRequest checks the kill method and iteration count.
func ValidateStartRequest(req messages.StartRequest) error {
	if _, ok := netconfig.ParseKillMethod(req.Method); !ok {
		return fmt.Errorf("%w: unknown method %q", ErrInvalidStart, req.Method)
	}
	if req.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be positive, got %d", ErrInvalidStart, req.Iterations)
	}
	if cfg.Match.MaxIterations > 0 && req.Iterations > cfg.Match.MaxIterations {
		return fmt.Errorf("%w: at most %d iterations", ErrInvalidStart, cfg.Match.MaxIterations)
	}
	return nil
}
