package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// New builds the process logger. Production uses JSON output, otherwise
// the human-readable development encoder. Both write to stderr so
// stdout stays free for the stdio transport.
func New(production bool) (*zap.Logger, error) {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger.Named("botdocs"), nil
}
