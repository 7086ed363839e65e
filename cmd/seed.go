package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"scantrack/internal/core/application/usecases/commands"
	"scantrack/internal/pkg/errs"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// OperatorSeed is one roster entry of the seed file:
//
//	operators:
//	  - id: A1
//	    name: Ana
type OperatorSeed struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type seedFile struct {
	Operators []OperatorSeed `yaml:"operators"`
}

// LoadOperatorSeed reads the roster file at path.
func LoadOperatorSeed(path string) ([]OperatorSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read operator seed: %w", err)
	}
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse operator seed %s: %w", path, err)
	}
	return f.Operators, nil
}

// SeedOperators adds every seeded operator that does not exist yet.
// Existing operators keep their current name.
func SeedOperators(ctx context.Context, handler commands.SaveOperatorCommandHandler, seeds []OperatorSeed, logger *zap.Logger) (int, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	added := 0
	for _, s := range seeds {
		cmd, err := commands.NewAddOperatorCommand(s.ID, s.Name)
		if err != nil {
			return added, fmt.Errorf("seed operator %q: %w", s.ID, err)
		}
		if err := handler.Handle(ctx, cmd); err != nil {
			if errors.Is(err, errs.ErrConflict) {
				logger.Debug("seeded operator already exists", zap.String("operator", s.ID))
				continue
			}
			return added, err
		}
		added++
	}
	return added, nil
}
