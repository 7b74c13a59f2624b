package experiment

import (
	"context"
	"sync"

	kitlog "github.com/go-kit/log"

	"github.com/san-kum/orrery/internal/config"
)

// Compare runs the same configuration once per integrator, concurrently.
// Results are returned in the order of names.
func Compare(ctx context.Context, base *config.Config, names []string, reg *Registry, logger kitlog.Logger) ([]*Result, error) {
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	results := make([]*Result, len(names))
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(idx int, integrator string) {
			defer wg.Done()

			cfg := *base
			cfg.Integrator = integrator

			exp := New(&cfg, kitlog.With(logger, "integrator", integrator))
			if err := exp.Setup(reg); err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = exp.Run(ctx)
		}(i, name)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
