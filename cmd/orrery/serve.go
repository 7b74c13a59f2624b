package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/orrery/internal/orrery"
	"github.com/san-kum/orrery/internal/stream"
	"github.com/san-kum/orrery/internal/telemetry"
)

var (
	listenAddr string
	rateHz     float64
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if rateHz <= 0 {
		return fmt.Errorf("hz must be positive, got %g", rateHz)
	}
	sys, err := buildSystem(cfg)
	if err != nil {
		return err
	}

	tel := telemetry.New()
	hub := stream.NewHub(logger)
	defer hub.Close()
	runner := stream.NewRunner(sys, hub, tel, rateHz, logger)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)
	mux.Handle("/metrics", tel.Handler())
	mux.HandleFunc("/state", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, runner.Snapshot())
	})
	mux.HandleFunc("/control", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var cerr error
		runner.Do(func(s *orrery.System) { cerr = applyControl(s, r) })
		if cerr != nil {
			http.Error(w, cerr.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, runner.Snapshot())
	})

	srv := &http.Server{Addr: listenAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	ctx, cancel := signalContext()
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "listening", "addr", listenAddr, "preset", cfg.Name, "hz", rateHz)
		errc <- srv.ListenAndServe()
	}()
	go func() {
		err := runner.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			level.Error(logger).Log("msg", "runner failed", "err", err)
		}
	}()

	fmt.Printf("serving %s on %s (ws /ws, metrics /metrics, state /state)\n", cfg.Name, listenAddr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdown, done := context.WithTimeout(context.Background(), 5*time.Second)
	defer done()
	return srv.Shutdown(shutdown)
}

// applyControl changes live parameters from form values time_scale,
// solver_iterations, physics and time. Every value is parsed and checked
// before any is applied, so a rejected request leaves the system as it was.
func applyControl(s *orrery.System, r *http.Request) error {
	scale, iters := r.Form.Get("time_scale"), r.Form.Get("solver_iterations")
	physics, at := r.Form.Get("physics"), r.Form.Get("time")

	var (
		f   float64
		n   int
		on  bool
		t   time.Time
		err error
	)
	if scale != "" {
		if f, err = strconv.ParseFloat(scale, 64); err != nil {
			return err
		}
		if f < orrery.TimeScaleMin || f > orrery.TimeScaleMax {
			return fmt.Errorf("%w: time scale %g", orrery.ErrParameterBounds, f)
		}
	}
	if iters != "" {
		if n, err = strconv.Atoi(iters); err != nil {
			return err
		}
		if n < orrery.MinSolverIterations || n > orrery.MaxSolverIterations {
			return fmt.Errorf("%w: solver iterations %d", orrery.ErrParameterBounds, n)
		}
	}
	if physics != "" {
		if on, err = strconv.ParseBool(physics); err != nil {
			return err
		}
	}
	if at != "" {
		if t, err = time.Parse(time.RFC3339, at); err != nil {
			return err
		}
		if t.Before(orrery.MinTime) || t.After(orrery.MaxTime) {
			return fmt.Errorf("%w: time %s", orrery.ErrParameterBounds, at)
		}
	}

	if scale != "" {
		if err := s.SetTimeScale(f); err != nil {
			return err
		}
	}
	if iters != "" {
		if err := s.SetSolverIterations(n); err != nil {
			return err
		}
	}
	if physics != "" {
		s.SetSimulatePhysics(on)
	}
	if at != "" {
		return s.SetSimulationTime(t)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		level.Error(logger).Log("msg", "encode failed", "err", err)
	}
}
