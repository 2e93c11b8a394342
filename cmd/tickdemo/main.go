// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Command tickdemo runs a prime sieve as a stepped task on the reference
// host loop. Interrupt it to cancel the task the way a user's escape key would.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/tick"
	"code.hybscloud.com/tick/loop"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	verbose := flag.Bool("v", false, "log debug records")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(*configPath, logger); err != nil {
		logger.Error("tickdemo failed", "err", err)
		os.Exit(1)
	}
}

func run(configPath string, logger *slog.Logger) error {
	fc, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	identity := fc.Identity
	if identity == "" {
		identity = uuid.New().String()
	}

	l := loop.New(fc.loop(), logger)
	reg := tick.NewRegistry()
	cfg := fc.tick()

	var result error
	primes := 0
	cb := tick.Callbacks{
		OnComplete: func() {
			logger.Info("sieve complete", "identity", identity, "primes", primes)
			l.Stop()
		},
		OnAbort: func(err error) {
			if errors.Is(err, tick.ErrAborted) {
				logger.Warn("sieve aborted", "identity", identity, "reason", err, "primes", primes)
			} else {
				result = err
			}
			l.Stop()
		},
		Task: sieve(fc.Limit, fc.Batch, &primes),
	}
	s, err := tick.New(reg, l, cb, tick.Options{
		Identity: identity,
		Config:   &cfg,
		Logger:   logger,
		Paint: func() {
			logger.Debug("progress", "identity", identity, "primes", primes)
		},
	})
	if err != nil {
		return err
	}
	logger.Info("sieve started", "identity", identity, "serial", s.Serial(), "limit", fc.Limit)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)
	defer signal.Stop(sig)
	go func() {
		for range sig {
			if err := l.Post(l.Escape); iox.IsWouldBlock(err) {
				logger.Warn("loop inbox full, interrupt dropped")
			}
		}
	}()

	if err := l.Run(ctx); err != nil {
		return err
	}
	if result != nil {
		return fmt.Errorf("sieve: %w", result)
	}
	return nil
}

// sieve counts primes below limit by trial division, yielding every batch
// candidates.
func sieve(limit, batch int, count *int) tick.Task {
	return func(h *tick.Handle) error {
		var found []int
		for n := 2; n < limit; n++ {
			prime := true
			for _, p := range found {
				if p*p > n {
					break
				}
				if n%p == 0 {
					prime = false
					break
				}
			}
			if prime {
				found = append(found, n)
				*count = len(found)
			}
			if n%batch == 0 {
				h.Yield()
			}
		}
		return nil
	}
}
