// Shared helpers for repticare CLI commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/repticare/internal/repository"
	"github.com/mesh-intelligence/repticare/internal/store"
	"github.com/mesh-intelligence/repticare/pkg/types"
)

// Exit codes: user errors (bad input, unknown ids) and system errors
// (storage, config).
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userErr(err error) error { return &exitError{code: exitUserError, err: err} }
func sysErr(err error) error  { return &exitError{code: exitSysError, err: err} }

// classify wraps a repository or form error with the matching exit code.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	if errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrInvalidInput) {
		return userErr(err)
	}
	return sysErr(err)
}

// exitCode maps an error returned by Execute to a process exit code. Errors
// cobra raises itself (unknown command, bad flag) count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// session is an open store and the repository loaded from it. The caller
// must defer Close.
type session struct {
	store types.Store
	repo  *repository.Repository
	log   *zap.Logger
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn("closing store", zap.Error(err))
	}
}

// openSession resolves the data directory, opens the configured store and
// loads the repository from it.
func (a *app) openSession() (*session, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, sysErr(fmt.Errorf("resolve data dir: %w", err))
	}

	cfg := storeConfig(a.cfg, dataDir)
	st, err := store.Open(cfg)
	if err != nil {
		if errors.Is(err, types.ErrBackendEmpty) || errors.Is(err, types.ErrBackendUnknown) || errors.Is(err, types.ErrDSNRequired) {
			return nil, userErr(fmt.Errorf("config: %w", err))
		}
		return nil, sysErr(fmt.Errorf("open store: %w", err))
	}

	a.log.Debug("store opened", zap.String("backend", cfg.Backend), zap.String("data_dir", dataDir))

	repo := repository.New(st, repository.WithLogger(a.log), repository.WithClock(a.now))
	repo.Load()
	return &session{store: st, repo: repo, log: a.log}, nil
}

// resolveProfile returns the profile named by id, or the selected profile
// (the first one) when id is empty.
func resolveProfile(repo *repository.Repository, id string) (types.Profile, error) {
	if id != "" {
		p, err := repo.Profile(id)
		if err != nil {
			return types.Profile{}, userErr(fmt.Errorf("profile %q not found", id))
		}
		return p, nil
	}
	p, ok := repo.Selected()
	if !ok {
		return types.Profile{}, userErr(errors.New("no profiles yet; add one with \"repticare profile add\""))
	}
	return p, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return sysErr(fmt.Errorf("encode output: %w", err))
	}
	return nil
}
