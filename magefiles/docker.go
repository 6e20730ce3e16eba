//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/magefile/mage/sh"
)

// Throwaway Postgres used by test:postgres.
const (
	postgresImage     = "postgres:16-alpine"
	postgresContainer = "repticare-test-postgres"
	postgresPort      = "55432"
	postgresPassword  = "repticare"
	postgresDSN       = "postgres://postgres:" + postgresPassword + "@127.0.0.1:" + postgresPort + "/postgres?sslmode=disable"
	postgresWait      = 30 * time.Second
)

// containerRuntime returns "podman" or "docker" if a working runtime
// is available, or "" if neither is usable. It checks both that the
// binary exists on PATH and that it can connect to its daemon/machine.
func containerRuntime() string {
	for _, name := range []string{"podman", "docker"} {
		if _, err := exec.LookPath(name); err != nil {
			continue
		}
		if exec.Command(name, "info").Run() != nil {
			fmt.Fprintf(os.Stderr, "WARNING: %s found on PATH but not usable (is the daemon/machine running?)\n", name)
			continue
		}
		return name
	}
	return ""
}

// startPostgres runs a disposable Postgres container and waits until it
// accepts connections. The caller must call stopPostgres.
func startPostgres(rt string) error {
	stopPostgres(rt)

	fmt.Fprintln(os.Stderr, "Starting Postgres container...")
	err := sh.Run(rt, "run", "-d", "--rm",
		"--name", postgresContainer,
		"-e", "POSTGRES_PASSWORD="+postgresPassword,
		"-p", "127.0.0.1:"+postgresPort+":5432",
		postgresImage)
	if err != nil {
		return fmt.Errorf("starting postgres: %w", err)
	}

	deadline := time.Now().Add(postgresWait)
	for time.Now().Before(deadline) {
		if exec.Command(rt, "exec", postgresContainer, "pg_isready", "-U", "postgres").Run() == nil {
			return nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	stopPostgres(rt)
	return fmt.Errorf("postgres not ready after %s", postgresWait)
}

// stopPostgres removes the container. Errors are ignored because it may
// not exist.
func stopPostgres(rt string) {
	_ = exec.Command(rt, "rm", "-f", postgresContainer).Run()
}

// Postgres runs the store tests against a throwaway Postgres
// container.
func (Test) Postgres() error {
	rt := containerRuntime()
	if rt == "" {
		return fmt.Errorf("no container runtime found (tried podman, docker)")
	}

	if err := startPostgres(rt); err != nil {
		return err
	}
	defer stopPostgres(rt)

	env := map[string]string{"REPTICARE_TEST_POSTGRES_DSN": postgresDSN}
	return sh.RunWithV(env, binGo, "test", "-v", "./internal/store/...")
}
