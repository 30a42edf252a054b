// Package prof captures pprof profiles around one CLI run.
package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Config names the output files; empty paths disable the profile.
type Config struct {
	CPUPath string
	MemPath string
}

// Session is an active profiling run. Stop is safe to call more than once.
type Session struct {
	cfg     Config
	cpuFile *os.File
	stopped bool
}

// Start enables CPU profiling when cfg.CPUPath is set.
func Start(cfg Config) (*Session, error) {
	s := &Session{cfg: cfg}
	if cfg.CPUPath == "" {
		return s, nil
	}
	f, err := os.Create(cfg.CPUPath)
	if err != nil {
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	s.cpuFile = f
	return s, nil
}

// Stop finishes the CPU profile and writes the heap profile.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true

	var errs []error
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		if err := s.cpuFile.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cpu profile: %w", err))
		}
		s.cpuFile = nil
	}
	if s.cfg.MemPath != "" {
		if err := writeMem(s.cfg.MemPath); err != nil {
			errs = append(errs, fmt.Errorf("heap profile: %w", err))
		}
	}
	return errors.Join(errs...)
}

func writeMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
