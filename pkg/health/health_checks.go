package health

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileCheck reports whether path is a readable regular file. Empty files are
// degraded: they parse, but yield nothing.
func FileCheck(path string) CheckFunc {
	return func(context.Context) Check {
		check := Check{Details: map[string]any{"path": path}}

		info, err := os.Stat(path)
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		if info.IsDir() {
			check.Status = StatusUnhealthy
			check.Message = "is a directory"
			return check
		}

		f, err := os.Open(path)
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		f.Close()

		check.Details["size_bytes"] = info.Size()
		check.Details["modified"] = info.ModTime()
		if info.Size() == 0 {
			check.Status = StatusDegraded
			check.Message = "File is empty"
		} else {
			check.Status = StatusHealthy
			check.Message = "Readable"
		}
		return check
	}
}

// WritableDirCheck reports whether files can be created in dir. A missing
// dir is healthy when its nearest existing ancestor is writable.
func WritableDirCheck(dir string) CheckFunc {
	return func(context.Context) Check {
		check := Check{Details: map[string]any{"path": dir}}

		probe := dir
		for {
			info, err := os.Stat(probe)
			if err == nil {
				if !info.IsDir() {
					check.Status = StatusUnhealthy
					check.Message = fmt.Sprintf("%s is not a directory", probe)
					return check
				}
				break
			}
			if !errors.Is(err, os.ErrNotExist) {
				check.Status = StatusUnhealthy
				check.Message = err.Error()
				return check
			}
			parent := filepath.Dir(probe)
			if parent == probe {
				break
			}
			probe = parent
		}

		f, err := os.CreateTemp(probe, ".goannotate-probe-*")
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}
		f.Close()
		os.Remove(f.Name())

		if probe != dir {
			check.Details["created_on_run"] = true
		}
		check.Status = StatusHealthy
		check.Message = "Writable"
		return check
	}
}

// PingCheck wraps a connectivity probe such as a database ping
func PingCheck(ping func(ctx context.Context) error) CheckFunc {
	return func(ctx context.Context) Check {
		if err := ping(ctx); err != nil {
			return Check{Status: StatusUnhealthy, Message: err.Error()}
		}
		return Check{Status: StatusHealthy, Message: "Connected"}
	}
}
