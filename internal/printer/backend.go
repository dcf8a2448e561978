// =============================================================================
// Receipt Desk - Print Backends
// =============================================================================
//
// A Backend knows how to hand a finished PDF to the operating system, either
// to the default printer or to the default viewer. Backends never wait for
// the physical print job; a nil error only means the request was accepted.
//
// BACKENDS:
//   - windows: PowerShell "Start-Process -Verb Print" / "cmd /c start"
//   - darwin:  lpr / open
//   - unix:    lp / xdg-open
//   - none:    printing always fails, so the file is opened instead
//
// =============================================================================

package printer

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// Backend names accepted by Select.
const (
	BackendAuto    = "auto"
	BackendWindows = "windows"
	BackendDarwin  = "darwin"
	BackendUnix    = "unix"
	BackendNone    = "none"
)

// ErrNoPrinter is returned by the none backend for every print request.
var ErrNoPrinter = errors.New("printing is not available")

// Backend sends a file to the printer or to the default viewer.
type Backend interface {
	Name() string
	Print(path string) error
	Open(path string) error
}

// Runner executes external commands. Run waits for the command to exit,
// Start only launches it.
type Runner interface {
	Run(name string, args ...string) error
	Start(name string, args ...string) error
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes the command and waits for it. Output is attached to the error.
func (ExecRunner) Run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Start launches the command without waiting for it to exit.
func (ExecRunner) Start(name string, args ...string) error {
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Select returns the backend registered under name. "auto" and "" pick the
// backend for the running operating system.
func Select(name string, runner Runner) (Backend, error) {
	if runner == nil {
		runner = ExecRunner{}
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackendAuto:
		return ForOS(runtime.GOOS, runner), nil
	case BackendWindows:
		return &windowsBackend{run: runner}, nil
	case BackendDarwin:
		return &darwinBackend{run: runner}, nil
	case BackendUnix:
		return &unixBackend{run: runner}, nil
	case BackendNone:
		return &noneBackend{run: runner}, nil
	default:
		return nil, fmt.Errorf("unknown print backend: %s", name)
	}
}

// ForOS returns the backend for a GOOS value. Anything that is neither
// windows nor darwin is treated as a CUPS system.
func ForOS(goos string, runner Runner) Backend {
	switch goos {
	case "windows":
		return &windowsBackend{run: runner}
	case "darwin":
		return &darwinBackend{run: runner}
	default:
		return &unixBackend{run: runner}
	}
}

// =============================================================================
// WINDOWS
// =============================================================================

type windowsBackend struct {
	run Runner
}

func (b *windowsBackend) Name() string { return BackendWindows }

func (b *windowsBackend) Print(path string) error {
	script := fmt.Sprintf("Start-Process -FilePath %s -Verb Print", psQuote(path))
	return b.run.Run("powershell", "-NoProfile", "-NonInteractive", "-Command", script)
}

func (b *windowsBackend) Open(path string) error {
	return b.run.Start("cmd", "/c", "start", "", path)
}

// psQuote wraps s in a PowerShell single-quoted literal.
func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// =============================================================================
// DARWIN
// =============================================================================

type darwinBackend struct {
	run Runner
}

func (b *darwinBackend) Name() string { return BackendDarwin }

func (b *darwinBackend) Print(path string) error {
	return b.run.Run("lpr", path)
}

func (b *darwinBackend) Open(path string) error {
	return b.run.Start("open", path)
}

// =============================================================================
// UNIX (CUPS)
// =============================================================================

type unixBackend struct {
	run Runner
}

func (b *unixBackend) Name() string { return BackendUnix }

func (b *unixBackend) Print(path string) error {
	return b.run.Run("lp", path)
}

func (b *unixBackend) Open(path string) error {
	return b.run.Start("xdg-open", path)
}

// =============================================================================
// NONE
// =============================================================================

type noneBackend struct {
	run Runner
}

func (b *noneBackend) Name() string { return BackendNone }

func (b *noneBackend) Print(string) error { return ErrNoPrinter }

// Open still uses the platform viewer so the operator sees the receipt.
func (b *noneBackend) Open(path string) error {
	return ForOS(runtime.GOOS, b.run).Open(path)
}
