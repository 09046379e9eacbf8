package desktop

import (
	"os"

	"waitingtodo/internal/infrastructure/logging"
)

// Relauncher starts a successor process
type Relauncher interface {
	Relaunch() error
}

// Process implements shell.Process on top of the Wails runtime
type Process struct {
	rt         Runtime
	relauncher Relauncher
	exit       func(int)
	log        logging.Logger
}

// NewProcess creates the process controller. exit defaults to os.Exit.
func NewProcess(rt Runtime, relauncher Relauncher, logger logging.Logger) *Process {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	return &Process{rt: rt, relauncher: relauncher, exit: os.Exit, log: logger}
}

// RequestQuit starts a graceful Wails shutdown without waiting for it; the
// shutdown itself calls back into the close handler.
func (p *Process) RequestQuit() {
	go p.rt.Quit()
}

func (p *Process) Relaunch() error {
	return p.relauncher.Relaunch()
}

func (p *Process) Exit(code int) {
	p.log.Info("Exiting", "code", code)
	if s, ok := p.log.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
	p.exit(code)
}
