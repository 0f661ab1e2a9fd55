package movement

import (
	"strings"

	"github.com/oomph-ac/kinemove/oerror"
	"github.com/sirupsen/logrus"
)

// DebugMode is a bit set of subsystems whose trace output is enabled.
type DebugMode uint32

const (
	DebugModeGround DebugMode = 1 << iota
	DebugModePenetration
	DebugModeSweep
	DebugModeStepUp
	DebugModeIntegration
	DebugModeRotation
	DebugModeAttachment

	DebugModeAll = DebugModeGround | DebugModePenetration | DebugModeSweep | DebugModeStepUp |
		DebugModeIntegration | DebugModeRotation | DebugModeAttachment
)

// DebugModeList holds the names of the debug modes in bit order.
var DebugModeList = []string{
	"ground",
	"penetration",
	"sweep",
	"step_up",
	"integration",
	"rotation",
	"attachment",
}

// ParseDebugModes converts a list of mode names into a DebugMode. "all" enables every mode.
func ParseDebugModes(names []string) (DebugMode, error) {
	var modes DebugMode
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if name == "all" {
			modes |= DebugModeAll
			continue
		}
		found := false
		for i, n := range DebugModeList {
			if n == name {
				modes |= 1 << i
				found = true
				break
			}
		}
		if !found {
			return 0, oerror.New("unknown debug mode %q", name)
		}
	}
	return modes, nil
}

func (m DebugMode) String() string {
	var names []string
	for i, n := range DebugModeList {
		if m&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return strings.Join(names, ",")
}

// Debugger writes trace output of the enabled subsystems to a logger at debug level.
type Debugger struct {
	log   *logrus.Logger
	modes DebugMode
}

// NewDebugger creates a Debugger for the given modes.
func NewDebugger(log *logrus.Logger, modes DebugMode) *Debugger {
	return &Debugger{log: log, modes: modes}
}

// Enabled returns true if any of the given modes is enabled.
func (d *Debugger) Enabled(mode DebugMode) bool {
	return d.modes&mode != 0
}

// Toggle enables or disables the given modes.
func (d *Debugger) Toggle(mode DebugMode, on bool) {
	if on {
		d.modes |= mode
		return
	}
	d.modes &^= mode
}

// Notify logs the formatted message if the mode is enabled and cond is true.
func (d *Debugger) Notify(mode DebugMode, cond bool, format string, args ...any) {
	if !cond || !d.Enabled(mode) {
		return
	}
	d.log.WithField("mode", mode.String()).Debugf(format, args...)
}
