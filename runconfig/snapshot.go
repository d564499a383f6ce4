package runconfig

import (
	"fmt"

	"github.com/launchdarkly/go-jsonstream/v3/jreader"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"

	"github.com/launchdarkly/test-run-config/framework/helpers"
	o "github.com/launchdarkly/test-run-config/framework/opt"
)

// Snapshot is the transferable part of a Controller, handed to each parallel worker.
//
// It is an explicit list of fields rather than "everything except what can't be copied", so a
// new Controller field is not distributed until it is added here. Suite hooks and host-facing
// collaborators (command runner, probes, loggers, the diagnostic stream) are never included: a
// worker never runs suite-level hooks, and gets its own collaborators when it calls Restore.
type Snapshot struct {
	ProgramName           string
	SearchPaths           []string
	Quiet                 bool
	NoExecute             bool
	Debug                 bool
	IsHostWindows         bool
	EchoAllCommands       bool
	HostOS                string
	LeakCheck             LeakCheckOptions
	Params                map[string]ldvalue.Value
	ShellPath             o.Maybe[string]
	ConfigPrefix          string
	ErrorCount            int
	WarningCount          int
	PerTestTimeoutSeconds int
	ParallelismGroups     map[string]ldvalue.Value
	AvailableFeatures     []string
}

// Snapshot returns a detached copy of the controller's transferable state. Later changes to the
// controller do not affect it, and vice versa.
func (c *Controller) Snapshot() Snapshot {
	c.shellLock.Lock()
	shellPath := c.shellPath
	c.shellLock.Unlock()
	return Snapshot{
		ProgramName:     c.programName,
		SearchPaths:     helpers.CopyOrEmpty(c.searchPaths),
		Quiet:           c.quiet,
		NoExecute:       c.noExecute,
		Debug:           c.debug,
		IsHostWindows:   c.isHostWindows,
		EchoAllCommands: c.echoAllCommands,
		HostOS:          c.hostOS,
		LeakCheck: LeakCheckOptions{
			Enabled:   c.leakCheck.Enabled,
			Mode:      c.leakCheck.Mode,
			ExtraArgs: helpers.CopyOrEmpty(c.leakCheck.ExtraArgs),
		},
		Params:                helpers.CopyMap(c.params),
		ShellPath:             shellPath,
		ConfigPrefix:          c.configPrefix,
		ErrorCount:            c.ErrorCount(),
		WarningCount:          c.WarningCount(),
		PerTestTimeoutSeconds: c.perTestTimeout,
		ParallelismGroups:     helpers.CopyMap(c.parallelismGroups),
		AvailableFeatures:     c.AvailableFeatures.List(),
	}
}

// Restore builds a worker-local Controller from a snapshot. The result has no suite hooks, and
// its collaborators are the defaults unless overridden with configs. A snapshot with a negative
// per-test timeout or diagnostic count is rejected, since no Controller could have produced it.
func Restore(s Snapshot, configs ...Option) (*Controller, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	c, err := newController(Options{
		ProgramName:       s.ProgramName,
		SearchPaths:       s.SearchPaths,
		Quiet:             s.Quiet,
		NoExecute:         s.NoExecute,
		Debug:             s.Debug,
		IsHostWindows:     s.IsHostWindows,
		EchoAllCommands:   s.EchoAllCommands,
		HostOS:            s.HostOS,
		LeakCheck:         s.LeakCheck,
		Params:            s.Params,
		ConfigPrefix:      s.ConfigPrefix,
		ParallelismGroups: s.ParallelismGroups,
	}, s.ErrorCount, s.WarningCount, configs)
	if err != nil {
		return nil, err
	}
	c.shellPath = s.ShellPath
	c.perTestTimeout = s.PerTestTimeoutSeconds
	c.AvailableFeatures.Add(s.AvailableFeatures...)
	return c, nil
}

func (s Snapshot) validate() error {
	if s.PerTestTimeoutSeconds < 0 {
		return fmt.Errorf("invalid snapshot: per-test timeout must be >= 0, not %d", s.PerTestTimeoutSeconds)
	}
	if s.ErrorCount < 0 {
		return fmt.Errorf("invalid snapshot: error count must be >= 0, not %d", s.ErrorCount)
	}
	if s.WarningCount < 0 {
		return fmt.Errorf("invalid snapshot: warning count must be >= 0, not %d", s.WarningCount)
	}
	return nil
}

// MarshalJSON encodes the snapshot for transfer to another process.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	w := jwriter.NewWriter()
	s.WriteToJSONWriter(&w)
	return w.Bytes(), w.Error()
}

// UnmarshalJSON decodes a snapshot produced by MarshalJSON. Unknown properties are ignored.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	r := jreader.NewReader(data)
	s.ReadFromJSONReader(&r)
	if err := r.Error(); err != nil {
		return err
	}
	return r.RequireEOF()
}

func (s Snapshot) WriteToJSONWriter(w *jwriter.Writer) {
	obj := w.Object()
	obj.Name("programName").String(s.ProgramName)
	writeStrings(obj.Name("searchPaths"), s.SearchPaths)
	obj.Name("quiet").Bool(s.Quiet)
	obj.Name("noExecute").Bool(s.NoExecute)
	obj.Name("debug").Bool(s.Debug)
	obj.Name("isHostWindows").Bool(s.IsHostWindows)
	obj.Name("echoAllCommands").Bool(s.EchoAllCommands)
	obj.Name("hostOS").String(s.HostOS)

	leakObj := obj.Name("leakCheck").Object()
	leakObj.Name("enabled").Bool(s.LeakCheck.Enabled)
	leakObj.Name("mode").String(s.LeakCheck.Mode.String())
	writeStrings(leakObj.Name("extraArgs"), s.LeakCheck.ExtraArgs)
	leakObj.End()

	writeValues(obj.Name("params"), s.Params)
	if shellPath, ok := s.ShellPath.Get(); ok {
		obj.Name("shellPath").String(shellPath)
	} else {
		obj.Name("shellPath").Null()
	}
	obj.Name("configPrefix").String(s.ConfigPrefix)
	obj.Name("errorCount").Int(s.ErrorCount)
	obj.Name("warningCount").Int(s.WarningCount)
	obj.Name("perTestTimeoutSeconds").Int(s.PerTestTimeoutSeconds)
	writeValues(obj.Name("parallelismGroups"), s.ParallelismGroups)
	writeStrings(obj.Name("availableFeatures"), s.AvailableFeatures)
	obj.End()
}

func (s *Snapshot) ReadFromJSONReader(r *jreader.Reader) {
	out := Snapshot{
		SearchPaths:       []string{},
		LeakCheck:         LeakCheckOptions{ExtraArgs: []string{}},
		Params:            map[string]ldvalue.Value{},
		ParallelismGroups: map[string]ldvalue.Value{},
		AvailableFeatures: []string{},
	}
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "programName":
			out.ProgramName = r.String()
		case "searchPaths":
			out.SearchPaths = readStrings(r)
		case "quiet":
			out.Quiet = r.Bool()
		case "noExecute":
			out.NoExecute = r.Bool()
		case "debug":
			out.Debug = r.Bool()
		case "isHostWindows":
			out.IsHostWindows = r.Bool()
		case "echoAllCommands":
			out.EchoAllCommands = r.Bool()
		case "hostOS":
			out.HostOS = r.String()
		case "leakCheck":
			readLeakCheck(r, &out.LeakCheck)
		case "params":
			out.Params = readValues(r)
		case "shellPath":
			out.ShellPath = o.FromOK(r.StringOrNull())
		case "configPrefix":
			out.ConfigPrefix = r.String()
		case "errorCount":
			out.ErrorCount = r.Int()
		case "warningCount":
			out.WarningCount = r.Int()
		case "perTestTimeoutSeconds":
			out.PerTestTimeoutSeconds = r.Int()
		case "parallelismGroups":
			out.ParallelismGroups = readValues(r)
		case "availableFeatures":
			out.AvailableFeatures = readStrings(r)
		}
	}
	if r.Error() == nil {
		*s = out
	}
}

func readLeakCheck(r *jreader.Reader, out *LeakCheckOptions) {
	for obj := r.Object(); obj.Next(); {
		switch string(obj.Name()) {
		case "enabled":
			out.Enabled = r.Bool()
		case "mode":
			mode, err := ParseLeakCheckMode(r.String())
			if err != nil {
				r.AddError(err)
				return
			}
			out.Mode = mode
		case "extraArgs":
			out.ExtraArgs = readStrings(r)
		}
	}
}

func writeStrings(w *jwriter.Writer, values []string) {
	arr := w.Array()
	for _, v := range values {
		arr.String(v)
	}
	arr.End()
}

func readStrings(r *jreader.Reader) []string {
	ret := []string{}
	for arr := r.Array(); arr.Next(); {
		ret = append(ret, r.String())
	}
	return ret
}

func writeValues(w *jwriter.Writer, values map[string]ldvalue.Value) {
	obj := w.Object()
	for k, v := range values {
		v.WriteToJSONWriter(obj.Name(k))
	}
	obj.End()
}

func readValues(r *jreader.Reader) map[string]ldvalue.Value {
	ret := map[string]ldvalue.Value{}
	for obj := r.Object(); obj.Next(); {
		var v ldvalue.Value
		v.ReadFromJSONReader(r)
		ret[string(obj.Name())] = v
	}
	return ret
}
