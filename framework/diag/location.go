package diag

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Location identifies the source position that reported a diagnostic.
type Location struct {
	File     string
	Line     int
	Function string
}

func (l Location) String() string {
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

var unknownLocation = Location{File: "?", Line: 0} //nolint:gochecknoglobals

const maxStackDepth = 64

// callerLocation walks up the stack from its own caller and returns the first frame that is
// neither inside this package nor one of the registered helper functions.
func callerLocation(helpers map[string]struct{}) Location {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(2, pcs) // skip runtime.Callers and callerLocation itself
	if n == 0 {
		return unknownLocation
	}
	currentPackage := currentPackageName()
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		packageName, _ := parsePackageAndFunctionName(frame.Function)
		_, isHelper := helpers[frame.Function]
		if packageName != currentPackage && !isHelper {
			return Location{File: filepath.Base(frame.File), Line: frame.Line, Function: frame.Function}
		}
		if !more {
			return unknownLocation
		}
	}
}

func currentPackageName() string {
	name, ok := callingFunctionName(0)
	if !ok {
		return "?"
	}
	packageName, _ := parsePackageAndFunctionName(name)
	return packageName
}

// callingFunctionName returns the full name of the function skip frames above its caller.
func callingFunctionName(skip int) (string, bool) {
	pcs := make([]uintptr, 1)
	if runtime.Callers(skip+2, pcs) == 0 {
		return "", false
	}
	frame, _ := runtime.CallersFrames(pcs).Next()
	return frame.Function, frame.Function != ""
}

func parsePackageAndFunctionName(fullName string) (string, string) {
	lastSlash := strings.LastIndex(fullName, "/")
	firstDotAfterSlash := strings.Index(fullName[lastSlash+1:], ".")
	if firstDotAfterSlash < 0 {
		return fullName, ""
	}
	packageName := fullName[0 : lastSlash+firstDotAfterSlash+1]
	functionName := fullName[len(packageName)+1:]
	return packageName, functionName
}
