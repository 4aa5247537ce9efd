package pkg

import (
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/ansel1/merry"
)

// FormatMerryStacktrace returns the stack captured by merry, one frame per
// sep-separated entry, with GOPATH and module cache prefixes cut off.
// Errors without a stack give an empty string.
func FormatMerryStacktrace(e error, sep string) string {
	return formatStack(merry.Stack(e), sep)
}

func formatStack(stack []uintptr, sep string) string {
	var frames []string
	for _, fp := range stack {
		fnc := runtime.FuncForPC(fp)
		if fnc == nil {
			continue
		}
		name := filepath.Base(fnc.Name())
		if name == "runtime.goexit" {
			continue
		}
		file, line := fnc.FileLine(fp)
		frames = append(frames, fmt.Sprintf("%s:%d %s", formatStackTraceFileName(file), line, name))
	}
	return strings.Join(frames, sep)
}

func formatStackTraceFileName(file string) string {
	file = strings.ReplaceAll(file, "\\", "/")
	file = excludeGoPathSrcRegexp.ReplaceAllString(file, "")
	file = excludeModulePathRegexp.ReplaceAllString(file, "")
	file = excludeGoPathPkgModRegexp.ReplaceAllString(file, "")
	file = excludeModVersionRegexp.ReplaceAllString(file, "")
	return file
}

var (
	excludeGoPathSrcRegexp    = regexp.MustCompile(`^.*/go/src/`)
	excludeGoPathPkgModRegexp = regexp.MustCompile(`^.*/go/pkg/mod/`)
	excludeModulePathRegexp   = regexp.MustCompile(`^.*github.com/seraghassouna/CAD2ETABSnSAP/`)
	excludeModVersionRegexp   = regexp.MustCompile(`@v[^/]+`)
)
