// Package misc keeps build identity helpers used across the program.
package misc

import (
	"runtime/debug"
	"sync"
)

// Set at build time with -ldflags "-X repage/misc.appName=... -X repage/misc.appVersion=..."
var (
	appName    = "repage"
	appVersion = "0.0.0-dev"
)

var gitHash = sync.OnceValue(func() string {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	var rev, dirty string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				dirty = "*"
			}
		}
	}
	if rev == "" {
		return "unknown"
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return rev + dirty
})

func GetAppName() string { return appName }

func GetVersion() string { return appVersion }

func GetGitHash() string { return gitHash() }
