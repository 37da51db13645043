// Package pathutil normalizes user-supplied paths for cross-platform
// (Windows/WSL) usage.
//
// Windows hosts often hand the tool paths like `C:\Users\me\Photos` while
// the same location appears as `/mnt/c/Users/me/Photos` under WSL. The
// helpers here translate between the two spellings so the rest of the
// pipeline can treat the normalized string as the canonical identity of a
// source (the mapping cache keys on it).
package pathutil

import (
	"os"
	"regexp"
	"runtime"
	"strings"
)

var (
	windowsDrivePattern      = regexp.MustCompile(`^([A-Za-z]):\\(.*)`)
	wslPattern               = regexp.MustCompile(`^/mnt/([a-zA-Z])/(.*)`)
	leadingSlashDrivePattern = regexp.MustCompile(`^/+([A-Za-z]:[\\/].*)`)
)

func windowsToWSL(path string) string {
	m := windowsDrivePattern.FindStringSubmatch(path)
	if m == nil {
		return path
	}
	drive := strings.ToLower(m[1])
	rest := strings.ReplaceAll(m[2], `\`, "/")
	return "/mnt/" + drive + "/" + rest
}

func wslToWindows(path string) string {
	m := wslPattern.FindStringSubmatch(path)
	if m == nil {
		return path
	}
	drive := strings.ToUpper(m[1])
	rest := strings.ReplaceAll(m[2], "/", `\`)
	return drive + `:\` + rest
}

func expandUser(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return home + path[1:]
		}
	}
	return path
}

// NormalizeUserPath normalizes a user-supplied path for the current runtime.
//
// On POSIX systems Windows drive paths are rewritten to their /mnt
// equivalents; on Windows the reverse translation is applied and forward
// slashes are converted. The empty string passes through unchanged.
func NormalizeUserPath(value string) string {
	if value == "" {
		return value
	}

	value = expandUser(strings.TrimSpace(value))
	if value == "" {
		return value
	}

	if runtime.GOOS != "windows" {
		return windowsToWSL(value)
	}

	// Windows-specific cleanup so `/C:/Users/...` and `/mnt/c/...` work.
	if m := leadingSlashDrivePattern.FindStringSubmatch(value); m != nil {
		value = m[1]
	}
	value = wslToWindows(value)
	return strings.ReplaceAll(value, "/", `\`)
}

// DisplayPath returns the user-facing spelling of a path, preferring the
// Windows drive form over the WSL mount form.
func DisplayPath(value string) string {
	if value == "" {
		return value
	}
	return wslToWindows(value)
}
