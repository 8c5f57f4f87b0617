package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxReadSize bounds plan and prompt file reads. Command plans are a few
// lines; anything near this limit is not a plan file.
const MaxReadSize = 1 << 20 // 1 MiB

// ExpandPath expands a leading ~ and any environment variables, then
// cleans the path.
func ExpandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	path = os.ExpandEnv(path)

	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if strings.HasPrefix(path, "~/") {
			return filepath.Join(home, path[2:]), nil
		}
		// ~user syntax is not supported; fall through unchanged.
	}

	return filepath.Clean(path), nil
}

// SafeReadFile reads a file after expanding its path, refusing files
// larger than MaxReadSize.
func SafeReadFile(path string) ([]byte, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(expanded)
	if err != nil {
		return nil, err
	}
	if info.Size() > MaxReadSize {
		return nil, fmt.Errorf("file %s is %d bytes, larger than the %d byte limit", expanded, info.Size(), MaxReadSize)
	}

	return os.ReadFile(expanded)
}

// ReadLines reads a file and returns its non-empty, non-comment lines
// with surrounding whitespace trimmed. Used for command plan files where
// each line is one command and '#' starts a comment.
func ReadLines(path string) ([]string, error) {
	data, err := SafeReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
