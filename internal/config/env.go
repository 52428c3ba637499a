package config

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var envKeyRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadEnv loads simple shell-style env files into the process environment.
// Supported lines:
//
//	export KEY=value
//	KEY=value
//
// Values may be unquoted, single-quoted, or double-quoted. Double quotes
// handle \\ and \" escapes; single quotes are literal. Missing files are
// skipped silently.
func LoadEnv(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		fi, err := os.Stat(p)
		if err != nil || fi.IsDir() {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			continue
		}
		scan := bufio.NewScanner(f)
		for scan.Scan() {
			line := strings.TrimSpace(scan.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			line = strings.TrimPrefix(line, "export ")
			key, val, found := strings.Cut(line, "=")
			if !found {
				continue
			}
			key = strings.TrimSpace(key)
			if !envKeyRe.MatchString(key) {
				continue
			}
			os.Setenv(key, unquoteEnvValue(strings.TrimSpace(val)))
		}
		f.Close()
	}
}

func unquoteEnvValue(val string) string {
	if len(val) >= 2 && strings.HasPrefix(val, `"`) && strings.HasSuffix(val, `"`) {
		v := val[1 : len(val)-1]
		v = strings.ReplaceAll(v, `\\`, `\`)
		v = strings.ReplaceAll(v, `\"`, `"`)
		return v
	}
	if len(val) >= 2 && strings.HasPrefix(val, "'") && strings.HasSuffix(val, "'") {
		return val[1 : len(val)-1]
	}
	return val
}

// LoadDefaultEnv loads env from KATHA_ENV, ~/.katha.env, and ./.env (in that
// order), when present. Later files win for duplicate keys.
func LoadDefaultEnv() {
	if p := strings.TrimSpace(os.Getenv("KATHA_ENV")); p != "" {
		LoadEnv(p)
	}
	if home, err := os.UserHomeDir(); err == nil {
		LoadEnv(filepath.Join(home, ".katha.env"))
	}
	LoadEnv(".env")
}
