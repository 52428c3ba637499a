package config

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Tool is a resolved external executable, stored as the argv prefix to run.
// The prefix is more than one element when the tool is reached through a
// module interpreter (python3 -m yt_dlp).
type Tool struct {
	Name string
	Argv []string
}

// Found reports whether resolution produced a runnable command.
func (t Tool) Found() bool { return len(t.Argv) > 0 }

// String renders the tool as the command line it resolves to, for /health
// and logs.
func (t Tool) String() string {
	if !t.Found() {
		return t.Name + " (not found)"
	}
	return strings.Join(t.Argv, " ")
}

// Command builds an exec.Cmd for the tool with the given arguments. Arguments
// are always passed as an argv vector; nothing is ever interpreted by a
// shell, so caller-supplied URLs cannot inject commands.
func (t Tool) Command(ctx context.Context, args ...string) *exec.Cmd {
	full := append(append([]string(nil), t.Argv[1:]...), args...)
	return exec.CommandContext(ctx, t.Argv[0], full...)
}

// ToolNotFoundError reports every location a resolver probed.
type ToolNotFoundError struct {
	Name  string
	Tried []string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s not found (tried: %s); ensure it is installed and on PATH",
		e.Name, strings.Join(e.Tried, ", "))
}

var (
	ytdlpCandidates = []string{
		"/usr/local/bin/yt-dlp",
		"/usr/bin/yt-dlp",
		"/root/.local/bin/yt-dlp",
		"/opt/homebrew/bin/yt-dlp",
	}
	ffmpegCandidates = []string{
		"/usr/local/bin/ffmpeg",
		"/usr/bin/ffmpeg",
		"/opt/homebrew/bin/ffmpeg",
	}
)

// ResolveFFmpeg locates the media transcoder: FFMPEG_PATH override, then
// PATH, then common install locations.
func ResolveFFmpeg() (Tool, error) {
	return resolveTool("ffmpeg", "FFMPEG_PATH", ffmpegCandidates, "")
}

// ResolveYTDLP locates the downloader: YTDLP_PATH override, then PATH, then
// common install locations, then the python module as a last resort.
func ResolveYTDLP() (Tool, error) {
	return resolveTool("yt-dlp", "YTDLP_PATH", ytdlpCandidates, "yt_dlp")
}

func resolveTool(name, envVar string, candidates []string, pyModule string) (Tool, error) {
	var tried []string

	if p := strings.TrimSpace(os.Getenv(envVar)); p != "" {
		if path, err := exec.LookPath(p); err == nil {
			return Tool{Name: name, Argv: []string{path}}, nil
		}
		tried = append(tried, p)
	}

	if path, err := exec.LookPath(name); err == nil {
		return Tool{Name: name, Argv: []string{path}}, nil
	}
	tried = append(tried, name)

	for _, c := range candidates {
		if path, err := exec.LookPath(c); err == nil {
			return Tool{Name: name, Argv: []string{path}}, nil
		}
		tried = append(tried, c)
	}

	if pyModule != "" {
		if py, err := exec.LookPath("python3"); err == nil {
			if exec.Command(py, "-m", pyModule, "--version").Run() == nil {
				return Tool{Name: name, Argv: []string{py, "-m", pyModule}}, nil
			}
		}
		tried = append(tried, "python3 -m "+pyModule)
	}

	return Tool{Name: name}, &ToolNotFoundError{Name: name, Tried: tried}
}
