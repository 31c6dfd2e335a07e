// Package deps checks availability of the external binaries autocut
// shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"autocut/internal/config"
)

// Requirement defines an external dependency autocut relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Required returns the binaries the configured pipelines will execute.
func Required(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     cfg.STT.FFmpegBinary,
			Description: "Audio extraction and cut rendering",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.STT.FFprobeBinary,
			Description: "Recording duration and stream inspection",
		},
		{
			Name:        "Whisper",
			Command:     cfg.STT.WhisperBinary,
			Description: "Word-level speech-to-text",
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if resolved, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
		} else {
			status.Command = resolved
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}
