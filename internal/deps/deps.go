package deps

import (
	"os/exec"
	"strings"
)

// Status represents the installation status of an external tool
type Status struct {
	Installed bool
	Path      string
	Version   string
}

// check looks up a binary and asks it for a version line.
func check(binary string, versionArgs ...string) Status {
	path, err := exec.LookPath(binary)
	if err != nil {
		return Status{Installed: false}
	}

	status := Status{
		Installed: true,
		Path:      path,
	}

	if len(versionArgs) > 0 {
		output, err := exec.Command(path, versionArgs...).Output()
		if err == nil {
			lines := strings.Split(string(output), "\n")
			if len(lines) > 0 {
				status.Version = strings.TrimSpace(lines[0])
			}
		}
	}

	return status
}

// CheckWhisperCli reports whether the whisper.cpp CLI is installed.
// Required when the transcription provider is whisper-cpp.
func CheckWhisperCli() Status {
	return check("whisper-cli", "--version")
}

// CheckNotifySend reports whether notify-send is installed.
// Required for desktop notifications.
func CheckNotifySend() Status {
	return check("notify-send", "--version")
}
