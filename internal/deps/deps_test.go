package deps

import (
	"os/exec"
	"testing"
)

func TestCheckWhisperCli(t *testing.T) {
	status := CheckWhisperCli()

	// behavior depends on system - just verify correct structure
	if status.Installed {
		if status.Path == "" {
			t.Error("installed but path empty")
		}
	} else {
		if status.Path != "" {
			t.Error("not installed but path non-empty")
		}
	}
}

func TestCheckWhisperCli_NotInstalled(t *testing.T) {
	if _, err := exec.LookPath("whisper-cli"); err == nil {
		t.Skip("whisper-cli is installed, can't test not-installed case")
	}
	status := CheckWhisperCli()
	if status.Installed {
		t.Error("expected Installed=false when whisper-cli not in PATH")
	}
	if status.Path != "" {
		t.Error("expected empty path when not installed")
	}
}

func TestCheckNotifySend(t *testing.T) {
	status := CheckNotifySend()

	if status.Installed {
		if status.Path == "" {
			t.Error("installed but path empty")
		}
	} else {
		if status.Path != "" {
			t.Error("not installed but path non-empty")
		}
	}
}

func TestCheck_UnknownBinary(t *testing.T) {
	status := check("definitely-not-a-real-binary-name")
	if status.Installed {
		t.Error("expected Installed=false for unknown binary")
	}
}
