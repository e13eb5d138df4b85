// Package notify sends desktop notifications about pipeline outcomes.
package notify

import (
	"fmt"
	"log"
	"os/exec"
)

type Notifier interface {
	NoteFiled(noteName string)
	ItemFailed(audioName string, err error)
}

// Desktop notifies via notify-send.
type Desktop struct{}

func (Desktop) NoteFiled(noteName string) {
	cmd := exec.Command("notify-send", "-a", "Vaultscribe",
		fmt.Sprintf("Note filed: %s", noteName))
	if err := cmd.Run(); err != nil {
		log.Printf("Notify: failed to send notification: %v", err)
	}
}

func (Desktop) ItemFailed(audioName string, err error) {
	cmd := exec.Command("notify-send", "-a", "Vaultscribe", "-u", "critical",
		fmt.Sprintf("Failed to process %s: %v", audioName, err))
	if runErr := cmd.Run(); runErr != nil {
		log.Printf("Notify: failed to send error notification: %v", runErr)
	}
}

// Log writes notifications to the process log only.
type Log struct{}

func (Log) NoteFiled(noteName string) {
	log.Printf("Notify: note filed: %s", noteName)
}

func (Log) ItemFailed(audioName string, err error) {
	log.Printf("Notify: failed to process %s: %v", audioName, err)
}

// Nop is a Notifier that does absolutely nothing.
// Useful in unit tests or headless builds.
type Nop struct{}

func (Nop) NoteFiled(noteName string)           {}
func (Nop) ItemFailed(audioName string, err error) {}
