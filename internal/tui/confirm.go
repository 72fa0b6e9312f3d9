package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
)

// ConfirmRename asks the user to approve a rename before any file is
// touched. Aborting the prompt counts as declining.
func ConfirmRename(oldIdentity, newIdentity string) (bool, error) {
	confirmed := false

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Apply rename?").
				Description(fmt.Sprintf("%s → %s", IdentityStyle.Render(oldIdentity), IdentityStyle.Render(newIdentity))).
				Affirmative("Rename").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithShowHelp(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}

	return confirmed, nil
}
