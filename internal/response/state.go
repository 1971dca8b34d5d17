package response

// UIState is the presentation state of the step. It is derived, never stored.
type UIState struct {
	SubmitEnabled  bool
	SaveEnabled    bool
	Status         string
	UnsavedWarning bool
}

// State derives the presentation state from the draft, the saved snapshot
// and the in-flight flags.
func (c *Controller) State() UIState {
	if !c.installed {
		return UIState{Status: c.status}
	}
	diverged := c.draft != c.saved
	blank := isBlank(c.draft)
	return UIState{
		SubmitEnabled:  !blank && !c.submitting && !c.complete,
		SaveEnabled:    diverged && !blank,
		Status:         c.status,
		UnsavedWarning: diverged && c.warnArmed,
	}
}

// SubmitEnabled reports whether the submit control accepts input.
func (c *Controller) SubmitEnabled() bool { return c.State().SubmitEnabled }

// SaveEnabled reports whether the save control accepts input.
func (c *Controller) SaveEnabled() bool { return c.State().SaveEnabled }

// UnsavedWarning reports whether leaving the step should warn about unsaved work.
func (c *Controller) UnsavedWarning() bool { return c.State().UnsavedWarning }
