package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// Progress is a spinner shown while a command waits on the backend. A nil
// *Progress is valid and does nothing.
type Progress struct {
	w io.Writer
	s *spinner.Spinner
}

// StartProgress starts a spinner on w with msg next to it. It returns nil
// when quiet is set.
func StartProgress(w io.Writer, msg string, quiet bool) *Progress {
	if quiet {
		return nil
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + msg
	s.Start()
	return &Progress{w: w, s: s}
}

// Stop removes the spinner and prints finalMsg in its place, if set.
func (p *Progress) Stop(finalMsg string) {
	if p == nil {
		return
	}
	p.s.Stop()
	// The spinner only draws on a terminal, so its FinalMSG would be lost
	// when output is redirected.
	if finalMsg != "" {
		fmt.Fprintln(p.w, finalMsg)
	}
}
