package cmd

import (
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
)

// progress is a stderr spinner that does nothing unless stderr is a terminal.
type progress struct {
	s *spinner.Spinner
}

func startProgress(w io.Writer, msg string) *progress {
	f, ok := w.(*os.File)
	if !ok || !(isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return &progress{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
	s.Suffix = " " + msg
	s.Start()
	return &progress{s: s}
}

func (p *progress) Stop() {
	if p.s != nil {
		p.s.Stop()
	}
}
