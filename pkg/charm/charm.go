// Package charm is a minimalist CLI framework inspired by cobra and urfave/cli.
package charm

import (
	"errors"
	"flag"
	"io"
	"os"
)

var (
	NeedHelp = errors.New("help")
	ErrNoRun = errors.New("no run method")
)

type Constructor func(Command, *flag.FlagSet) (Command, error)

type Command interface {
	Run([]string) error
}

type Spec struct {
	Name  string
	Usage string
	Short string
	Long  string
	New   Constructor
	// Hidden hides this command from help.
	Hidden bool
	// HiddenFlags (comma-separated) are left out of help.
	HiddenFlags string
	// RedactedFlags (comma-separated) are shown in help without their
	// default values, as is useful for a password or DSN.
	RedactedFlags string
	children      []*Spec
	parent        *Spec
}

func (s *Spec) Add(child *Spec) {
	s.children = append(s.children, child)
	child.parent = s
}

func (s *Spec) lookupSub(name string) *Spec {
	for _, child := range s.children {
		if name == child.Name {
			return child
		}
	}
	return nil
}

// ExecRoot runs the command named by args, which must not include the
// program name.  Help requested with -h or a help sub-command is written
// to stderr.
func (s *Spec) ExecRoot(args []string) error {
	return s.exec(os.Stderr, args)
}

func (s *Spec) exec(w io.Writer, args []string) error {
	if len(args) > 0 && args[0] == "help" {
		return s.help(w, args[1:])
	}
	p, rest, err := parse(s, args)
	if err == nil {
		err = p.run(rest)
	}
	if err == NeedHelp {
		return s.help(w, args)
	}
	return err
}

func (s *Spec) help(w io.Writer, args []string) error {
	p, err := parseHelp(s, args)
	if err != nil {
		return err
	}
	displayHelp(w, p)
	return nil
}
