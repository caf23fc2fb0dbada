package charm

import (
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type root struct {
	verbose bool
}

func (*root) Run([]string) error { return ErrNoRun }

type leaf struct {
	root *root
	n    int
	args []string
}

func (l *leaf) Run(args []string) error {
	l.args = args
	return nil
}

func newTree(ran **leaf) *Spec {
	r := &Spec{
		Name:  "tool",
		Usage: "tool [options] command",
		Short: "a tool",
		New: func(_ Command, fs *flag.FlagSet) (Command, error) {
			c := &root{}
			fs.BoolVar(&c.verbose, "v", false, "verbose")
			return c, nil
		},
	}
	r.Add(&Spec{
		Name:          "leaf",
		Usage:         "leaf [-n N] args",
		Short:         "a leaf",
		Long:          "The leaf command does leafy things.\n\nIt has two paragraphs.",
		RedactedFlags: "secret",
		HiddenFlags:   "debug",
		New: func(parent Command, fs *flag.FlagSet) (Command, error) {
			c := &leaf{root: parent.(*root)}
			fs.IntVar(&c.n, "n", 1, "count")
			fs.String("secret", "hunter2", "password")
			fs.Bool("debug", false, "debugging")
			*ran = c
			return c, nil
		},
	})
	r.Add(&Spec{
		Name:   "ghost",
		Short:  "hidden",
		Hidden: true,
		New:    func(Command, *flag.FlagSet) (Command, error) { return &root{}, nil },
	})
	return r
}

func TestExec(t *testing.T) {
	var l *leaf
	spec := newTree(&l)
	require.NoError(t, spec.exec(&strings.Builder{}, []string{"-v", "leaf", "-n", "3", "a", "b"}))
	require.True(t, l.root.verbose)
	require.Equal(t, 3, l.n)
	require.Equal(t, []string{"a", "b"}, l.args)
}

func TestNoSubCommand(t *testing.T) {
	var l *leaf
	spec := newTree(&l)
	err := spec.exec(&strings.Builder{}, nil)
	require.EqualError(t, err, `"tool": requires a sub-command: leaf`)
	err = spec.exec(&strings.Builder{}, []string{"nope"})
	require.EqualError(t, err, `"tool": no such sub-command "nope": options are: leaf`)
	err = spec.exec(&strings.Builder{}, []string{"lef"})
	require.EqualError(t, err, `"tool": no such sub-command "lef": options are: leaf (did you mean "leaf"?)`)
}

func TestHelp(t *testing.T) {
	var l *leaf
	spec := newTree(&l)
	var b strings.Builder
	require.NoError(t, spec.exec(&b, []string{"leaf", "-h"}))
	out := b.String()
	require.Contains(t, out, "tool leaf - a leaf")
	require.Contains(t, out, `-n count (default "1")`)
	require.Contains(t, out, "-secret password\n")
	require.NotContains(t, out, "hunter2")
	require.NotContains(t, out, "-debug")
	require.Contains(t, out, "It has two paragraphs.")

	b.Reset()
	require.NoError(t, spec.exec(&b, []string{"help"}))
	require.Contains(t, b.String(), "leaf - a leaf")
	require.NotContains(t, b.String(), "ghost")

	require.EqualError(t, spec.exec(&b, []string{"help", "nope"}), "no such command: tool nope")
}
