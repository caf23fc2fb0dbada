package charm

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

type path []*instance

// parse instantiates the chain of commands named by args, parsing the
// flags of each, and returns the chain with the arguments left for the
// last command.
func parse(spec *Spec, args []string) (path, []string, error) {
	var p path
	var parent Command
	for {
		inst, err := newInstance(parent, spec)
		if err != nil {
			return nil, nil, err
		}
		p = append(p, inst)
		rest, err := parseFlags(inst.flags, args)
		if err != nil {
			return p, nil, err
		}
		if len(rest) == 0 {
			return p, rest, nil
		}
		child := spec.lookupSub(rest[0])
		if child == nil {
			return p, rest, nil
		}
		spec, parent, args = child, inst.command, rest[1:]
	}
}

// parseHelp resolves the command that help was requested for.  Flags are
// ignored.
func parseHelp(spec *Spec, args []string) (path, error) {
	inst, err := newInstance(nil, spec)
	if err != nil {
		return nil, err
	}
	p := path{inst}
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		child := spec.lookupSub(arg)
		if child == nil {
			return nil, fmt.Errorf("no such command: %s", p.pathname(arg))
		}
		inst, err := newInstance(p.last().command, child)
		if err != nil {
			return nil, err
		}
		p = append(p, inst)
		spec = child
	}
	return p, nil
}

func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	var discard strings.Builder
	fs.SetOutput(&discard)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, NeedHelp
		}
		return nil, err
	}
	return fs.Args(), nil
}

func (p path) run(args []string) error {
	err := p.last().command.Run(args)
	if err == ErrNoRun {
		if len(args) == 0 {
			err = fmt.Errorf("%q: requires a sub-command: %s", p.pathname(), p.subCommands())
		} else {
			err = fmt.Errorf("%q: no such sub-command %q: options are: %s", p.pathname(), args[0], p.subCommands())
			if s := p.suggest(args[0]); s != "" {
				err = fmt.Errorf("%w (did you mean %q?)", err, s)
			}
		}
	}
	return err
}

// suggest returns the visible sub-command closest to name if it is
// within a small edit distance.
func (p path) suggest(name string) string {
	best, bestDist := "", 3
	for _, spec := range p.last().spec.children {
		if spec.Hidden {
			continue
		}
		if d := levenshtein.ComputeDistance(name, spec.Name); d < bestDist {
			best, bestDist = spec.Name, d
		}
	}
	return best
}

func (p path) last() *instance {
	return p[len(p)-1]
}

func (p path) pathname(args ...string) string {
	names := make([]string, 0, len(p)+len(args))
	for _, sub := range p {
		names = append(names, sub.spec.Name)
	}
	names = append(names, args...)
	return strings.Join(names, " ")
}

func (p path) subCommands() string {
	var names []string
	for _, spec := range p.last().spec.children {
		if !spec.Hidden {
			names = append(names, spec.Name)
		}
	}
	return strings.Join(names, " ")
}
