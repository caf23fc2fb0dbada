package charm

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kr/text"
	"golang.org/x/term"
)

const tab = "    "

// lineWidth returns the width to wrap help text to, following the
// terminal on stderr when there is one.
func lineWidth() int {
	if w, _, err := term.GetSize(int(os.Stderr.Fd())); err == nil && w > 40 {
		return w - 4
	}
	return 76
}

func displayHelp(w io.Writer, p path) {
	spec := p.last().spec
	section(w, "NAME", p.pathname()+" - "+spec.Short)
	section(w, "USAGE", spec.Usage)
	var lines []string
	for _, inst := range p {
		lines = append(lines, inst.options()...)
	}
	if len(lines) == 0 {
		lines = []string{"no flags for this command"}
	}
	section(w, "OPTIONS", strings.Join(lines, "\n"))
	var cmds []string
	for _, child := range spec.children {
		if !child.Hidden {
			cmds = append(cmds, child.Name+" - "+child.Short)
		}
	}
	if len(cmds) > 0 {
		section(w, "COMMANDS", strings.Join(cmds, "\n"))
	}
	if long := strings.TrimSpace(spec.Long); long != "" {
		section(w, "DESCRIPTION", wrap(long))
	}
}

func section(w io.Writer, heading, body string) {
	fmt.Fprintf(w, "%s\n%s\n\n", heading, text.Indent(body, tab))
}

// wrap fills each paragraph of body to lineWidth.
func wrap(body string) string {
	paragraphs := strings.Split(body, "\n\n")
	for i, p := range paragraphs {
		paragraphs[i] = text.Wrap(strings.Join(strings.Fields(p), " "), lineWidth()-len(tab))
	}
	return strings.Join(paragraphs, "\n\n")
}
