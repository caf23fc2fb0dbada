package main

import (
	"fmt"
	"os"

	"github.com/brimdata/colmat/cmd/colmat/cat"
	"github.com/brimdata/colmat/cmd/colmat/fetch"
	"github.com/brimdata/colmat/cmd/colmat/root"
	_ "github.com/lib/pq"
)

func main() {
	colmat := root.Colmat
	colmat.Add(fetch.Cmd)
	colmat.Add(cat.Cmd)
	if err := colmat.ExecRoot(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
