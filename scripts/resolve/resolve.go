package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/midbel/es5"
)

func main() {
	futureReserved := flag.Bool("future-reserved", true, "lex the future-reserved word list as reserved words")
	flag.Parse()
	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	prog, err := es5.ParseProgram(string(src), *futureReserved)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	resolution := es5.Resolve(prog)
	out := make(map[string]string, len(resolution))
	for id, v := range resolution {
		out[fmt.Sprint(id)] = v.String()
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "    ")
	e.Encode(out)
}
