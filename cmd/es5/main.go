package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/midbel/es5"
)

func main() {
	printResolution := flag.Bool("print-resolution", false, "render with the resolver-annotated printer")
	futureReserved := flag.Bool("future-reserved", true, "lex the future-reserved word list (class, const, let, ...) as reserved words")
	flag.Parse()

	if err := run(flag.Arg(0), *printResolution, *futureReserved); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(file string, printResolution, futureReserved bool) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	prog, err := es5.ParseProgram(string(src), futureReserved)
	if err != nil {
		return err
	}

	var p *es5.Printer
	if printResolution {
		p = es5.NewResolverPrinter(os.Stdout, es5.Resolve(prog))
	} else {
		p = es5.NewPrinter(os.Stdout)
	}
	return p.Print(prog)
}
