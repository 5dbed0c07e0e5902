package main

import (
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

	lex := es5.NewLexer(string(src), *futureReserved)
	for {
		tok := lex.Next()
		fmt.Println(tok)
		if tok.Type == es5.EOF || tok.Type == es5.ERROR {
			break
		}
	}
	if err := lex.Err(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
