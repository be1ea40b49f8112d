package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/mwijesinghe/rpali/cse"
)

// repl starts interactive mode: every line is run through the full
// pipeline and its value printed.
func repl() {
	pterm.Info.Println("RPAL interpreter, interactive mode")
	rl, err := readline.New("rpali> ")
	if err != nil {
		fail(err)
	}
	defer rl.Close()
	tracer().Infof("Quit with <ctrl>D")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		result, err := run(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		fmt.Println(cse.FormatValue(result))
	}
	println("Good bye!")
}
