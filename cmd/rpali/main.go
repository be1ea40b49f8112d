package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/mwijesinghe/rpali/cse"
	"github.com/mwijesinghe/rpali/parse"
	"github.com/mwijesinghe/rpali/scanner"
	"github.com/mwijesinghe/rpali/stdform"
	"github.com/mwijesinghe/rpali/syntree"
)

func main() {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	astFlag := flag.Bool("ast", false, "print the abstract syntax tree and exit")
	stFlag := flag.Bool("st", false, "print the standardized tree and exit")
	interactive := flag.Bool("i", false, "start an interactive REPL")
	tlevel := flag.String("trace", "Error", "trace level [Debug|Info|Error]")
	flag.Parse()
	setTraceLevels(traceLevel(*tlevel))

	if *interactive {
		if *astFlag || *stFlag || flag.NArg() > 0 {
			fail(fmt.Errorf("-i takes no file and no tree dump flags"))
		}
		repl()
		return
	}
	if *astFlag && *stFlag {
		fail(fmt.Errorf("-ast and -st are mutually exclusive"))
	}
	if flag.NArg() != 1 {
		fail(fmt.Errorf("usage: rpali [-ast] [-st] <file>"))
	}
	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fail(err)
	}
	source := strings.TrimSpace(string(data))

	switch {
	case *astFlag:
		ast, err := parseSource(source)
		if err != nil {
			fail(err)
		}
		ast.Print(os.Stdout)
	case *stFlag:
		st, err := standardizeSource(source)
		if err != nil {
			fail(err)
		}
		st.Print(os.Stdout)
	default:
		result, err := run(source)
		if err != nil {
			fail(err)
		}
		fmt.Println("Output of the above program is:")
		fmt.Println(cse.FormatValue(result))
	}
}

func fail(err error) {
	pterm.Error.Println(err.Error())
	os.Exit(1)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

var traceKeys = []string{
	"rpali.scanner", "rpali.syntree", "rpali.parse",
	"rpali.stdform", "rpali.cse", "rpali.cli",
}

func setTraceLevels(l tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(l)
	}
}

func traceLevel(name string) tracing.TraceLevel {
	switch strings.ToLower(name) {
	case "debug":
		return tracing.LevelDebug
	case "info":
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

// --- Pipeline --------------------------------------------------------------

func parseSource(source string) (*syntree.Node, error) {
	toks, err := scanner.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return parse.Parse(toks)
}

func standardizeSource(source string) (*syntree.Node, error) {
	ast, err := parseSource(source)
	if err != nil {
		return nil, err
	}
	st, diags := stdform.Standardize(ast)
	for _, d := range diags {
		tracer().Errorf(d.Error())
	}
	return st, nil
}

func run(source string) (cse.Value, error) {
	st, err := standardizeSource(source)
	if err != nil {
		return nil, err
	}
	return cse.Evaluate(st)
}
