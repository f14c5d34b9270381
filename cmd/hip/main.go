// hip - Hip document tool
//
// Usage:
//
//	hip fmt [-indent N] [file]        Re-encode a document canonically
//	hip check [file]                  Decode only; exit status reports validity
//	hip tokens [file]                 Print the token stream
//	hip to-json [-indent N] [file]    Convert Hip to JSON
//	hip from-json [-indent N] [file]  Convert JSON to Hip
//	hip to-yaml [-indent N] [file]    Convert Hip to YAML
//	hip from-yaml [-indent N] [file]  Convert YAML to Hip
//	hip from-toml [-indent N] [file]  Convert TOML to Hip
//	hip version                       Print version info
//
// Key order is kept in every direction. If no file is given, reads from
// stdin. An indent of 0 indents with tabs where the output format allows.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Python3pkg/hip"
	"golang.org/x/term"
)

const version = "0.1.0"

var errUsage = errors.New("usage")

func main() {
	log.SetFlags(0)
	log.SetPrefix("hip: ")

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	err := run(os.Args[1], os.Args[2:], os.Stdin, os.Stdout)
	if errors.Is(err, errUsage) {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `usage: hip <command> [-indent N] [file]

commands:
  fmt        re-encode a document canonically
  check      decode only; exit status reports validity
  tokens     print the token stream
  to-json    convert Hip to JSON
  from-json  convert JSON to Hip
  to-yaml    convert Hip to YAML
  from-yaml  convert YAML to Hip
  from-toml  convert TOML to Hip
  version    print version info
`)
}

// commands maps each converting subcommand to its implementation. Every
// command receives the raw input, the file name for messages and the
// -indent flag.
var commands = map[string]func(data []byte, name string, indent int) ([]byte, error){
	"fmt":       reformat,
	"check":     check,
	"tokens":    dumpTokens,
	"to-json":   hipToJSON,
	"from-json": jsonToHip,
	"to-yaml":   hipToYAML,
	"from-yaml": yamlToHip,
	"from-toml": tomlToHip,
}

// run executes one subcommand. It is separate from main so tests can drive
// it with in-memory streams.
func run(cmd string, args []string, stdin io.Reader, stdout io.Writer) error {
	switch cmd {
	case "version", "-v", "--version":
		fmt.Fprintf(stdout, "hip %s\n", version)
		return nil
	case "help", "-h", "--help":
		printUsage(stdout)
		return nil
	}

	convert, ok := commands[cmd]
	if !ok {
		return fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}

	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	indent := fs.Int("indent", 4, "spaces per nesting level, 0 for tabs")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w", cmd, err)
	}
	if fs.NArg() > 1 {
		return fmt.Errorf("%s: too many arguments: %w", cmd, errUsage)
	}

	name := fs.Arg(0)
	data, err := readInput(name, stdin)
	if err != nil {
		return err
	}
	out, err := convert(data, name, *indent)
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

// readInput reads the named file, or stdin when name is empty or "-".
// An interactive stdin is refused rather than waited on.
func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name != "" && name != "-" {
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		return data, nil
	}

	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return nil, fmt.Errorf("no input file and stdin is a terminal: %w", errUsage)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

func displayName(name string) string {
	if name == "" || name == "-" {
		return "<stdin>"
	}
	return name
}

// encodeHip renders v with a trailing newline. Mappings already end with
// one; scalars, flat lists and object lists do not.
func encodeHip(v hip.Value, indent int) ([]byte, error) {
	out, err := hip.MarshalIndent(v, indent)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

func reformat(data []byte, name string, indent int) ([]byte, error) {
	v, err := hip.UnmarshalFile(data, name)
	if err != nil {
		return nil, err
	}
	return encodeHip(v, indent)
}

func check(data []byte, name string, _ int) ([]byte, error) {
	if _, err := hip.UnmarshalFile(data, name); err != nil {
		return nil, err
	}
	return []byte(displayName(name) + ": ok\n"), nil
}

func dumpTokens(data []byte, _ string, _ int) ([]byte, error) {
	tokens, err := hip.Tokenize(string(data))
	if err != nil {
		return nil, err
	}
	var out []byte
	for _, t := range tokens {
		out = fmt.Appendf(out, "%d\t%d\t%-6s %s\n", t.Line+1, t.Indent, t.Kind, t.Text)
	}
	return out, nil
}
