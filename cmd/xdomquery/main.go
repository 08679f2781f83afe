// Command xdomquery reads an XML file and runs one XPath query against
// it, printing the result to stdout. Flag parsing uses the standard
// library's flag package rather than a CLI framework, since a
// two-flag, single-verb demo binary has no subcommands to register.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/basilisk-labs/xdom"
)

func main() {
	xpath := flag.String("xpath", "", "XPath expression to evaluate")
	file := flag.String("file", "", "path to the XML document to query")
	flag.Parse()

	if *xpath == "" || *file == "" {
		fmt.Fprintln(os.Stderr, "usage: xdomquery -file DOC.xml -xpath EXPR")
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xdomquery: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	doc, err := xdom.Parse(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xdomquery: %v\n", err)
		os.Exit(1)
	}

	root, ok := doc.RootElement()
	if !ok {
		fmt.Fprintln(os.Stderr, "xdomquery: document has no root element")
		os.Exit(1)
	}

	result, err := root.EvalXPath(*xpath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xdomquery: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result.String())
}
