// ABOUTME: twospace command: runs driver programs on a two-space collector
// ABOUTME: Prints heap dumps between steps and optionally a retained-size report

package main

import (
	"fmt"
	"os"

	"github.com/fulldump/goconfig"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	_ "github.com/tliron/commonlog/simple"

	"github.com/prateek/twospace"
	"github.com/prateek/twospace/configuration"
)

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", twospace.Version)
		return
	}

	if c.ShowConfig {
		json.MarshalWrite(os.Stdout, c, jsontext.WithIndent("    "))
		fmt.Println()
	}

	if err := run(c, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "twospace:", err)
		os.Exit(1)
	}
}
