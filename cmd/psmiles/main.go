package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/plan-systems/klog"

	"github.com/2x3systems/psmiles/pypsm"
	_ "github.com/go-python/gpython/stdlib"
)

// replPrelude binds the notation module as "psmiles" in the REPL namespace.
const replPrelude = `
import _psmiles as psmiles
print("psmiles", psmiles.LIB_VERSION, "- try: psmiles.Parse('A-B(C)-D').Neighbors(2)")
`

const usage = `usage:
  psmiles [flags] run [script.py]        runs a gpython script, or the REPL if none is given
  psmiles [flags] check [file|-]         validates one notation per line and prints a YAML report
`

func main() {

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	configFile := flag.String("config", "", "config file (default: psmiles.yaml in . or ~/.psmiles)")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	var err error
	switch flag.Arg(0) {
	case "run":
		err = runPython(flag.Arg(1))
	case "check":
		err = check(*configFile, flag.Arg(1))
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		klog.Errorf("%s: %v", flag.Arg(0), err)
	}
	klog.Flush()
	if err != nil {
		os.Exit(1)
	}
}

func check(configFile, pathname string) error {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return err
	}

	var in io.Reader = os.Stdin
	if pathname != "" && pathname != "-" {
		file, err := os.Open(pathname)
		if err != nil {
			return err
		}
		defer file.Close()
		in = file
	}

	_, err = runCheck(context.Background(), in, os.Stdout, cfg)
	return err
}

// runPython runs the given script with the _psmiles module available, or starts the REPL if pathname is empty.
func runPython(pathname string) error {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	if pathname == "" {
		replCtx := repl.New(ctx)
		if _, err := py.RunSrc(ctx, replPrelude, "<psmiles>", replCtx.Module); err != nil {
			py.TracebackDump(err)
			return err
		}
		cli.RunREPL(replCtx)
		return nil
	}

	klog.V(2).Infof("running %q with _psmiles %s", pathname, pypsm.LIB_VERSION)
	start := time.Now()
	if _, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil); err != nil {
		py.TracebackDump(err)
		return err
	}
	klog.V(2).Infof("%q finished in %v", pathname, time.Since(start))
	return nil
}
