package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"

	_ "github.com/fine-structures/qubo.SDK/pyqubo"
	_ "github.com/go-python/gpython/stdlib"
)

const kREPLStartup = "lib/_REPL_startup.py"

func go_gpython(pathname string) {
	ctx := py.NewContext(py.DefaultContextOpts())

	var (
		err error
	)
	if pathname == "-" {
		replCtx := repl.New(ctx)

		if _, statErr := os.Stat(kREPLStartup); statErr == nil {
			_, err = py.RunFile(ctx, kREPLStartup, py.CompileOpts{}, replCtx.Module)
		}
		if err == nil {
			cli.RunREPL(replCtx)
		}

	} else {
		startTime := time.Now()
		fmt.Printf("<<<>>>   executing '%s'   <<<>>>\n", pathname)

		_, err = py.RunFile(ctx, pathname, py.CompileOpts{}, nil)

		if err == nil {
			elapsed := time.Since(startTime)
			fmt.Printf("<<<>>>   execution complete: %v   <<<>>>\n", elapsed)
		}

	}

	ctx.Close()
	<-ctx.Done()

	if err != nil {
		py.TracebackDump(err)
		log.Fatal(err)
	}

}
