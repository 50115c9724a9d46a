package main

import (
	"flag"
	"os"

	"github.com/plan-systems/klog"
)

func main() {

	flag.Set("logtostderr", "true")
	flag.Set("v", "2")

	fset := flag.NewFlagSet("", flag.ContinueOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	fset.Set("v", "2")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	configPathname := flag.String("config", "", "YAML run config (problem, qubo, readout, catalog)")
	flag.Parse()

	exitCode := 0
	pathname := flag.Arg(0)
	if len(*configPathname) > 0 || len(pathname) == 0 {
		if err := runConfig(*configPathname); err != nil {
			klog.Errorf("run failed: %v", err)
			exitCode = 1
		}
	} else {
		go_gpython(pathname)
	}

	klog.Flush()
	os.Exit(exitCode)
}
