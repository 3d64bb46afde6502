package cli

import (
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/npillmayer/schuko/schukonf/koanfadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/tyqn"
)

// loadConfig is a callback function used by cobra's initialization mechanism.
// Unfortunately we're not allowed a return value.
func loadConfig() {
	k := koanf.New(".") // '.' is hierarchy delimiter
	// We locate tyqn configuration with an application-key of 'TYQN' and
	// use NestedText-format (nt) for config-files
	konf := koanfadapter.New(k, "TYQN", []string{"nt"})
	konf.InitDefaults()
	if err := mergeFlags(konf); err != nil {
		tracing.Errorf(err.Error())
		tyqn.Exit(1)
	}
	if err := configureTracing(konf); err != nil {
		tracing.Errorf(err.Error())
		tyqn.Exit(1)
	}
	tyqn.Configuration = k // push the configuration to app-global scope
}

func mergeFlags(konf *koanfadapter.KConf) error {
	flags := rootCmd.PersistentFlags()
	err := konf.Koanf().Load(posflag.Provider(flags, ".", konf.Koanf()), nil)
	if err != nil {
		return err
	}
	// tyqn writes its document to stdout, so traces have to go elsewhere
	if logname := konf.GetString("logfile"); logname != "" && logname != "stderr" {
		if strings.Contains(logname, ":/") {
			konf.Set("tracing.destination", logname)
		} else {
			konf.Set("tracing.destination", "file://"+logname)
		}
	}
	return err
}

func configureTracing(konf *koanfadapter.KConf) error {
	if a := konf.GetString("tracing.adapter"); a != "" && a != "go" {
		tracing.Errorf("tracing adapter type '%s' currently not supported", a)
	}
	konf.Set("tracing.adapter", "go") // use Go builtin logging facilities
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(konf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return err
	}
	tracing.SetTraceSelector(trace2go.Selector())
	return nil
}
