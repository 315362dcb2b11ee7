// Command proxygen generates proxy shells for the types listed in proxygen.toml
// or named on the command line.
//
// Usage:
//
//	proxygen gen                                # every [[proxy]] in proxygen.toml
//	proxygen gen --package ./store --base Store # one shell, ad hoc
//	proxygen list                               # show surfaces and file status
//	proxygen watch                              # regenerate on source changes
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/interpose/manifest"
	"github.com/chazu/interpose/proxygen"
)

var log = commonlog.GetLogger("proxygen.cmd")

// options are the flags shared by every subcommand.
type options struct {
	dir        string
	verbosity  int
	pkg        string
	base       string
	name       string
	output     string
	interfaces []string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the root command for proxygen.
func newRootCmd() *cobra.Command {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "proxygen",
		Short: "Generate proxy shells for package proxy",
		Long: `proxygen writes the method adapters that let proxy.CreateProxy build proxies
of a type. Shells are written into the package that defines the type and
register themselves when that package is initialized.

Targets come from proxygen.toml, found by walking up from --dir, unless
--base is given.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(opts.verbosity, nil)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&opts.dir, "dir", "C", ".", "Directory to resolve proxygen.toml and packages from")
	flags.CountVarP(&opts.verbosity, "verbose", "v", "Increase log verbosity")
	flags.StringVar(&opts.pkg, "package", ".", "Package of the base type (with --base)")
	flags.StringVar(&opts.base, "base", "", "Generate a single shell for this type instead of reading proxygen.toml")
	flags.StringVar(&opts.name, "name", "", "Shell type name (with --base)")
	flags.StringVar(&opts.output, "output", "", "Output file name (with --base)")
	flags.StringSliceVar(&opts.interfaces, "interface", nil, "Additional interface to implement (with --base, repeatable)")

	rootCmd.AddCommand(newGenCmd(opts), newListCmd(opts), newWatchCmd(opts))
	return rootCmd
}

// plan resolves the requests to work on and the generation settings.
func (o *options) plan() ([]proxygen.Request, *manifest.Manifest, error) {
	if o.base != "" {
		return []proxygen.Request{{
			Package:    o.pkg,
			Base:       o.base,
			Name:       o.name,
			Interfaces: o.interfaces,
			Output:     o.output,
			Dir:        o.dir,
		}}, nil, nil
	}

	m, err := manifest.FindAndLoad(o.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("loading manifest: %w", err)
	}
	if m == nil {
		return nil, nil, fmt.Errorf("no %s found and no --base given", manifest.FileName)
	}
	if len(m.Proxies) == 0 {
		return nil, nil, fmt.Errorf("no [[proxy]] entries in %s", m.Dir)
	}
	log.Debugf("loaded %d entries from %s", len(m.Proxies), m.Dir)
	return m.Requests(), m, nil
}
