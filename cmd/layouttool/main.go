// layouttool generates tank layouts without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Faultbox/aquarium/internal/logger"
	"github.com/Faultbox/aquarium/internal/scene"
)

func main() {
	defer logger.Sync()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate", "gen":
		cmdGenerate(args)
	case "ranges":
		cmdRanges(args)
	case "validate", "check":
		cmdValidate(args)
	case "manifest":
		cmdManifest(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`layouttool - aquarium layout utility

Usage:
  layouttool <command> [options]

Commands:
  generate [-seed N] [-manifest file] [-format table|yaml] [-n N]
                                     Place every object and print the slots
  ranges [-seed N] [-manifest file]  Print the index range of each category
  validate [manifest]                Check a manifest file
  manifest                           Print the built-in manifest

Examples:
  layouttool generate -seed 42
  layouttool generate -seed 42 -format yaml > tank.yaml
  layouttool ranges -manifest reef.yaml
  layouttool manifest > reef.yaml`)
}

type planFlags struct {
	seed     *int64
	manifest *string
	debug    *bool
}

func addPlanFlags(fs *flag.FlagSet) planFlags {
	return planFlags{
		seed:     fs.Int64("seed", 42, "Layout seed"),
		manifest: fs.String("manifest", "", "Manifest file (default: built-in)"),
		debug:    fs.Bool("debug", false, "Log placement details to stderr"),
	}
}

func (pf planFlags) plan() *scene.Plan {
	if *pf.debug {
		if err := logger.InitWithFileConfig("debug", logger.FileConfig{}, true); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exit(1)
		}
	}

	m, err := scene.LoadManifest(*pf.manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
	plan, err := scene.PlanScene(m, *pf.seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
	return plan
}

func cmdGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	pf := addPlanFlags(fs)
	format := fs.String("format", "table", "Output format: table or yaml")
	limit := fs.Int("n", 0, "Limit table output to N slots (0 = all)")
	fs.Parse(args)

	plan := pf.plan()

	var err error
	switch *format {
	case "table":
		err = plan.WriteTable(os.Stdout, *limit)
	case "yaml":
		err = plan.WriteYAML(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format: %s\n", *format)
		exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}

	if err := plan.WriteSkipped(os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func cmdRanges(args []string) {
	fs := flag.NewFlagSet("ranges", flag.ExitOnError)
	pf := addPlanFlags(fs)
	fs.Parse(args)

	if err := pf.plan().WriteRanges(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

func cmdValidate(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Parse(args)

	path := ""
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}

	m, err := scene.LoadManifest(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
	if path == "" {
		path = "built-in manifest"
	}
	fmt.Printf("%s: ok\n", path)
	fmt.Printf("  models:   %d\n", len(m.Models))
	fmt.Printf("  swimmers: %d\n", len(m.Swimmers.Models))
	fmt.Printf("  rocks:    %d (+%d seeds)\n", m.Rocks.Count, len(m.Rocks.Seeds))
	fmt.Printf("  corals:   %d groups\n", len(m.Corals.Groups))
	fmt.Printf("  fixtures: %d\n", len(m.Fixtures))
}

func cmdManifest(args []string) {
	fs := flag.NewFlagSet("manifest", flag.ExitOnError)
	fs.Parse(args)

	if _, err := os.Stdout.Write(scene.DefaultManifestYAML()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exit(1)
	}
}

// exit flushes the logger before leaving, since os.Exit skips deferred calls.
func exit(code int) {
	logger.Sync()
	os.Exit(code)
}
