package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"ouisvc/config"
	"ouisvc/internal/oui"
	"ouisvc/server"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case "lookup":
		os.Exit(runLookup(os.Args[2:]))
	default:
		usage()
		os.Exit(1)
	}
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cfgPath := fs.String("config", "", "config file (default: ouisvc.yaml in ./ or /etc/ouisvc)")
	fs.Parse(args)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}

	app := &server.App{}
	app.Initialize(cfg)
	return app.Run()
}

// runLookup is the one-shot mode: load a local registry file, resolve each
// MAC given on the command line, print the organization.
func runLookup(args []string) int {
	fs := flag.NewFlagSet("lookup", flag.ExitOnError)
	regPath := fs.String("registry", "oui.csv", "registry CSV file")
	delim := fs.String("delimiter", ",", "registry field delimiter")
	skip := fs.Bool("skip-malformed", false, "skip malformed rows instead of aborting")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "lookup: at least one MAC address required")
		return 1
	}

	opts := oui.LoadOptions{SkipMalformed: *skip}
	if *delim != "" {
		opts.Comma = rune((*delim)[0])
	}
	ix, _, err := oui.LoadFile(*regPath, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	code := 0
	for _, mac := range fs.Args() {
		res, err := ix.Resolve(mac)
		switch {
		case errors.Is(err, oui.ErrInvalidMAC):
			fmt.Println("Invalid MAC Address.")
			code = 1
		case err != nil:
			fmt.Fprintln(os.Stderr, err)
			code = 2
		case !res.Found:
			fmt.Println("No match.")
		case fs.NArg() > 1:
			fmt.Printf("%-18s %s\n", mac, res.Organization)
		default:
			fmt.Println(res.Organization)
		}
	}
	return code
}

func usage() {
	fmt.Print(`ouisvc — MAC address vendor resolution

Usage:
  ouisvc serve  [-config ouisvc.yaml]
  ouisvc lookup [-registry oui.csv] [-delimiter ,] [-skip-malformed] MAC...
`)
}
