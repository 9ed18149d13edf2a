package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"api-commonizer/internal/pkg/common"
	"api-commonizer/internal/pkg/processors"
	apic "api-commonizer/pkg"
)

func main() {
	homeDir, _ := os.UserHomeDir()
	defaultCacheDir := filepath.Join(homeDir, ".api-commonizer")

	out := flag.String("out", filepath.Join("build", processors.ManifestFileName), "output file path")
	cacheDir := flag.String("cache", defaultCacheDir, "target description cache directory")
	upgrade := flag.Bool("upgrade", false, "upgrade cached target descriptions")
	showVersion := flag.Bool("version", false, "show version")
	flag.Parse()

	if *showVersion {
		fmt.Printf("api commonizer version: %s\n", processors.Version)
		return
	}

	log := &common.LogWriter{}

	if len(flag.Args()) == 0 {
		log.Err(common.NewSystemError(fmt.Errorf(
			"no target descriptions, run as `commonizer <path-or-url> <path-or-url> ...`")))
	} else {
		err := apic.Commonize(flag.Args(), *out, *cacheDir, *upgrade, log)
		if err != nil {
			log.Err(err)
		}
	}
	failed := log.HasErrors()
	log.Flush(os.Stdout)

	if failed {
		os.Exit(1)
	}
}
