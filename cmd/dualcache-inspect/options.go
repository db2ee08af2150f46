package main

import (
	"flag"
	"time"
)

// options holds the parsed command-line flags for dualcache-inspect.
type options struct {
	target           string
	watch            bool
	interval         time.Duration
	json             bool
	heapProfile      string
	goroutineProfile string
	version          bool
}

func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.target, "target", "http://localhost:8080", "base URL of the process exposing /debug/dualcache/snapshot")
	flag.BoolVar(&opts.watch, "watch", false, "poll the snapshot endpoint repeatedly instead of exiting after one fetch")
	flag.DurationVar(&opts.interval, "interval", 2*time.Second, "polling interval used with -watch")
	flag.BoolVar(&opts.json, "json", false, "print the raw JSON snapshot instead of a formatted summary")
	flag.StringVar(&opts.heapProfile, "heap-profile", "", "download /debug/pprof/heap to this path and exit")
	flag.StringVar(&opts.goroutineProfile, "goroutine-profile", "", "download /debug/pprof/goroutine to this path and exit")
	flag.BoolVar(&opts.version, "version", false, "print the build version and exit")
	flag.Parse()
	return opts
}
