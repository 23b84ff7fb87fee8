package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"capture/internal/server"
	"capture/internal/webroot"
)

const (
	defaultWebRoot = "/tmp"
	defaultPort    = 3000
)

var errNoMode = errors.New("no capture mode selected")

type options struct {
	live    bool
	webRoot string
	port    int
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("capture", flag.ContinueOnError)
	fs.BoolVar(&opts.live, "h", false, "stream live as HLS from the built-in web server")
	fs.StringVar(&opts.webRoot, "r", defaultWebRoot, "webroot the HLS manifest and segments are written to")
	fs.IntVar(&opts.port, "p", defaultPort, "port the web server listens on")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: capture -h [-r webroot] [-p port]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if !opts.live {
		fs.Usage()
		return opts, errNoMode
	}
	return opts, nil
}

// run serves webroot until a value arrives on stop, then shuts the server
// down. The stopped server is returned so callers can inspect it.
func run(cfg server.Config, stop <-chan os.Signal) (*server.Server, error) {
	srv, err := server.Serve(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("Webserver running at http://%s (serving %s from %s)", srv.Addr(), webroot.ManifestName, cfg.WebRoot)

	<-stop

	log.Println("Shutting down webserver...")
	if err := srv.Stop(); err != nil {
		return srv, fmt.Errorf("stop server: %w", err)
	}
	log.Println("Server gracefully stopped")
	return srv, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	_, err = run(server.Config{Port: opts.port, WebRoot: opts.webRoot}, sigChan)
	if err != nil {
		log.Fatalf("Error running server: %v", err)
	}
}
