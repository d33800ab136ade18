package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"time"

	"git.autistici.org/ai3/tools/masktr/convapi"
	"git.autistici.org/ai3/tools/masktr/history"
	"git.autistici.org/ai3/tools/masktr/util"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

type serveCommand struct {
	addr  string
	dburi string
}

func (c *serveCommand) Name() string     { return "serve" }
func (c *serveCommand) Synopsis() string { return "run the conversion API server" }
func (c *serveCommand) Usage() string {
	return `serve
        Run the conversion API server.

`
}

func (c *serveCommand) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", util.FlagDefault("addr", ":5020"), "`address` to listen on")
	f.StringVar(&c.dburi, "db", util.FlagDefault("db", ""), "`path` to the history database file (default: no history)")
}

func (c *serveCommand) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	return fatalErr(c.run(ctx))
}

func (c *serveCommand) run(ctx context.Context) error {
	var hist *history.Store
	if c.dburi != "" {
		sql, err := history.OpenDB(c.dburi)
		if err != nil {
			return err
		}
		defer sql.Close()
		hist = history.New(sql)
	}

	mux := http.NewServeMux()
	convapi.NewServer(hist).BuildAPI(mux)
	mux.Handle("/metrics", promhttp.Handler())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		server := &http.Server{
			Addr:              c.addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       900 * time.Second,
		}
		return runHTTPServerWithContext(ctx, server)
	})

	return g.Wait()
}

func init() {
	subcommands.Register(&serveCommand{}, "")
}

func runHTTPServerWithContext(ctx context.Context, server *http.Server) error {
	go func() {
		<-ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Printf("shutting down HTTP server")
		if err := server.Shutdown(ctx); err != nil {
			server.Close() // nolint: errcheck
		}
	}()

	log.Printf("starting HTTP server on %s", server.Addr)
	return server.ListenAndServe()
}
