package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	logging "github.com/ipfs/go-log/v2"
	"github.com/ipni/cidgen"
	"github.com/ipni/cidgen/metrics"
	"github.com/ipni/cidgen/server"
	"github.com/multiformats/go-multihash"
)

var (
	log = logging.Logger("cmd/cidgen")
)

func main() {
	listenAddr := flag.String("listenAddr", "0.0.0.0:40080", "The cidgen HTTP server listen address.")
	metricsAddr := flag.String("metricsAddr", "0.0.0.0:40081", "The cidgen metrics HTTP server listen address.")
	base := flag.String("base", "", "The default multibase of computed CIDs; either base32 or base58. Defaults to base32 when unset.")
	hashType := flag.String("hashType", "sha2-256", "The default hash algorithm of computed CIDs.")
	llvl := flag.String("logLevel", "info", "The logging level. Only applied if GOLOG_LOG_LEVEL environment variable is unset.")

	flag.Parse()

	if _, set := os.LookupEnv("GOLOG_LOG_LEVEL"); !set {
		_ = logging.SetLogLevel("*", *llvl)
	}

	if *base != "" {
		// Accepted as-is; an unrecognized base is only rejected once a CID
		// is requested.
		cidgen.SetDefaultBase(cidgen.Base(*base))
	}

	code, ok := multihash.Names[*hashType]
	if !ok {
		log.Fatalw("Unknown hash type.", "hashType", *hashType)
	}

	m, err := metrics.New(*metricsAddr)
	if err != nil {
		panic(err)
	}

	s, err := server.New(*listenAddr,
		server.WithMetrics(m),
		server.WithDefaultHashType(cidgen.HashAlgorithm(code)))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		panic(err)
	}
	if err := m.Start(ctx); err != nil {
		panic(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c
	log.Info("Terminating...")
	if err := s.Shutdown(ctx); err != nil {
		log.Warnw("Failure occurred while shutting down server.", "err", err)
	} else {
		log.Info("Shut down server successfully.")
	}
	if err := m.Shutdown(ctx); err != nil {
		log.Warnw("Failure occurred while shutting down metrics server.", "err", err)
	} else {
		log.Info("Shut down metrics server successfully.")
	}
}
