//go:build ebiten

package main

import (
	"flag"
	"os"

	"mazes/internal/app"
	"mazes/internal/session"
	_ "mazes/internal/sims/lifelike"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	log, err := app.NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		flag.Usage()
		os.Exit(2)
	}

	s, err := session.New(cfg.Width, cfg.Height,
		session.WithSim(cfg.Sim),
		session.WithLogger(log),
		session.WithBatch(cfg.Batch),
		session.WithWorkers(cfg.Workers),
	)
	if err != nil {
		log.WithError(err).Fatal("cannot create grid")
	}
	if cfg.Rule != "" {
		if err := s.SelectRule(cfg.Rule); err != nil {
			log.WithError(err).Fatal("bad rule")
		}
	}
	if err := s.SelectFinder(cfg.Finder); err != nil {
		log.WithError(err).Fatal("bad finder")
	}

	if err := app.Run(app.New(s, cfg, log), cfg); err != nil {
		log.Fatal(err)
	}
}
