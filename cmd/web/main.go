package main

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/dnikiforova/fishka"
	"github.com/dnikiforova/fishka/config"
	"github.com/dnikiforova/fishka/results"
	"github.com/dnikiforova/fishka/server"
)

func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("could not load config")
	}

	resultsStore, err := results.NewStore(cfg.ResultsPath)
	if err != nil {
		log.WithError(err).Fatal("could not open results store")
	}
	defer resultsStore.Close()

	s := server.NewServer(fishka.NewInMemoryGameStore(), resultsStore, log)
	s.Seed = cfg.Seed

	log.WithField("addr", cfg.Addr).Info("listening")
	log.Fatal(http.ListenAndServe(cfg.Addr, s))
}
