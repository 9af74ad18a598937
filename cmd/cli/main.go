// Command cli plays a full game of Fishka between four AI seats and prints
// the narrated event log. Useful for watching the engine end to end.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/dnikiforova/fishka"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for the deal")
	flag.Parse()

	game := fishka.NewGame(fishka.GameOpts{
		Humans: map[fishka.Seat]bool{},
		Rng:    rand.New(rand.NewSource(*seed)),
	})

	if err := game.Start(); err != nil {
		logrus.WithError(err).Fatal("could not start game")
	}

	game.RunAITurns()

	snapshot := game.Snapshot(fishka.South)
	for _, event := range snapshot.Events {
		fmt.Println(event)
	}
	fmt.Printf("\nGame over in %d turns.\n", game.Turns())
}
