package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/YongERong/wth-caifan-lovers/database"
	"github.com/YongERong/wth-caifan-lovers/pkg/swipe"
)

var swipeCommand = &cli.Command{
	Name:  "swipe",
	Usage: "swipe through the activity deck from the terminal",
	Description: `Commands read from stdin, one per line:
   l          like the top card
   p          pass on the top card
   d DX DY    drag the top card by DX,DY pixels and release
   r          restart from the first card
   q          quit`,
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "user", Usage: "swiper id", Required: true},
	},
	Action: runSwipe,
}

func runSwipe(c *cli.Context) error {
	if err := database.Initialize(cfg.Database, log); err != nil {
		return err
	}
	defer database.Close(log)

	store, err := newSwipeStore(cfg)
	if err != nil {
		return err
	}
	activities, err := database.ListActivities(database.DB)
	if err != nil {
		return err
	}
	ids := swipe.IDMapFromActivities(activities)
	if ids.Len() < len(activities) {
		fmt.Fprintf(os.Stderr, "%d activities have no legacy number; swipes on them cannot be saved\n", len(activities)-ids.Len())
	}

	advanced := make(chan swipe.State, 1)
	opts := []swipe.Option{
		swipe.WithResolver(ids.Resolver()),
		swipe.WithLogger(log),
		swipe.WithNotifier(func(err error) {
			fmt.Fprintf(os.Stderr, "Failed to save swipe: %v\n", err)
		}),
		swipe.WithOnAdvance(func(s swipe.State) { advanced <- s }),
	}
	if cfg.Swipe.Threshold > 0 {
		opts = append(opts, swipe.WithThreshold(cfg.Swipe.Threshold))
	}
	if cfg.Swipe.Animation > 0 {
		opts = append(opts, swipe.WithAnimation(cfg.Swipe.Animation))
	}
	deck := swipe.NewController(c.String("user"), activities, store, opts...)

	return playDeck(c.Context, deck, advanced, c.App.Reader, c.App.Writer)
}

// playDeck reads deck commands from in until q or EOF. advanced must receive the
// state after every committed card has left.
func playDeck(ctx context.Context, deck *swipe.Controller, advanced <-chan swipe.State, in io.Reader, out io.Writer) error {
	printCard(out, deck)

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		if deck.State().Done && (fields[0] == "l" || fields[0] == "p" || fields[0] == "d") {
			printCard(out, deck)
			continue
		}

		committed := false
		switch fields[0] {
		case "l":
			committed = deck.Like(ctx)
		case "p":
			committed = deck.Pass(ctx)
		case "d":
			dx, dy, err := parseDrag(fields[1:])
			if err != nil {
				fmt.Fprintln(out, err)
				continue
			}
			deck.Down(swipe.Point{})
			deck.Move(swipe.Point{X: dx, Y: dy})
			fmt.Fprintln(out, deck.State().Transform.CSS())
			committed = deck.Up(ctx)
			if !committed {
				fmt.Fprintln(out, "sprang back")
			}
		case "r":
			deck.Restart()
			printCard(out, deck)
			continue
		case "q":
			return nil
		default:
			fmt.Fprintf(out, "unknown command %q\n", fields[0])
			continue
		}

		if committed {
			fmt.Fprintln(out, deck.State().Transform.CSS())
			<-advanced
			printCard(out, deck)
		}
	}
	return scanner.Err()
}

func parseDrag(args []string) (float64, float64, error) {
	if len(args) != 2 {
		return 0, 0, errors.New("usage: d DX DY")
	}
	dx, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid DX: %w", err)
	}
	dy, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid DY: %w", err)
	}
	return dx, dy, nil
}

func printCard(out io.Writer, deck *swipe.Controller) {
	state := deck.State()
	card, err := deck.Current()
	if err != nil {
		fmt.Fprintln(out, "No more activities. Type r to start over.")
		return
	}
	fmt.Fprintf(out, "[%d/%d] %s (%s, %s)\n", state.Index+1, state.Total, card.Title, card.Category, card.Difficulty)
}
