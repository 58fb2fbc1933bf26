package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/maciej-vess/business-food-truck/internal/catalog"
	"github.com/maciej-vess/business-food-truck/internal/entropy"
	"github.com/maciej-vess/business-food-truck/internal/game"
	"github.com/maciej-vess/business-food-truck/internal/ledger"
)

var (
	simStrategy string
	simWeather  string
	simSeed     int64
)

// NewSimulateCommand plays a whole session headlessly with a scripted
// strategy and prints the daily ledger plus a final recap.
func NewSimulateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a scripted session and print the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(simStrategy, simWeather, simSeed)
		},
	}

	cmd.Flags().StringVar(&simStrategy, "strategy", "mixed",
		"Strategy: foodtruck, trolley, or mixed")
	cmd.Flags().StringVar(&simWeather, "weather", "",
		"Pin the session weather (Słonecznie, Deszczowo, Pochmurno)")
	cmd.Flags().Int64Var(&simSeed, "seed", 0,
		"Seed for the weather draw (0 = random)")

	return cmd
}

func runSimulation(strategy, weather string, seed int64) error {
	switch strategy {
	case "foodtruck", "trolley", "mixed":
	default:
		return fmt.Errorf("unknown strategy %q", strategy)
	}

	ldb, err := ledger.Open("")
	if err != nil {
		return err
	}
	defer ldb.Close()

	opts := game.Options{Recorder: ldb}
	if weather != "" {
		w, ok := catalog.ParseWeather(weather)
		if !ok {
			return fmt.Errorf("unknown weather %q", weather)
		}
		opts.Weather = &w
	} else if seed != 0 {
		opts.Entropy = entropy.NewSeeded(seed)
	}

	session := game.New(opts)
	fmt.Printf("Session %s — weather: %s\n\n", session.ID(), session.Weather())

	reportBought := false
	// Bounded by the day counter, but guard against a scripting bug.
	for steps := 0; !session.IsOver() && steps < 4*game.DefaultMaxDays; steps++ {
		snap := session.GetSnapshot()

		switch {
		case snap.FoodTruckRemaining > 0:
			result, err := session.Advance()
			if err != nil {
				return err
			}
			printResult(result)

		case snap.TrolleyRemaining > 0:
			loc, prod := rotatingPair(snap.Day)
			results, err := session.Submit(game.Decision{
				Kind:     game.DecisionTrolleyDailyPick,
				Location: loc.String(),
				Product:  prod.String(),
			})
			if err != nil {
				return err
			}
			printResults(results)

		default:
			results, err := session.Submit(openingMove(strategy, snap.Day, &reportBought))
			if err != nil {
				return err
			}
			printResults(results)
		}
	}

	return printRecap(session, ldb)
}

// openingMove picks the next top-level decision for a strategy.
func openingMove(strategy string, day int, reportBought *bool) game.Decision {
	if strategy != "trolley" && !*reportBought {
		*reportBought = true
		return game.Decision{Kind: game.DecisionReport}
	}

	loc, prod := rotatingPair(day)
	switch strategy {
	case "foodtruck":
		// Beach ice cream is the strongest standing pairing.
		return game.Decision{
			Kind:     game.DecisionFoodTruckStart,
			Location: catalog.LocPlaza.String(),
			Product:  catalog.ProdLody.String(),
		}
	case "trolley":
		return game.Decision{
			Kind:     game.DecisionTrolleyStart,
			Location: loc.String(),
			Product:  prod.String(),
		}
	default: // mixed: alternate commitments by week
		if (day/7)%2 == 0 {
			return game.Decision{
				Kind:     game.DecisionFoodTruckStart,
				Location: catalog.LocCentrum.String(),
				Product:  catalog.ProdShake.String(),
			}
		}
		return game.Decision{
			Kind:     game.DecisionTrolleyStart,
			Location: loc.String(),
			Product:  prod.String(),
		}
	}
}

// rotatingPair cycles through the catalog so trolley picks vary by day.
func rotatingPair(day int) (catalog.Location, catalog.Product) {
	locs := catalog.Locations()
	prods := catalog.Products()
	return locs[day%len(locs)], prods[day%len(prods)]
}

func printResults(results []game.DailyResult) {
	for _, r := range results {
		printResult(r)
	}
}

func printResult(r game.DailyResult) {
	pair := "—"
	if r.Location != "" {
		pair = fmt.Sprintf("%s / %s", r.Location, r.Product)
	}
	fmt.Printf("day %2d  %-10s  %-28s sold %3d  profit %7s  cash %s\n",
		r.Day, r.Type, pair, r.UnitsSold,
		humanize.Comma(int64(r.Profit)), humanize.Comma(int64(r.CashAfter)))
}

func printRecap(session *game.Session, ldb *ledger.DB) error {
	summary := session.FinalSummary()

	net := humanize.Comma(int64(summary.Cash - game.StartingCash))
	if summary.Cash >= game.StartingCash {
		net = "+" + net
	}
	fmt.Printf("\nGame over after %d recorded days. Final cash: %s zł (net %s)\n",
		len(summary.History), humanize.Comma(int64(summary.Cash)), net)

	modeTotals, err := ldb.ModeTotals()
	if err != nil {
		return err
	}
	fmt.Println("\nBy decision type:")
	for _, mt := range modeTotals {
		fmt.Printf("  %-10s  %2d days  %4d units  %8s zł\n",
			mt.Type, mt.Days, mt.UnitsSold, humanize.Comma(int64(mt.Profit)))
	}

	pairTotals, err := ldb.PairTotals()
	if err != nil {
		return err
	}
	fmt.Println("\nTop pairings:")
	for i, pt := range pairTotals {
		if i >= 5 {
			break
		}
		fmt.Printf("  %-10s %-15s %2d days  %4d units  %8s zł\n",
			pt.Location, pt.Product, pt.Days, pt.UnitsSold, humanize.Comma(int64(pt.Profit)))
	}

	best, err := ldb.BestDay()
	if err != nil {
		return err
	}
	if best != nil {
		fmt.Printf("\nBest day: %d (%s at %s, %d units, %s zł)\n",
			best.Day, best.Product, best.Location, best.UnitsSold,
			humanize.Comma(int64(best.Profit)))
	}
	return nil
}
