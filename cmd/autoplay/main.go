// autoplay plays many games with a computer policy and reports the scores.
//
//	autoplay [--num-games n] [--threads t] [--player onemove] ...
//	autoplay seeds <n> <file>     write n random seeds for --seed-file
//	autoplay analyze <turnlog>    summarize an existing turn log
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/aucteraden/automatic"
	"github.com/domino14/aucteraden/config"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}
	level := zerolog.InfoLevel
	if cfg.GetBool(config.ConfigDebug) {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(output).Level(level).With().Timestamp().Logger()

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("autoplay-failed")
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	args := cfg.Args()
	if len(args) > 0 {
		switch args[0] {
		case "seeds":
			if len(args) != 3 {
				return fmt.Errorf("usage: autoplay seeds <n> <file>")
			}
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				return fmt.Errorf("number of seeds must be a positive integer")
			}
			seeds, err := automatic.GenerateSeeds(n)
			if err != nil {
				return err
			}
			if err := automatic.SaveSeeds(seeds, args[2]); err != nil {
				return err
			}
			log.Info().Int("n", n).Str("file", args[2]).Msg("wrote seeds")
			return nil
		case "analyze":
			if len(args) != 2 {
				return fmt.Errorf("usage: autoplay analyze <turnlog>")
			}
			report, err := automatic.AnalyzeLogFile(args[1])
			if err != nil {
				return err
			}
			fmt.Print(report)
			return nil
		default:
			return fmt.Errorf("unknown command %q", args[0])
		}
	}

	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())
	if fn := cfg.GetString(config.ConfigCPUProfile); fn != "" {
		f, err := os.Create(fn)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	turnLog := cfg.GetString(config.ConfigTurnLog)
	start := time.Now()
	r, err := automatic.StartCompVCompGames(ctx, cfg, cfg.GetInt(config.ConfigNumGames),
		cfg.GetInt(config.ConfigThreads), turnLog)
	if r == nil {
		return err
	}
	log.Info().Str("run", r.ID).Dur("elapsed", time.Since(start)).
		Int("completed", len(r.Completed())).Msg("run-finished")
	if serr := r.Summary.Fprint(os.Stdout); serr != nil {
		return serr
	}
	if err != nil {
		return err
	}
	if dbPath := cfg.GetString(config.ConfigResultsDB); dbPath != "" {
		if err := reportStored(dbPath, r.ID); err != nil {
			return err
		}
	}
	report, err := automatic.AnalyzeLogFile(turnLog)
	if err != nil {
		return err
	}
	fmt.Print(report)
	return nil
}

// reportStored reads the run back from the results database.
func reportStored(dbPath, runID string) error {
	ctx := context.Background()
	store, err := automatic.OpenResultStore(ctx, dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	st, err := store.RunStats(ctx, runID)
	if err != nil {
		return err
	}
	fmt.Printf("Stored %d games in %v (run %v), mean %.2f\n", st.Games, dbPath, runID, st.MeanScore)
	if st.Games == 0 {
		return nil
	}
	moves, err := store.Moves(ctx, runID, st.BestGame)
	if err != nil {
		return err
	}
	fmt.Printf("Best game %d (%d): %s\n", st.BestGame, st.BestScore, strings.Join(moves, ", "))
	return nil
}
