package automatic

// Data collection for automatic games: many games over a pool of workers,
// with a turn log, optional SQLite results and optional training tensors.

import (
	"context"
	"errors"
	"expvar"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/aucteraden/config"
	"github.com/domino14/aucteraden/stats"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

var ErrAlreadyPlaying = errors.New("games are already being played, please wait till complete")

// Run is the outcome of StartCompVCompGames.
type Run struct {
	ID string
	// Results is indexed by game ID. Games that never ran (after a
	// cancellation) are nil.
	Results []*GameResult
	Summary *stats.Summary
}

// Completed returns the results of the games that finished.
func (r *Run) Completed() []*GameResult {
	out := make([]*GameResult, 0, len(r.Results))
	for _, res := range r.Results {
		if res != nil {
			out = append(out, res)
		}
	}
	return out
}

// gameSeeds picks the seeds for numGames games from the config: a seed
// file when one is set, else seeds derived from the base seed.
func gameSeeds(cfg *config.Config, numGames int) ([]GameSeeds, error) {
	if fn := cfg.GetString(config.ConfigSeedFile); fn != "" {
		list, err := LoadSeeds(fn)
		if err != nil {
			return nil, err
		}
		if len(list) < numGames {
			return nil, fmt.Errorf("seed file %v has %d seeds, need %d", fn, len(list), numGames)
		}
		return SeedsFromList(list[:numGames]), nil
	}
	return DeriveSeeds(cfg.GetInt64(config.ConfigSeed), numGames, cfg.GetBool(config.ConfigSingle)), nil
}

// StartCompVCompGames plays numGames games over threads workers and blocks
// until they are done or ctx is canceled. Every turn is logged to
// outputFilename.
func StartCompVCompGames(ctx context.Context, cfg *config.Config, numGames int, threads int,
	outputFilename string) (*Run, error) {

	if IsPlaying.Value() > 0 {
		return nil, ErrAlreadyPlaying
	}
	if threads < 1 {
		threads = 1
	}
	seeds, err := gameSeeds(cfg, numGames)
	if err != nil {
		return nil, err
	}
	logfile, err := os.Create(outputFilename)
	if err != nil {
		return nil, err
	}

	run := &Run{
		ID:      fmt.Sprintf("%d-%d", time.Now().Unix(), cfg.GetInt64(config.ConfigSeed)),
		Results: make([]*GameResult, numGames),
	}

	var store *ResultStore
	if dbPath := cfg.GetString(config.ConfigResultsDB); dbPath != "" {
		store, err = OpenResultStore(ctx, dbPath)
		if err != nil {
			logfile.Close()
			return nil, err
		}
		defer store.Close()
	}
	player := cfg.GetString(config.ConfigPlayer)
	deck := cfg.GetString(config.ConfigDeck)

	log.Debug().Msgf("Starting %v games, %v threads", numGames, threads)
	CVCCounter.Set(0)

	logChan := make(chan string, 100)
	writer := errgroup.Group{}
	writer.Go(func() error {
		defer logfile.Close()
		if _, err := logfile.WriteString(TurnLogHeader); err != nil {
			return err
		}
		for msg := range logChan {
			if _, err := logfile.WriteString(msg); err != nil {
				// keep draining so workers never block
				for range logChan {
				}
				return err
			}
		}
		log.Debug().Msg("Exiting turn logger goroutine!")
		return nil
	})

	jobs := make(chan int, 100)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < numGames; i++ {
			select {
			case jobs <- i:
			case <-gctx.Done():
				log.Info().Msg("Got stop signal, exiting soon...")
				return nil
			}
			if (i+1)%1000 == 0 {
				log.Info().Msgf("Queued %v jobs", i+1)
			}
		}
		log.Debug().Msg("Finished queueing all jobs.")
		return nil
	})

	for t := 0; t < threads; t++ {
		g.Go(func() error {
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			r := NewGameRunner(logChan, cfg)
			for id := range jobs {
				if gctx.Err() != nil {
					continue
				}
				res, err := r.PlayGame(id, seeds[id])
				if err != nil {
					return err
				}
				run.Results[id] = res
				if store != nil {
					if err := store.Insert(gctx, run.ID, player, deck, res); err != nil {
						return err
					}
				}
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	err = g.Wait()
	close(logChan)
	if werr := writer.Wait(); err == nil {
		err = werr
	}
	log.Info().Int64("games", CVCCounter.Value()).Msg("All games finished.")

	completed := run.Completed()
	scores := make([]float64, len(completed))
	for i, res := range completed {
		scores[i] = float64(res.Score)
	}
	run.Summary = stats.Summarize(scores)

	if err == nil && ctx.Err() == nil {
		if prefix := cfg.GetString(config.ConfigTrainingPrefix); prefix != "" {
			err = WriteTrainingData(prefix, completed)
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	return run, err
}
