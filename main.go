package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"krk/agent"
	"krk/engine"
	"krk/experiments/metrics"
	"krk/game"
	"krk/render"
	"krk/searcher"
	"krk/setup"
)

// errQuit aborts the whole run instead of just the current game.
var errQuit = errors.New("quit requested")

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	cfg := loadConfig()

	var err error
	if cfg.TestMode {
		err = runScenarios(cfg)
	} else {
		err = runInteractive(cfg)
	}
	if err != nil && !errors.Is(err, errQuit) {
		log.Fatal().Err(err).Msg("run failed")
	}
}

// loadConfig merges three layers: defaults, the optional YAML file, then
// any flags set explicitly on the command line.
func loadConfig() setup.Config {
	defaults := setup.DefaultConfig()

	configPath := flag.String("config", "", "YAML config file")
	test := flag.Bool("test", defaults.TestMode, "run every scenario from the scenario file")
	moves := flag.Int("moves", defaults.MaxMoves, "full-move budget before the game is drawn")
	ply := flag.Int("ply", defaults.SearchPly, "search depth in plies")
	seed := flag.Uint64("seed", defaults.Seed, "tie-break seed (0 seeds from the clock)")
	scenarios := flag.String("scenarios", defaults.ScenarioFile, "scenario file for test mode")
	result := flag.String("result", defaults.ResultFile, "board transcript file")
	records := flag.String("records", defaults.RecordDir, "directory for CSV game records")
	ai := flag.String("ai", string(defaults.AISide), "side(s) played by the search agent: both, attacker, defender")
	flag.Parse()

	cfg := defaults
	if *configPath != "" {
		loaded, err := setup.LoadConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot load config")
		}
		cfg = loaded
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "test":
			cfg.TestMode = *test
		case "moves":
			cfg.MaxMoves = *moves
		case "ply":
			cfg.SearchPly = *ply
		case "seed":
			cfg.Seed = *seed
		case "scenarios":
			cfg.ScenarioFile = *scenarios
		case "result":
			cfg.ResultFile = *result
		case "records":
			cfg.RecordDir = *records
		case "ai":
			cfg.AISide = setup.AISide(*ai)
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	return cfg
}

// runScenarios plays every scenario from the scenario file with the search
// agent on both sides, then writes the CSV records.
func runScenarios(cfg setup.Config) error {
	f, err := os.Open(cfg.ScenarioFile)
	if err != nil {
		return fmt.Errorf("opening scenario file: %w", err)
	}
	scenarios, err := setup.LoadScenarios(f)
	f.Close()
	if err != nil {
		return err
	}
	if len(scenarios) == 0 {
		return fmt.Errorf("scenario file %s contains no scenarios", cfg.ScenarioFile)
	}

	transcript, err := render.OpenTranscript(cfg.ResultFile)
	if err != nil {
		return err
	}
	defer transcript.Close()

	prompter := setup.NewPrompter(os.Stdin, os.Stdout)

	var gameRecords []metrics.GameRecord
	var moveRecords []metrics.MoveRecord
	var runErr error
	for i, sc := range scenarios {
		root := sc.Root(cfg.MaxPly())
		if root.Status() != game.Continue {
			log.Warn().
				Str("scenario", sc.Name).
				Stringer("status", root.Status()).
				Msg("skipping scenario: not a playable starting position")
			continue
		}

		attacker := agent.NewSearchAgent(game.Attacker, searchOptions(cfg, uint64(2*i))...)
		defender := agent.NewSearchAgent(game.Defender, searchOptions(cfg, uint64(2*i+1))...)
		e, err := engine.NewLocalEngine(sc.Name, root, attacker, defender, reporter(transcript))
		if err != nil {
			return err
		}
		if err := transcript.WriteHeader(fmt.Sprintf("Scenario %s (game %s)", sc.Name, e.ID)); err != nil {
			return err
		}

		searches := []*searcher.AlphaBeta{attacker.Search(), defender.Search()}
		_, err = supervise(e, searches, prompter)
		gameRecords = append(gameRecords, e.GameRecord())
		moveRecords = append(moveRecords, e.Records()...)
		if err != nil {
			runErr = err
			break
		}
	}

	writer, err := metrics.NewWriter(cfg.RecordDir)
	if err != nil {
		return err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	return runErr
}

// runInteractive plays one game, prompting for the starting placement and,
// depending on ai_side, for the human side's moves.
func runInteractive(cfg setup.Config) error {
	prompter := setup.NewPrompter(os.Stdin, os.Stdout)

	root, err := askRoot(prompter, cfg.MaxPly())
	if err != nil {
		return err
	}

	transcript, err := render.OpenTranscript(cfg.ResultFile)
	if err != nil {
		return err
	}
	defer transcript.Close()

	attacker, defender, searches := buildAgents(cfg, prompter)
	e, err := engine.NewLocalEngine("interactive", root, attacker, defender, reporter(transcript))
	if err != nil {
		return err
	}
	if err := transcript.WriteHeader(fmt.Sprintf("Interactive game %s", e.ID)); err != nil {
		return err
	}

	status, err := supervise(e, searches, prompter)
	if err != nil && !errors.Is(err, errQuit) {
		return err
	}
	fmt.Printf("Final status: %s\n", status)

	writer, werr := metrics.NewWriter(cfg.RecordDir)
	if werr != nil {
		return werr
	}
	if werr := writer.WriteGameRecords([]metrics.GameRecord{e.GameRecord()}); werr != nil {
		return werr
	}
	if werr := writer.WriteMoveRecords(e.Records()); werr != nil {
		return werr
	}
	return err
}

// buildAgents wires the configured sides: the search agent takes the side(s)
// named by ai_side, a console-driven agent takes the rest.
func buildAgents(cfg setup.Config, prompter *setup.Prompter) (agent.Agent, agent.Agent, []*searcher.AlphaBeta) {
	var attacker, defender agent.Agent
	var searches []*searcher.AlphaBeta

	if cfg.AISide == setup.AIBoth || cfg.AISide == setup.AIAttacker {
		searchAgent := agent.NewSearchAgent(game.Attacker, searchOptions(cfg, 0)...)
		searches = append(searches, searchAgent.Search())
		attacker = searchAgent
	} else {
		attacker = agent.NewExternalAgent(game.Attacker, setup.NewConsoleMoveSource(game.Attacker, prompter))
	}
	if cfg.AISide == setup.AIBoth || cfg.AISide == setup.AIDefender {
		searchAgent := agent.NewSearchAgent(game.Defender, searchOptions(cfg, 1)...)
		searches = append(searches, searchAgent.Search())
		defender = searchAgent
	} else {
		defender = agent.NewExternalAgent(game.Defender, setup.NewConsoleMoveSource(game.Defender, prompter))
	}
	return attacker, defender, searches
}

// askRoot prompts for the three starting squares until they form a playable
// position.
func askRoot(prompter *setup.Prompter, maxPly int) (*game.GameState, error) {
	for {
		kingAttacker, err := prompter.AskPosition("Attacker king position, e.g. (3,5): ")
		if err != nil {
			return nil, err
		}
		rookAttacker, err := prompter.AskPosition("Attacker rook position: ")
		if err != nil {
			return nil, err
		}
		kingDefender, err := prompter.AskPosition("Defender king position: ")
		if err != nil {
			return nil, err
		}
		root := game.NewGameState(
			game.NewKing(game.Attacker, kingAttacker),
			game.NewRook(game.Attacker, rookAttacker),
			game.NewKing(game.Defender, kingDefender),
			maxPly,
		)
		if root.Status() == game.Continue {
			return root, nil
		}
		fmt.Printf("That placement is not playable (status: %s); try again.\n", root.Status())
	}
}

// supervise runs the engine to completion, forwarding SIGINT to the running
// searches and offering resume/abandon/quit after each interruption.
func supervise(e *engine.LocalEngine, searches []*searcher.AlphaBeta, prompter *setup.Prompter) (game.Status, error) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	defer signal.Stop(sigs)
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-sigs:
				for _, search := range searches {
					search.Interrupt()
				}
			case <-stop:
				return
			}
		}
	}()

	for {
		status, err := e.Run()
		if !errors.Is(err, searcher.ErrInterrupted) {
			return status, err
		}

		answer, perr := prompter.Ask("\nSearch interrupted. (r)esume, (a)bandon game, (q)uit: ")
		if perr != nil {
			return status, perr
		}
		switch {
		case len(answer) > 0 && (answer[0] == 'r' || answer[0] == 'R'):
			continue
		case len(answer) > 0 && (answer[0] == 'a' || answer[0] == 'A'):
			return status, nil
		default:
			return status, errQuit
		}
	}
}

// reporter prints each committed state to the terminal and appends it to
// the transcript.
func reporter(transcript *render.Transcript) engine.Reporter {
	return func(s *game.GameState, banner string) {
		if banner != "" {
			fmt.Println(banner)
		}
		text := render.Banner(s)
		fmt.Println(text)
		fmt.Println(render.Board(s))
		if err := transcript.WriteState(s, text); err != nil {
			log.Warn().Err(err).Msg("transcript write failed")
		}
	}
}

func searchOptions(cfg setup.Config, seedOffset uint64) []searcher.Option {
	options := []searcher.Option{
		searcher.WithPly(cfg.SearchPly),
		searcher.WithMetrics(),
	}
	if cfg.Seed != 0 {
		options = append(options, searcher.WithSeed(cfg.Seed+seedOffset))
	}
	return options
}
