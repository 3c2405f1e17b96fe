// Command holdem runs a demo game between bundled bots and renders the
// flow to the console. It exists to exercise the dealer end to end; the
// engine itself never prints anything.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decred/slog"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"github.com/pokercore/holdem/pkg/dealer"
	"github.com/pokercore/holdem/pkg/poker"
)

type botConfig struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // caller, folder, random, equity
}

type gameConfig struct {
	InitialStack   int64                    `yaml:"initial_stack"`
	SmallBlind     int64                    `yaml:"small_blind"`
	Ante           int64                    `yaml:"ante"`
	MaxRound       int                      `yaml:"max_round"`
	Players        []botConfig              `yaml:"players"`
	BlindStructure map[int]poker.BlindLevel `yaml:"blind_structure"`
}

func defaultConfig() *gameConfig {
	return &gameConfig{
		InitialStack: 100,
		SmallBlind:   5,
		Ante:         0,
		MaxRound:     10,
		Players: []botConfig{
			{Name: "Alice", Kind: "caller"},
			{Name: "Bob", Kind: "random"},
			{Name: "Carol", Kind: "equity"},
		},
	}
}

func loadConfig(path string) (*gameConfig, error) {
	if path == "" {
		return defaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "", "path to a YAML game config")
	verbose := flag.Bool("v", false, "log every street and action")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		pterm.Error.Printfln("config: %v", err)
		os.Exit(1)
	}
	if len(cfg.Players) < 2 {
		pterm.Error.Println("config: need at least 2 players")
		os.Exit(1)
	}

	backend := slog.NewBackend(os.Stdout)
	log := backend.Logger("GAME")
	if *verbose {
		log.SetLevel(slog.LevelDebug)
	} else {
		log.SetLevel(slog.LevelInfo)
	}

	d := dealer.New(dealer.Config{
		SmallBlind:   cfg.SmallBlind,
		Ante:         cfg.Ante,
		InitialStack: cfg.InitialStack,
		Log:          log,
	})
	d.SetBlindStructure(cfg.BlindStructure)

	pterm.DefaultSection.Printfln("Texas Hold'em: %d players, %d rounds, sb %d, ante %d",
		len(cfg.Players), cfg.MaxRound, cfg.SmallBlind, cfg.Ante)

	names := map[string]string{}
	for _, pc := range cfg.Players {
		bot, err := newBot(pc.Kind)
		if err != nil {
			pterm.Error.Printfln("config: %v", err)
			os.Exit(1)
		}
		id, err := d.RegisterPlayer(pc.Name, &announcer{inner: bot, name: pc.Name})
		if err != nil {
			pterm.Error.Printfln("register %s: %v", pc.Name, err)
			os.Exit(1)
		}
		names[id] = pc.Name
	}

	result, err := d.StartGame(cfg.MaxRound)
	if err != nil {
		pterm.Error.Printfln("game aborted: %v", err)
		os.Exit(1)
	}

	rows := pterm.TableData{{"Player", "Stack"}}
	for _, seat := range result.Seats {
		rows = append(rows, []string{names[seat.UUID], fmt.Sprintf("%d", seat.Stack)})
	}
	pterm.DefaultSection.Println("Final stacks")
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// announcer wraps a bot so round results show up on the console without
// the bots having to care.
type announcer struct {
	poker.BaseStrategy
	inner poker.Strategy
	name  string
}

func (a *announcer) DeclareAction(valid []poker.ValidAction, hole []poker.Card, round poker.RoundState) (poker.ActionType, int64) {
	return a.inner.DeclareAction(valid, hole, round)
}

func (a *announcer) ReceiveRoundResult(result poker.RoundResultEvent) {
	for _, w := range result.Winners {
		if w.UUID != "" {
			pterm.Info.Printfln("round %d: %s takes it down (stack %d)", result.RoundCount, w.Name, w.Stack)
			break
		}
	}
}
