package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/example/utaquiz/internal/config"
	"github.com/example/utaquiz/internal/corpus"
	"github.com/example/utaquiz/internal/ledger"
	"github.com/example/utaquiz/internal/session"
	"github.com/example/utaquiz/internal/storage"
)

func main() {
	cfg := config.Load()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	items, err := corpus.Load(store, cfg.CorpusSource)
	if err != nil {
		log.Fatalf("Failed to load corpus: %v", err)
	}

	scheme, err := ledger.ParseScheme(cfg.Scheme)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	led := ledger.Load(store, cfg.LedgerSource, items, scheme, cfg.Players)
	if warn := led.Warning(); warn != nil {
		log.Printf("Warning: %v", warn)
	}

	if err := run(session.New(items, led, cfg.Distractors)); err != nil {
		log.Fatalf("Session error: %v", err)
	}
}

func openStore(cfg *config.Config) (storage.TableStore, error) {
	switch cfg.StoreType {
	case "sqlite", "postgres":
		return storage.OpenSQL(cfg.StoreType, cfg.DatabaseDSN)
	case "excel":
		return storage.NewExcelStore(cfg.ExcelPath), nil
	case "csv":
		return storage.NewCSVStore(cfg.CSVDir), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", cfg.StoreType)
	}
}

func run(orch *session.Orchestrator) error {
	scanner := bufio.NewScanner(os.Stdin)

	if players := orch.ListPlayers(); len(players) > 0 {
		fmt.Printf("Players: %s\n", strings.Join(players, ", "))
	}
	fmt.Print("Player name: ")
	if !scanner.Scan() {
		return nil
	}
	name := strings.TrimSpace(scanner.Text())
	if name == "" {
		return fmt.Errorf("player name must not be empty")
	}
	if err := orch.SelectPlayer(name); err != nil {
		if err := orch.RegisterPlayer(name); err != nil {
			log.Printf("Warning: registering %q: %v", name, err)
		}
		fmt.Printf("Registered new player %q\n", name)
	}

	for {
		q, err := orch.CurrentQuestion()
		if err != nil {
			return err
		}
		if q == nil {
			fmt.Println("🎊 All poems mastered, congratulations! 🎊")
			break
		}

		fmt.Printf("\n%s ｜ %s\n%s\n", q.Stars, q.Author, q.Prompt)
		for i, opt := range q.Options {
			fmt.Printf("  %d) %s\n", i+1, opt)
		}
		fmt.Print("Answer (0 to quit): ")
		if !scanner.Scan() {
			break
		}
		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || choice < 0 || choice > len(q.Options) {
			fmt.Println("Pick one of the numbers shown.")
			continue
		}
		if choice == 0 {
			break
		}

		result, err := orch.Answer(choice - 1)
		if err != nil {
			return err
		}
		printResult(result)

		if _, err := orch.NextQuestion(); err != nil {
			return err
		}
	}

	mastered, err := orch.EndSession()
	if err != nil {
		return err
	}
	fmt.Printf("Mastered poems: %d\n", mastered)
	return nil
}

func printResult(r *session.Result) {
	if r.Correct {
		fmt.Printf("✨ Correct! (%d → %d) %s\n", r.ScoreBefore, r.ScoreAfter, r.Stars)
	} else {
		fmt.Printf("Wrong. The answer was: %s\n", r.CorrectAnswer)
	}
	fmt.Printf("👤 %s\n", r.Author)
	if r.Yaku != "" {
		fmt.Printf("💡 %s\n", r.Yaku)
	}
	if r.NewlyMastered {
		fmt.Printf("🎊 You mastered this poem by %s! 🎊\n", r.Author)
	}
	if r.SaveErr != nil {
		log.Printf("Warning: progress not saved: %v", r.SaveErr)
	}
}
