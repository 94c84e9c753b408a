package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alexeagleson/goblin-boys/internal/infrastructure/storage"
)

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	var err error
	switch os.Args[1] {
	case "files":
		err = listFiles(os.Args[2:])
	case "dump":
		err = dump(os.Args[2:])
	case "stats":
		err = stats(os.Args[2:])
	default:
		printHelp()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "journalcat:", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`journalcat - просмотр журнала команд (*.jsonl.zst)
Commands:
  files <dir>                              - файлы журнала по порядку
  dump [-actor N] [-kind MOVE] <file|dir>  - записи журнала как JSON-строки
  stats <file|dir>                         - число команд по видам и игрокам`)
}

// paths раскрывает каталог в список файлов журнала
func paths(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{target}, nil
	}
	return storage.JournalFiles(target)
}

func each(target string, fn func(storage.JournalEntry) error) error {
	files, err := paths(target)
	if err != nil {
		return err
	}
	for _, path := range files {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		err = storage.ScanJournal(f, fn)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

func listFiles(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: journalcat files <dir>")
	}
	files, err := storage.JournalFiles(args[0])
	if err != nil {
		return err
	}
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}

func dump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	actor := fs.Int("actor", 0, "only this user id (0 = all)")
	kind := fs.String("kind", "", "only this command kind")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: journalcat dump [-actor N] [-kind MOVE] <file|dir>")
	}

	enc := json.NewEncoder(os.Stdout)
	return each(fs.Arg(0), func(e storage.JournalEntry) error {
		if *actor != 0 && int(e.Actor) != *actor {
			return nil
		}
		if *kind != "" && !strings.EqualFold(e.Kind, *kind) {
			return nil
		}
		return enc.Encode(e)
	})
}

func stats(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: journalcat stats <file|dir>")
	}

	byKind := make(map[string]int)
	byActor := make(map[int]int)
	var total int
	var first, last uint64
	err := each(args[0], func(e storage.JournalEntry) error {
		if total == 0 {
			first = e.Tick
		}
		total++
		last = e.Tick
		byKind[e.Kind]++
		byActor[int(e.Actor)]++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("commands: %d (ticks %d..%d)\n", total, first, last)
	kinds := make([]string, 0, len(byKind))
	for k := range byKind {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	for _, k := range kinds {
		fmt.Printf("  %-12s %d\n", k, byKind[k])
	}

	actors := make([]int, 0, len(byActor))
	for a := range byActor {
		actors = append(actors, a)
	}
	sort.Ints(actors)
	for _, a := range actors {
		fmt.Printf("  user %-7d %d\n", a, byActor[a])
	}
	return nil
}
