package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/klauspost/compress/zstd"
)

const maxJournalLine = 1 << 20

// ScanJournal читает zstd-поток JSON-строк и вызывает fn для каждой записи.
// Склеенные zstd-кадры (дозапись после перезапуска) читаются как один поток.
func ScanJournal(r io.Reader, fn func(JournalEntry) error) error {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return fmt.Errorf("zstd reader: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), maxJournalLine)
	line := 0
	for sc.Scan() {
		line++
		if len(sc.Bytes()) == 0 {
			continue
		}
		var e JournalEntry
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if err := fn(e); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan journal: %w", err)
	}
	return nil
}

// ReadJournalFile читает один файл журнала целиком
func ReadJournalFile(path string) ([]JournalEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []JournalEntry
	err = ScanJournal(f, func(e JournalEntry) error {
		out = append(out, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// JournalFiles - файлы журнала в каталоге в хронологическом порядке
func JournalFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, journalPrefix+"-*"+journalExt))
	if err != nil {
		return nil, err
	}
	// Имя содержит час в формате 2006-01-02-15, лексикографический порядок совпадает со временем
	sort.Strings(files)
	return files, nil
}
