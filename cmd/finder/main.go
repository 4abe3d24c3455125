package main

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/taskmux/internal/logging"
	"github.com/danmuck/taskmux/internal/observability"
)

// finder walks a directory and reports how many files it contains and
// how many of their lines contain the search string.
func main() {
	logging.ConfigureRuntime()
	observability.InitLogger("finder")

	if len(os.Args) != 3 {
		log.Error().Msg("usage: finder <dir> <string>")
		os.Exit(1)
	}
	dir, search := os.Args[1], os.Args[2]

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		log.Error().Str("dir", dir).Msg("not a directory")
		os.Exit(1)
	}

	files, lines, err := countMatches(dir, search)
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("search failed")
		os.Exit(1)
	}
	fmt.Printf("The number of files are %d and the number of matching lines are %d\n", files, lines)
}

func countMatches(dir, search string) (files, lines int, err error) {
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		files++
		n, readErr := countMatchingLines(path, search)
		if readErr != nil {
			return readErr
		}
		lines += n
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return files, lines, nil
}

func countMatchingLines(path, search string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), search) {
			count++
		}
	}
	return count, scanner.Err()
}
