package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/taskmux/internal/logging"
	"github.com/danmuck/taskmux/internal/observability"
)

// writer writes a string to a file. The parent directory must already
// exist; an existing file is overwritten.
func main() {
	logging.ConfigureRuntime()
	observability.InitLogger("writer")

	if len(os.Args) != 3 {
		log.Error().Msg("usage: writer <file> <string>")
		os.Exit(1)
	}
	path, content := os.Args[1], os.Args[2]

	if err := writeContent(path, content); err != nil {
		log.Error().Err(err).Str("file", path).Msg("write failed")
		os.Exit(1)
	}
	log.Debug().Str("file", path).Str("content", content).Msg("file written")
}

func writeContent(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writer: %w", err)
	}
	return nil
}
