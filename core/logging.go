package core

import (
	"io"
	"log"
	"os"
	"path/filepath"
)

var InfoLogger = log.New(io.Discard, "INFO\t", log.Ldate|log.Ltime)
var ErrorLogger = log.New(io.Discard, "ERROR\t", log.Lshortfile|log.Ldate|log.Ltime)

const DefaultLogPath = "steamshelf.log"

func InitLoggingWithDefaultPath(verbose bool) (io.Closer, error) {
	path, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}

	return InitLoggingWithPath(filepath.Join(path, DefaultLogPath), verbose)
}

// InitLoggingWithPath appends log output to the file at path, and mirrors it
// to stderr when verbose is set.
func InitLoggingWithPath(path string, verbose bool) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}

	var out io.Writer = file
	if verbose {
		out = io.MultiWriter(file, os.Stderr)
	}
	InitLoggingWithWriter(out)
	return file, nil
}

func InitLoggingWithWriter(out io.Writer) {
	InfoLogger.SetOutput(out)
	ErrorLogger.SetOutput(out)
	log.SetOutput(out)
}

// ConsoleWriter is where ConsoleLogger should print. In verbose mode the
// loggers already mirror every message to stderr.
func ConsoleWriter(verbose bool, stderr io.Writer) io.Writer {
	if verbose {
		return io.Discard
	}
	return stderr
}
