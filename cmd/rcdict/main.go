package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/vinciguerra/rcdict/pkg/common/log"
	"github.com/vinciguerra/rcdict/pkg/config"
	"github.com/vinciguerra/rcdict/pkg/rcd"
)

// Command completer for readline
var completer = readline.NewPrefixCompleter(
	readline.PcItem(".help"),
	readline.PcItem(".build"),
	readline.PcItem(".dump"),
	readline.PcItem(".load"),
	readline.PcItem(".stats"),
	readline.PcItem(".exit"),
	readline.PcItem("ACCESS"),
	readline.PcItem("RANK"),
)

const helpText = `
rcdict - An in-memory, read-only rear-coded string dictionary.

Usage:
  rcdict [options] input_file   - Build a dictionary from a sorted, newline-delimited
                                   input file and enter interactive mode

Options:
  -block-bytes int        - Target tail size per block (default 4096)
  -offset-width int        - Offset capacity check, 32 or 64 (default 64)
  -allow-nul                - Permit input strings with embedded NUL bytes
  -log-level string         - One of debug, info, warn, error (default "info")

Commands (interactive mode only):
  .help                   - Show this help message
  .build PATH             - Build a new dictionary from PATH, replacing the current one
  .dump PATH              - Write the current dictionary to PATH (zstd-compressed)
  .load PATH              - Load a dictionary previously written by .dump
  .stats                  - Show construction statistics for the current dictionary
  .exit                   - Exit the program

  ACCESS i                - Print the i-th stored string (0-based)
  RANK string             - Print the rank of the largest stored string <= the argument
`

func main() {
	cfg := config.NewDefaultConfig()

	blockBytes := cfg.BlockBytes
	offsetWidth := cfg.OffsetWidth
	allowNUL := false
	logLevel := "info"

	args := os.Args[1:]
	var inputPath string
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "-block-bytes":
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "rcdict: invalid -block-bytes: %s\n", args[i])
				os.Exit(1)
			}
			blockBytes = n
		case "-offset-width":
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "rcdict: invalid -offset-width: %s\n", args[i])
				os.Exit(1)
			}
			offsetWidth = n
		case "-allow-nul":
			allowNUL = true
		case "-log-level":
			i++
			logLevel = args[i]
		case "-help", "--help":
			fmt.Print(helpText)
			return
		default:
			inputPath = args[i]
		}
	}

	cfg.BlockBytes = blockBytes
	cfg.OffsetWidth = offsetWidth
	cfg.RejectNUL = !allowNUL
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "rcdict: %s\n", err)
		os.Exit(1)
	}

	logger := log.NewStandardLogger(log.WithLevel(parseLevel(logLevel)))

	var dict *rcd.Dict
	var stats rcd.Stats
	if inputPath != "" {
		var err error
		dict, stats, err = buildFromFile(inputPath, cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rcdict: %s\n", err)
			os.Exit(1)
		}
		fmt.Printf("Built dictionary: %d strings, %d blocks, %d bytes\n", stats.N, stats.Blocks, stats.Bytes)
	}

	runInteractive(dict, stats, cfg, logger)
}

func parseLevel(s string) log.Level {
	switch strings.ToLower(s) {
	case "debug":
		return log.LevelDebug
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}

// buildFromFile reads path line by line and builds a dictionary from its
// contents, which must already be sorted and distinct.
func buildFromFile(path string, cfg *config.Config, logger log.Logger) (*rcd.Dict, rcd.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rcd.Stats{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	opts := cfg.BuildOptions()
	opts.Logger = logger

	b, err := rcd.NewBuilder(opts)
	if err != nil {
		return nil, rcd.Stats{}, err
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	for sc.Scan() {
		line := append([]byte(nil), sc.Bytes()...)
		if err := b.Add(line); err != nil {
			return nil, rcd.Stats{}, fmt.Errorf("building from %s: %w", path, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, rcd.Stats{}, fmt.Errorf("reading %s: %w", path, err)
	}

	return b.Finish()
}

// runInteractive starts the interactive CLI mode.
func runInteractive(dict *rcd.Dict, stats rcd.Stats, cfg *config.Config, logger log.Logger) {
	fmt.Println("rcdict version 0.1.0")
	fmt.Println("Enter .help for usage hints.")

	historyFile := filepath.Join(os.TempDir(), ".rcdict_history")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rcdict> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing readline: %s\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		prompt := "rcdict> "
		if dict != nil {
			prompt = fmt.Sprintf("rcdict[%d]> ", dict.Size())
		}
		rl.SetPrompt(prompt)

		line, readErr := rl.Readline()
		if readErr != nil {
			if readErr == readline.ErrInterrupt {
				if len(line) == 0 {
					break
				}
				continue
			} else if readErr == io.EOF {
				fmt.Println("Goodbye!")
				break
			}
			fmt.Fprintf(os.Stderr, "Error reading input: %s\n", readErr)
			continue
		}

		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := strings.ToUpper(parts[0])

		if strings.HasPrefix(cmd, ".") {
			cmd = strings.ToLower(cmd)
			switch cmd {
			case ".help":
				fmt.Print(helpText)

			case ".build":
				if len(parts) < 2 {
					fmt.Println("Error: Missing path argument")
					continue
				}
				d, s, err := buildFromFile(parts[1], cfg, logger)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error building dictionary: %s\n", err)
					continue
				}
				dict, stats = d, s
				fmt.Printf("Built dictionary: %d strings, %d blocks, %d bytes\n", stats.N, stats.Blocks, stats.Bytes)

			case ".dump":
				if dict == nil {
					fmt.Println("No dictionary loaded")
					continue
				}
				if len(parts) < 2 {
					fmt.Println("Error: Missing path argument")
					continue
				}
				if err := dumpToFile(dict, parts[1]); err != nil {
					fmt.Fprintf(os.Stderr, "Error dumping dictionary: %s\n", err)
					continue
				}
				fmt.Printf("Dictionary written to %s\n", parts[1])

			case ".load":
				if len(parts) < 2 {
					fmt.Println("Error: Missing path argument")
					continue
				}
				d, s, err := loadFromFile(parts[1], cfg, logger)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Error loading dictionary: %s\n", err)
					continue
				}
				dict, stats = d, s
				fmt.Printf("Loaded dictionary: %d strings, %d blocks, %d bytes\n", stats.N, stats.Blocks, stats.Bytes)

			case ".stats":
				if dict == nil {
					fmt.Println("No dictionary loaded")
					continue
				}
				fmt.Printf("Strings:           %d\n", stats.N)
				fmt.Printf("Blocks:            %d\n", stats.Blocks)
				fmt.Printf("Input bytes:       %d\n", stats.InputBytes)
				fmt.Printf("Dict bytes:        %d\n", stats.Bytes)
				fmt.Printf("Avg string length: %.2f\n", stats.AvgStringLength)
				fmt.Printf("Avg LCP:           %.2f (max %d)\n", stats.AvgLCP, stats.MaxLCP)
				fmt.Printf("Avg header LCP:    %.2f (max %d)\n", stats.AvgHeaderLCP, stats.MaxHeaderLCP)
				fmt.Printf("Avg strings/block: %.2f\n", stats.AvgStringsPerBlock)

			case ".exit":
				fmt.Println("Goodbye!")
				return

			default:
				fmt.Printf("Unknown command: %s\n", cmd)
			}
			continue
		}

		switch cmd {
		case "ACCESS":
			if dict == nil {
				fmt.Println("Error: No dictionary loaded")
				continue
			}
			if len(parts) < 2 {
				fmt.Println("Error: ACCESS requires a position argument")
				continue
			}
			i, err := strconv.Atoi(parts[1])
			if err != nil {
				fmt.Printf("Error: invalid position %q\n", parts[1])
				continue
			}
			start := time.Now()
			s, err := dict.String(i)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %s\n", err)
				continue
			}
			fmt.Printf("%s (%.3f ms)\n", s, float64(time.Since(start).Microseconds())/1000.0)

		case "RANK":
			if dict == nil {
				fmt.Println("Error: No dictionary loaded")
				continue
			}
			if len(parts) < 2 {
				fmt.Println("Error: RANK requires a string argument")
				continue
			}
			q := strings.Join(parts[1:], " ")
			start := time.Now()
			r := dict.Rank([]byte(q))
			fmt.Printf("%d (%.3f ms)\n", r, float64(time.Since(start).Microseconds())/1000.0)

		default:
			fmt.Printf("Unknown command: %s\n", cmd)
		}
	}
}

func dumpToFile(dict *rcd.Dict, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return rcd.Dump(dict, f)
}

func loadFromFile(path string, cfg *config.Config, logger log.Logger) (*rcd.Dict, rcd.Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rcd.Stats{}, err
	}
	defer f.Close()

	opts := cfg.BuildOptions()
	opts.Logger = logger
	return rcd.Load(f, opts)
}
