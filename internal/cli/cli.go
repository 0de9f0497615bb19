// Package cli implements the valkeysnap command-line dispatcher:
// dump, replay, and raw subcommands, modeled on the teacher's
// flag.FlagSet-per-subcommand style.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"valkeysnap/internal/command"
	"valkeysnap/internal/config"
	"valkeysnap/internal/handshake"
	"valkeysnap/internal/logger"
	"valkeysnap/internal/netconn"
	"valkeysnap/internal/ratelimit"
	"valkeysnap/internal/rawpass"
	"valkeysnap/internal/rdb"
	"valkeysnap/internal/replay"
	"valkeysnap/internal/sink"
)

const version = "valkeysnap 0.1.0-dev"

// Execute dispatches CLI subcommands and returns a process exit code.
func Execute(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	switch args[0] {
	case "dump":
		return runDump(args[1:])
	case "replay":
		return runReplay(args[1:])
	case "raw":
		return runRaw(args[1:])
	case "help", "-h", "--help":
		printUsage()
		return 0
	case "version", "--version", "-v":
		fmt.Println(version)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand: %s\n", args[0])
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `valkeysnap — decode or replay a Redis/Valkey RDB snapshot

Usage:
  valkeysnap dump --config <file> [--file <rdb-path>]
  valkeysnap replay --config <file> [--file <rdb-path>]
  valkeysnap raw --config <file> --out <path>
  valkeysnap version`)
}

// openSource either opens a local RDB file (when --file is given) or
// performs a live PSYNC handshake against cfg.Source and returns the
// framed payload reader along with a cleanup func.
func openSource(ctx context.Context, cfg *config.Config, filePath string) (io.Reader, func(), error) {
	if filePath != "" {
		f, err := os.Open(filePath)
		if err != nil {
			return nil, nil, fmt.Errorf("opening %s: %w", filePath, err)
		}
		return f, func() { f.Close() }, nil
	}

	conn, err := netconn.Dial(ctx, cfg.Source.Addr)
	if err != nil {
		return nil, nil, err
	}
	result, err := handshake.Run(conn, 0)
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	limited := ratelimit.NewLimiter(ctx, result.Payload, cfg.RateLimit.BytesPerSec)
	return limited, func() { conn.Close() }, nil
}

func loadConfigAndLogger(configPath, prefix string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Log.Dir, logger.Level(cfg.LogLevelValue()), prefix); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runDump(args []string) int {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	var configPath, filePath string
	fs.StringVar(&configPath, "config", "", "configuration file path (YAML)")
	fs.StringVar(&filePath, "file", "", "decode a local RDB file instead of connecting live")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if configPath == "" {
		fmt.Fprintln(os.Stderr, "--config is required")
		return 2
	}

	cfg, err := loadConfigAndLogger(configPath, "valkeysnap-dump")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer logger.Close()

	ctx := context.Background()
	src, cleanup, err := openSource(ctx, cfg, filePath)
	if err != nil {
		logger.Error("opening source: %v", err)
		return 1
	}
	defer cleanup()

	progress := sink.NewProgress(10000)
	decoder := rdb.NewDecoder(src, progress)
	if err := decoder.Run(); err != nil {
		logger.Error("decode failed: %v", err)
		return 1
	}
	checkChecksum(progress, decoder)
	return 0
}

func runReplay(args []string) int {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	var configPath, filePath string
	fs.StringVar(&configPath, "config", "", "configuration file path (YAML)")
	fs.StringVar(&filePath, "file", "", "decode a local RDB file instead of connecting live")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if configPath == "" {
		fmt.Fprintln(os.Stderr, "--config is required")
		return 2
	}

	cfg, err := loadConfigAndLogger(configPath, "valkeysnap-replay")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer logger.Close()

	if cfg.Replay.Addr == "" {
		logger.Error("replay.addr is required for the replay subcommand")
		return 2
	}

	ctx := context.Background()
	src, cleanup, err := openSource(ctx, cfg, filePath)
	if err != nil {
		logger.Error("opening source: %v", err)
		return 1
	}
	defer cleanup()

	dest := replay.NewClient(cfg.Replay.Addr, cfg.Replay.Password, cfg.Replay.DB)
	defer dest.Close()

	emitter := command.NewEmitter(cfg.Command.MaxElementsPerCommand, cfg.Command.MaxBytesPerCommand)
	var replayErrs int
	replaySink := replay.NewSink(ctx, dest, emitter, func(err error) {
		replayErrs++
		logger.Warn("replay command failed: %v", err)
	})
	progress := sink.NewProgress(10000)

	decoder := rdb.NewDecoder(src, sink.NewMulti(progress, replaySink))
	if err := decoder.Run(); err != nil {
		logger.Error("decode failed: %v", err)
		return 1
	}
	checkChecksum(progress, decoder)
	if replayErrs > 0 {
		logger.Warn("%d commands failed to replay", replayErrs)
	}
	return 0
}

func runRaw(args []string) int {
	fs := flag.NewFlagSet("raw", flag.ContinueOnError)
	var configPath, outPath string
	fs.StringVar(&configPath, "config", "", "configuration file path (YAML)")
	fs.StringVar(&outPath, "out", "", "destination file for the raw snapshot bytes")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if configPath == "" || outPath == "" {
		fmt.Fprintln(os.Stderr, "--config and --out are required")
		return 2
	}

	cfg, err := loadConfigAndLogger(configPath, "valkeysnap-raw")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	defer logger.Close()

	ctx := context.Background()
	src, cleanup, err := openSource(ctx, cfg, "")
	if err != nil {
		logger.Error("opening source: %v", err)
		return 1
	}
	defer cleanup()

	out, err := os.Create(outPath)
	if err != nil {
		logger.Error("creating %s: %v", outPath, err)
		return 1
	}
	defer out.Close()

	n, err := rawpass.Copy(out, src)
	if err != nil {
		logger.Error("raw copy failed after %d bytes: %v", n, err)
		return 1
	}
	logger.Info("copied %d raw snapshot bytes to %s", n, outPath)
	return 0
}

// checkChecksum compares the CRC64 the decoder computed against the
// trailer value the source reported, warning (never failing) on a
// mismatch. A trailer value of 0 means the source had RDB checksums
// disabled, in which case there is nothing to compare.
func checkChecksum(progress *sink.Progress, decoder *rdb.Decoder) {
	trailer := progress.TrailerChecksum()
	if trailer == 0 {
		return
	}
	if computed := decoder.ComputedChecksum(); computed != trailer {
		logger.Warn("RDB trailer checksum mismatch: source declared %#x, computed %#x", trailer, computed)
	}
}
