package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/kevin-chtw/tw_mjlog/config"
	"github.com/kevin-chtw/tw_mjlog/convlog"
	"github.com/kevin-chtw/tw_mjlog/mahjong"
	"github.com/kevin-chtw/tw_mjlog/tenhou"
	"github.com/kevin-chtw/tw_mjlog/utils"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
)

func main() {
	var (
		configPath string
		in, out    string
		format     string
		level      string
		workers    int
	)
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&in, "in", "-", "tenhou json log, - for stdin")
	flag.StringVar(&out, "out", "-", "output file, - for stdout")
	flag.StringVar(&format, "format", "", "output format: jsonl or pb")
	flag.StringVar(&level, "level", "", "log level")
	flag.IntVar(&workers, "workers", 0, "rounds converted in parallel")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if format != "" {
		cfg.Output.Format = format
	}
	if level != "" {
		cfg.Log.Level = level
	}
	if workers > 0 {
		cfg.Convert.Workers = workers
	}

	if err := utils.InitLogger(cfg.Log.Level, cfg.Log.Dir); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, in, out); err != nil {
		logger.Log.Errorf("convert %s: %v", in, err)
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, in, out string) error {
	data, err := readInput(in)
	if err != nil {
		return err
	}
	log, err := tenhou.Parse(data)
	if err != nil {
		return err
	}
	logger.Log.Infof("%s: %d rounds", in, len(log.Rounds))

	conv := convlog.NewConverter(
		convlog.WithWorkers(cfg.Convert.Workers),
		convlog.WithNames(cfg.Convert.Names),
	)
	events, err := conv.Convert(ctx, log)
	if err != nil {
		return err
	}

	if out == "-" {
		return writeOutput(nopCloser{os.Stdout}, events, cfg.Output.Format)
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	return writeOutput(f, events, cfg.Output.Format)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// writeOutput writes events through a buffer and closes wc; a failed close
// fails the conversion.
func writeOutput(wc io.WriteCloser, events []mahjong.Event, format string) error {
	bw := bufio.NewWriter(wc)
	if err := utils.WriteEvents(bw, events, format); err != nil {
		wc.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}

func readInput(in string) ([]byte, error) {
	if in == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(in)
}
