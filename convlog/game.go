package convlog

import (
	"context"
	"slices"

	"github.com/kevin-chtw/tw_mjlog/mahjong"
	"github.com/kevin-chtw/tw_mjlog/tenhou"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// converterOptions 转换选项
type converterOptions struct {
	workers int
	names   []string
}

// Option 转换选项函数类型
type Option func(*converterOptions)

// WithWorkers reconstructs up to n rounds at the same time.
func WithWorkers(n int) Option {
	return func(o *converterOptions) {
		o.workers = n
	}
}

// WithNames replaces the seat names recorded in the log. Empty entries keep
// the recorded name.
func WithNames(names []string) Option {
	return func(o *converterOptions) {
		o.names = names
	}
}

// Converter turns a decoded match into the canonical event stream.
type Converter struct {
	opts converterOptions
}

func NewConverter(opts ...Option) *Converter {
	c := &Converter{opts: converterOptions{workers: 1}}
	for _, opt := range opts {
		opt(&c.opts)
	}
	return c
}

// Convert runs the default converter.
func Convert(ctx context.Context, log *tenhou.Log) ([]mahjong.Event, error) {
	return NewConverter().Convert(ctx, log)
}

// Convert emits start_game, every round in source order and end_game. The
// first failing round aborts the whole match.
func (c *Converter) Convert(ctx context.Context, log *tenhou.Log) ([]mahjong.Event, error) {
	rounds, err := c.convertRounds(ctx, log.Rounds)
	if err != nil {
		return nil, err
	}

	total := 2
	for _, r := range rounds {
		total += len(r)
	}
	events := make([]mahjong.Event, 0, total)
	events = append(events, mahjong.NewStartGame(c.names(log.Names), log.Length, log.Aka))
	for _, r := range rounds {
		events = append(events, r...)
	}
	events = append(events, mahjong.NewEndGame())
	logger.Log.Debugf("converted %d rounds into %d events", len(rounds), len(events))
	return events, nil
}

func (c *Converter) names(recorded []string) []string {
	names := slices.Clone(recorded)
	for len(names) < mahjong.NP4 {
		names = append(names, "")
	}
	for i, n := range c.opts.names {
		if i < len(names) && n != "" {
			names[i] = n
		}
	}
	return names
}

func (c *Converter) convertRounds(ctx context.Context, rounds []tenhou.Round) ([][]mahjong.Event, error) {
	out := make([][]mahjong.Event, len(rounds))
	if c.opts.workers <= 1 {
		for i := range rounds {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			events, err := ConvertRound(&rounds[i])
			if err != nil {
				return nil, err
			}
			out[i] = events
		}
		return out, nil
	}

	// 每局独立, 错误按局序取第一个, 与顺序执行结果一致
	errs := make([]error, len(rounds))
	var g errgroup.Group
	g.SetLimit(c.opts.workers)
	for i := range rounds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			out[i], errs[i] = ConvertRound(&rounds[i])
			return nil
		})
	}
	_ = g.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
