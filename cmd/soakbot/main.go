// Command soakbot is the turn-based combat bot. It reads the referee
// protocol on stdin, writes one action line per controlled agent on stdout,
// and never lets an internal failure break the output contract.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/razv0n/soakbot/internal/cache"
	"github.com/razv0n/soakbot/internal/config"
	"github.com/razv0n/soakbot/internal/database"
	"github.com/razv0n/soakbot/internal/dispatcher"
	"github.com/razv0n/soakbot/internal/engine"
	"github.com/razv0n/soakbot/internal/logging"
	"github.com/razv0n/soakbot/internal/metrics"
	intOtel "github.com/razv0n/soakbot/internal/otel"
	"github.com/razv0n/soakbot/internal/protocol"
	"github.com/razv0n/soakbot/internal/record"
	"github.com/razv0n/soakbot/internal/search"
	"github.com/razv0n/soakbot/internal/tactics"
)

// Version and BuildDate can be set at build time via ldflags.
var (
	Version   = "0.0.1"
	BuildDate = "unknown"
)

// currentTurn feeds the logging context provider.
var currentTurn atomic.Int64

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := config.Load("."); err != nil {
		fmt.Fprintln(os.Stderr, "config load failed, using defaults:", err)
	}

	slogMgr := logging.NewSlogManager()
	slogMgr.SetContextProvider(func() []slog.Attr {
		return []slog.Attr{slog.Int64("turn", currentTurn.Load())}
	})

	var logFile io.Writer
	path := config.GetString("logFile")
	if path == "" {
		if dir := config.GetString("logDir"); dir != "" {
			path = logging.LogFilePath(dir, "soakbot", time.Now())
		}
	}
	if path != "" {
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open log file:", err)
		} else {
			defer f.Close()
			logFile = f
		}
	}

	var otelProvider *intOtel.Provider
	var logProvider *sdklog.LoggerProvider
	otelCfg := config.GetOTelConfig()
	if otelCfg.Enabled {
		otelLogFile, err := os.OpenFile(otelCfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open otel log file:", err)
		} else {
			defer otelLogFile.Close()
			otelProvider, err = intOtel.New(intOtel.Config{
				Enabled:      true,
				ServiceName:  otelCfg.ServiceName,
				BatchTimeout: otelCfg.BatchTimeout,
				LogWriter:    otelLogFile,
				Endpoint:     otelCfg.Endpoint,
				Insecure:     otelCfg.Insecure,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, "failed to initialize otel provider:", err)
			} else {
				logProvider = otelProvider.LoggerProvider()
				defer otelProvider.Shutdown(context.Background())
			}
		}
	}

	slogMgr.Setup(logFile, config.GetString("logLevel"), logProvider)
	logger := slogMgr.Logger()
	logger.Info("soakbot starting", "version", Version, "buildDate", BuildDate)

	bus, err := dispatcher.New(logging.NewDispatcherLogger(logger))
	if err != nil {
		return fmt.Errorf("creating event bus: %w", err)
	}

	zlog := zerolog.New(os.Stderr).With().Timestamp().Logger()

	recOpts := record.Options{RecentSize: config.GetInt("record.memoryCapacity")}
	var dbManager *database.Manager
	if config.GetString("record.sink") == "db" {
		dbManager = database.NewManager(zlog)
		if err := dbManager.Connect(); err != nil {
			logger.Error("database unavailable, recording in memory only", "error", err)
		} else if err := dbManager.Setup(); err != nil {
			logger.Error("database migration failed, recording in memory only", "error", err)
		} else {
			recOpts.DB = dbManager.DB
		}
	}
	recorder := record.NewRecorder(logger, recOpts)
	if err := recorder.WriteSession(0); err != nil {
		logger.Error("writing session record", "error", err)
	}

	var metricsMgr *metrics.Manager
	if config.GetBool("influx.enabled") {
		metricsMgr = metrics.NewManager(zlog, config.GetString("influx.backupPath"))
		if err := metricsMgr.Connect(); err != nil {
			logger.Warn("metrics disabled", "error", err)
			metricsMgr = nil
		} else {
			defer metricsMgr.Close()
		}
	}

	bus.Register("turn.completed", func(e dispatcher.Event) (any, error) {
		ev, ok := e.Payload.(engine.TurnEvent)
		if !ok {
			return nil, fmt.Errorf("unexpected payload type %T", e.Payload)
		}
		rec := recorder.Record(ev.State, ev.Result)
		if metricsMgr != nil {
			if err := metricsMgr.WriteTurn(context.Background(), rec); err != nil {
				logger.Error("writing metrics point", "error", err)
			}
		}
		return nil, nil
	}, dispatcher.Buffered(64))

	gen := tactics.New(config.GetBool("rules.wetnessSlowsMovement"))
	searcher := search.New(search.Config{
		MaxDepth:        config.GetInt("search.maxDepth"),
		Exploration:     config.GetFloat("search.exploration"),
		MinRandomVisits: config.GetInt("search.minRandomVisits"),
		MaxIterations:   config.GetInt("search.maxIterations"),
		Budget:          config.SearchBudget(),
		Seed:            int64(config.GetInt("search.seed")),
	}, gen)

	opts := engine.Options{
		SearchMinAgents: config.GetInt("engine.searchMinAgents"),
		SearchMinTurn:   config.GetInt("engine.searchMinTurn"),
		Events:          bus,
		Logger:          logger,
	}
	if config.GetBool("engine.cacheEnabled") {
		opts.Cache = cache.NewDecisionCache(config.GetInt("engine.cacheMaxEntries"))
	}
	orch := engine.New(gen, searcher, opts)

	err = turnLoop(ctx, orch, logger, os.Stdin, os.Stdout)

	if flushErr := recorder.Flush(); flushErr != nil {
		logger.Error("flushing turn records", "error", flushErr)
	}
	if dbManager != nil && dbManager.ShouldSaveLocal && dbManager.SqliteFilePath != "" {
		if dumpErr := dbManager.DumpMemoryToDisk(); dumpErr != nil {
			logger.Error("dumping sqlite to disk", "error", dumpErr)
		}
	}
	slogMgr.Flush(context.Background())

	return err
}

// turnLoop runs the referee protocol until EOF or cancellation. A corrupt
// turn never ends the match: the turn is answered with hunker lines and the
// loop keeps reading. Only an exhausted or failed stream ends it.
func turnLoop(ctx context.Context, orch *engine.Orchestrator, logger *slog.Logger, r io.Reader, w io.Writer) error {
	in := protocol.NewReader(r)
	out := bufio.NewWriter(w)

	state, err := protocol.ParseInit(in)
	if err != nil {
		return fmt.Errorf("parsing init input: %w", err)
	}
	logger.Info("initialized",
		"myId", state.MyID,
		"agents", len(state.Profiles),
		"board", fmt.Sprintf("%dx%d", state.Board.Width, state.Board.Height))

	lastRequired := 0
	for _, p := range state.Profiles {
		if p.Owner == state.MyID {
			lastRequired++
		}
	}
	if lastRequired == 0 {
		lastRequired = 1
	}

	for turn := 1; ; turn++ {
		if ctx.Err() != nil {
			logger.Info("shutting down", "reason", ctx.Err())
			return nil
		}

		input, err := protocol.ParseTurn(in, state.Profiles)
		if err != nil {
			if errors.Is(err, io.EOF) {
				logger.Info("input stream closed, exiting")
				return nil
			}
			if errors.Is(err, protocol.ErrMalformedInput) || errors.Is(err, protocol.ErrUnknownAgent) {
				logger.Warn("corrupt turn input, answering with hunker lines", "turn", turn, "error", err)
				for _, line := range orch.FallbackLines(state, lastRequired) {
					fmt.Fprintln(out, line)
				}
				if err := out.Flush(); err != nil {
					return fmt.Errorf("writing turn %d output: %w", turn, err)
				}
				continue
			}
			return fmt.Errorf("parsing turn %d: %w", turn, err)
		}
		lastRequired = input.RequiredLines

		currentTurn.Store(int64(turn))
		state.Turn = turn
		state.Agents = input.Agents

		start := time.Now()
		res := orch.Turn(ctx, state, input.RequiredLines)

		for _, line := range res.Lines {
			fmt.Fprintln(out, line)
		}
		if err := out.Flush(); err != nil {
			return fmt.Errorf("writing turn %d output: %w", turn, err)
		}

		logger.Debug("turn emitted",
			"mode", res.Mode,
			"lines", len(res.Lines),
			"elapsed", time.Since(start))
	}
}
