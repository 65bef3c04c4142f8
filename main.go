package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"go.uber.org/zap"

	"wattchart/internal/analysis"
	"wattchart/internal/config"
	"wattchart/internal/ingest"
	"wattchart/internal/logging"
	"wattchart/internal/observability/metrics"
	"wattchart/internal/pipeline"
	"wattchart/internal/render"
	"wattchart/internal/series"
	"wattchart/internal/weather"
)

const (
	exitFatal = 1
	exitUsage = 2
)

func main() {
	daily := flag.Bool("daily", false, "aggregate readings to daily periods")
	weekly := flag.Bool("weekly", false, "aggregate readings to weekly periods")
	text := flag.Bool("text", false, "also write a tab-separated data export")
	analyze := flag.Bool("analyze", false, "run the temperature correlation analysis")
	noDisplay := flag.Bool("nodisplay", false, "do not open the chart after rendering")
	flag.Usage = usage
	flag.Parse()

	logger, err := logging.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(exitFatal)
	}
	defer logger.Sync()

	if *daily && *weekly {
		fmt.Fprintln(os.Stderr, "choose one of -daily or -weekly")
		os.Exit(exitUsage)
	}
	mode := pipeline.ModeNone
	if *daily {
		mode = pipeline.ModeDaily
	}
	if *weekly {
		mode = pipeline.ModeWeekly
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", zap.Error(err))
		os.Exit(exitFatal)
	}

	metrics.Init()
	if cfg.MetricsListen != "" {
		go func() {
			if err := metrics.Serve(cfg.MetricsListen); err != nil {
				logger.Warn("metrics listener stopped", zap.Error(err))
			}
		}()
	}

	path, err := ingest.Discover(cfg.InputDir, cfg.InputPattern, flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
	logger.Info("processing file", zap.String("file", path))

	readings, meta, err := ingest.ReadFile(path)
	if err != nil {
		var malformed *series.MalformedReadingError
		if errors.As(err, &malformed) {
			metrics.IncRowRejected()
		}
		logger.Error("csv ingest failed", zap.Error(err))
		os.Exit(exitFatal)
	}
	metrics.AddReadings(len(readings))

	source, err := series.DetectGranularity(readings)
	if err != nil {
		logger.Error("granularity detection failed", zap.Error(err))
		os.Exit(exitFatal)
	}
	logger.Info("detected interval type", zap.String("granularity", string(source)))
	if mode != pipeline.ModeNone {
		logger.Info("aggregating", zap.String("from", string(source)), zap.String("to", string(mode)))
	}

	client, err := weather.NewClient(cfg.WeatherBaseURL, cfg.Latitude, cfg.Longitude, cfg.Timezone, cfg.WeatherTimeout)
	if err != nil {
		logger.Error("weather client init failed", zap.Error(err))
		os.Exit(exitFatal)
	}
	pipe := pipeline.New(client, logger)

	ctx := context.Background()
	start := time.Now()
	result, err := pipe.Run(ctx, readings, meta, mode)
	metrics.ObserveRun(err, time.Since(start))
	if err != nil {
		logger.Error("pipeline run failed", zap.Error(err))
		os.Exit(exitFatal)
	}
	metrics.ObserveWeatherFetch(result.WeatherErr)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		logger.Error("create output dir", zap.Error(err))
		os.Exit(exitFatal)
	}
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	data := render.ChartData{Series: result.Series, Temperatures: result.Temperatures}

	workbookPath := filepath.Join(cfg.OutputDir, base+".xlsx")
	if err := render.WriteWorkbook(workbookPath, data); err != nil {
		logger.Error("workbook render failed", zap.Error(err))
		os.Exit(exitFatal)
	}
	metrics.IncRender("xlsx")

	pdfPath := filepath.Join(cfg.OutputDir, base+".pdf")
	if err := render.WritePDF(pdfPath, data); err != nil {
		logger.Error("pdf render failed", zap.Error(err))
		os.Exit(exitFatal)
	}
	metrics.IncRender("pdf")

	if *text {
		textPath := filepath.Join(cfg.OutputDir, base+".txt")
		if err := render.WriteTextFile(textPath, data); err != nil {
			logger.Error("text export failed", zap.Error(err))
			os.Exit(exitFatal)
		}
		metrics.IncRender("text")
	}

	if *analyze {
		if err := runAnalysis(ctx, pipe, readings, meta, source, cfg.OutputDir, base, logger); err != nil {
			logger.Error("correlation analysis failed", zap.Error(err))
			os.Exit(exitFatal)
		}
	}

	logger.Info("charts saved",
		zap.String("workbook", workbookPath),
		zap.String("pdf", pdfPath),
		zap.Int("periods", result.Summary.Periods),
		zap.Int("complete", result.Summary.Complete),
	)
	if result.Degraded() {
		logger.Warn("output degraded: temperature overlay missing", zap.Error(result.WeatherErr))
	}

	if !*noDisplay {
		if err := openArtifact(pdfPath); err != nil {
			logger.Warn("could not open chart for display", zap.Error(err))
		}
	}
}

// runAnalysis correlates daily consumption with daily mean temperature. Hourly
// sources are rolled up to daily first; the overlay must be present.
func runAnalysis(ctx context.Context, pipe *pipeline.Pipeline, readings []series.Reading, meta series.Meta, source series.Granularity, outputDir, base string, logger *zap.Logger) error {
	mode := pipeline.ModeNone
	if source == series.GranularityHourly {
		mode = pipeline.ModeDaily
	}
	result, err := pipe.Run(ctx, readings, meta, mode)
	if err != nil {
		return err
	}
	if result.Degraded() {
		return fmt.Errorf("analysis requires temperature data: %w", result.WeatherErr)
	}

	temps := make(map[int]float64, len(result.Temperatures))
	for _, t := range result.Temperatures {
		temps[t.Index] = t.Celsius
	}
	var points []analysis.Point
	for _, rec := range result.Series.Records {
		c, ok := temps[rec.Index]
		if !ok || rec.Samples == 0 {
			continue
		}
		points = append(points, analysis.Point{TemperatureC: c, KWh: rec.KWh})
	}

	res, err := analysis.Correlate(points)
	if err != nil {
		return err
	}
	fmt.Print(analysis.Report(res))

	scatterPath := filepath.Join(outputDir, base+"_correlation.xlsx")
	if err := render.WriteScatterWorkbook(scatterPath, points, res); err != nil {
		return err
	}
	metrics.IncRender("correlation")
	logger.Info("analysis chart saved", zap.String("workbook", scatterPath))
	return nil
}

func openArtifact(path string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", path).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
	default:
		return exec.Command("xdg-open", path).Start()
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Electricity consumption chart generator

Converts a utility consumption CSV export (hourly or daily) into charts with an
outdoor temperature overlay, optionally re-aggregated to daily or weekly periods.

Usage:
  wattchart [flags] [CSV_FILE]

When CSV_FILE is omitted, exactly one file matching the configured input
pattern must exist in the input directory.

Flags:
`)
	flag.PrintDefaults()
}
