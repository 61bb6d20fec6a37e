// Command fskinfo surveys the dominant frequencies of a WAV recording and
// estimates FSK tone parameters from the two strongest spectral peaks.
//
// Usage:
//
//	fskinfo [flags] FILE
//
// Examples:
//
//	fskinfo signal.wav
//	fskinfo --peaks 5 --min-separation 200 signal.wav
//	fskinfo --stats --json signal.wav
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"github.com/modemlab/fskmodem/dsp/window"
	"github.com/modemlab/fskmodem/fsk"
	"github.com/modemlab/fskmodem/wavio"
)

func main() {
	peaks := pflag.IntP("peaks", "n", 10, "number of dominant frequencies to report")
	minSeparation := pflag.Float64("min-separation", 0, "minimum spacing between peaks in Hz (0 uses one bin width)")
	allBins := pflag.Bool("all-bins", false, "rank raw bins by magnitude instead of detecting local maxima")
	windowName := pflag.String("window", "hamming", "tapering window (rectangular, hann, hamming, blackman)")
	stats := pflag.Bool("stats", false, "include spectrum statistics")
	jsonOut := pflag.Bool("json", false, "write the report as JSON to stdout")
	level := pflag.String("debug", "info", "log level (debug, info, warn, error)")
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fskinfo [flags] FILE\n\n")
		fmt.Fprintf(os.Stderr, "Reports dominant frequencies and estimated FSK parameters of a WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		pflag.PrintDefaults()
	}
	pflag.Parse()

	logger := newLogger(*level)

	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(2)
	}
	path := pflag.Arg(0)

	winType, ok := window.Parse(*windowName)
	if !ok {
		logger.Fatal("unknown window", "window", *windowName)
	}

	samples, info, err := wavio.ReadMono(path)
	if err != nil {
		logger.Fatal("failed to read WAV file", "err", err)
	}
	logger.Info("detected sample rate", "rate", formatFrequency(float64(info.SampleRate)))

	report, err := fsk.Estimate(samples, float64(info.SampleRate), fsk.EstimatorConfig{
		PeakCount:       *peaks,
		MinSeparationHz: *minSeparation,
		AllBins:         *allBins,
		WindowType:      winType,
	})
	estimationFailed := errors.Is(err, fsk.ErrInsufficientPeaks)
	if err != nil && !estimationFailed {
		logger.Fatal("spectrum analysis failed", "err", err)
	}

	if *jsonOut {
		writeJSON(logger, path, info, report)
	} else {
		printReport(logger, report, *stats)
	}

	if estimationFailed {
		logger.Error("FSK parameter estimation failed", "peaks", len(report.Peaks))
		os.Exit(1)
	}
}

func printReport(logger *log.Logger, report *fsk.Report, stats bool) {
	for i, p := range report.Peaks {
		logger.Info(fmt.Sprintf("peak %d", i+1),
			"frequency", formatFrequency(p.FrequencyHz),
			"magnitude", formatMagnitude(p.Magnitude))
	}

	if report.DeviationHz > 0 || report.CarrierHz > 0 {
		logger.Info("estimated carrier", "frequency", formatFrequency(report.CarrierHz))
		logger.Info("estimated deviation", "frequency", formatFrequency(report.DeviationHz))
		logger.Info("estimated range",
			"space", formatFrequency(report.SpaceHz),
			"mark", formatFrequency(report.MarkHz))
	}

	if stats {
		logger.Info("spectrum statistics",
			"bin_width", formatFrequency(report.BinWidthHz),
			"noise_floor", formatMagnitude(report.NoiseFloor),
			"centroid", formatFrequency(report.CentroidHz),
			"flatness", fmt.Sprintf("%.4f", report.Flatness))
	}
}

type peakJSON struct {
	Bin         int     `json:"bin"`
	FrequencyHz float64 `json:"frequency_hz"`
	Magnitude   float64 `json:"magnitude"`
}

type reportJSON struct {
	File        string     `json:"file"`
	SampleRate  int        `json:"sample_rate"`
	Peaks       []peakJSON `json:"peaks"`
	CarrierHz   float64    `json:"carrier_hz,omitempty"`
	DeviationHz float64    `json:"deviation_hz,omitempty"`
	MarkHz      float64    `json:"mark_hz,omitempty"`
	SpaceHz     float64    `json:"space_hz,omitempty"`
	BinWidthHz  float64    `json:"bin_width_hz"`
	NoiseFloor  float64    `json:"noise_floor"`
	CentroidHz  float64    `json:"centroid_hz"`
	Flatness    float64    `json:"flatness"`
}

func writeJSON(logger *log.Logger, path string, info wavio.Info, report *fsk.Report) {
	out := reportJSON{
		File:        path,
		SampleRate:  info.SampleRate,
		Peaks:       make([]peakJSON, len(report.Peaks)),
		CarrierHz:   report.CarrierHz,
		DeviationHz: report.DeviationHz,
		MarkHz:      report.MarkHz,
		SpaceHz:     report.SpaceHz,
		BinWidthHz:  report.BinWidthHz,
		NoiseFloor:  report.NoiseFloor,
		CentroidHz:  report.CentroidHz,
		Flatness:    report.Flatness,
	}
	for i, p := range report.Peaks {
		out.Peaks[i] = peakJSON{Bin: p.Bin, FrequencyHz: p.FrequencyHz, Magnitude: p.Magnitude}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Fatal("failed to marshal report", "err", err)
	}
	fmt.Println(string(data))
}

// formatFrequency renders a frequency with a readable unit.
func formatFrequency(hz float64) string {
	switch {
	case hz >= 1e6:
		return fmt.Sprintf("%.2f MHz", hz/1e6)
	case hz >= 1e3:
		return fmt.Sprintf("%.2f kHz", hz/1e3)
	default:
		return fmt.Sprintf("%.2f Hz", hz)
	}
}

// formatMagnitude renders a spectrum magnitude with a readable suffix.
func formatMagnitude(m float64) string {
	switch {
	case m >= 1e6:
		return fmt.Sprintf("%.4f M", m/1e6)
	case m >= 1e3:
		return fmt.Sprintf("%.4f K", m/1e3)
	default:
		return fmt.Sprintf("%.4f", m)
	}
}

func newLogger(level string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
