// Command transcodecheck analyzes one or more MP3 files for evidence of
// lossy transcoding and prints, or optionally writes to a report file, a
// verdict per file. This binary is the "CLI/argument parser" and
// "filesystem traversal" collaborator spec.md §1 names as out-of-scope
// for the analytical core; all forensic logic lives in the library
// packages it calls.
package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/sonicaudit/transcodecheck"
	"github.com/sonicaudit/transcodecheck/internal/batch"
	"github.com/sonicaudit/transcodecheck/internal/report"
	"github.com/sonicaudit/transcodecheck/internal/spectral"
)

func main() {
	cmd := &cli.Command{
		Name:  "transcodecheck",
		Usage: "detect transcoded MP3 files",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "skip-spectral", Usage: "skip the spectral analysis pass"},
			&cli.IntFlag{Name: "suspect-threshold", Value: 35, Usage: "combined score at or above which a file is SUSPECT"},
			&cli.IntFlag{Name: "transcode-threshold", Value: 65, Usage: "combined score at or above which a file is TRANSCODE"},
			&cli.IntFlag{Name: "max-scan-frames", Value: 200, Usage: "maximum number of frames to inspect per file"},
			&cli.IntFlag{Name: "concurrency", Value: batch.DefaultConcurrency, Usage: "number of files to analyze in parallel"},
			&cli.StringFlag{Name: "out", Usage: "write a report to this path (.csv, .json, or .html); default prints to stdout"},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "transcodecheck:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() == 0 {
		return cli.Exit("at least one file or directory argument is required", 1)
	}

	paths, err := expandArgs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	cfg := transcodecheck.Config{
		SkipSpectral:       cmd.Bool("skip-spectral"),
		SuspectThreshold:   int(cmd.Int("suspect-threshold")),
		TranscodeThreshold: int(cmd.Int("transcode-threshold")),
		MaxScanFrames:       int(cmd.Int("max-scan-frames")),
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	results, err := batch.Run(ctx, paths, cfg, spectral.NoopAnalyzer{}, int(cmd.Int("concurrency")), logger)
	if err != nil {
		return err
	}

	if out := cmd.String("out"); out != "" {
		return report.Write(out, results)
	}
	return printSummary(results)
}

// expandArgs resolves CLI positional arguments into a flat list of
// file paths, walking any directory argument for files ending in ".mp3"
// (case-insensitive).
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), ".mp3") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return paths, nil
}

func printSummary(results []transcodecheck.AnalysisResult) error {
	for _, r := range results {
		if r.Verdict == transcodecheck.VerdictError {
			fmt.Printf("%s\tERROR\t%s\n", r.FileName, derefOrEmpty(r.Error))
			continue
		}
		fmt.Printf("%s\t%s\tscore=%d\tbitrate=%d\tencoder=%s\n",
			r.FileName, r.Verdict, r.CombinedScore, r.BitrateKbps, r.Encoder)
	}
	s := report.Summarize(results)
	fmt.Printf("\n%d files: %d OK, %d suspect, %d transcode, %d errors\n",
		s.Total, s.OK, s.Suspect, s.Transcode, s.Error)
	return nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
