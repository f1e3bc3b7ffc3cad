// Package batch runs the per-file analysis pipeline across many files
// concurrently. spec.md §5 describes this fan-out as belonging to "an
// external collaborator" since the core itself is strictly single-file
// and synchronous; this package is that collaborator, built with
// golang.org/x/sync/errgroup the way the teacher's retrieved siblings in
// the example pack use it for bounded worker-pool fan-out.
package batch

import (
	"context"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/sonicaudit/transcodecheck"
	"github.com/sonicaudit/transcodecheck/internal/spectral"
)

// DefaultConcurrency is used when a caller passes a non-positive
// concurrency limit to Run.
const DefaultConcurrency = 4

// Run analyzes every path in paths, running up to concurrency analyses
// at once, and returns one AnalysisResult per input path in the same
// order paths were given. Per spec.md §5, each file's analysis is fully
// independent: no file-global or cross-file state is shared, and one
// file's ERROR verdict never aborts the others.
func Run(ctx context.Context, paths []string, cfg transcodecheck.Config, analyzer spectral.Analyzer, concurrency int, logger zerolog.Logger) ([]transcodecheck.AnalysisResult, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]transcodecheck.AnalysisResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			logger.Info().Str("file", path).Msg("analyzing")
			result := transcodecheck.Analyze(path, cfg, analyzer)
			results[i] = result
			if result.Verdict == transcodecheck.VerdictError {
				logger.Warn().Str("file", path).Str("error", derefOrEmpty(result.Error)).Msg("analysis failed")
			} else {
				logger.Info().Str("file", path).Str("verdict", string(result.Verdict)).
					Int("score", result.CombinedScore).Msg("analyzed")
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
