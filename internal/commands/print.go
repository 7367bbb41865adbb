package commands

import (
	"context"
	"fmt"
	"pngme/internal/global"
	"pngme/internal/logctx"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Parses every file concurrently and reports its chunk layout.
// Reports keep argument order. Err is the first failure in that order, if any.
func Print(ctx context.Context, settings Settings, args PrintArgs) (reports []FileReport, err error) {
	ctx = logctx.AppendCtxTag(ctx, global.NSPrint)

	if len(args.FilePaths) == 0 {
		err = wrapErr(ErrSyntax, fmt.Errorf("no files given"))
		return
	}

	reports = make([]FileReport, len(args.FilePaths))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.NumCPU())

	for i, path := range args.FilePaths {
		group.Go(func() (err error) {
			// Per file failures are reported, only cancellation stops the group
			if err = groupCtx.Err(); err != nil {
				return
			}

			report := FileReport{Path: path}
			report.PNG, report.Size, report.Err = loadPNG(groupCtx, settings, path)
			if report.Err == nil {
				report.Layout = report.PNG.ChunkLayout()
			}
			reports[i] = report
			return
		})
	}

	err = group.Wait()
	if err != nil {
		err = wrapErr(ErrFile, err)
		return
	}

	for _, report := range reports {
		if report.Err != nil {
			err = report.Err
			logctx.LogEvent(ctx, global.VerbosityProgress, global.WarnLog,
				"Inspection of '%s' failed: %v\n", report.Path, report.Err)
			break
		}
	}
	return
}
