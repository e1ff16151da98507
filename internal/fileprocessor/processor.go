// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/litexrenode/internal/options"
	"github.com/retroenv/litexrenode/internal/pipeline"
	"github.com/retroenv/litexrenode/internal/writer"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ProcessFile handles the complete file processing workflow. The documents
// are only written after both were generated successfully.
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, console io.Writer) error {
	p := pipeline.New(logger)
	result, err := p.Execute(ctx, opts)
	if err != nil {
		return err
	}

	w := writer.New(console)
	if err := w.Write(opts.Platform, result.Documents.Platform); err != nil {
		return fmt.Errorf("writing platform description: %w", err)
	}
	if err := w.Write(opts.Script, result.Documents.Script); err != nil {
		return fmt.Errorf("writing run script: %w", err)
	}

	if opts.Platform != writer.Console && opts.Platform != "" {
		logger.Info("Platform description written", log.String("file", opts.Platform))
	}
	if opts.Script != writer.Console && opts.Script != "" {
		logger.Info("Run script written", log.String("file", opts.Script))
	}
	return nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("litexrenode", log.String("version", buildinfo.Version(version, commit, date)))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
