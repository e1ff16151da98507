// Package pipeline orchestrates the generation workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/litexrenode/internal/addrmap"
	"github.com/retroenv/litexrenode/internal/app"
	"github.com/retroenv/litexrenode/internal/emitter"
	"github.com/retroenv/litexrenode/internal/loader"
	"github.com/retroenv/litexrenode/internal/model"
	"github.com/retroenv/litexrenode/internal/options"
	"github.com/retroenv/litexrenode/internal/platform"
	"github.com/retroenv/litexrenode/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete generation workflow.
type Pipeline struct {
	logger  *log.Logger
	loader  *loader.Loader
	builder *platform.Builder
}

// Result contains the platform model and the documents generated from it.
type Result struct {
	Model     *model.Model
	Documents emitter.Documents
}

// New creates a new generation pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:  logger,
		loader:  loader.New(),
		builder: platform.New(logger),
	}
}

// Execute runs the complete generation pipeline for the input file of the options.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program) (*Result, error) {
	input, firmware, err := p.loader.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}

	return p.ExecuteWithInput(ctx, input, firmware, opts)
}

// ExecuteWithInput runs the generation pipeline with an already loaded address map.
// This is useful for testing and programmatic usage where the input is already in memory.
func (p *Pipeline) ExecuteWithInput(ctx context.Context, input io.Reader, firmware loader.Firmware,
	opts options.Program) (*Result, error) {

	rows, err := addrmap.Parse(p.logger, input)
	if err != nil {
		return nil, fmt.Errorf("parsing address map: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m, err := p.builder.Build(rows)
	if err != nil {
		return nil, fmt.Errorf("building platform model: %w", err)
	}
	app.PrintInfo(p.logger, opts, m)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	genOpts := options.NewGeneration(opts)
	genOpts.FirmwareSize = firmware.Size
	genOpts.FirmwareCRC32 = firmware.CRC32

	docs, err := generate(m, genOpts, opts.Script != "")
	if err != nil {
		return nil, fmt.Errorf("generating documents: %w", err)
	}

	if opts.Verify {
		if err := verification.VerifyOutput(p.logger, m, genOpts, docs); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return &Result{
		Model:     m,
		Documents: docs,
	}, nil
}

// generate renders the platform description and, if requested, the run
// script. Options that only the run script needs are not required otherwise.
func generate(m *model.Model, opts options.Generation, withScript bool) (emitter.Documents, error) {
	if withScript {
		return emitter.Generate(m, opts)
	}

	platform, err := emitter.GeneratePlatform(m, opts)
	if err != nil {
		return emitter.Documents{}, err
	}
	return emitter.Documents{Platform: platform}, nil
}
