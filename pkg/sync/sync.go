package sync

import (
	"bytes"
	"context"
	"time"

	"github.com/agentstation/radarmap/internal/transport"
	"github.com/agentstation/radarmap/pkg/differ"
	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/logging"
	"github.com/agentstation/radarmap/pkg/reconciler"
	"github.com/agentstation/radarmap/pkg/save"
	"github.com/agentstation/radarmap/pkg/sources"
	"github.com/agentstation/radarmap/pkg/stations"
)

// Run performs one roster update. The output file is written only after
// every input was loaded and parsed, so a failed run leaves it untouched.
func Run(ctx context.Context, opts ...Option) (*Result, error) {
	start := time.Now()

	// Step 1: Resolve and validate options
	options := Defaults().Apply(opts...)
	if err := options.Validate(); err != nil {
		return nil, err
	}

	merger, err := reconciler.New(options.Reconciler...)
	if err != nil {
		return nil, err
	}

	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	result := &Result{
		OutputPath: options.Output(),
		DryRun:     options.DryRun,
		RunID:      logging.RunID(ctx),
	}

	// Step 2: Load and parse the inputs
	in, err := load(logging.WithOperation(ctx, "load"), options)
	if err != nil {
		return nil, err
	}
	result.Stations = len(in.records)
	result.Prior = len(in.prior)
	result.Available = in.available.Len()

	// Step 3: Merge
	mergeCtx := logging.WithOperation(ctx, "merge")
	result.Merge = merger.Merge(in.records, in.prior, in.available)
	for _, id := range result.Merge.DuplicateSource {
		logging.FromContext(logging.WithStation(mergeCtx, id)).Warn().
			Msg("Station list repeats station, first occurrence kept")
	}
	for _, id := range result.Merge.DuplicatePrior {
		logging.FromContext(logging.WithStation(mergeCtx, id)).Warn().
			Msg("Previous roster repeats station, last occurrence kept")
	}
	for _, id := range result.Merge.Disambiguated {
		logging.FromContext(logging.WithStation(mergeCtx, id)).Debug().
			Msg("Suffixed new station name with its identifier")
	}
	logging.FromContext(mergeCtx).Info().
		Int("created", len(result.Merge.Created)).
		Int("obsolete", len(result.Merge.Obsolete)).
		Int("unavailable", len(result.Merge.Unavailable)).
		Strs("disambiguated", result.Merge.Disambiguated).
		Msg("Merged station roster")

	// Step 4: Report changes against the previous table
	result.Changes = differ.Compare(in.prior, result.Merge.Entries)

	// Step 5: Write unless this is a dry run
	writeLogger := logging.FromContext(logging.WithOperation(ctx, "write"))
	if options.DryRun {
		writeLogger.Info().Str("output", result.OutputPath).Msg("Dry run, not writing")
	} else {
		if err := save.Locations(result.OutputPath, result.Merge.Entries,
			save.WithDate(options.Date),
			save.WithGenerator(options.Generator),
		); err != nil {
			return nil, errors.WrapResource("write", sources.LocationsID.String(), result.OutputPath, err)
		}
		result.Written = true
		writeLogger.Info().Str("output", result.OutputPath).Int("stations", len(result.Merge.Entries)).Msg("Wrote location table")
	}

	result.Duration = time.Since(start)
	return result, nil
}

// inputs holds the parsed inputs of a run.
type inputs struct {
	records   []stations.Record
	prior     []stations.Entry
	available stations.Availability
}

// load reads and parses the three inputs in order, failing on the first error.
func load(ctx context.Context, options *Options) (*inputs, error) {
	fetcher := options.Fetcher
	if fetcher == nil {
		fetcher = transport.New(
			transport.WithHTTPClient(options.HTTPClient),
			transport.WithRetries(options.Retries),
		)
	}

	in := &inputs{}
	for _, src := range options.Sources() {
		srcCtx := logging.WithSource(ctx, src.ID.String())
		logger := logging.FromContext(srcCtx)
		logger.Debug().Str("from", src.Location()).Msg("Loading input")

		data, err := src.Load(srcCtx, fetcher)
		if err != nil {
			return nil, err
		}

		r := bytes.NewReader(data)
		parseOpts := []sources.Option{sources.WithFile(src.Location())}
		switch src.ID {
		case sources.StationsID:
			in.records, err = sources.ParseStations(r, parseOpts...)
		case sources.LocationsID:
			in.prior, err = sources.ParseLocations(r, parseOpts...)
		case sources.AvailabilityID:
			in.available, err = sources.ParseAvailability(r, parseOpts...)
		}
		if err != nil {
			return nil, err
		}
		logger.Debug().Int("bytes", len(data)).Msg("Loaded input")
	}

	return in, nil
}
