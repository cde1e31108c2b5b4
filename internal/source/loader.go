package source

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Tent9481/product-apis/internal/catalog"
	"github.com/Tent9481/product-apis/internal/model"
	"github.com/rs/zerolog"
)

// Loader reads the startup snapshot from some location.
type Loader interface {
	// Load returns the flat records found at location.
	Load(ctx context.Context, location string) ([]model.FlatProduct, error)
}

// fileLoader reads a JSON array of upstream records from disk.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a local file snapshot loader. Paths ending in .gz
// are decompressed.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "snapshot-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.FlatProduct, error) {
	l.logger.Info().Str("file", filePath).Msg("loading snapshot file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open snapshot file")
		return nil, fmt.Errorf("failed to open snapshot file %s: %w", filePath, err)
	}
	defer file.Close()

	products, err := decodeSnapshot(ctx, file, filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to read snapshot file")
		return nil, err
	}

	l.logger.Info().
		Str("file", filePath).
		Int("products_loaded", len(products)).
		Msg("snapshot file loaded successfully")

	return products, nil
}

// decodeSnapshot reads raw records from r, transparently un-gzipping when
// name ends in .gz, and keeps the valid ones in flat shape.
func decodeSnapshot(ctx context.Context, r io.Reader, name string) ([]model.FlatProduct, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}

	raw, err := catalog.DecodeArray(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", name, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return normalizeFlat(raw), nil
}

// upstreamLoader takes the snapshot from the live electronics API once.
type upstreamLoader struct {
	fetcher Fetcher
	logger  zerolog.Logger
}

// NewUpstreamLoader creates a loader whose location is an upstream URL.
func NewUpstreamLoader(fetcher Fetcher, logger zerolog.Logger) Loader {
	return &upstreamLoader{
		fetcher: fetcher,
		logger:  logger.With().Str("component", "upstream-snapshot-loader").Logger(),
	}
}

func (l *upstreamLoader) Load(ctx context.Context, url string) ([]model.FlatProduct, error) {
	l.logger.Info().Str("url", url).Msg("loading snapshot from upstream")

	raw, err := l.fetcher.FetchArray(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot from %s: %w", url, err)
	}

	products := normalizeFlat(raw)
	l.logger.Info().
		Str("url", url).
		Int("products_loaded", len(products)).
		Msg("snapshot loaded from upstream")

	return products, nil
}

// fallbackLoader tries S3 first and then the local file system.
type fallbackLoader struct {
	s3Loader   Loader
	fileLoader Loader
	s3Key      string
	logger     zerolog.Logger
}

// NewFallbackLoader creates a loader that tries s3Key through s3Loader and,
// on failure or when s3Loader is nil, the local path given to Load.
func NewFallbackLoader(s3Loader, fileLoader Loader, s3Key string, logger zerolog.Logger) Loader {
	return &fallbackLoader{
		s3Loader:   s3Loader,
		fileLoader: fileLoader,
		s3Key:      s3Key,
		logger:     logger.With().Str("component", "fallback-loader").Logger(),
	}
}

func (l *fallbackLoader) Load(ctx context.Context, filePath string) ([]model.FlatProduct, error) {
	if l.s3Loader != nil {
		l.logger.Info().
			Str("s3_key", l.s3Key).
			Str("local_fallback", filePath).
			Msg("attempting to load from S3")

		products, err := l.s3Loader.Load(ctx, l.s3Key)
		if err == nil {
			return products, nil
		}

		l.logger.Warn().
			Err(err).
			Str("s3_key", l.s3Key).
			Msg("failed to load from S3, falling back to local file system")
	}

	return l.fileLoader.Load(ctx, filePath)
}
