package mapper

import (
	"context"
	"errors"

	"github.com/etnz/rebalancer/loader"
	"github.com/rs/zerolog"
)

// Fallback uses Secondary when Primary fails.
type Fallback struct {
	Primary   ColumnMapper
	Secondary ColumnMapper
	Log       zerolog.Logger
}

func (f Fallback) MapColumns(ctx context.Context, t *loader.Table) (loader.Mapping, error) {
	m, err := f.Primary.MapColumns(ctx, t)
	if err == nil {
		return m, nil
	}
	f.Log.Warn().Err(err).Msg("attempting fallback column detection")

	m, fallbackErr := f.Secondary.MapColumns(ctx, t)
	if fallbackErr != nil {
		return loader.Mapping{}, errors.Join(err, fallbackErr)
	}
	return m, nil
}
