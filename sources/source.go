package sources

import (
	"context"
	"errors"

	"github.com/nzai/dayk/quotes"
)

// ErrSymbolNotFound source does not know the ticker
var ErrSymbolNotFound = errors.New("symbol not found")

// Source define daily price history source
type Source interface {
	// History return daily history of ticker, an empty series means no rows
	History(context.Context, string) (quotes.Series, error)
}
