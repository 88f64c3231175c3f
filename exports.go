package ledger

import "github.com/worksite/ledger/types"

// Re-export common types for convenience so users don't have to import types package.

// Money is re-exported from types package.
type Money = types.Money

// Hours is re-exported from types package.
type Hours = types.Hours

// Entity is re-exported from types package.
type Entity = types.Entity

// Re-export Money constructors
var (
	NZD  = types.NZD
	USD  = types.USD
	EUR  = types.EUR
	GBP  = types.GBP
	JPY  = types.JPY
	CAD  = types.CAD
	AUD  = types.AUD
	Zero = types.Zero
	Sum  = types.Sum
)

// Re-export Hours constructors
var (
	HoursFromFloat    = types.HoursFromFloat
	HoursFromDuration = types.HoursFromDuration
	SumHours          = types.SumHours
)

// Re-export Entity constructor
var NewEntity = types.NewEntity
