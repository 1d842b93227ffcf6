package ui

// Unicode symbols for status indicators.
const (
	SymbolSuccess  = "✓" // Source healthy
	SymbolFail     = "✗" // Source in a failed state
	SymbolPending  = "○" // Source not yet fetched
	SymbolProgress = "◐" // Refresh in flight
	SymbolOnAir    = "●" // Stream live
	SymbolOffAir   = "◌" // Stream down
	SymbolMessage  = "▪" // Message board bullet
)
