// Package tables provides table detection and extraction from document pages.
//
// # Strategies
//
// Extraction is performed by types implementing the [Strategy] interface.
// The package provides a closed set of three:
//
//   - [BorderedStrategy] - builds the grid from ruled lines drawn on the page
//   - [StreamStrategy] - clusters text runs by whitespace gaps
//   - [TextPosStrategy] - fallback grouping by coordinate alignment alone
//
// Strategies are registered globally and can be retrieved by name:
//
//	strategy := tables.GetStrategy("stream")
//	candidates, err := strategy.Extract(page)
//
// A page that defeats a strategy (e.g. no ruled lines for the bordered
// strategy) yields an empty result, not an error; the selector falls back to
// another strategy's output.
//
// # Selection
//
// [Select] scores every candidate table by fill ratio, row-length
// regularity, and a header-detection bonus, then returns the best candidate
// as long as it clears a usability threshold. Ties are broken by strategy
// reliability: bordered over stream over textpos. Minor raggedness (a row
// short by exactly one trailing cell) is repaired by padding; anything worse
// rejects the candidate.
//
// # Configuration
//
// Strategy behavior is controlled by [Config]:
//
//	config := tables.DefaultConfig()
//	config.RowGapTolerance = 6
//	strategy.Configure(config)
//
// Row and column gap tolerances are independent knobs. Coupling them is a
// common source of misdetection: financial tables have tight line spacing
// but wide column gutters.
package tables
