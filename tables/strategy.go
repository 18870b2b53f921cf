package tables

import (
	"sort"

	"github.com/finsheet/finsheet/model"
)

// Strategy is the interface for table extraction algorithms. Implementations
// are pure over the immutable page data, so distinct strategies may run
// concurrently against the same page.
type Strategy interface {
	// Extract finds candidate tables on a page. A page the strategy cannot
	// handle yields (nil, nil), never an error.
	Extract(page *model.Page) ([]*model.Table, error)

	// Name returns the strategy name
	Name() string

	// Configure sets strategy parameters
	Configure(config Config) error
}

// Config holds strategy configuration
type Config struct {
	// Minimum rows for a valid table
	MinRows int `yaml:"min_rows"`

	// Minimum columns for a valid table
	MinCols int `yaml:"min_cols"`

	// Vertical gap (points) between text runs that starts a new row.
	// Independent from ColGapTolerance.
	RowGapTolerance float64 `yaml:"row_gap_tolerance"`

	// Horizontal gap (points) between text runs that starts a new column.
	// Independent from RowGapTolerance.
	ColGapTolerance float64 `yaml:"col_gap_tolerance"`

	// Tolerance for coordinate alignment/clustering (points)
	AlignmentTolerance float64 `yaml:"alignment_tolerance"`

	// Minimum ruled line length to consider (points)
	MinLineLength float64 `yaml:"min_line_length"`

	// Number of rows that must share an X alignment before it is treated
	// as a column boundary
	MinColumnSupport int `yaml:"min_column_support"`

	// Upper bound on clustering iterations, protecting against
	// pathological layouts
	MaxClusterIterations int `yaml:"max_cluster_iterations"`
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		MinRows:              2,
		MinCols:              2,
		RowGapTolerance:      6.0,
		ColGapTolerance:      18.0,
		AlignmentTolerance:   3.0,
		MinLineLength:        20.0,
		MinColumnSupport:     2,
		MaxClusterIterations: 10000,
	}
}

// Strategy names
const (
	StrategyBordered = "bordered"
	StrategyStream   = "stream"
	StrategyTextPos  = "textpos"
)

// Rank orders strategies by reliability for tie-breaking: ruled-line
// detection is most trustworthy when lines exist, coordinate-only grouping
// least. Lower is better.
func Rank(name string) int {
	switch name {
	case StrategyBordered:
		return 0
	case StrategyStream:
		return 1
	case StrategyTextPos:
		return 2
	default:
		return 3
	}
}

// Registry holds registered strategies
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry creates a new strategy registry
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

// Register registers a strategy
func (r *Registry) Register(strategy Strategy) {
	r.strategies[strategy.Name()] = strategy
}

// Get retrieves a strategy by name
func (r *Registry) Get(name string) Strategy {
	return r.strategies[name]
}

// List returns all registered strategy names, best rank first
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		return Rank(names[i]) < Rank(names[j])
	})
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterStrategy registers a strategy globally
func RegisterStrategy(strategy Strategy) {
	globalRegistry.Register(strategy)
}

// GetStrategy retrieves a strategy by name
func GetStrategy(name string) Strategy {
	return globalRegistry.Get(name)
}

// ListStrategies returns all registered strategy names
func ListStrategies() []string {
	return globalRegistry.List()
}

// All returns fresh instances of every strategy, best rank first. Fresh
// instances keep concurrent pipelines from sharing Configure state.
func All() []Strategy {
	return []Strategy{
		NewBorderedStrategy(),
		NewStreamStrategy(),
		NewTextPosStrategy(),
	}
}

func init() {
	RegisterStrategy(NewBorderedStrategy())
	RegisterStrategy(NewStreamStrategy())
	RegisterStrategy(NewTextPosStrategy())
}

// clusterValues clusters nearby sorted values within the given tolerance,
// averaging values that fall within the tolerance of the cluster center.
// maxIterations bounds how many values are examined, so a pathological page
// with thousands of candidates cannot stall extraction; values past the
// bound are ignored. A bound of zero or less means no limit.
func clusterValues(values []float64, tolerance float64, maxIterations int) []float64 {
	if len(values) == 0 {
		return nil
	}

	clustered := []float64{values[0]}

	for i := 1; i < len(values); i++ {
		if maxIterations > 0 && i > maxIterations {
			break
		}
		diff := values[i] - clustered[len(clustered)-1]
		if diff > tolerance {
			clustered = append(clustered, values[i])
		} else {
			clustered[len(clustered)-1] = (clustered[len(clustered)-1] + values[i]) / 2
		}
	}

	return clustered
}

// mean computes the arithmetic mean of a slice of float64 values
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance computes the population variance of a slice of float64 values
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		diff := v - m
		sum += diff * diff
	}
	return sum / float64(len(values))
}

// sortFragments returns the fragments ordered top-to-bottom, left-to-right
func sortFragments(fragments []model.TextFragment) []model.TextFragment {
	sorted := make([]model.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].BBox.Y != sorted[j].BBox.Y {
			return sorted[i].BBox.Y > sorted[j].BBox.Y
		}
		return sorted[i].BBox.X < sorted[j].BBox.X
	})
	return sorted
}

// appendCellText concatenates fragment text into a cell, space-separated,
// and grows the cell's bounding box.
func appendCellText(cell *model.Cell, frag model.TextFragment) {
	if cell.Text != "" {
		cell.Text += " "
	}
	cell.Text += frag.Text
	if cell.BBox.IsEmpty() {
		cell.BBox = frag.BBox
	} else {
		cell.BBox = cell.BBox.Union(frag.BBox)
	}
}
