package dashboard

import (
	"errors"
	"fmt"
	"strings"
)

// Tab identifies one of the three dashboard tabs by its UI value.
type Tab string

const (
	TabMonth       Tab = "mes"
	TabFailureType Tab = "falla"
	TabTrend       Tab = "tendencia"
)

var ErrUnknownTab = errors.New("unknown tab")

// Selection is the closed set of view states. Only the types in this package implement it.
type Selection interface {
	Tab() Tab
	Value() string
	isSelection()
}

// ByMonth selects the cells of one calendar month.
type ByMonth struct{ Month string }

// ByFailureType selects the cells of one failure type.
type ByFailureType struct{ FailureType string }

// Trend selects the whole grid.
type Trend struct{}

func (ByMonth) Tab() Tab       { return TabMonth }
func (ByFailureType) Tab() Tab { return TabFailureType }
func (Trend) Tab() Tab         { return TabTrend }

func (s ByMonth) Value() string       { return s.Month }
func (s ByFailureType) Value() string { return s.FailureType }
func (Trend) Value() string           { return "" }

func (ByMonth) isSelection()       {}
func (ByFailureType) isSelection() {}
func (Trend) isSelection()         {}

// ParseSelection maps a tab value and the selector value to a Selection.
func ParseSelection(tab, value string) (Selection, error) {
	value = strings.TrimSpace(value)
	switch Tab(strings.ToLower(strings.TrimSpace(tab))) {
	case TabMonth:
		return ByMonth{Month: value}, nil
	case TabFailureType:
		return ByFailureType{FailureType: value}, nil
	case TabTrend:
		return Trend{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
}
