package client

import (
	"fmt"
	"strings"
)

// WidgetState tracks an optimistic rating update.
type WidgetState int

const (
	StateDisplayed WidgetState = iota
	StatePendingCommit
	StateCommitted
	StateReverted
)

func (s WidgetState) String() string {
	switch s {
	case StateDisplayed:
		return "displayed"
	case StatePendingCommit:
		return "pendingCommit"
	case StateCommitted:
		return "committed"
	case StateReverted:
		return "reverted"
	default:
		return fmt.Sprintf("WidgetState(%d)", int(s))
	}
}

// RatingWidget is the star row of one card.
type RatingWidget struct {
	state   WidgetState
	stars   int
	display float64
	pending int
}

// NewRatingWidget starts in the displayed state showing display.
func NewRatingWidget(display float64) *RatingWidget {
	return &RatingWidget{state: StateDisplayed, stars: int(display), display: display}
}

// State reports the current state.
func (w *RatingWidget) State() WidgetState { return w.state }

// Stars is the number of filled stars currently painted.
func (w *RatingWidget) Stars() int { return w.stars }

// Display is the numeric rating text.
func (w *RatingWidget) Display() float64 { return w.display }

// Begin repaints the stars for value before the server has answered.
func (w *RatingWidget) Begin(value int) {
	w.state = StatePendingCommit
	w.pending = value
	w.stars = value
}

// Commit accepts the server's value and patches the numeric text only.
func (w *RatingWidget) Commit(value int) {
	if w.state != StatePendingCommit {
		return
	}
	w.state = StateCommitted
	w.stars = value
	w.display = float64(value)
}

// Revert discards the optimistic paint and shows display, which the caller
// has re-read from the server.
func (w *RatingWidget) Revert(display float64) {
	if w.state != StatePendingCommit {
		return
	}
	w.state = StateReverted
	w.display = display
	w.stars = int(display)
}

// StarRow renders five stars, filled up to the painted count.
func (w *RatingWidget) StarRow() string {
	return StarRow(float64(w.stars))
}

// StarRow renders five stars with star j filled when j <= rating.
func StarRow(rating float64) string {
	var b strings.Builder
	for j := 1; j <= 5; j++ {
		if float64(j) <= rating {
			b.WriteString("★")
		} else {
			b.WriteString("☆")
		}
	}
	return b.String()
}
