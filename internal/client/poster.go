package client

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// PosterState is a step in the poster fallback chain.
type PosterState int

const (
	PosterPrimary PosterState = iota
	PosterReducedResolution
	PosterOriginal
	PosterPlaceholder
)

const placeholderBase = "https://via.placeholder.com/300x450/2a2a2a/ffffff?text="

var whitespaceRun = regexp.MustCompile(`\s+`)

// Poster walks w500 -> w300 -> original -> placeholder. Placeholder is terminal.
type Poster struct {
	title   string
	primary string
	state   PosterState
	current string
}

// NewPoster starts at the primary URL. An empty URL goes straight to the placeholder.
func NewPoster(title, primaryURL string) *Poster {
	p := &Poster{title: title, primary: primaryURL, state: PosterPrimary, current: primaryURL}
	if primaryURL == "" {
		p.toPlaceholder()
	}
	return p
}

// State reports the current step.
func (p *Poster) State() PosterState { return p.state }

// URL is the image source for the current step.
func (p *Poster) URL() string { return p.current }

// Fail records that the current source did not load and advances one step.
func (p *Poster) Fail() {
	switch p.state {
	case PosterPrimary:
		if strings.Contains(p.current, "/w500/") {
			p.state = PosterReducedResolution
			p.current = strings.Replace(p.current, "/w500/", "/w300/", 1)
			return
		}
		p.toPlaceholder()
	case PosterReducedResolution:
		p.state = PosterOriginal
		p.current = strings.Replace(p.current, "/w300/", "/original/", 1)
	case PosterOriginal:
		p.toPlaceholder()
	case PosterPlaceholder:
	}
}

// Resolve probes each source in turn and returns the first that loads,
// falling back to the placeholder, which is never probed.
func (p *Poster) Resolve(ctx context.Context, probe func(ctx context.Context, url string) error) string {
	for p.state != PosterPlaceholder {
		if ctx.Err() != nil {
			p.toPlaceholder()
			break
		}
		if err := probe(ctx, p.current); err == nil {
			return p.current
		}
		p.Fail()
	}
	return p.current
}

func (p *Poster) toPlaceholder() {
	p.state = PosterPlaceholder
	p.current = PlaceholderURL(p.title)
}

// PlaceholderURL is the generic poster bearing the escaped title.
func PlaceholderURL(title string) string {
	escaped := url.QueryEscape(strings.TrimSpace(title))
	escaped = whitespaceRun.ReplaceAllString(strings.ReplaceAll(escaped, "+", " "), "%20")
	return placeholderBase + escaped
}
