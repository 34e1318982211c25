package model

// View names a top-level screen.
type View string

const (
	ViewDashboard   View = "dashboard"
	ViewEditor      View = "editor"
	ViewKanban      View = "kanban"
	ViewLeaderboard View = "leaderboard"
	ViewAdmin       View = "admin"
)

// NavigationTarget says which view to show and, optionally, which page or
// card to focus.
type NavigationTarget struct {
	View   View   `json:"view"`
	PageID string `json:"page_id,omitempty"`
	CardID string `json:"card_id,omitempty"`
}

// SearchResultKind distinguishes page hits from card hits.
type SearchResultKind string

const (
	SearchResultPage SearchResultKind = "Page"
	SearchResultTask SearchResultKind = "Task"
)

// SearchResult is one match from a workspace search. Target is where the
// view should navigate when the result is chosen.
type SearchResult struct {
	ID      string           `json:"id"`
	Kind    SearchResultKind `json:"kind"`
	Title   string           `json:"title"`
	Context string           `json:"context"`
	Target  NavigationTarget `json:"target"`
}
