// Package engine talks to the external analysis server: request and
// response schema, the websocket client, and the board-photo
// recognition endpoint.
package engine

import "context"

// Analyzer is the narrow interface the client core consumes. The
// analysis engine is a request/response collaborator: it receives a
// position and produces ranked candidates; its output never feeds back
// into board state.
type Analyzer interface {
	// Connect dials the analysis server and starts the reader.
	Connect(ctx context.Context) error

	// Analyze submits a position for evaluation. The response arrives
	// asynchronously through the handler registered with OnAnalysis.
	Analyze(q Query) error

	// OnAnalysis registers the handler for fresh (non-stale) responses.
	// The handler runs on the client's reader goroutine.
	OnAnalysis(func(*Analysis))

	// Close shuts down the connection. Outstanding requests are dropped.
	Close()
}

// Settings holds the analysis defaults for a session.
type Settings struct {
	ServerURL        string  // websocket endpoint of the analysis server
	BoardSize        int     // 9, 13, or 19
	Komi             float64 // typically 6.5 or 7.5
	MaxVisits        int     // search-effort budget per request
	QuickVisits      int     // reduced budget for interactive re-analysis
	IncludeOwnership bool    // request the ownership grid
}

// DefaultSettings returns a reasonable default configuration.
func DefaultSettings() Settings {
	return Settings{
		ServerURL:        "ws://localhost:5000/analyze",
		BoardSize:        19,
		Komi:             7.5,
		MaxVisits:        3000,
		QuickVisits:      100,
		IncludeOwnership: true,
	}
}
