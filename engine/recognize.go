package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"kataview/types"
)

// RecognizeResult is the recognition service's answer: a grid of cell
// states (0=empty, 1=black, 2=white, board[0] is the top row) and a
// confidence value in [0, 1].
type RecognizeResult struct {
	Board      [][]int `json:"board"`
	Confidence float64 `json:"confidence"`
	Error      string  `json:"error,omitempty"`
}

// Recognize uploads a board photograph and returns the detected layout.
// The result feeds game construction exactly like any other source of
// initial stones.
func Recognize(ctx context.Context, serverURL string, image []byte, boardSize int, client *http.Client) (*RecognizeResult, error) {
	if client == nil {
		client = http.DefaultClient
	}

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", "board.jpg")
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := w.WriteField("boardSize", fmt.Sprintf("%d", boardSize)); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serverURL+"/api/recognize", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognition request: %w", err)
	}
	defer resp.Body.Close()

	var result RecognizeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode recognition response: %w", err)
	}
	if result.Error != "" {
		return nil, fmt.Errorf("recognition failed: %s", result.Error)
	}
	if len(result.Board) != boardSize {
		return nil, fmt.Errorf("recognition returned a %dx grid, wanted %d", len(result.Board), boardSize)
	}
	return &result, nil
}

// InitialStones converts the recognized grid into the stone layout and
// next-to-move color used to seed a game. Black moves next unless more
// black than white stones are already down.
func (r *RecognizeResult) InitialStones() ([]types.Move, types.Color) {
	var stones []types.Move
	black, white := 0, 0
	for y, row := range r.Board {
		for x, cell := range row {
			c := types.Color(cell)
			if c != types.Black && c != types.White {
				continue
			}
			stones = append(stones, types.Move{Color: c, Point: types.Point{X: x, Y: y}})
			if c == types.Black {
				black++
			} else {
				white++
			}
		}
	}
	next := types.Black
	if black > white {
		next = types.White
	}
	return stones, next
}
