// Package tracker serves the pumpkin-tracking endpoints. All dynamic
// content is structured JSON; the page renders it client-side.
package tracker

import (
	"encoding/json"
	"log"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/AutumnThyme/PumpkinSnatcher/internal/claimed"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/config"
	"github.com/AutumnThyme/PumpkinSnatcher/internal/track"
)

type Handler struct {
	snap   Snapshot
	cfg    *config.Config
	logger *log.Logger
	clock  func() time.Time
}

func NewHandler(snap Snapshot, cfg *config.Config, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{
		snap:   snap,
		cfg:    cfg,
		logger: logger,
		clock:  time.Now,
	}
}

// SetClock overrides the time source, for tests pinned to an hour
// boundary.
func (h *Handler) SetClock(fn func() time.Time) {
	h.clock = fn
}

// Item is one pumpkin prepared for display.
type Item struct {
	ID          string  `json:"id"`
	FoundAt     string  `json:"foundAt"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	TileX       int     `json:"tileX"`
	TileY       int     `json:"tileY"`
	OffsetX     int     `json:"offsetX"`
	OffsetY     int     `json:"offsetY"`
	LocationURL string  `json:"locationUrl"`
}

type resultPayload struct {
	Success             bool    `json:"success"`
	Items               []Item  `json:"items"`
	Count               int     `json:"count"`
	Timestamp           string  `json:"timestamp"`
	TotalPumpkins       int     `json:"totalPumpkins"`
	DiscoveredPumpkins  int     `json:"discoveredPumpkins"`
	ClaimedPumpkins     int     `json:"claimedPumpkins"`
	PumpkinsLeft        int     `json:"pumpkinsLeft"`
	ProgressPercent     float64 `json:"progressPercent"`
	PercentOfDiscovered float64 `json:"percentOfDiscovered"`
	MissingFromAPI      string  `json:"missingFromApi"`
	AvailableUnclaimed  string  `json:"availableUnclaimed"`
	FetchedAt           string  `json:"fetchedAt,omitempty"`
}

// State recomputes the filters from the snapshot and the on-disk claimed
// file. GET /api/state.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	claimedSet := claimed.LoadFile(h.cfg.ClaimedPath(), h.logger)
	payload := h.result(claimedSet)
	payload.FetchedAt = h.snap.FetchedAt.UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, payload)
}

// InitialData returns the raw claimed-file contents for seeding the
// input box. GET /get_initial_data.
func (h *Handler) InitialData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	raw, err := claimed.ReadRaw(h.cfg.ClaimedPath())
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    raw,
	})
}

// UpdatePumpkins recomputes the filters from pasted claimed data.
// POST /update_pumpkins. Malformed input yields success:false, never a
// server failure.
func (h *Handler) UpdatePumpkins(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var in struct {
		Data string `json:"data"`
	}
	if err := decodeJSON(r, &in); err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   "bad request body: " + err.Error(),
		})
		return
	}

	claimedSet, err := claimed.Parse([]byte(in.Data))
	if err != nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": false,
			"error":   "invalid claimed data: " + err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, h.result(claimedSet))
}

// result runs the core pipeline for a claimed set: set-difference, hour
// window, progress counters, missing lists.
func (h *Handler) result(claimedSet claimed.Set) resultPayload {
	now := h.clock()

	newPumpkins := track.FilterNew(h.snap.Data, claimedSet)
	recent := track.FilterRecent(newPumpkins, now, h.logger)
	progress := track.CalculateProgress(h.snap.Data, claimedSet, h.cfg.Progress.TotalPumpkins)

	items := make([]Item, 0, len(recent))
	for id, rec := range recent {
		items = append(items, Item{
			ID:          id,
			FoundAt:     rec.FoundAt,
			Lat:         rec.Lat,
			Lng:         rec.Lng,
			TileX:       rec.TileX,
			TileY:       rec.TileY,
			OffsetX:     rec.OffsetX,
			OffsetY:     rec.OffsetY,
			LocationURL: rec.LocationURL(),
		})
	}
	sort.Slice(items, func(i, j int) bool {
		a, errA := strconv.Atoi(items[i].ID)
		b, errB := strconv.Atoi(items[j].ID)
		if errA != nil || errB != nil {
			return items[i].ID < items[j].ID
		}
		return a < b
	})

	return resultPayload{
		Success:             true,
		Items:               items,
		Count:               len(items),
		Timestamp:           now.Format("2006-01-02 15:04:05"),
		TotalPumpkins:       progress.Total,
		DiscoveredPumpkins:  progress.Discovered,
		ClaimedPumpkins:     progress.Claimed,
		PumpkinsLeft:        progress.Left,
		ProgressPercent:     progress.PercentOfTotal,
		PercentOfDiscovered: progress.PercentOfDiscovered,
		MissingFromAPI:      track.FormatIDList(track.MissingFromAPI(h.snap.Data, progress.Total)),
		AvailableUnclaimed:  track.FormatIDList(track.AvailableUnclaimed(h.snap.Data, claimedSet)),
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"success": false, "error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	return json.NewDecoder(r.Body).Decode(out)
}
