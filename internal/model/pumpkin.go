package model

import "fmt"

// Pumpkin is a single collectible location as reported by the wplace
// pumpkin tiles endpoint. Records are immutable once fetched.
type Pumpkin struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	FoundAt string  `json:"foundAt"`
	TileX   int     `json:"tileX"`
	TileY   int     `json:"tileY"`
	OffsetX int     `json:"offsetX"`
	OffsetY int     `json:"offsetY"`
}

// Dataset maps pumpkin ID strings to their records, mirroring the shape
// of the remote endpoint's response body.
type Dataset map[string]Pumpkin

// LocationURL returns the wplace.live map link for this pumpkin.
func (p Pumpkin) LocationURL() string {
	return fmt.Sprintf("https://wplace.live/?lat=%v&lng=%v&zoom=14", p.Lat, p.Lng)
}
