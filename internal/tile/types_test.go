// internal/tile/types_test.go - Tile range and request construction tests
package tile

import "testing"

func TestTileRangeCount(t *testing.T) {
	tests := []struct {
		name  string
		rng   TileRange
		count int64
	}{
		{"single tile", TileRange{MinZ: 5, MaxZ: 5, MinX: 3, MaxX: 3, MinY: 2, MaxY: 2}, 1},
		{"single zoom, 2x2 grid", TileRange{MinZ: 10, MaxZ: 10, MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}, 4},
		{"two zoom levels", TileRange{MinZ: 10, MaxZ: 11, MinX: 0, MaxX: 1, MinY: 0, MaxY: 0}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rng.Count(); got != tt.count {
				t.Errorf("Count() = %d, want %d", got, tt.count)
			}
		})
	}
}

func TestNewTileRange(t *testing.T) {
	rng := NewTileRange(10, 12, 100, 105, 200, 203)
	if rng.MinZ != 10 || rng.MaxZ != 12 || rng.MinX != 100 || rng.MaxX != 105 || rng.MinY != 200 || rng.MaxY != 203 {
		t.Errorf("NewTileRange returned unexpected range: %+v", rng)
	}
}

func TestNewTileRequest(t *testing.T) {
	req := NewTileRequest(14, 8362, 5956, "https://tiles.example.com")

	if req.Z != 14 || req.X != 8362 || req.Y != 5956 {
		t.Errorf("NewTileRequest coordinates = %d/%d/%d, want 14/8362/5956", req.Z, req.X, req.Y)
	}

	wantURL := "https://tiles.example.com/14/8362/5956.mvt"
	if req.URL != wantURL {
		t.Errorf("NewTileRequest URL = %q, want %q", req.URL, wantURL)
	}

	if req.Headers == nil {
		t.Error("NewTileRequest should initialize a non-nil Headers map")
	}
}

func TestNewTileCoordinateString(t *testing.T) {
	coord := NewTileCoordinate(14, 8362, 5956)
	if got, want := coord.String(), "14/8362/5956"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		z, x, y int
		wantErr bool
	}{
		{"valid mid-zoom tile", 14, 8362, 5956, false},
		{"valid zoom 0 tile", 0, 0, 0, false},
		{"negative zoom", -1, 0, 0, true},
		{"zoom over max", 23, 0, 0, true},
		{"x out of range at zoom", 2, 4, 0, true},
		{"y out of range at zoom", 2, 0, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCoordinates(tt.z, tt.x, tt.y)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinates(%d, %d, %d) error = %v, wantErr %v", tt.z, tt.x, tt.y, err, tt.wantErr)
			}
		})
	}
}
