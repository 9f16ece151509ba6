package mahjong

import (
	"reflect"
	"testing"
)

func TestParseTiles_Notations(t *testing.T) {
	perTile := MustParseTiles("1m2m3m0p5p1z1z")
	compact := MustParseTiles("123m05p11z")
	if !reflect.DeepEqual(perTile, compact) {
		t.Fatalf("compact and per-tile notation differ: %v vs %v", compact, perTile)
	}
	if len(compact) != 7 || !compact[3].IsRedFive() || compact[4].IsRedFive() {
		t.Fatalf("unexpected tiles %v", compact)
	}

	spaced := MustParseTiles("19m 19p 19s 1234567z")
	if len(spaced) != 13 || spaced[12].Type != Red {
		t.Fatalf("unexpected kokushi tiles %v", spaced)
	}
}

func TestParseTiles_Errors(t *testing.T) {
	for _, s := range []string{"123", "m", "12x", "8z", "1m2"} {
		if _, err := ParseTiles(s); err == nil {
			t.Fatalf("%q: expected error", s)
		}
	}
	if tiles, err := ParseTiles(""); err != nil || len(tiles) != 0 {
		t.Fatalf("empty string should parse to no tiles, got %v %v", tiles, err)
	}
}

func TestTile_StringRoundTrip(t *testing.T) {
	for _, s := range []string{"1m", "0m", "9p", "0s", "7z"} {
		tile, err := ParseTile(s)
		if err != nil {
			t.Fatalf("%s: %v", s, err)
		}
		if tile.String() != s {
			t.Fatalf("%s: String() = %s", s, tile.String())
		}
	}
}
