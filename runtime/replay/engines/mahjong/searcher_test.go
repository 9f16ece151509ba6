package mahjong

import (
	"sync"
	"testing"
)

func TestSearcher_KokushiShanten(t *testing.T) {
	s := NewSearcher()

	// 十三面听：13 种幺九牌各一张
	h13 := MustParseTiles("19m19p19s1234567z")
	if got := s.Shanten(h13); got != 0 {
		t.Fatalf("kokushi shanten expected 0, got %d", got)
	}

	h14 := append(MustParseTiles("1m"), h13...)
	if got := s.Shanten(h14); got != -1 {
		t.Fatalf("kokushi agari expected -1, got %d", got)
	}
}

func TestSearcher_ChiitoiShanten(t *testing.T) {
	s := NewSearcher()

	// 6 对 + 1 张单骑
	h13 := MustParseTiles("112233m1122p11s1z")
	if got := ShantenChiitoi(Hand34FromTiles(h13)); got != 0 {
		t.Fatalf("chiitoi shanten expected 0, got %d", got)
	}
	if got := s.Shanten(h13); got != 0 {
		t.Fatalf("shanten expected 0, got %d", got)
	}

	h14 := MustParseTiles("112233m1122p11s11z")
	if got := s.Shanten(h14); got != -1 {
		t.Fatalf("chiitoi agari expected -1, got %d", got)
	}

	// 四张同种只算一对
	if got := ShantenChiitoi(Hand34FromTiles(MustParseTiles("1111m2233p4455s6z"))); got != 2 {
		t.Fatalf("chiitoi with quad expected 2, got %d", got)
	}
}

func TestSearcher_NormalShanten(t *testing.T) {
	s := NewSearcher()

	cases := []struct {
		hand string
		want int
	}{
		{"123m123p123s78m11z", 0},   // 两面听
		{"123m123p123s789m11z", -1}, // 和了
		{"123m123p123s79m11z1s", 0}, // 多一张孤张，14 张仍是 0 向听
		{"123p123s789m11z", -1},     // 11 张，一组副露
	}
	for _, c := range cases {
		if got := s.Shanten(MustParseTiles(c.hand)); got != c.want {
			t.Fatalf("%s: shanten expected %d, got %d", c.hand, c.want, got)
		}
	}
}

func TestSearcher_FixedMeldsExcludeKokushi(t *testing.T) {
	s := NewSearcher()

	h := Hand34FromTiles(MustParseTiles("19m19p19s1234567z"))
	if got := s.ShantenAll(h, 1); got == 0 {
		t.Fatalf("with fixedMelds>0, shanten should not be kokushi tenpai (0); got %d", got)
	}
}

func TestSearcher_RedFiveFolded(t *testing.T) {
	red := Hand34FromTiles(MustParseTiles("406m"))
	plain := Hand34FromTiles(MustParseTiles("456m"))
	if red != plain {
		t.Fatalf("red five should count as a normal five: %v vs %v", red, plain)
	}
}

func TestSearcher_ConcurrentCache(t *testing.T) {
	s := NewSearcher()
	hands := []string{"123m123p123s78m11z", "19m19p19s1234567z", "112233m1122p11s1z"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, h := range hands {
				if got := s.Shanten(MustParseTiles(h)); got != 0 {
					t.Errorf("%s: shanten expected 0, got %d", h, got)
				}
			}
		}()
	}
	wg.Wait()
}

type countingCache struct {
	mapCache
	sets int
}

func (c *countingCache) Set(key string, shanten int) {
	c.sets++
	c.mapCache.Set(key, shanten)
}

func TestSearcher_UsesInjectedCache(t *testing.T) {
	c := &countingCache{mapCache: mapCache{m: map[string]int{}}}
	s := NewSearcherWithCache(c)
	hand := MustParseTiles("123m123p123s78m11z")

	for i := 0; i < 3; i++ {
		if got := s.Shanten(hand); got != 0 {
			t.Fatalf("shanten expected 0, got %d", got)
		}
	}
	if c.sets != 1 {
		t.Fatalf("expected one cache fill, got %d", c.sets)
	}
}
