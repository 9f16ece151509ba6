package mahjong

import (
	"sync"
)

// ShantenCalculator 向听数计算，13/14 张手牌 -> 距离听牌的最少换牌数（和了为 -1）
type ShantenCalculator interface {
	Shanten(tiles []Tile) int
}

type Hand34 [TileKinds]uint8

// ShantenCache 向听数缓存，key 为 34 种牌的张数加副露数
// 长期共享的 Searcher 应使用有容量上限的实现
type ShantenCache interface {
	Get(key string) (int, bool)
	Set(key string, shanten int)
}

// mapCache 不淘汰，只适合单次回放这样生命周期短的 Searcher
type mapCache struct {
	mu sync.RWMutex
	m  map[string]int
}

func (c *mapCache) Get(key string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *mapCache) Set(key string, shanten int) {
	c.mu.Lock()
	c.m[key] = shanten
	c.mu.Unlock()
}

// Searcher 带缓存的向听数搜索，缓存并发安全时可以被多个回放共享
type Searcher struct {
	cache ShantenCache
}

// NewSearcher 使用不淘汰的内存缓存
func NewSearcher() *Searcher {
	return NewSearcherWithCache(&mapCache{m: make(map[string]int, 256)})
}

func NewSearcherWithCache(cache ShantenCache) *Searcher {
	return &Searcher{cache: cache}
}

// Shanten 手牌向听数，取一般型、七对子、国士无双的最小值
func (s *Searcher) Shanten(tiles []Tile) int {
	h := Hand34FromTiles(tiles)
	fixedMelds := (14 - len(tiles)) / 3
	if fixedMelds < 0 {
		fixedMelds = 0
	}
	return s.ShantenAll(h, fixedMelds)
}

// ShantenAll 向听数，带副露
func (s *Searcher) ShantenAll(h Hand34, fixedMelds int) int {
	key := h.keyWithFixedMelds(fixedMelds)
	if v, ok := s.cache.Get(key); ok {
		return v
	}

	best := ShantenNormal(h, fixedMelds)
	if fixedMelds == 0 {
		if v := ShantenChiitoi(h); v < best {
			best = v
		}
		if v := ShantenKokushi(h); v < best {
			best = v
		}
	}

	s.cache.Set(key, best)
	return best
}

// ShantenKokushi 国士无双向听数
func ShantenKokushi(h Hand34) int {
	unique := 0
	pair := false
	for _, idx := range kokushiTiles {
		if h[idx] > 0 {
			unique++
			if h[idx] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

// ShantenChiitoi 七对子向听数，同种四张只算一对
func ShantenChiitoi(h Hand34) int {
	pairs := 0
	unique := 0
	for i := 0; i < TileKinds; i++ {
		if h[i] > 0 {
			unique++
		}
		if h[i] >= 2 {
			pairs++
		}
	}
	sh := 6 - pairs
	if unique < 7 {
		sh += 7 - unique
	}
	return sh
}

// ShantenNormal 一般型（4 面子 1 雀头）向听数
func ShantenNormal(h Hand34, fixedMelds int) int {
	best := 8
	work := h
	dfsNormalShanten(&work, fixedMelds, 0, 0, &best)
	return best
}

// dfsNormalShanten m：已成面子数(含 fixedMelds)、p：雀头数(0/1)、t：搭子数、best：全局最小向听
func dfsNormalShanten(h *Hand34, m int, p int, t int, best *int) {
	if m > 4 {
		return
	}

	t2 := t
	if limit := 4 - m; t2 > limit {
		t2 = limit
	}

	sh := 8 - 2*m - t2 - p
	if sh < *best {
		*best = sh
	}

	i := -1
	for k := 0; k < TileKinds; k++ {
		if (*h)[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return
	}

	if (*h)[i] >= 3 {
		(*h)[i] -= 3
		dfsNormalShanten(h, m+1, p, t, best)
		(*h)[i] += 3
	}

	if p == 0 && (*h)[i] >= 2 {
		(*h)[i] -= 2
		dfsNormalShanten(h, m, 1, t, best)
		(*h)[i] += 2
	}

	if isNumberTile(i) {
		if sameSuit(i, i+2) && (*h)[i+1] > 0 && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			(*h)[i+2]--
			dfsNormalShanten(h, m+1, p, t, best)
			(*h)[i]++
			(*h)[i+1]++
			(*h)[i+2]++
		}
		if sameSuit(i, i+1) && (*h)[i+1] > 0 {
			(*h)[i]--
			(*h)[i+1]--
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i]++
			(*h)[i+1]++
		}
		if sameSuit(i, i+2) && (*h)[i+2] > 0 {
			(*h)[i]--
			(*h)[i+2]--
			dfsNormalShanten(h, m, p, t+1, best)
			(*h)[i]++
			(*h)[i+2]++
		}
	}

	if (*h)[i] >= 2 {
		// 对子当搭子用（雀头已定时）
		(*h)[i] -= 2
		dfsNormalShanten(h, m, p, t+1, best)
		(*h)[i] += 2
	}

	(*h)[i]--
	dfsNormalShanten(h, m, p, t, best)
	(*h)[i]++
}

// Hand34FromTiles 赤五与普通五视为同一种
func Hand34FromTiles(tiles []Tile) Hand34 {
	var h Hand34
	for _, t := range tiles {
		if t.Type < Man1 || t.Type > Red {
			continue
		}
		h[int(t.Type)]++
	}
	return h
}

func (h Hand34) keyWithFixedMelds(fixedMelds int) string {
	var b [TileKinds + 1]byte
	for i := 0; i < TileKinds; i++ {
		b[i] = byte(h[i])
	}
	b[TileKinds] = byte(fixedMelds)
	return string(b[:])
}

func isNumberTile(i int) bool { return i >= int(Man1) && i <= int(So9) }

func sameSuit(i, j int) bool {
	return j < TileKinds && isNumberTile(i) && isNumberTile(j) && i/9 == j/9
}

var kokushiTiles = [13]int{
	int(Man1), int(Man9),
	int(Pin1), int(Pin9),
	int(So1), int(So9),
	int(East), int(South), int(West), int(North),
	int(White), int(Green), int(Red),
}
