package mahjong

import (
	"fmt"
	"strings"
)

type Wind int

const (
	WindEast  Wind = iota // 东风
	WindSouth             // 南风
	WindWest              // 西风
	WindNorth             // 北风
)

func (w Wind) String() string {
	switch w {
	case WindEast:
		return "East"
	case WindSouth:
		return "South"
	case WindWest:
		return "West"
	case WindNorth:
		return "North"
	default:
		return "Unknown"
	}
}

type TileType int

const (
	// 万子 (0-8)
	Man1 TileType = iota
	Man2
	Man3
	Man4
	Man5
	Man6
	Man7
	Man8
	Man9

	// 筒子 (9-17)
	Pin1
	Pin2
	Pin3
	Pin4
	Pin5
	Pin6
	Pin7
	Pin8
	Pin9

	// 索子 (18-26)
	So1
	So2
	So3
	So4
	So5
	So6
	So7
	So8
	So9

	// 字牌 (27-33)
	East
	South
	West
	North
	White
	Green
	Red
)

const TileKinds = 34

// Tile 牌谱中的一张牌，Red 表示赤宝牌（只可能是 5）
type Tile struct {
	Type TileType `json:"type" bson:"type"`
	Red  bool     `json:"red,omitempty" bson:"red,omitempty"`
}

func (t TileType) IsFive() bool {
	return t == Man5 || t == Pin5 || t == So5
}

// IsRedFive 判断是否为赤宝牌
func (t Tile) IsRedFive() bool {
	return t.Red && t.Type.IsFive()
}

// String 牌谱记法：1m..9m 1p..9p 1s..9s 1z..7z，赤五记作 0
func (t Tile) String() string {
	if t.Type < Man1 || t.Type > Red {
		return "??"
	}
	suit := "mpsz"[int(t.Type)/9]
	num := int(t.Type)%9 + 1
	if t.IsRedFive() {
		num = 0
	}
	return fmt.Sprintf("%d%c", num, suit)
}

// ParseTile 解析牌谱记法的单张牌
func ParseTile(s string) (Tile, error) {
	s = strings.TrimSpace(s)
	if len(s) != 2 {
		return Tile{}, fmt.Errorf("invalid tile %q", s)
	}
	num := int(s[0] - '0')
	if num < 0 || num > 9 {
		return Tile{}, fmt.Errorf("invalid tile number %q", s)
	}
	var base int
	switch s[1] {
	case 'm':
		base = int(Man1)
	case 'p':
		base = int(Pin1)
	case 's':
		base = int(So1)
	case 'z':
		if num < 1 || num > 7 {
			return Tile{}, fmt.Errorf("invalid honor tile %q", s)
		}
		return Tile{Type: TileType(int(East) + num - 1)}, nil
	default:
		return Tile{}, fmt.Errorf("invalid tile suit %q", s)
	}
	if num == 0 {
		return Tile{Type: TileType(base + 4), Red: true}, nil
	}
	return Tile{Type: TileType(base + num - 1)}, nil
}

// ParseTiles 解析牌串，支持逐张 "1m2m3m" 和紧凑的 "123m406p11z"，空格忽略
func ParseTiles(s string) ([]Tile, error) {
	compact := strings.ReplaceAll(s, " ", "")
	out := make([]Tile, 0, len(compact))
	digits := make([]byte, 0, 14)
	for i := 0; i < len(compact); i++ {
		c := compact[i]
		if c >= '0' && c <= '9' {
			digits = append(digits, c)
			continue
		}
		if len(digits) == 0 {
			return nil, fmt.Errorf("invalid tile string %q: suit %q without numbers", s, c)
		}
		for _, d := range digits {
			t, err := ParseTile(string([]byte{d, c}))
			if err != nil {
				return nil, err
			}
			out = append(out, t)
		}
		digits = digits[:0]
	}
	if len(digits) > 0 {
		return nil, fmt.Errorf("invalid tile string %q: numbers without suit", s)
	}
	return out, nil
}

// MustParseTiles 仅用于常量牌型和测试
func MustParseTiles(s string) []Tile {
	tiles, err := ParseTiles(s)
	if err != nil {
		panic(err)
	}
	return tiles
}
