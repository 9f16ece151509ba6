package codec

import (
	"fmt"

	"paipu/runtime/replay/engines/mahjong"
)

type roundStartDoc struct {
	RoundWind   int      `json:"roundWind"`
	Dealer      int      `json:"dealer"`
	RepeatCount int      `json:"honba"`
	Hands       []string `json:"hands"`
}

func (d roundStartDoc) event() (mahjong.Event, error) {
	if d.RoundWind < 0 || d.RoundWind > 3 {
		return nil, fmt.Errorf("invalid round wind %d", d.RoundWind)
	}
	hands := make([][]mahjong.Tile, 0, len(d.Hands))
	for _, h := range d.Hands {
		tiles, err := mahjong.ParseTiles(h)
		if err != nil {
			return nil, err
		}
		hands = append(hands, tiles)
	}
	return &mahjong.RoundStart{
		RoundWind:   mahjong.Wind(d.RoundWind),
		DealerSeat:  d.Dealer,
		RepeatCount: d.RepeatCount,
		Hands:       hands,
	}, nil
}

type callOptionDoc struct {
	Seat  int      `json:"seat"`
	Kinds []string `json:"kinds"`
}

type discardDoc struct {
	Seat         int             `json:"seat"`
	Tile         string          `json:"tile"`
	Riichi       bool            `json:"riichi"`
	DoubleRiichi bool            `json:"doubleRiichi"`
	Furiten      []bool          `json:"furiten"`
	Options      []callOptionDoc `json:"options"`
}

func (d discardDoc) event() (mahjong.Event, error) {
	tile, err := mahjong.ParseTile(d.Tile)
	if err != nil {
		return nil, err
	}
	options := make([]mahjong.CallOption, 0, len(d.Options))
	for _, o := range d.Options {
		kinds := make([]mahjong.CallKind, 0, len(o.Kinds))
		for _, k := range o.Kinds {
			kind, err := parseCallKind(k)
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, kind)
		}
		options = append(options, mahjong.CallOption{Seat: o.Seat, Kinds: kinds})
	}
	return &mahjong.Discard{
		Seat:         d.Seat,
		Tile:         tile,
		Riichi:       d.Riichi,
		DoubleRiichi: d.DoubleRiichi,
		Furiten:      d.Furiten,
		Options:      options,
	}, nil
}

type kanChanceDoc struct {
	Kind string `json:"kind"`
	Tile string `json:"tile"`
}

type selfDrawDoc struct {
	Seat       int            `json:"seat"`
	Tile       string         `json:"tile"`
	KanChances []kanChanceDoc `json:"kanChances"`
}

func (d selfDrawDoc) event() (mahjong.Event, error) {
	tile, err := mahjong.ParseTile(d.Tile)
	if err != nil {
		return nil, err
	}
	chances := make([]mahjong.KanChance, 0, len(d.KanChances))
	for _, c := range d.KanChances {
		kind, err := parseKanKind(c.Kind)
		if err != nil {
			return nil, err
		}
		t, err := mahjong.ParseTile(c.Tile)
		if err != nil {
			return nil, err
		}
		chances = append(chances, mahjong.KanChance{Kind: kind, Tile: t})
	}
	return &mahjong.SelfDraw{Seat: d.Seat, Tile: tile, KanChances: chances}, nil
}

type callDoc struct {
	Seat  int    `json:"seat"`
	Kind  string `json:"kind"`
	Tiles string `json:"tiles"`
	From  int    `json:"from"`
}

func (d callDoc) event() (mahjong.Event, error) {
	kind, err := parseCallKind(d.Kind)
	if err != nil {
		return nil, err
	}
	tiles, err := mahjong.ParseTiles(d.Tiles)
	if err != nil {
		return nil, err
	}
	return &mahjong.Call{Seat: d.Seat, Kind: kind, Tiles: tiles, From: d.From}, nil
}

type kanDoc struct {
	Seat int    `json:"seat"`
	Kind string `json:"kind"`
	Tile string `json:"tile"`
}

func (d kanDoc) event() (mahjong.Event, error) {
	kind, err := parseKanKind(d.Kind)
	if err != nil {
		return nil, err
	}
	tile, err := mahjong.ParseTile(d.Tile)
	if err != nil {
		return nil, err
	}
	return &mahjong.ConcealedOrAddedKan{Seat: d.Seat, Kind: kind, Tile: tile}, nil
}

type abortiveDrawDoc struct {
	Reason string `json:"reason"`
	Seat   int    `json:"seat"`
}

type exhaustiveDrawDoc struct {
	Tenpai       []bool `json:"tenpai"`
	ManganAtDraw bool   `json:"manganAtDraw"`
	ManganSeats  []int  `json:"manganSeats"`
	DeltaScores  []int  `json:"deltaScores"`
}

func (d exhaustiveDrawDoc) event() mahjong.Event {
	players := make([]mahjong.DrawPlayer, len(d.Tenpai))
	for i, t := range d.Tenpai {
		players[i] = mahjong.DrawPlayer{Tenpai: t}
	}
	return &mahjong.ExhaustiveDraw{
		Players:      players,
		ManganAtDraw: d.ManganAtDraw,
		ManganSeats:  d.ManganSeats,
		DeltaScores:  d.DeltaScores,
	}
}

type fanDoc struct {
	ID    int `json:"id"`
	Value int `json:"value"`
}

type winInfoDoc struct {
	Seat              int      `json:"seat"`
	Tsumo             bool     `json:"tsumo"`
	Riichi            bool     `json:"riichi"`
	PointRon          int      `json:"pointRon"`
	PointFromDealer   int      `json:"pointFromDealer"`
	PointPerNonDealer int      `json:"pointPerNonDealer"`
	Han               int      `json:"han"`
	Fu                int      `json:"fu"`
	Yakuman           bool     `json:"yakuman"`
	Fans              []fanDoc `json:"fans"`
	WinTile           string   `json:"winTile"`
}

type winDoc struct {
	Wins        []winInfoDoc `json:"wins"`
	DeltaScores []int        `json:"deltaScores"`
}

func (d winDoc) event() (mahjong.Event, error) {
	wins := make([]mahjong.WinInfo, 0, len(d.Wins))
	for _, w := range d.Wins {
		var tile mahjong.Tile
		if w.WinTile != "" {
			t, err := mahjong.ParseTile(w.WinTile)
			if err != nil {
				return nil, err
			}
			tile = t
		}
		fans := make([]mahjong.Fan, 0, len(w.Fans))
		for _, f := range w.Fans {
			fans = append(fans, mahjong.Fan{ID: f.ID, Value: f.Value})
		}
		wins = append(wins, mahjong.WinInfo{
			Seat:              w.Seat,
			Tsumo:             w.Tsumo,
			Riichi:            w.Riichi,
			PointRon:          w.PointRon,
			PointFromDealer:   w.PointFromDealer,
			PointPerNonDealer: w.PointPerNonDealer,
			Han:               w.Han,
			Fu:                w.Fu,
			Yakuman:           w.Yakuman,
			Fans:              fans,
			WinTile:           tile,
		})
	}
	return &mahjong.Win{Wins: wins, DeltaScores: d.DeltaScores}, nil
}

func parseCallKind(s string) (mahjong.CallKind, error) {
	switch s {
	case "chi":
		return mahjong.CallChi, nil
	case "pon":
		return mahjong.CallPon, nil
	case "minkan":
		return mahjong.CallMinkan, nil
	case "ron":
		return mahjong.CallRon, nil
	default:
		return 0, fmt.Errorf("unknown call kind %q", s)
	}
}

func parseKanKind(s string) (mahjong.KanKind, error) {
	switch s {
	case "ankan":
		return mahjong.KanConcealed, nil
	case "kakan":
		return mahjong.KanAdded, nil
	case "minkan":
		return mahjong.KanOpen, nil
	default:
		return 0, fmt.Errorf("unknown kan kind %q", s)
	}
}
