package mahjong

import (
	"reflect"
	"testing"
)

func TestHandValue_NonDealerTsumo(t *testing.T) {
	win := WinInfo{Seat: 1, Tsumo: true, PointFromDealer: 2000, PointPerNonDealer: 1000}
	if got := HandValue(win, 0, 2, 4); got != 4600 {
		t.Fatalf("hand value expected 4600, got %d", got)
	}
}

func TestHandValue_DealerTsumoAndRon(t *testing.T) {
	dealer := WinInfo{Seat: 0, Tsumo: true, PointPerNonDealer: 2000}
	if got := HandValue(dealer, 0, 1, 4); got != 3*2000+300 {
		t.Fatalf("dealer tsumo expected 6300, got %d", got)
	}
	if got := HandValue(dealer, 0, 1, 3); got != 2*2000+200 {
		t.Fatalf("3p dealer tsumo expected 4200, got %d", got)
	}

	ron := WinInfo{Seat: 2, PointRon: 8000}
	if got := HandValue(ron, 0, 0, 4); got != 8000 {
		t.Fatalf("ron expected 8000, got %d", got)
	}
	if got := HandValue(ron, 0, 3, 4); got != 8900 {
		t.Fatalf("ron with honba expected 8900, got %d", got)
	}
}

// 只有庄家座位、和了者座位、本场数和人数会影响结果
func TestHandValue_Symmetry(t *testing.T) {
	base := WinInfo{Seat: 1, Tsumo: true, PointFromDealer: 2000, PointPerNonDealer: 1000}
	want := HandValue(base, 0, 2, 4)

	noisy := base
	noisy.PointRon = 12000
	noisy.Han = 5
	noisy.Fu = 40
	noisy.Riichi = true
	noisy.Fans = []Fan{{ID: 1, Value: 1}, {ID: FanDora, Value: 3}}
	if got := HandValue(noisy, 0, 2, 4); got != want {
		t.Fatalf("unrelated fields changed value: %d vs %d", got, want)
	}

	// 和了者不是庄家时，庄家在哪个座位不影响
	for _, dealer := range []int{0, 2, 3} {
		if got := HandValue(base, dealer, 2, 4); got != want {
			t.Fatalf("dealer seat %d changed value: %d vs %d", dealer, got, want)
		}
	}
	if got := HandValue(base, 1, 2, 4); got == want {
		t.Fatalf("winner becoming dealer should change value")
	}
}

func TestAgariRecord_ReconstructsDelta(t *testing.T) {
	round := RoundInfo{RoundWind: WindEast, DealerSeat: 0, RepeatCount: 2}
	cases := []struct {
		name  string
		win   WinInfo
		delta int
	}{
		{"tsumo with sticks", WinInfo{Seat: 1, Tsumo: true, PointFromDealer: 2000, PointPerNonDealer: 1000}, 6600},
		{"riichi ron", WinInfo{Seat: 2, Riichi: true, PointRon: 3900}, 3900 + 600 + 1000},
		{"dealer tsumo", WinInfo{Seat: 0, Tsumo: true, PointPerNonDealer: 4000}, 12600},
	}
	for _, c := range cases {
		a := AgariRecord(c.win, c.delta, round, 4)
		if a.WinnerSeat != c.win.Seat {
			t.Fatalf("%s: winner seat expected %d, got %d", c.name, c.win.Seat, a.WinnerSeat)
		}
		if a.Value != HandValue(c.win, 0, 2, 4) {
			t.Fatalf("%s: value mismatch %d", c.name, a.Value)
		}
		if got := a.ReconstructDelta(c.win.Riichi); got != c.delta {
			t.Fatalf("%s: reconstructed delta expected %d, got %d", c.name, c.delta, got)
		}
	}

	a := AgariRecord(cases[0].win, cases[0].delta, round, 4)
	if a.Extras != 2000 {
		t.Fatalf("extras expected 2000 (two sticks), got %d", a.Extras)
	}
}

func TestExpandHan(t *testing.T) {
	fans := []Fan{
		{ID: 1, Value: 1},
		{ID: FanDora, Value: 3},
		{ID: FanAkaDora, Value: 1},
		{ID: 7, Value: 2},
		{ID: FanUraDora, Value: 0},
	}
	want := []int{1, FanDora, FanDora, FanDora, FanAkaDora, 7}
	if got := ExpandHan(fans); !reflect.DeepEqual(got, want) {
		t.Fatalf("hanList expected %v, got %v", want, got)
	}
}
