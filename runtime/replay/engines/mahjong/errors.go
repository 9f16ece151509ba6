package mahjong

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedLog     = errors.New("malformed game log")
	ErrMissingReference = errors.New("missing reference")
	ErrInvalidPlayers   = errors.New("invalid player count")
)

// MalformedLogError 牌谱结构错误，整场回放中止
type MalformedLogError struct {
	Index     int // 出错事件的下标
	EventType string
	Reason    string
}

func (e *MalformedLogError) Error() string {
	return fmt.Sprintf("%v: event #%d (%s): %s", ErrMalformedLog, e.Index, e.EventType, e.Reason)
}

func (e *MalformedLogError) Unwrap() error { return ErrMalformedLog }

// MissingReferenceError 座位找不到对应的账号，只影响该玩家条目
type MissingReferenceError struct {
	Seat int
}

func (e *MissingReferenceError) Error() string {
	return fmt.Sprintf("%v: no account for seat %d", ErrMissingReference, e.Seat)
}

func (e *MissingReferenceError) Unwrap() error { return ErrMissingReference }
