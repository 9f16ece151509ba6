package api

import (
	"errors"
	nethttp "net/http"

	"paipu/common/http"
	"paipu/common/log"
	"paipu/core/domain/repository"
	"paipu/runtime/replay/application/service"
	"paipu/runtime/replay/codec"
	"paipu/runtime/replay/engines/mahjong"
)

type ReplayHandler struct {
	service service.ReplayService
}

// Replay 请求体为 JSON 牌谱，返回完整的回放结果
func (h *ReplayHandler) Replay(c *http.Context) error {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.BadRequest("请求体为空")
		return nil
	}

	result, err := h.service.ReplayLog(c.Ctx(), body)
	if err != nil {
		return h.replayError(c, err)
	}
	c.Success(result)
	return nil
}

func (h *ReplayHandler) GetGame(c *http.Context) error {
	gameID := c.GetParam("id")
	if gameID == "" {
		c.BadRequest("缺少对局 id")
		return nil
	}

	result, err := h.service.FindGame(c.Ctx(), gameID)
	if errors.Is(err, repository.ErrGameRecordNotFound) {
		c.NotFound("对局不存在")
		return nil
	}
	if err != nil {
		return err
	}
	c.Success(result)
	return nil
}

// replayError 牌谱本身的问题返回 4xx，其余交给统一的 500 处理
func (h *ReplayHandler) replayError(c *http.Context, err error) error {
	switch {
	case errors.Is(err, codec.ErrInvalidLog):
		c.BadRequest(err.Error())
	case errors.Is(err, mahjong.ErrMalformedLog),
		errors.Is(err, mahjong.ErrInvalidPlayers),
		errors.Is(err, repository.ErrUnparsable):
		c.ErrorWithCode(nethttp.StatusUnprocessableEntity, http.CodeUnparsable, err.Error())
	default:
		log.Error("回放请求失败: %v", err)
		return err
	}
	return nil
}
