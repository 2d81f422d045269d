package service

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strconv"

	"github.com/kevin-chtw/tw_mjlog/convlog"
	"github.com/kevin-chtw/tw_mjlog/mahjong"
	"github.com/kevin-chtw/tw_mjlog/tenhou"
	"github.com/kevin-chtw/tw_mjlog/utils"
	"github.com/topfreegames/pitaya/v3/pkg/component"
	perrors "github.com/topfreegames/pitaya/v3/pkg/errors"
	"github.com/topfreegames/pitaya/v3/pkg/logger"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	CodeUnknown      = "MJLOG-000"
	CodeMalformed    = "MJLOG-001"
	CodeExhausted    = "MJLOG-002"
	CodeInconsistent = "MJLOG-003"
	CodeInvalidLog   = "MJLOG-004"
)

// Remote 牌谱转换服务
type Remote struct {
	component.Base
	converter *convlog.Converter
}

// NewRemote 创建牌谱转换服务
func NewRemote(opts ...convlog.Option) *Remote {
	return &Remote{
		converter: convlog.NewConverter(opts...),
	}
}

// Convert takes a tenhou JSON log and returns the canonical events, one
// Struct per event.
func (r *Remote) Convert(ctx context.Context, req *wrapperspb.BytesValue) (list *structpb.ListValue, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Log.Errorf("panic recovered %s\n %s", rec, string(debug.Stack()))
			list, err = nil, perrors.NewError(fmt.Errorf("panic: %v", rec), CodeUnknown)
		}
	}()
	if req == nil {
		return nil, perrors.NewError(errors.New("nil request"), CodeInvalidLog)
	}
	logger.Log.Infof("%s %d bytes", utils.TypeUrl(req), len(req.GetValue()))

	log, err := tenhou.Parse(req.GetValue())
	if err != nil {
		return nil, toError(err)
	}
	events, err := r.converter.Convert(ctx, log)
	if err != nil {
		logger.Log.Warnf("convert failed: %v", err)
		return nil, toError(err)
	}
	return utils.EventsList(events)
}

func toError(err error) *perrors.Error {
	code := CodeUnknown
	switch {
	case errors.Is(err, convlog.ErrMalformedToken):
		code = CodeMalformed
	case errors.Is(err, convlog.ErrExhausted):
		code = CodeExhausted
	case errors.Is(err, convlog.ErrInconsistentRound):
		code = CodeInconsistent
	case errors.Is(err, tenhou.ErrInvalidLog), errors.Is(err, tenhou.ErrUnsupported), errors.Is(err, mahjong.ErrInvalidTile):
		code = CodeInvalidLog
	}

	metadata := map[string]string{}
	var re *convlog.RoundError
	if errors.As(err, &re) {
		metadata["kyoku"] = strconv.Itoa(re.Kyoku)
		metadata["honba"] = strconv.Itoa(re.Honba)
		if re.Seat != mahjong.SeatNull {
			metadata["seat"] = strconv.Itoa(int(re.Seat))
		}
	}
	return perrors.NewError(err, code, metadata)
}
