// README: Log-only conversation sink used when no database is configured.
package convlog

import (
	"context"

	"go.uber.org/zap"
)

type ZapSink struct {
	logger *zap.Logger
}

func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

func (z *ZapSink) Record(_ context.Context, t Turn) error {
	z.logger.Info("conversation turn",
		zap.String("session_id", t.SessionID.String()),
		zap.String("intent", t.Intent),
		zap.String("utterance", t.Utterance),
		zap.String("response", t.Response),
	)
	return nil
}
