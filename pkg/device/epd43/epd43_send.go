package epd43

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"epaper/pkg/command"
	"epaper/pkg/proto"
)

func (l *Link) sendCMD(cmd command.Command) error {
	bs, err := command.Encode(cmd)
	if err != nil {
		return err
	}

	return l.sendBytes(bs)
}

func (l *Link) sendBytes(bytes []byte) error {
	start := time.Now()
	sent, err := proto.WriteFull(l.port, bytes)
	cost := time.Since(start)

	if l.tap != nil && sent > 0 {
		_, _ = l.tap.Write(bytes[:sent])
	}

	if err != nil {
		return err
	}

	ext := ""
	if len(bytes) <= 16 {
		ext = fmt.Sprintf("%x", bytes)
	}

	l.logger.With(
		zap.Int("sent", sent),
		zap.String("cost", cost.String()),
		zap.String("data", ext),
	).Debug("transfer")

	return nil
}

func (l *Link) readAck() (byte, error) {
	bs, err := proto.ReadFull(l.port, 1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}
