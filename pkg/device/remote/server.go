package remote

import (
	"context"
	"net/http"
	"net/rpc"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"epaper/pkg/command"
	"epaper/pkg/proto"
)

// Proxy serves dev over net/rpc on srv for the lifetime of the fx app and
// shuts the display down when the app stops.
func Proxy(dev proto.Control, srv *http.Server, logger *zap.Logger, lifecycle fx.Lifecycle) error {
	svc := NewService(dev)
	if err := rpc.Register(svc); err != nil {
		return err
	}

	rpc.HandleHTTP()

	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					logger.With(zap.Error(err)).Fatal("rpc server failed")
				}
			}()
			logger.With(zap.String("addr", srv.Addr)).Info("rpc server started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := srv.Shutdown(ctx)
			if derr := dev.Shutdown(); derr != nil {
				logger.With(zap.Error(derr)).Info("display shutdown failed")
			}
			return err
		},
	})

	return nil
}

func NewService(dev proto.Control) *Service {
	return &Service{dev: dev}
}

// Service forwards rpc calls to one device, one call at a time.
type Service struct {
	mu  sync.Mutex
	dev proto.Control
}

func (s *Service) Command(name string, _ *EmptyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch name {
	case "startup":
		return s.dev.Startup()
	case "shutdown":
		return s.dev.Shutdown()
	case "clear":
		return s.dev.Clear()
	case "update":
		return s.dev.Update()
	}

	return errors.New("unknown command")
}

func (s *Service) SetMemory(mode command.MemoryMode, _ *EmptyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetMemory(mode)
}

func (s *Service) SetRotation(rotation command.Rotation, _ *EmptyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetRotation(rotation)
}

func (s *Service) SetFontSize(req SetFontSizeRequest, _ *EmptyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.SetFontSize(req.Target, req.Size)
}

func (s *Service) DrawBitmap(req *DrawBitmapRequest, _ *EmptyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.DrawBitmap(req.PosX, req.PosY, req.Data)
}

func (s *Service) DrawAsset(req *DrawAssetRequest, _ *EmptyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.DrawAsset(req.PosX, req.PosY, req.Name)
}

func (s *Service) DrawText(req *DrawTextRequest, _ *EmptyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.DrawText(req.PosX, req.PosY, req.Text)
}

func (s *Service) DrawWrapped(req *DrawTextRequest, _ *EmptyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.DrawWrapped(req.PosX, req.PosY, req.Width, req.Text)
}

func (s *Service) DrawLine(req *DrawLineRequest, _ *EmptyResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dev.DrawLine(req.X0, req.Y0, req.X1, req.Y1)
}
