package main

import (
	"net/http"

	flag "github.com/spf13/pflag"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"epaper/pkg/asset"
	"epaper/pkg/device/epd43"
	"epaper/pkg/device/remote"
	"epaper/pkg/proto"
)

var serial = flag.String("serial", "ttyAMA0", "serial name")
var listen = flag.String("listen", ":9123", "listen addr")
var assets = flag.String("assets", "", "bitmap asset dir")
var debug = flag.Bool("debug", false, "set debug")

func main() {
	flag.Parse()

	fx.New(
		fx.Provide(
			func() (*proto.Serial, *http.Server) {
				return proto.NewSerial(*serial),
					&http.Server{Addr: *listen}
			},
			func() (*zap.Logger, error) {
				if *debug {
					return zap.NewDevelopment()
				}
				return zap.NewProduction()
			},
			func() (*asset.Loader, error) {
				return asset.NewOsLoader(*assets)
			},
			func(s *proto.Serial, logger *zap.Logger, loader *asset.Loader) (proto.Control, error) {
				return epd43.NewDevice(s, logger, epd43.WithLoader(loader))
			},
		),
		fx.Invoke(
			remote.Proxy,
		),
	).Run()
}
