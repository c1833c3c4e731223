package cli

import (
	"context"

	"github.com/ignisVeneficus/bistro/config"
	"github.com/ignisVeneficus/bistro/db"
	"github.com/ignisVeneficus/bistro/db/dao"
	"github.com/ignisVeneficus/bistro/logging"
	"github.com/ignisVeneficus/bistro/probe"
	"github.com/ignisVeneficus/bistro/server"
	"golang.org/x/sync/errgroup"
)

func runServe(ctx context.Context, cfg config.Config) error {
	logg := logging.Enter(ctx, "cli.serve", map[string]any{"addr": cfg.Server.Addr, "env": string(cfg.Env)})
	server.SetMode(cfg.Env)

	store := server.NewDBStore(db.GetDatabase())

	var api *server.API
	prober := probe.NewService(probe.NewResolver(cfg.Probe), cfg.Probe.Workers, func(req probe.Request, size probe.Size, err error) {
		api.ApplyProbe(req, size, err)
	})
	api = server.NewAPI(cfg, store, prober)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		prober.Run(gctx)
		return nil
	})
	g.Go(func() error {
		api.Sessions().Run(gctx)
		return nil
	})
	g.Go(func() error {
		defer prober.Close()
		return server.Serve(gctx, cfg, api.Router())
	})

	if err := g.Wait(); err != nil {
		logging.ExitErr(logg, err)
		return err
	}
	logging.Exit(logg, "ok", nil)
	return nil
}

func runMigrate(ctx context.Context, cfg config.Config) error {
	conn, err := db.Open(cfg.Database, true)
	if err != nil {
		return err
	}
	defer conn.Close()
	return dao.CreateDatabase(conn, ctx)
}
