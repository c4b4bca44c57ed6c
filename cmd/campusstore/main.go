package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"campusstore/pkg/config"
	"campusstore/pkg/domain/model"
	"campusstore/pkg/domain/service"
	"campusstore/pkg/infrastructure/event"
	"campusstore/pkg/infrastructure/filestore"
	"campusstore/pkg/infrastructure/memory"
	"campusstore/pkg/infrastructure/mysql"
	"campusstore/pkg/infrastructure/transport"
)

const shutdownTimeout = 10 * time.Second

var errStopped = errors.New("stopped by signal")

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	app := &cli.App{
		Name:  "campusstore",
		Usage: "campus store backend: catalog, cart, orders, print queue and shop status",
		Commands: []*cli.Command{
			{
				Name:   "service",
				Usage:  "run the HTTP API",
				Action: runService,
			},
			{
				Name:   "migrate",
				Usage:  "apply database migrations",
				Action: runMigrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("campusstore failed")
	}
}

func runMigrate(_ *cli.Context) error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}
	log.SetLevel(cfg.Level())
	if cfg.Storage != config.StorageMySQL {
		return errors.Errorf("migrations need mysql storage, got %q", cfg.Storage)
	}
	if err := mysql.Migrate(cfg.DBDSN); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}

func runService(c *cli.Context) error {
	cfg, err := config.Parse()
	if err != nil {
		return err
	}
	log.SetLevel(cfg.Level())

	repos, closeRepos, err := openRepositories(cfg)
	if err != nil {
		return err
	}
	defer closeRepos()

	services := buildServices(cfg, repos)
	if cfg.SeedCatalog {
		seeded, err := service.SeedCatalog(c.Context, services.Catalog, service.DefaultCatalog())
		if err != nil {
			return errors.Wrap(err, "seed catalog")
		}
		if seeded > 0 {
			log.WithField("products", seeded).Info("catalog seeded")
		}
	}

	srv := &http.Server{
		Addr:              cfg.ServeHTTPAddress,
		Handler:           transport.Router(services),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	group, ctx := errgroup.WithContext(c.Context)
	group.Go(func() error {
		log.WithField("address", cfg.ServeHTTPAddress).Info("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "serve http")
		}
		return nil
	})
	group.Go(func() error {
		return waitForKillSignal(ctx)
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = group.Wait()
	if errors.Is(err, errStopped) {
		return nil
	}
	return err
}

type repositories struct {
	products    model.ProductRepository
	carts       model.CartRepository
	orders      model.OrderRepository
	printOrders model.PrintOrderRepository
	slots       model.SlotStore
}

func openRepositories(cfg *config.Config) (repositories, func(), error) {
	var (
		repos   repositories
		closeFn = func() {}
	)

	switch cfg.Storage {
	case config.StorageMySQL:
		db, err := mysql.Open(cfg.DBDSN, cfg.DBMaxConnections)
		if err != nil {
			return repos, nil, err
		}
		closeFn = func() {
			if err := db.Close(); err != nil {
				log.WithError(err).Error("close database")
			}
		}
		repos = repositories{
			products:    mysql.NewProductRepository(db),
			carts:       mysql.NewCartRepository(db),
			orders:      mysql.NewOrderRepository(db),
			printOrders: mysql.NewPrintOrderRepository(db),
			slots:       mysql.NewSlotStore(db),
		}
	default:
		repos = repositories{
			products:    memory.NewProductRepository(),
			carts:       memory.NewCartRepository(),
			orders:      memory.NewOrderRepository(),
			printOrders: memory.NewPrintOrderRepository(),
			slots:       memory.NewSlotStore(),
		}
	}

	if cfg.ShopStatusFile != "" {
		repos.slots = filestore.NewSlotStore(cfg.ShopStatusFile)
	}
	return repos, closeFn, nil
}

func buildServices(cfg *config.Config, repos repositories) transport.Services {
	dispatcher := event.NewLogDispatcher(log.StandardLogger())
	pricer := service.NewPrintPricer(service.DefaultPrintRates)

	return transport.Services{
		Catalog: service.NewCatalogService(repos.products, dispatcher),
		Cart: service.NewCartService(service.CartDependencies{
			Carts:       repos.carts,
			Products:    repos.products,
			Orders:      repos.orders,
			PrintOrders: repos.printOrders,
			Pricer:      pricer,
			Tax: service.TaxPolicy{
				Rate:                 cfg.TaxRate,
				IncludedInOrderTotal: cfg.TaxIncludedInOrderTotal,
			},
			Dispatcher: dispatcher,
		}),
		Orders:      service.NewOrderService(repos.orders),
		PrintOrders: service.NewPrintOrderService(repos.printOrders, dispatcher),
		ShopStatus:  service.NewShopStatusService(repos.slots, dispatcher),
		Pricer:      pricer,
	}
}

func waitForKillSignal(ctx context.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case <-ctx.Done():
		return nil
	case sig := <-signals:
		switch sig {
		case os.Interrupt:
			log.Info("got SIGINT...")
		case syscall.SIGTERM:
			log.Info("got SIGTERM...")
		}
		return errStopped
	}
}
