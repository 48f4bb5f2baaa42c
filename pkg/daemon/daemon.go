package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/powerstate/pkg/config"
	"github.com/charlie0129/powerstate/pkg/events"
	"github.com/charlie0129/powerstate/pkg/powerinfo"
)

// Inspector produces a fresh power status record on every call.
type Inspector interface {
	Inspect() *powerinfo.Record
}

// Daemon serves the latest power status over HTTP and notifies
// subscribers when the power source changes.
type Daemon struct {
	inspector Inspector
	hub       *events.EventHub
	interval  time.Duration
	intervalc chan time.Duration

	// refreshMu serializes inspections so an older result can never
	// replace a newer one.
	refreshMu sync.Mutex
	mu        sync.RWMutex
	latest    *powerinfo.Record
}

// New returns a Daemon that re-inspects the host every interval.
func New(insp Inspector, interval time.Duration) *Daemon {
	return &Daemon{
		inspector: insp,
		hub:       events.NewEventHub(),
		interval:  interval,
		intervalc: make(chan time.Duration, 1),
	}
}

// Events returns the hub power changes are published on.
func (d *Daemon) Events() *events.EventHub {
	return d.hub
}

func (d *Daemon) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/power-status", d.getPowerStatus)
	router.GET("/ac-power", d.getACPower)
	router.GET("/laptop", d.getLaptop)
	router.GET("/events", d.getEvents)
	router.GET("/version", getVersion)

	return router
}

// Run serves on listenAddr until ctx is done or SIGINT/SIGTERM arrives.
func Run(ctx context.Context, conf config.Config, insp Inspector) error {
	d := New(insp, time.Duration(conf.PollIntervalSeconds())*time.Second)
	router := d.setupRoutes()

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	l, err := net.Listen("tcp", conf.ListenAddr())
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", conf.ListenAddr())
	}

	// First inspection before accepting requests, so handlers always have
	// a record to serve.
	d.Refresh()

	loopCtx, stopLoop := context.WithCancel(ctx)
	defer stopLoop()

	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Receive SIGHUP to reload config
	go func() {
		hupc := make(chan os.Signal, 1)
		signal.Notify(hupc, syscall.SIGHUP)
		defer signal.Stop(hupc)
		for {
			select {
			case <-hupc:
				d.reloadConfig(conf)
			case <-loopCtx.Done():
				return
			}
		}
	}()

	go func() {
		logrus.Debugln("poll loop starts")
		d.pollLoop(loopCtx)
		logrus.Debugln("poll loop stopped")
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigc)

	select {
	case sig := <-sigc:
		logrus.Infof("caught signal \"%s\": shutting down.", sig)
	case <-ctx.Done():
		logrus.Info("context done: shutting down.")
	}
	stopLoop()

	logrus.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}

	logrus.Info("exiting")
	return nil
}

// reloadConfig re-reads conf and applies what can change at runtime.
// listen_addr and chassis_policy need a restart.
func (d *Daemon) reloadConfig(conf config.Config) {
	if err := conf.Load(); err != nil {
		logrus.Errorf("failed to reload config: %v", err)
		return
	}
	d.SetPollInterval(time.Duration(conf.PollIntervalSeconds()) * time.Second)
	logrus.Infof("config reloaded")
}
