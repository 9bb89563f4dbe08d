package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"icecream_controller/internal/compressor"
	"icecream_controller/internal/config"
	"icecream_controller/internal/gpio"
	"icecream_controller/internal/handlers"
	"icecream_controller/internal/logger"
	"icecream_controller/internal/metrics"
	"icecream_controller/internal/mqtt"
	"icecream_controller/internal/repository"
	"icecream_controller/internal/repository/db"
	"icecream_controller/internal/sensor"
	"icecream_controller/internal/server"
	"icecream_controller/internal/service"
)

const (
	configDir       = "configs"
	shutdownTimeout = 10 * time.Second
)

// hardware is what the controller drives: a temperature source, two relays
// and, in simulation, the plant behind them.
type hardware struct {
	reader     *sensor.Reader
	master     gpio.Relay
	compressor gpio.Relay
	plant      *service.PlantSimulator
}

func (hw *hardware) close(log *logger.Logger) {
	if err := hw.compressor.Close(); err != nil {
		log.Errorw("relay_close_failed", "relay", "compressor", "err", err)
	}
	if err := hw.master.Close(); err != nil {
		log.Errorw("relay_close_failed", "relay", "master", "err", err)
	}
}

func main() {
	cfg, err := config.Load(configDir)
	if err != nil {
		logger.Get(logger.InfoLevel, logger.ConsoleFormat).Fatalw("error reading config", "err", err)
	}
	log := logger.Get(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = log.Sync() }()

	conn, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	hw, err := openHardware(cfg, log)
	if err != nil {
		log.Fatalw("failed to open hardware", "err", err)
	}
	defer hw.close(log)

	m := metrics.New()
	pub := connectMQTT(cfg.MQTT, log)
	defer func() {
		if err := pub.Close(); err != nil {
			log.Warnw("mqtt_close_failed", "err", err)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(conn)
	recorder := service.NewEventRecorder(repos.EventRepo, pub, m, log, service.DefaultEventBuffer)
	ctrl := service.NewControllerService(service.ControllerDeps{
		Machine:         compressor.New(hw.master, hw.compressor),
		Reader:          hw.reader,
		Settings:        repos.SettingsRepo,
		Events:          recorder,
		Metrics:         m,
		Log:             log,
		HistoryCapacity: cfg.History.Capacity,
	})

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var recorderDone sync.WaitGroup
	recorderDone.Add(1)
	go func() {
		defer recorderDone.Done()
		recorder.Run(ctx)
	}()

	// relays are driven Low before anything is served
	if err := ctrl.Boot(ctx); err != nil {
		log.Errorw("boot_relay_init_failed", "err", err)
	}

	if hw.plant != nil {
		go hw.plant.Run(ctx)
	}

	poller := service.NewPoller(ctrl, pub, log, cfg.Poll.SampleInterval, cfg.Poll.TickInterval)
	go func() {
		if err := poller.Run(ctx); err != nil {
			log.Fatalw("poller stopped", "err", err)
		}
	}()

	services := service.NewService(repos, ctrl, cfg.Auth)
	apiHandler := handlers.NewHandler(services, m, log)

	// start HTTP server
	srv := &server.Server{}
	runHTTPServer(srv, cfg.Port, apiHandler, log)

	// graceful shutdown
	waitForShutdown(srv, log)

	if err := ctrl.Stop(context.Background()); err != nil {
		log.Errorw("compressor_stop_failed", "err", err)
	}
	cancel()
	recorderDone.Wait()
}

func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DBPath
	if path == "" {
		log.Infow("db.path not set in config; using default file", "default", "icecream.db")
		path = "icecream.db"
	}
	return db.InitDB(path)
}

// openHardware selects the simulated plant or the real IIO input and GPIO
// relays. With gpio.enabled false the relays are in-memory.
func openHardware(cfg *config.Config, log *logger.Logger) (*hardware, error) {
	cal := cfg.Sensor.Calibration

	if cfg.Sensor.Source == config.SourceSimulated {
		plant := service.NewPlantSimulator(cfg.Simulator, cal)
		log.Infow("using_simulated_plant", "ambient_c", cfg.Simulator.AmbientC, "floor_c", cfg.Simulator.FloorC)
		return &hardware{
			reader:     sensor.NewReader(plant, cal),
			master:     plant.MasterRelay(),
			compressor: plant.CompressorRelay(),
			plant:      plant,
		}, nil
	}

	hw := &hardware{reader: sensor.NewReader(sensor.NewIIOADC(cfg.Sensor.IIOPath), cal)}
	if !cfg.GPIO.Enabled {
		log.Warnw("gpio_disabled_using_fake_relays")
		hw.master = gpio.NewFakeRelay()
		hw.compressor = gpio.NewFakeRelay()
		return hw, nil
	}

	master, err := gpio.NewRealRelay(cfg.GPIO.Chip, cfg.GPIO.MasterPin)
	if err != nil {
		return nil, err
	}
	comp, err := gpio.NewRealRelay(cfg.GPIO.Chip, cfg.GPIO.CompressorPin)
	if err != nil {
		_ = master.Close()
		return nil, err
	}
	hw.master, hw.compressor = master, comp
	log.Infow("gpio_relays_ready", "chip", cfg.GPIO.Chip, "master_pin", cfg.GPIO.MasterPin, "compressor_pin", cfg.GPIO.CompressorPin)
	return hw, nil
}

// connectMQTT falls back to discarding telemetry when no broker is set or
// the broker is unreachable.
func connectMQTT(cfg config.MQTTConfig, log *logger.Logger) mqtt.Publisher {
	if cfg.Broker == "" {
		return mqtt.Discard{}
	}
	pub, err := mqtt.NewRealPublisher(cfg.Broker, cfg.ClientID, cfg.TopicPrefix)
	if err != nil {
		log.Warnw("mqtt_connect_failed", "broker", cfg.Broker, "err", err)
		return mqtt.Discard{}
	}
	log.Infow("mqtt_connected", "broker", cfg.Broker, "topic_prefix", cfg.TopicPrefix)
	return pub
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, port string, handler *handlers.Handler, log *logger.Logger) {
	go func() {
		if err := srv.Run(port, handler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()
	log.Infow("http_listening", "port", port)
}

// waitForShutdown blocks until SIGINT/SIGTERM, then drains HTTP requests.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
