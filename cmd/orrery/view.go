package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/core"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/scene"
)

const (
	sliderStep   = 5
	cameraStep   = 5.0 // degrees per arrow press
	maxPitch     = 80.0
	maxFrameStep = 100 * time.Millisecond
	messageTTL   = 2 * time.Second

	metricsShutdownTimeout = time.Second
)

var (
	viewFPS         int
	viewMute        bool
	viewMetricsAddr string
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Interactive terminal viewer",
	Long: `
Draw the solar system in the terminal. Click the Sun to show the speed
controls, click a body to show its info card.

Keys:
  [ ]      orbit speed down / up
  { }      rotation speed down / up
  0        pause / resume orbits
  arrows   move the camera
  m        mute
  q, Esc   quit
`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().IntVar(&viewFPS, "fps", 30, "Frames per second")
	viewCmd.Flags().BoolVar(&viewMute, "mute", false, "Start with sound muted")
	viewCmd.Flags().StringVar(&viewMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9100")
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config, changed func(string) bool) {
		if changed("fps") {
			cfg.View.FPS = viewFPS
		}
		if changed("mute") {
			cfg.View.Mute = viewMute
		}
		if changed("metrics-addr") {
			cfg.Metrics.Addr = viewMetricsAddr
		}
	})
	if err != nil {
		return err
	}

	logger, logFile := setupLogging(debugMode, cfg.Log.Level)
	if logFile != nil {
		defer logFile.Close()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("screen init: %w", err)
	}
	defer screen.Fini()
	core.RegisterCrashTerminal(screen)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()
	screen.EnableMouse()
	screen.HideCursor()

	sound := audio.NewSoundManager()
	if err := sound.Initialize(); err != nil {
		logger.Warn("continuing without audio", "error", err)
	}
	defer sound.Cleanup()
	sound.SetMuted(cfg.View.Mute)

	v, err := newViewer(screen, cfg, logger, sound)
	if err != nil {
		return err
	}

	if cfg.Metrics.Addr != "" {
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: v.world.collector.Handler()}
		core.Go(func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server", "error", err)
			}
		})
		defer shutdownMetrics(srv, metricsShutdownTimeout, logger)
		logger.Info("serving metrics", "addr", cfg.Metrics.Addr)
	}

	v.run(cfg.FrameInterval())
	return nil
}

// shutdownMetrics stops srv, waiting up to timeout for in-flight scrapes
func shutdownMetrics(srv *http.Server, timeout time.Duration, logger hclog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Debug("metrics server shutdown", "error", err)
	}
}

// viewer owns one interactive session
type viewer struct {
	screen   tcell.Screen
	world    *world
	renderer *render.Renderer
	sound    *audio.SoundManager
	logger   hclog.Logger

	// Camera orbits the sun in degrees
	yaw, pitch, distance float64

	sprites     []render.Sprite
	buttons     tcell.ButtonMask
	resumeOrbit int // slider progress restored by unpause

	message   string
	messageAt time.Time
}

func newViewer(screen tcell.Screen, cfg *config.Config, logger hclog.Logger, sound *audio.SoundManager) (*viewer, error) {
	v := &viewer{
		screen:   screen,
		renderer: render.NewRenderer(screen),
		sound:    sound,
		logger:   logger,
		distance: math.Hypot(cfg.View.CameraDistance, cfg.View.CameraHeight),
		pitch:    mgl64.RadToDeg(math.Atan2(cfg.View.CameraHeight, cfg.View.CameraDistance)),
	}

	var reg prometheus.Registerer
	if cfg.Metrics.Addr != "" {
		reg = prometheus.NewRegistry()
	}
	w, err := buildWorld(cfg, logger, reg, v.onToggle)
	if err != nil {
		return nil, err
	}
	v.world = w
	v.resumeOrbit = w.system.Panel.Orbit.Progress()
	v.placeCamera()
	return v, nil
}

// run drives frames until the user quits
func (v *viewer) run(interval time.Duration) {
	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	})

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	v.frame(0)
	for {
		select {
		case ev := <-events:
			if !v.handleEvent(ev) {
				return
			}
		case now := <-ticker.C:
			v.frame(min(now.Sub(last), maxFrameStep))
			last = now
		}
	}
}

// frame advances the scene by delta and redraws
func (v *viewer) frame(delta time.Duration) {
	sc := v.world.scene
	sc.Update(delta)

	if v.message != "" && time.Since(v.messageAt) > messageTTL {
		v.message = ""
	}
	v.sprites = v.renderer.Draw(sc, v.target(), render.Status{
		Orbit:    v.world.speeds.OrbitSpeedMultiplier(),
		Rotation: v.world.speeds.RotationSpeedMultiplier(),
		Elapsed:  sc.Now(),
		Muted:    v.sound.Muted(),
		Message:  v.message,
	})
}

// handleEvent returns false when the viewer should exit
func (v *viewer) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	panel := v.world.system.Panel

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		v.yaw -= cameraStep
	case tcell.KeyRight:
		v.yaw += cameraStep
	case tcell.KeyUp:
		v.pitch = min(v.pitch+cameraStep, maxPitch)
	case tcell.KeyDown:
		v.pitch = max(v.pitch-cameraStep, -maxPitch)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return false
		case '[':
			panel.Orbit.Step(-sliderStep)
			v.sound.PlayTick()
		case ']':
			panel.Orbit.Step(sliderStep)
			v.sound.PlayTick()
		case '{':
			panel.Rotation.Step(-sliderStep)
			v.sound.PlayTick()
		case '}':
			panel.Rotation.Step(sliderStep)
			v.sound.PlayTick()
		case '0':
			v.toggleOrbitPause()
		case 'm', 'M':
			v.sound.SetMuted(!v.sound.Muted())
		}
	}
	v.placeCamera()
	return true
}

// toggleOrbitPause parks the orbit slider at zero or restores it
func (v *viewer) toggleOrbitPause() {
	orbit := v.world.system.Panel.Orbit
	if orbit.Progress() > 0 {
		v.resumeOrbit = orbit.Progress()
		orbit.SetProgress(0)
		v.say("orbits paused")
		return
	}
	if v.resumeOrbit == 0 {
		v.resumeOrbit = orbit.Max / 10
	}
	orbit.SetProgress(v.resumeOrbit)
	v.say("orbits resumed")
}

// handleMouse taps on the press edge of the primary button
func (v *viewer) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && v.buttons&tcell.Button1 == 0
	v.buttons = buttons
	if !pressed {
		return
	}

	x, y := ev.Position()
	hit := render.Pick(v.sprites, x, y)
	if hit == nil {
		return
	}
	consumed := v.world.scene.DispatchTap(hit, scene.TapEvent{X: x, Y: y, Hit: hit})
	v.logger.Debug("tap", "node", hit.Name(), "consumed", consumed)
}

func (v *viewer) onToggle(name string, visible bool) {
	v.sound.PlayToggle(visible)
	state := "hidden"
	if visible {
		state = "shown"
	}
	v.say(name + " " + state)
}

func (v *viewer) say(msg string) {
	v.message = msg
	v.messageAt = time.Now()
}

func (v *viewer) target() mgl64.Vec3 {
	return v.world.system.SunVisual.WorldPosition()
}

// placeCamera puts the camera on its sphere around the sun
func (v *viewer) placeCamera() {
	yaw, pitch := mgl64.DegToRad(v.yaw), mgl64.DegToRad(v.pitch)
	offset := mgl64.Vec3{
		math.Cos(pitch) * math.Sin(yaw),
		math.Sin(pitch),
		math.Cos(pitch) * math.Cos(yaw),
	}.Mul(v.distance)
	v.world.scene.PlaceCamera(v.target().Add(offset))
}
