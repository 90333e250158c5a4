package main

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/solar"
	"github.com/lixenwraith/orrery/vmath"
)

var (
	simSeconds       float64
	simFPS           int
	simOrbit         float64
	simRotation      float64
	simPauseOrbitsAt float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the model headless and print body angles",
	Long: `
Advance the solar system by a fixed number of simulated seconds at a fixed
frame rate, then print every body's orbit angle, completed revolutions and
spin angle.

Examples:
  # One Mercury year at default speeds
  orrery simulate --seconds 7.66

  # Freeze all orbits after five seconds while spins continue
  orrery simulate --seconds 10 --pause-orbits-at 5
`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Float64Var(&simSeconds, "seconds", 10, "Simulated duration in seconds")
	simulateCmd.Flags().IntVar(&simFPS, "fps", 30, "Simulated frames per second")
	simulateCmd.Flags().Float64Var(&simOrbit, "orbit", 1, "Orbit speed multiplier (0-10)")
	simulateCmd.Flags().Float64Var(&simRotation, "rotation", 1, "Spin speed multiplier (0-10)")
	simulateCmd.Flags().Float64Var(&simPauseOrbitsAt, "pause-orbits-at", -1, "Set the orbit multiplier to 0 at this time (negative = never)")
}

// simulation describes one headless run
type simulation struct {
	Duration      time.Duration
	Frame         time.Duration
	PauseOrbitsAt time.Duration // negative disables
}

// bodyReport is one row of the simulation result
type bodyReport struct {
	Name        string
	Parent      string
	OrbitDeg    float64
	Revolutions float64
	SpinDeg     float64
	OrbitState  string
}

type simulationResult struct {
	Frames   uint64
	Elapsed  time.Duration
	Orbit    float64
	Rotation float64
	Bodies   []bodyReport
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, func(cfg *config.Config, changed func(string) bool) {
		if changed("orbit") {
			cfg.Speed.Orbit = simOrbit
		}
		if changed("rotation") {
			cfg.Speed.Rotation = simRotation
		}
	})
	if err != nil {
		return err
	}
	if !(simSeconds >= 0) || simFPS < config.MinFPS || simFPS > config.MaxFPS {
		return fmt.Errorf("simulate: need --seconds >= 0 and --fps in [%d, %d]", config.MinFPS, config.MaxFPS)
	}

	logger, logFile := setupLogging(debugMode, cfg.Log.Level)
	if logFile != nil {
		defer logFile.Close()
	}

	sim := simulation{
		Duration:      time.Duration(simSeconds * float64(time.Second)),
		Frame:         time.Second / time.Duration(simFPS),
		PauseOrbitsAt: time.Duration(simPauseOrbitsAt * float64(time.Second)),
	}
	res, err := runSimulation(cfg, sim, logger)
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), res)
}

// runSimulation steps a fresh solar system frame by frame
// Orbit revolutions are accumulated from per-frame angle deltas
func runSimulation(cfg *config.Config, sim simulation, logger hclog.Logger) (*simulationResult, error) {
	w, err := buildWorld(cfg, logger, nil, nil)
	if err != nil {
		return nil, err
	}

	travelled := make([]float64, len(w.system.Bodies))
	previous := make([]float64, len(w.system.Bodies))
	for i, e := range w.system.Bodies {
		previous[i] = orbitAngle(e)
	}

	paused := false
	for remaining := sim.Duration; remaining > 0; {
		if !paused && sim.PauseOrbitsAt >= 0 && w.scene.Now() >= sim.PauseOrbitsAt {
			w.speeds.SetOrbitSpeedMultiplier(0)
			paused = true
			logger.Debug("orbits paused", "at", w.scene.Now())
		}

		step := min(sim.Frame, remaining)
		w.scene.Update(step)
		remaining -= step

		for i, e := range w.system.Bodies {
			angle := orbitAngle(e)
			travelled[i] += vmath.AngleDelta(previous[i], angle)
			previous[i] = angle
		}
	}

	res := &simulationResult{
		Frames:   w.scene.Frames(),
		Elapsed:  w.scene.Now(),
		Orbit:    w.speeds.OrbitSpeedMultiplier(),
		Rotation: w.speeds.RotationSpeedMultiplier(),
	}
	for i, e := range w.system.Bodies {
		res.Bodies = append(res.Bodies, bodyReport{
			Name:        e.Spec.Name,
			Parent:      e.Spec.Parent,
			OrbitDeg:    previous[i],
			Revolutions: travelled[i] / 360,
			SpinDeg:     spinAngle(e),
			OrbitState:  e.Orbit.State().String(),
		})
	}
	return res, nil
}

func orbitAngle(e *solar.Entry) float64 {
	return vmath.TwistDegrees(e.Anchor.LocalRotation(), vmath.AxisY)
}

// spinAngle measures the visual's turn around its tilted axis
func spinAngle(e *solar.Entry) float64 {
	axis := vmath.AxisAngle(vmath.AxisX, e.Spec.AxisTilt).Rotate(vmath.AxisY)
	return vmath.TwistDegrees(e.Body.Visual().LocalRotation(), axis)
}

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Padding(0, 1)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func writeReport(out io.Writer, res *simulationResult) error {
	title := titleStyle.Render(fmt.Sprintf("Simulated %.2fs in %d frames (orbit x%.1f, rotation x%.1f)",
		res.Elapsed.Seconds(), res.Frames, res.Orbit, res.Rotation))

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Body", "Parent", "Orbit", "Revolutions", "Spin", "State").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1 || col == 5:
				return dimStyle
			default:
				return cellStyle
			}
		})
	for _, b := range res.Bodies {
		t.Row(
			b.Name,
			b.Parent,
			formatDegrees(b.OrbitDeg),
			strconv.FormatFloat(b.Revolutions, 'f', 3, 64),
			formatDegrees(b.SpinDeg),
			b.OrbitState,
		)
	}

	_, err := fmt.Fprintf(out, "%s\n%s\n", title, t.Render())
	return err
}

func formatDegrees(deg float64) string {
	// Values a hair under 360 print as 0.0
	if math.Abs(vmath.AngleDelta(deg, 0)) < 0.05 {
		deg = 0
	}
	return strconv.FormatFloat(deg, 'f', 1, 64) + "°"
}
