package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stitts-dev/weather-caddie/internal/app"
	"github.com/stitts-dev/weather-caddie/internal/caddie"
	"github.com/stitts-dev/weather-caddie/internal/course"
	"github.com/stitts-dev/weather-caddie/internal/render"
	"github.com/stitts-dev/weather-caddie/internal/services"
	"github.com/stitts-dev/weather-caddie/pkg/config"
	"github.com/stitts-dev/weather-caddie/pkg/logger"
)

type rootOptions struct {
	verbose    bool
	courseFile string
	timeout    time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "caddie",
		Short:        "Wind-adjusted club and aim tips for your home course",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&opts.courseFile, "course", "", "Course file (default: COURSE_FILE)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Operation timeout")

	rootCmd.AddCommand(newTipsCmd(opts))
	rootCmd.AddCommand(newWeatherCmd(opts))
	rootCmd.AddCommand(newCourseCmd(opts))
	rootCmd.AddCommand(newCompassCmd())
	return rootCmd
}

// setup loads configuration and builds the app. Logs go to stderr so the
// tips stay clean on stdout.
func (o *rootOptions) setup(ctx context.Context) (*app.App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if o.courseFile != "" {
		cfg.CourseFile = o.courseFile
	}

	level := "warn"
	if o.verbose {
		level = "debug"
	}
	log := logger.InitLogger(level, cfg.IsDevelopment())
	log.SetOutput(os.Stderr)
	logrus.SetLevel(log.GetLevel())

	return app.New(ctx, cfg, log)
}

func newTipsCmd(opts *rootOptions) *cobra.Command {
	var (
		hole      int
		bearing   float64
		driver    float64
		iron      float64
		tee       int
		next      bool
		profileID string
	)

	cmd := &cobra.Command{
		Use:   "tips",
		Short: "Print tips for a hole under the current wind",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			a, err := opts.setup(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			req := services.AdviceRequest{Hole: hole, NextHour: next, ProfileID: profileID}
			flags := cmd.Flags()
			if flags.Changed("bearing") {
				req.Bearing = &bearing
			}
			if flags.Changed("driver") {
				req.DriverCarry = &driver
			}
			if flags.Changed("iron") {
				req.IronCarry = &iron
			}
			if flags.Changed("tee") {
				req.TeeIndex = &tee
			}

			resp, err := a.Advice.GetAdvice(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.Weather(a.Course.Name, resp.Weather, a.Course.Location()))
			fmt.Fprintln(out)
			fmt.Fprint(out, render.Tips(resp.Advice, a.Coefficients))
			return nil
		},
	}

	cmd.Flags().IntVar(&hole, "hole", 0, "Hole number (1-18)")
	cmd.Flags().Float64Var(&bearing, "bearing", 0, "Override the hole bearing, degrees")
	cmd.Flags().Float64Var(&driver, "driver", 0, "Driver carry, yards")
	cmd.Flags().Float64Var(&iron, "iron", 0, "7-iron carry, yards")
	cmd.Flags().IntVar(&tee, "tee", 0, "Tee index for hole yardage")
	cmd.Flags().BoolVar(&next, "next", false, "Use the next-hour forecast")
	cmd.Flags().StringVar(&profileID, "profile", "", "Player profile id")
	_ = cmd.MarkFlagRequired("hole")
	return cmd
}

func newWeatherCmd(opts *rootOptions) *cobra.Command {
	var next bool

	cmd := &cobra.Command{
		Use:   "weather",
		Short: "Print conditions at the course",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			a, err := opts.setup(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			snapshot, err := a.Weather.GetSnapshot(ctx, next)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.Weather(a.Course.Name, snapshot, a.Course.Location()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&next, "next", false, "Use the next-hour forecast")
	return cmd
}

// newCourseCmd only reads the course file; it needs no storage or network.
func newCourseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "course",
		Short: "Print the course, its tees and hole bearings",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.courseFile
			if path == "" {
				cfg, err := config.LoadConfig()
				if err != nil {
					return err
				}
				path = cfg.CourseFile
			}
			c, err := course.Load(path)
			if err != nil {
				return err
			}
			printCourse(cmd, c)
			return nil
		},
	}
}

func printCourse(cmd *cobra.Command, c *course.Course) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%.3f, %.3f) · %.0f ft · %s\n", c.Name, c.Latitude, c.Longitude, float64(c.ElevationFt), c.Timezone)
	for i, tee := range c.Tees {
		fmt.Fprintf(out, "Tee %d: %s · %d yds\n", i, tee.Name, tee.TotalYardage())
	}

	bearings := c.Bearings()
	holes := make([]int, 0, len(bearings))
	for h := range bearings {
		holes = append(holes, h)
	}
	sort.Ints(holes)
	for _, h := range holes {
		fmt.Fprintf(out, "Hole %2d: %s (%s)\n", h, bearings[h], caddie.Cardinal(bearings[h]))
	}
}

func newCompassCmd() *cobra.Command {
	var heading, windFrom float64

	cmd := &cobra.Command{
		Use:   "compass",
		Short: "Describe the wind relative to the direction you face",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range []float64{heading, windFrom} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("angles must be finite numbers")
				}
			}
			reading := caddie.ReadCompass(caddie.Degrees(heading), caddie.Degrees(windFrom))
			fmt.Fprintln(cmd.OutOrStdout(), render.Compass(reading))
			return nil
		},
	}
	cmd.Flags().Float64Var(&heading, "heading", 0, "Direction you face, degrees")
	cmd.Flags().Float64Var(&windFrom, "wind-from", 0, "Direction the wind blows from, degrees")
	_ = cmd.MarkFlagRequired("heading")
	_ = cmd.MarkFlagRequired("wind-from")
	return cmd
}
