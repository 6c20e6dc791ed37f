// Command bootstrap calibrates a forward curve from par swap quotes and
// prints the resulting curve and per-swap residuals as JSON.
//
// Without a config file it runs the embedded USD 2008-02-04 reference set.
// A YAML file given via -config may override the quote set, the short-end
// prefix, the conventions, and the solver settings.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/meenmo/curvecal/calendar"
	"github.com/meenmo/curvecal/calibrate"
	"github.com/meenmo/curvecal/daycount"
	"github.com/meenmo/curvecal/marketdata"
	"github.com/meenmo/curvecal/schedule"
	"github.com/meenmo/curvecal/swap"
)

var (
	configPath = flag.String("config", "", "optional YAML run configuration")
	pretty     = flag.Bool("pretty", true, "indent JSON output")
)

// runConfig is the YAML-facing schema. Zero values fall back to the
// embedded reference scenario.
type runConfig struct {
	EvaluationDate    string  `mapstructure:"evaluation_date"`
	SettlementLagDays int     `mapstructure:"settlement_lag_days"`
	Calendar          string  `mapstructure:"calendar"`
	Adjustment        string  `mapstructure:"adjustment"`
	Generation        string  `mapstructure:"generation"`
	FixedFrequency    string  `mapstructure:"fixed_frequency"`
	FixedDayCount     string  `mapstructure:"fixed_day_count"`
	FloatFrequency    string  `mapstructure:"float_frequency"`
	FloatDayCount     string  `mapstructure:"float_day_count"`
	Index             string  `mapstructure:"index"`
	Notional          float64 `mapstructure:"notional"`
	KnotFrequency     string  `mapstructure:"knot_frequency"`
	CurveDayCount     string  `mapstructure:"curve_day_count"`

	Quotes []struct {
		ID       string  `mapstructure:"id"`
		Maturity string  `mapstructure:"maturity"`
		ParRate  float64 `mapstructure:"par_rate"`
	} `mapstructure:"quotes"`
	Prefix []float64 `mapstructure:"prefix"`

	Solver struct {
		Scale         float64 `mapstructure:"scale"`
		InitialGuess  float64 `mapstructure:"initial_guess"`
		MaxIterations int     `mapstructure:"max_iterations"`
		Tolerance     float64 `mapstructure:"tolerance"`
	} `mapstructure:"solver"`
}

type knotOut struct {
	Date           string  `json:"date"`
	Forward        float64 `json:"forward"`
	DiscountFactor float64 `json:"discount_factor"`
}

type resultOut struct {
	Converged  bool               `json:"converged"`
	Iterations int                `json:"iterations"`
	Objective  float64            `json:"objective"`
	Knots      []knotOut          `json:"knots"`
	Residuals  map[string]float64 `json:"residuals"`
}

func main() {
	flag.Parse()

	in := marketdata.USD20080204()
	cfg := calibrate.DefaultConfig

	if *configPath != "" {
		if err := applyConfig(*configPath, &in, &cfg); err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	res, err := calibrate.Bootstrap(in, cfg)
	var convErr *calibrate.ConvergenceError
	switch {
	case errors.As(err, &convErr):
		// Best-effort result: report it, but flag the failure to the caller.
		log.Printf("warning: %v", convErr)
		res = convErr.Result
	case err != nil:
		log.Fatalf("bootstrap: %v", err)
	}

	if err := printResult(res); err != nil {
		log.Fatalf("output: %v", err)
	}
	if !res.Converged {
		os.Exit(1)
	}
}

func applyConfig(path string, in *calibrate.Input, cfg *calibrate.Config) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	var rc runConfig
	if err := v.Unmarshal(&rc); err != nil {
		return err
	}

	if rc.EvaluationDate != "" {
		d, err := parseDate(rc.EvaluationDate)
		if err != nil {
			return err
		}
		in.EvaluationDate = d
	}
	if rc.SettlementLagDays != 0 {
		in.SettlementLagDays = rc.SettlementLagDays
	}
	if rc.Notional != 0 {
		in.Conventions.Notional = rc.Notional
	}

	var err error
	if rc.Calendar != "" {
		if in.Conventions.Calendar, err = calendar.Parse(rc.Calendar); err != nil {
			return err
		}
	}
	if rc.Adjustment != "" {
		if in.Conventions.Adjustment, err = calendar.ParseAdjustment(rc.Adjustment); err != nil {
			return err
		}
	}
	if rc.Generation != "" {
		if in.Conventions.Generation, err = schedule.ParseDirection(rc.Generation); err != nil {
			return err
		}
	}
	if rc.FixedFrequency != "" {
		if in.Conventions.FixedFrequency, err = schedule.ParseFrequency(rc.FixedFrequency); err != nil {
			return err
		}
	}
	if rc.FixedDayCount != "" {
		if in.Conventions.FixedDayCount, err = daycount.Parse(rc.FixedDayCount); err != nil {
			return err
		}
	}
	if rc.FloatFrequency != "" {
		if in.Conventions.FloatFrequency, err = schedule.ParseFrequency(rc.FloatFrequency); err != nil {
			return err
		}
	}
	if rc.FloatDayCount != "" {
		if in.Conventions.FloatDayCount, err = daycount.Parse(rc.FloatDayCount); err != nil {
			return err
		}
	}
	if rc.Index != "" {
		if in.Conventions.Index, err = swap.ParseIndex(rc.Index); err != nil {
			return err
		}
	}
	if rc.KnotFrequency != "" {
		if in.KnotFrequency, err = schedule.ParseFrequency(rc.KnotFrequency); err != nil {
			return err
		}
	}
	if rc.CurveDayCount != "" {
		if in.CurveDayCount, err = daycount.Parse(rc.CurveDayCount); err != nil {
			return err
		}
	}

	if len(rc.Quotes) > 0 {
		quotes := make([]calibrate.Quote, 0, len(rc.Quotes))
		for _, q := range rc.Quotes {
			d, err := parseDate(q.Maturity)
			if err != nil {
				return fmt.Errorf("quote %s: %w", q.ID, err)
			}
			quotes = append(quotes, calibrate.Quote{ID: q.ID, Maturity: d, ParRate: q.ParRate})
		}
		in.Quotes = quotes
	}
	if len(rc.Prefix) > 0 {
		in.Prefix = rc.Prefix
	}

	if rc.Solver.Scale != 0 {
		cfg.Scale = rc.Solver.Scale
	}
	if rc.Solver.InitialGuess != 0 {
		cfg.InitialGuess = rc.Solver.InitialGuess
	}
	if rc.Solver.MaxIterations != 0 {
		cfg.MaxIterations = rc.Solver.MaxIterations
	}
	if rc.Solver.Tolerance != 0 {
		cfg.Tolerance = rc.Solver.Tolerance
	}
	return nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date %q: %w", s, err)
	}
	return d, nil
}

func printResult(res *calibrate.Result) error {
	out := resultOut{
		Converged:  res.Converged,
		Iterations: res.Iterations,
		Objective:  res.Objective,
		Knots:      make([]knotOut, 0, len(res.KnotDates)),
		Residuals:  res.Residuals,
	}
	for i, d := range res.KnotDates {
		df, err := res.Curve.DF(d)
		if err != nil {
			return err
		}
		out.Knots = append(out.Knots, knotOut{
			Date:           d.Format("2006-01-02"),
			Forward:        res.Forwards[i],
			DiscountFactor: df,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(out)
}
