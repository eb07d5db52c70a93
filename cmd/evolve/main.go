package main

import (
	"flag"
	"fmt"
	"math/big"
	"math/rand"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"evokit/internal/config"
	"evokit/internal/encoders"
	"evokit/internal/ga"
	"evokit/internal/progress"
)

func main() {
	configPath := flag.String("config", "configs/onemax.yaml", "path to config file")
	generations := flag.Int("generations", 0, "override the configured max generations")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *generations > 0 {
		cfg.Termination.MaxGenerations = *generations
	}

	fmt.Printf("evokit - Problem: %s\n", cfg.Encoder.Problem)
	fmt.Printf("Config: %s\n", *configPath)
	fmt.Printf("Population: %d..%d, Survival: %.2f, Mutation: %.2f, Selection: %s\n",
		cfg.GA.InitPopSize, cfg.GA.MaxPopSize, cfg.GA.SurvivalFactor, cfg.GA.MutationFactor,
		cfg.GA.Selection.Scheme)
	fmt.Println("---")

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	rng := rand.New(rand.NewSource(cfg.Seed))

	encoder, err := buildEncoder(cfg)
	if err != nil {
		fatal(err)
	}
	selector, err := buildSelector(cfg, rng)
	if err != nil {
		fatal(err)
	}
	recombinator, err := buildRecombinator(cfg)
	if err != nil {
		fatal(err)
	}
	mutator, err := buildMutator(cfg)
	if err != nil {
		fatal(err)
	}

	metrics, err := progress.NewMetricsWriter(cfg.Logging.CSVPath, cfg.Logging.JSONPath)
	if err != nil {
		fatal(err)
	}
	if err := metrics.Init(); err != nil {
		fatal(err)
	}
	defer metrics.Close()

	reporter := progress.Multi{progress.NewZapReporter(logger), metrics}
	if cfg.Logging.MetricsAddr != "" {
		reporter = append(reporter, progress.NewPromReporter(prometheus.DefaultRegisterer))
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(cfg.Logging.MetricsAddr, nil); err != nil {
				logger.Warn("metrics endpoint stopped", zap.Error(err))
			}
		}()
	}

	params, err := buildParams(cfg, reporter)
	if err != nil {
		fatal(err)
	}

	system := ga.NewSystem(encoder, selector, recombinator, mutator, rng)

	start := time.Now()
	solution, err := system.Run(params)
	if err != nil {
		fatal(err)
	}
	elapsed := time.Since(start)

	fmt.Println("---")
	fmt.Printf("Run complete! %d generations in %v (%s)\n", solution.Generations, elapsed, solution.Reason)
	fmt.Printf("Best fitness: %s\n", solution.BestFitness.RatString())
	if best, err := encoder.Decode(solution.BestChromosome); err == nil {
		fmt.Printf("Best solution: %v\n", best)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func buildEncoder(cfg *config.Config) (ga.Encoder, error) {
	switch cfg.Encoder.Problem {
	case "onemax":
		return encoders.NewOneMax(cfg.Encoder.Length)
	case "targetsum":
		return encoders.NewTargetSum(cfg.Encoder.Length, cfg.Encoder.Min, cfg.Encoder.Max, cfg.Encoder.Target)
	default:
		return nil, fmt.Errorf("unknown problem %q", cfg.Encoder.Problem)
	}
}

func buildSelector(cfg *config.Config, rng *rand.Rand) (ga.Selector, error) {
	sel := cfg.GA.Selection
	switch sel.Scheme {
	case "prop":
		return ga.NewProportionate(rng), nil
	case "rank":
		return ga.NewRanked(rng), nil
	case "tournament":
		var inner ga.Selector
		switch sel.Inner {
		case "":
		case "prop":
			inner = ga.NewProportionate(rng)
		case "rank":
			inner = ga.NewRanked(rng)
		default:
			return nil, fmt.Errorf("unknown inner selector %q", sel.Inner)
		}
		return ga.NewTournament(rng, sel.TournamentSize, sel.Chosen, inner)
	default:
		return nil, fmt.Errorf("unknown selection scheme %q", sel.Scheme)
	}
}

func buildRecombinator(cfg *config.Config) (ga.Recombinator, error) {
	switch cfg.GA.Crossover {
	case "point":
		return ga.PointCrossover{}, nil
	case "split":
		return ga.SplitCrossover{}, nil
	case "uniform":
		return ga.UniformSwapper{}, nil
	default:
		return nil, fmt.Errorf("unknown crossover %q", cfg.GA.Crossover)
	}
}

func buildMutator(cfg *config.Config) (ga.Mutator, error) {
	switch cfg.GA.Mutator.Type {
	case "point":
		return ga.NewPointMutator(cfg.GA.Mutator.Points)
	case "swap":
		return ga.SwapMutator{}, nil
	case "shuffle":
		return ga.ShuffleMutator{}, nil
	case "inversion":
		return ga.InversionMutator{}, nil
	default:
		return nil, fmt.Errorf("unknown mutator %q", cfg.GA.Mutator.Type)
	}
}

func buildParams(cfg *config.Config, reporter progress.Reporter) (ga.Params, error) {
	schedule := func(d config.DecayConfig) (ga.Schedule, error) {
		if d.Type == "" {
			return ga.NoDecay(), nil
		}
		return ga.DecaySchedule(d.Type, ratOf(d.Rate))
	}

	params := ga.Params{
		InitPopSize:     cfg.GA.InitPopSize,
		MaxPopSize:      cfg.GA.MaxPopSize,
		ExpansionFactor: ratOf(cfg.GA.ExpansionFactor),
		SurvivalFactor:  ratOf(cfg.GA.SurvivalFactor),
		Replacement:     cfg.GA.Replacement,
		MutationFactor:  ratOf(cfg.GA.MutationFactor),
		MaxGenerations:  cfg.Termination.MaxGenerations,
		StagnationLimit: ga.NoStagnationLimit(),
		Reporter:        reporter,
	}

	var err error
	if params.SurvivalSchedule, err = schedule(cfg.GA.SurvivalDecay); err != nil {
		return ga.Params{}, err
	}
	if params.MutationSchedule, err = schedule(cfg.GA.MutationDecay); err != nil {
		return ga.Params{}, err
	}
	if params.DiversityBiasSchedule, err = schedule(cfg.GA.DiversityBiasDecay); err != nil {
		return ga.Params{}, err
	}
	if params.ReproductionElitismSchedule, err = schedule(cfg.GA.ReproductionElitismDecay); err != nil {
		return ga.Params{}, err
	}

	params.SurvivalElitism = ga.NoElitism()
	if cfg.GA.SurvivalElitism != nil {
		params.SurvivalElitism = ga.EliteFraction(ratOf(*cfg.GA.SurvivalElitism))
	}
	params.ReproductionElitism = ga.NoElitism()
	if cfg.GA.ReproductionElitism != nil {
		params.ReproductionElitism = ga.EliteFraction(ratOf(*cfg.GA.ReproductionElitism))
	}
	if cfg.GA.DiversityBias != nil {
		params.DiversityBias = ratOf(*cfg.GA.DiversityBias)
	}
	if cfg.Termination.FitnessThreshold != nil {
		params.FitnessThreshold = ratOf(*cfg.Termination.FitnessThreshold)
	}
	if cfg.Termination.StagnationFraction != nil {
		params.StagnationLimit = ga.StagnationFraction(ratOf(*cfg.Termination.StagnationFraction))
	} else if cfg.Termination.StagnationLimit > 0 {
		params.StagnationLimit = ga.StagnationAfter(cfg.Termination.StagnationLimit)
	}

	return params, nil
}

func ratOf(f float64) *big.Rat {
	r := new(big.Rat)
	r.SetFloat64(f)
	return r
}
