package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/afmlab/internal/afm"
	"github.com/abhisek/afmlab/internal/coach"
	"github.com/abhisek/afmlab/internal/explorer"
	"github.com/abhisek/afmlab/internal/simulator"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Compute an AFM prediction from parameters",
	Long: `Compute P(success) with the simulator convention (θ - β + γT), or with a
concept's explorer parameters when --concept is given.

Examples:
  afmlab predict --theta 0.5 --beta -0.2 --gamma 0.3 --practice 8
  afmlab predict --concept loops --ability 0.2 --opportunities 1 --explain`,
	RunE: runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.Float64("theta", simulator.DefaultTheta, "Student ability θ")
	f.Float64("beta", simulator.DefaultBeta, "Skill difficulty β")
	f.Float64("gamma", simulator.DefaultGamma, "Learning rate γ")
	f.Int("practice", simulator.DefaultPractice, "Practice opportunities T")
	f.String("concept", "", "Use an explorer concept's difficulty and learning rate")
	f.Float64("ability", 0, "Learner ability (with --concept)")
	f.Int("opportunities", 0, "Practice opportunities (with --concept)")
	f.Bool("explain", false, "Ask the coach to explain the prediction")
	f.Bool("json", false, "Print JSON")
}

type prediction struct {
	Convention  string       `json:"convention"`
	Logit       float64      `json:"logit"`
	Probability float64      `json:"probability"`
	Zone        afm.Zone     `json:"zone"`
	Steps       []string     `json:"steps,omitempty"`
	Explanation *explanation `json:"explanation,omitempty"`
}

type explanation struct {
	Summary    string `json:"summary"`
	Suggestion string `json:"suggestion"`
	Source     string `json:"source"`
}

func runPredict(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	asJSON, _ := f.GetBool("json")
	explain, _ := f.GetBool("explain")

	var out prediction
	var in coach.Input

	if name, _ := f.GetString("concept"); name != "" {
		c, err := explorer.ParseConcept(name)
		if err != nil {
			return err
		}
		ability, err := finiteFlag(cmd, "ability")
		if err != nil {
			return err
		}
		opps, _ := f.GetInt("opportunities")
		if opps < 0 {
			return fmt.Errorf("--opportunities must be >= 0, got %d", opps)
		}
		cs := explorer.DefaultConcepts()[c]

		out.Convention = "explorer"
		out.Logit = afm.ExplorerLogit(ability, cs.Difficulty, cs.LearningRate, opps)
		out.Probability = afm.Sigmoid(out.Logit)
		out.Steps = []string{
			fmt.Sprintf("Logit = θ + β + γ × T = %.1f + (%.2f) + %.2f × %d = %.3f",
				ability, cs.Difficulty, cs.LearningRate, opps, out.Logit),
			fmt.Sprintf("P(success) = %.1f%%", out.Probability*100),
		}
		in = coach.Input{
			Page:    coach.PageExplorer,
			Subject: c.Label() + " task",
			Terms: []coach.Term{
				{Name: "ability θ", Value: ability},
				{Name: "difficulty β", Value: cs.Difficulty},
				{Name: "learning rate γ", Value: cs.LearningRate},
				{Name: "opportunities T", Value: float64(opps)},
			},
			Logit:       out.Logit,
			Probability: out.Probability,
			Zone:        afm.Classify(out.Probability),
			Offline: fmt.Sprintf("The model gives a %.0f%% chance on this %s task.",
				out.Probability*100, c.Label()),
		}
	} else {
		theta, beta, gamma, err := finiteFlags3(cmd, "theta", "beta", "gamma")
		if err != nil {
			return err
		}
		practice, _ := f.GetInt("practice")

		s := simulator.New().
			SetTheta(theta).
			SetBeta(beta).
			SetGamma(gamma).
			SetPractice(practice)

		out.Convention = "simulator"
		out.Logit = s.Logit()
		out.Probability = s.Probability()
		out.Steps = s.Steps()
		in = coach.FromSimulator(s)
	}
	out.Zone = afm.Classify(out.Probability)

	if explain {
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()

		// The store only logs LLM requests here; predictions work without it.
		svc := coach.NewService(nil, coach.DefaultConfig())
		if st, err := openStore(cmd); err == nil {
			defer st.Close()
			svc = newCoach(ctx, st.EventRepo())
		}
		exp, err := svc.Explain(ctx, in)
		if err != nil {
			fmt.Fprintln(os.Stderr, "warning:", err)
		}
		out.Explanation = &explanation{Summary: exp.Summary, Suggestion: exp.Suggestion, Source: exp.Source}
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	w := cmd.OutOrStdout()
	for _, step := range out.Steps {
		fmt.Fprintln(w, step)
	}
	fmt.Fprintf(w, "Zone: %s\n", out.Zone.Label())
	if out.Explanation != nil {
		fmt.Fprintf(w, "\nCoach (%s): %s\n", out.Explanation.Source, out.Explanation.Summary)
		if out.Explanation.Suggestion != "" {
			fmt.Fprintf(w, "Suggestion: %s\n", out.Explanation.Suggestion)
		}
	}
	return nil
}

// finiteFlag reads a float flag and rejects NaN and infinities.
func finiteFlag(cmd *cobra.Command, name string) (float64, error) {
	v, err := cmd.Flags().GetFloat64(name)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("--%s must be a finite number, got %v", name, v)
	}
	return v, nil
}

func finiteFlags3(cmd *cobra.Command, a, b, c string) (float64, float64, float64, error) {
	var vals [3]float64
	for i, name := range []string{a, b, c} {
		v, err := finiteFlag(cmd, name)
		if err != nil {
			return 0, 0, 0, err
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], nil
}
