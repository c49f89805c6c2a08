package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/afmlab/internal/afm"
	"github.com/abhisek/afmlab/internal/simulator"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <responses>",
	Short: "Replay a sequence of simulated responses",
	Long: `Replay simulated responses through the adaptive simulator. Each character
of <responses> is one answer: c for correct, x for incorrect.

Examples:
  afmlab simulate ccxc
  afmlab simulate xxxx --theta 1 --beta 0.5 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.Float64("theta", simulator.DefaultTheta, "Starting ability θ")
	f.Float64("beta", simulator.DefaultBeta, "Starting difficulty β")
	f.Float64("gamma", simulator.DefaultGamma, "Starting learning rate γ")
	f.Int("practice", simulator.DefaultPracticeCount, "Starting practice count T")
	f.Bool("json", false, "Print JSON")
}

type simulateStep struct {
	Response    int      `json:"response"`
	Correct     bool     `json:"correct"`
	Practice    int      `json:"practice"`
	Probability float64  `json:"probability"`
	Theta       float64  `json:"theta"`
	Beta        float64  `json:"beta"`
	Gamma       float64  `json:"gamma"`
	Zone        afm.Zone `json:"zone"`
	Changed     []string `json:"changed"`
}

// parseResponses turns "ccx" into [true true false].
func parseResponses(seq string) ([]bool, error) {
	seq = strings.ToLower(strings.TrimSpace(seq))
	if seq == "" {
		return nil, fmt.Errorf("no responses given")
	}
	out := make([]bool, 0, len(seq))
	for i, r := range seq {
		switch r {
		case 'c':
			out = append(out, true)
		case 'x':
			out = append(out, false)
		default:
			return nil, fmt.Errorf("invalid response %q at position %d (use c or x)", r, i+1)
		}
	}
	return out, nil
}

func runSimulate(cmd *cobra.Command, args []string) error {
	responses, err := parseResponses(args[0])
	if err != nil {
		return err
	}

	f := cmd.Flags()
	theta, beta, gamma, err := finiteFlags3(cmd, "theta", "beta", "gamma")
	if err != nil {
		return err
	}
	practice, _ := f.GetInt("practice")
	if practice < 0 {
		return fmt.Errorf("--practice must be >= 0, got %d", practice)
	}
	asJSON, _ := f.GetBool("json")

	s := simulator.New().
		SetTheta(theta).
		SetBeta(beta).
		SetGamma(gamma).
		SetPractice(practice)
	// The practice count is unbounded; only the slider value is clamped.
	s.PracticeCount = practice

	steps := make([]simulateStep, 0, len(responses))
	for i, correct := range responses {
		next, changed := s.Apply(simulator.SimulateEvent{Correct: correct})
		names := make([]string, len(changed))
		for j, c := range changed {
			names[j] = string(c)
		}
		p := next.Log[len(next.Log)-1].Probability
		steps = append(steps, simulateStep{
			Response:    i + 1,
			Correct:     correct,
			Practice:    s.PracticeCount,
			Probability: p,
			Theta:       next.Theta,
			Beta:        next.Beta,
			Gamma:       next.Gamma,
			Zone:        afm.Classify(p),
			Changed:     names,
		})
		s = next
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(steps)
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%-3s  %-9s  %-3s  %7s  %6s  %6s  %6s  %s\n",
		"#", "Answer", "T", "P", "θ", "β", "γ", "Changed")
	fmt.Fprintln(w, strings.Repeat("─", 64))
	for _, st := range steps {
		answer := "correct"
		if !st.Correct {
			answer = "incorrect"
		}
		fmt.Fprintf(w, "%-3d  %-9s  %-3d  %6.1f%%  %6.2f  %6.2f  %6.2f  %s\n",
			st.Response, answer, st.Practice, st.Probability*100,
			st.Theta, st.Beta, st.Gamma, strings.Join(st.Changed, ","))
	}
	fmt.Fprintln(w)
	for _, line := range s.Steps() {
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "Zone: %s\n", afm.Classify(s.Probability()).Label())
	return nil
}
