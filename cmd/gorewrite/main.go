package main

import (
	"fmt"
	"os"

	"github.com/borzacchiello/gorewrite"
	"github.com/borzacchiello/gorewrite/peano"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gorewrite [flags] theorem",
	Short: "A best-first term-rewriting theorem prover.",
	Long: "Proves equations of Peano arithmetic by best-first rewriting " +
		"with the Peano axiom set, e.g.:\n\n  gorewrite \"S(0) + 0 = S(0)\"",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)

		maxNodes, _ := cmd.Flags().GetUint64("max-nodes")
		check, _ := cmd.Flags().GetBool("check")

		store := gorewrite.NewTermStore(peano.NewSignature())
		lhs, rhs, err := peano.ParseTheorem(store, args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		rules, err := peano.Axioms(store)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

		prover := gorewrite.NewProver(store, maxNodes)
		for _, rule := range rules {
			prover.AddRule(rule)
		}

		res := prover.Prove(lhs, rhs)
		log.Debugf("store: %d interned terms, %d/%d cache hits",
			store.Stats.Interned, store.Stats.CacheHits, store.Stats.CacheLookups)

		if !res.Found {
			fmt.Printf("no proof found (%d nodes explored)\n", res.NodesExplored)
			os.Exit(1)
		}

		fmt.Println("Theorem proved!")
		fmt.Printf("Nodes explored: %d\n", res.NodesExplored)
		fmt.Println()
		for i, step := range res.Steps {
			dir := ""
			if !step.Forward {
				dir = ", reversed"
			}
			fmt.Printf("  %d. Apply %q (%s@%s%s):\n", i+1, step.Rule,
				gorewrite.SideName(step.Side), step.Pos, dir)
			fmt.Printf("     %s  ->  %s\n", step.Before, step.After)
		}

		if check {
			crossCheck(lhs)
		}
	},
}

// crossCheck validates the original equation with the Z3 oracle; a
// disagreement with the prover is reported and fatal.
func crossCheck(eq *gorewrite.TermPtr) {
	oracle := peano.NewOracle()
	ok, err := oracle.CheckEquation(eq)
	if err != nil {
		log.Warnf("cross-check skipped: %v", err)
		return
	}
	if !ok {
		fmt.Fprintf(os.Stderr, "cross-check FAILED: Z3 refutes %s\n", eq)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println("Cross-check: Z3 agrees.")
}

func configureLogging(cmd *cobra.Command) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		log.SetLevel(log.DebugLevel)
	}
	if lvl := os.Getenv("GOREWRITE_LOG"); lvl != "" {
		parsed, err := log.ParseLevel(lvl)
		if err != nil {
			log.Warnf("invalid GOREWRITE_LOG value %q", lvl)
		} else {
			log.SetLevel(parsed)
		}
	}
}

func init() {
	rootCmd.Flags().Uint64("max-nodes", 10000, "node budget for the search")
	rootCmd.Flags().Bool("check", false, "cross-check a proved equation with Z3")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
