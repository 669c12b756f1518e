package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"arbor/lsys/expansion"
	"arbor/lsys/grammar"
)

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Print expansion lengths per generation",
	Long: `Expands the configured grammar up to --generations and prints the length and
per-symbol counts of every generation. --predict continues with counts only, without
materializing the string. --print writes the final expansion.`,
	RunE: runExpand,
}

func init() {
	rootCmd.AddCommand(expandCmd)
	f := expandCmd.Flags()
	f.Int("predict", 0, "Also predict lengths for this many further generations")
	f.Bool("print", false, "Print the final expansion")
}

func runExpand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	g, err := cfg.Grammar()
	if err != nil {
		return err
	}
	predict, _ := cmd.Flags().GetInt("predict")
	printFinal, _ := cmd.Flags().GetBool("print")

	out := cmd.OutOrStdout()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprint(tw, "gen\tlength")
	for _, s := range grammar.Alphabet {
		fmt.Fprintf(tw, "\t%s", s)
	}
	fmt.Fprintln(tw)

	row := func(gen int, c grammar.Counts, predicted bool) {
		mark := ""
		if predicted {
			mark = "~"
		}
		fmt.Fprintf(tw, "%d%s\t%d", gen, mark, c.Total())
		for _, s := range grammar.Alphabet {
			fmt.Fprintf(tw, "\t%d", c[s])
		}
		fmt.Fprintln(tw)
	}

	cache := expansion.New(g, cfg.ExpansionLimits())
	row(0, cache.Counts(), false)
	for cache.Generation() < cfg.Generations {
		if err := cache.ExpandOnce(); err != nil {
			_ = tw.Flush()
			return err
		}
		row(cache.Generation(), cache.Counts(), false)
	}
	c := cache.Counts()
	for i := 1; i <= predict; i++ {
		c = g.Next(c)
		row(cache.Generation()+i, c, true)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if printFinal {
		fmt.Fprintln(out, cache.String())
	}
	return nil
}
