package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/biaslens/biaslens/internal/model"
	"github.com/biaslens/biaslens/internal/strategy"
)

// strategiesCmd represents the strategies command
var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List mitigation strategies and model tendency profiles",
	Long: `Display the strategy knowledge base: which mitigation strategy is
applied per bias type, its measured effectiveness, and the per-model
tendency profiles that can override the table.

Example:
  biaslens strategies
  biaslens strategies --catalog custom-catalog.yaml`,
	RunE: runStrategies,
}

func init() {
	rootCmd.AddCommand(strategiesCmd)

	strategiesCmd.Flags().StringVar(&catalogPath, "catalog", "", "strategy catalog YAML (overrides built-in)")
}

func runStrategies(cmd *cobra.Command, args []string) error {
	catalog := strategy.Default()
	if catalogPath != "" {
		c, err := strategy.Load(catalogPath)
		if err != nil {
			return err
		}
		catalog = c
	}

	fmt.Println("Bias type → strategy (effectiveness)")
	fmt.Println()
	for _, kind := range model.ClassificationPriority {
		row, ok := catalog.Effectiveness[kind]
		if !ok {
			continue
		}
		fmt.Printf("  %-25s %-25s %d%%\n", kind, row.Strategy, row.BaseEffectiveness)
		if row.ResearchNote != "" {
			fmt.Printf("  %-25s %s\n", "", row.ResearchNote)
		}
	}

	fmt.Println()
	fmt.Println("Model tendency profiles")
	fmt.Println()

	identities := make([]string, 0, len(catalog.Models))
	for identity := range catalog.Models {
		identities = append(identities, string(identity))
	}
	sort.Strings(identities)

	for _, identity := range identities {
		profile := catalog.Models[model.ModelIdentity(identity)]
		fmt.Printf("  %s (confidence modifier %.2f)\n", identity, profile.ConfidenceModifier)
		for i, tendency := range profile.Tendencies {
			preferred := model.Strategy("")
			if i < len(profile.PreferredStrategies) {
				preferred = profile.PreferredStrategies[i]
			} else if len(profile.PreferredStrategies) > 0 {
				preferred = profile.PreferredStrategies[len(profile.PreferredStrategies)-1]
			}
			fmt.Fprintf(os.Stdout, "    tendency: %-25s preferred: %s\n", tendency, preferred)
		}
		fmt.Println()
	}

	return nil
}
