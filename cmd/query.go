package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/sdkview/internal/offset"
	"github.com/ziadkadry99/sdkview/internal/query"
	"github.com/ziadkadry99/sdkview/internal/sdk"
)

var filterCmd = &cobra.Command{
	Use:   "filter [category] [term]",
	Short: "Filter a category of the loaded game by name, property or offset",
	Long: `Filters classes, structs, enums, functions or offsets by a case-insensitive
term and prints every matching record with the reasons it matched.`,
	Args: cobra.ExactArgs(2),
	RunE: runFilter,
}

var propsCmd = &cobra.Command{
	Use:   "props [query]",
	Short: "Search every class and struct property by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runProps,
}

var offsetCmd = &cobra.Command{
	Use:   "offset [value...]",
	Short: "Parse offset literals and print them in decimal and hex",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		for _, a := range args {
			v := offset.ParseString(a)
			fmt.Printf("%s\t%d\t%s\n", a, v, offset.Hex(v))
		}
	},
}

// addGameFlags registers the game selection flags on cmd.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&gameName, "game", "", "game to open (default: config game, then the first listed)")
	cmd.Flags().BoolVar(&pickGame, "pick", false, "choose the game interactively")
}

func init() {
	filterCmd.Flags().Bool("names", true, "match record names")
	filterCmd.Flags().Bool("properties", true, "match property, enumerator and function names")
	filterCmd.Flags().Bool("offsets", true, "match hexadecimal offsets")
	filterCmd.Flags().Bool("json", false, "output results as JSON")
	addGameFlags(filterCmd)

	propsCmd.Flags().Bool("json", false, "output results as JSON")
	addGameFlags(propsCmd)

	rootCmd.AddCommand(filterCmd, propsCmd, offsetCmd)
}

// filterOutput is the JSON form of one filtered record.
type filterOutput struct {
	Name    string   `json:"name"`
	Reasons []string `json:"reasons"`
}

func runFilter(cmd *cobra.Command, args []string) error {
	c, ok := sdk.ParseCategory(args[0])
	if !ok {
		return fmt.Errorf("unknown category %q (want one of classes, structs, enums, functions, offsets)", args[0])
	}
	term := args[1]
	if len([]rune(query.NormalizeTerm(term))) < query.MinTermLength {
		return fmt.Errorf("search term must be at least %d characters", query.MinTermLength)
	}

	var flags query.Flags
	flags.Names, _ = cmd.Flags().GetBool("names")
	flags.Properties, _ = cmd.Flags().GetBool("properties")
	flags.Offsets, _ = cmd.Flags().GetBool("offsets")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := loadGame(context.Background(), cfg)
	if err != nil {
		return err
	}

	recs := data.Records(c)
	if len(recs) == 0 {
		fmt.Printf("No %s data available\n", c)
		return nil
	}
	res := query.FilterCategory(c, recs, term, flags)

	if jsonOutput {
		out := make([]filterOutput, 0, len(res.Visible))
		for _, i := range res.Visible {
			out = append(out, filterOutput{Name: recs[i].Name, Reasons: res.Reasons[i]})
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println(res.Info())
	for _, i := range res.Visible {
		fmt.Printf("  %-40s %s\n", recs[i].Name, res.Summary(i))
	}
	return nil
}

func runProps(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	data, err := loadGame(context.Background(), cfg)
	if err != nil {
		return err
	}

	res := query.SearchGlobalProperties(data.Records(sdk.CategoryClasses), data.Records(sdk.CategoryStructs), args[0])
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	if res.Empty {
		fmt.Println("0 results")
		return nil
	}
	if msg := res.Message(); msg != "" {
		fmt.Println(msg)
		return nil
	}
	fmt.Println(res.Info())
	for _, m := range res.Results {
		fmt.Printf("  %-30s %-40s %-10s %s\n", m.PropName, m.ClassName, m.HexOffset, m.Type)
	}
	return nil
}
