// Command tidecard prints tide cards and the locations catalog from the
// terminal.
package main

import (
	"fmt"
	"os"
	_ "time/tzdata"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/spencer-p/tidewidget/pkg/config"
	"github.com/spencer-p/tidewidget/pkg/fetch"
	"github.com/spencer-p/tidewidget/pkg/tidefeed"
	"github.com/spencer-p/tidewidget/pkg/widget"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00CFCF"))
	silentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func main() {
	if err := newRootCmd(serviceFromEnv).Execute(); err != nil {
		os.Exit(1)
	}
}

func serviceFromEnv() (*widget.Service, error) {
	env, err := config.Load()
	if err != nil {
		return nil, err
	}
	place, err := env.Place()
	if err != nil {
		return nil, err
	}
	return &widget.Service{
		Feeds:      fetch.NewClient(env.TidesURL, env.LocationsURL, env.RequestTimeout, env.Retries),
		Normalizer: tidefeed.Normalizer{Zone: place.Location},
		Place:      &place,
	}, nil
}

func newRootCmd(newService func() (*widget.Service, error)) *cobra.Command {
	root := &cobra.Command{
		Use:          "tidecard",
		Short:        "Show high and low tides for a location",
		SilenceUsage: true,
	}

	tides := &cobra.Command{
		Use:   "tides <location-id>",
		Short: "Print the tide card of a location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newService()
			if err != nil {
				return err
			}
			date, _ := cmd.Flags().GetString("date")
			name, _ := cmd.Flags().GetString("name")
			return runTides(cmd, s, tidefeed.Location{ID: args[0], Name: name}, date)
		},
	}
	tides.Flags().String("date", "", "day to show as yyyy-MM-dd (default today)")
	tides.Flags().String("name", "", "location name, skips the catalog lookup")

	locations := &cobra.Command{
		Use:   "locations",
		Short: "Print the locations catalog as name;id lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newService()
			if err != nil {
				return err
			}
			return runLocations(cmd, s)
		},
	}

	root.AddCommand(tides, locations)
	return root
}

func runTides(cmd *cobra.Command, s *widget.Service, loc tidefeed.Location, date string) error {
	ctx := cmd.Context()
	if loc.Name == "" {
		found, err := s.Lookup(ctx, loc.ID)
		if err != nil {
			return err
		}
		loc = found
	}
	if date == "" {
		date = s.Normalizer.DateKey()
	}

	info, err := s.Tides(ctx, loc, date)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), renderCard(s.Card(info)))
	return nil
}

func runLocations(cmd *cobra.Command, s *widget.Service) error {
	locations, err := s.Locations(cmd.Context())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), tidefeed.FormatLocationsCatalog(locations))
	return nil
}

func renderCard(c widget.Card) string {
	body := fmt.Sprintf("%s\n%s\n\n%s  %s\n%s  %s",
		titleStyle.Render(c.LocationName),
		silentStyle.Render(c.DateLabel),
		silentStyle.Render("High:"), c.High,
		silentStyle.Render("Low: "), c.Low,
	)
	if c.Sunrise != "" {
		body += fmt.Sprintf("\n%s  %s - %s", silentStyle.Render("Sun: "), c.Sunrise, c.Sunset)
	}
	body += "\n" + silentStyle.Render("Stand "+c.FetchedAt)
	return cardStyle.Render(body)
}
