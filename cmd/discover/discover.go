// Package discover implements the camera discovery subcommand.
package discover

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ojiudezue/frigate-config-builder/internal/builder"
	"github.com/ojiudezue/frigate-config-builder/internal/conf"
)

// Command creates the discover command, which runs one discovery pass and
// prints the resulting catalog without generating anything.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "Discover cameras and print the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiscover(cmd, settings)
		},
	}
	return cmd
}

func runDiscover(cmd *cobra.Command, settings *conf.Settings) error {
	svc, err := builder.DirectoryService(settings)
	if err != nil {
		return err
	}

	b := builder.New(svc, settings)
	defer func() { _ = b.Close() }()

	cameras, statuses, err := b.Discover(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSOURCE\tAREA\tDETECT\tAVAILABLE\tNEW")
	for i := range cameras {
		cam := &cameras[i]
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dx%d@%d\t%t\t%t\n",
			cam.ID, cam.FriendlyName, cam.Source, cam.Area,
			cam.Width, cam.Height, cam.FPS, cam.Available, cam.IsNew)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	for _, st := range statuses {
		switch {
		case !st.Available:
			fmt.Printf("%s: not configured\n", st.Source)
		case st.Err != nil:
			fmt.Printf("%s: failed after %s: %v\n", st.Source, st.Elapsed, st.Err)
		default:
			fmt.Printf("%s: %d cameras in %s\n", st.Source, st.Cameras, st.Elapsed)
		}
	}
	return nil
}
